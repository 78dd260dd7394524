package repository

import (
	"context"
	"errors"
	"time"

	"FanPulse/internal/model"

	"gorm.io/gorm"
)

// PredictionRepository 比分预测持久化
type PredictionRepository interface {
	GetByProfileAndFixture(ctx context.Context, profileID, fixtureID uint64) (*model.Prediction, error)
	GetOrCreate(ctx context.Context, profileID, fixtureID, clubID uint64) (*model.Prediction, error)
	Save(ctx context.Context, prediction *model.Prediction) error
	ListByFixture(ctx context.Context, fixtureID uint64) ([]*model.Prediction, error)
}

type predictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository 创建预测仓储
func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) GetByProfileAndFixture(ctx context.Context, profileID, fixtureID uint64) (*model.Prediction, error) {
	var p model.Prediction
	if err := r.db.WithContext(ctx).
		Where("profile_id = ? AND fixture_id = ?", profileID, fixtureID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetOrCreate 按 (profile, fixture) 懒创建预测行，唯一索引兜底并发重复创建
func (r *predictionRepository) GetOrCreate(ctx context.Context, profileID, fixtureID, clubID uint64) (*model.Prediction, error) {
	p, err := r.GetByProfileAndFixture(ctx, profileID, fixtureID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	created := model.Prediction{
		ProfileID: profileID,
		FixtureID: fixtureID,
		ClubID:    clubID,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		// 并发下撞唯一索引，回读已存在的行
		if existing, gerr := r.GetByProfileAndFixture(ctx, profileID, fixtureID); gerr == nil {
			return existing, nil
		}
		return nil, err
	}
	return &created, nil
}

func (r *predictionRepository) Save(ctx context.Context, prediction *model.Prediction) error {
	return r.db.WithContext(ctx).Save(prediction).Error
}

func (r *predictionRepository) ListByFixture(ctx context.Context, fixtureID uint64) ([]*model.Prediction, error) {
	var list []*model.Prediction
	if err := r.db.WithContext(ctx).
		Where("fixture_id = ?", fixtureID).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
