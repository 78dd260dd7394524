package repository

import (
	"context"
	"time"

	"FanPulse/internal/model"

	"gorm.io/gorm"
)

// FixtureRepository 赛程持久化
type FixtureRepository interface {
	GetByID(ctx context.Context, fixtureID uint64) (*model.Fixture, error)
	ListByClub(ctx context.Context, clubID uint64, clubName string) ([]*model.Fixture, error)
	ListLive(ctx context.Context) ([]*model.Fixture, error)
	Save(ctx context.Context, fixture *model.Fixture) error
	CreateMatchComment(ctx context.Context, comment *model.MatchComment) error
	ListMatchComments(ctx context.Context, fixtureID uint64) ([]*model.MatchComment, error)
	DeleteMatchComments(ctx context.Context, fixtureID uint64) error
}

type fixtureRepository struct {
	db *gorm.DB
}

// NewFixtureRepository 创建赛程仓储
func NewFixtureRepository(db *gorm.DB) FixtureRepository {
	return &fixtureRepository{db: db}
}

func (r *fixtureRepository) GetByID(ctx context.Context, fixtureID uint64) (*model.Fixture, error) {
	var f model.Fixture
	if err := r.db.WithContext(ctx).First(&f, fixtureID).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// ListByClub 主队是该俱乐部、或对手名等于该俱乐部名的赛程
func (r *fixtureRepository) ListByClub(ctx context.Context, clubID uint64, clubName string) ([]*model.Fixture, error) {
	var list []*model.Fixture
	if err := r.db.WithContext(ctx).
		Where("club_id = ? OR opponent = ?", clubID, clubName).
		Order("kickoff_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *fixtureRepository) ListLive(ctx context.Context) ([]*model.Fixture, error) {
	var list []*model.Fixture
	if err := r.db.WithContext(ctx).
		Where("is_live = ?", true).
		Order("kickoff_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *fixtureRepository) Save(ctx context.Context, fixture *model.Fixture) error {
	fixture.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(fixture).Error
}

func (r *fixtureRepository) CreateMatchComment(ctx context.Context, comment *model.MatchComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *fixtureRepository) ListMatchComments(ctx context.Context, fixtureID uint64) ([]*model.MatchComment, error) {
	var list []*model.MatchComment
	if err := r.db.WithContext(ctx).
		Where("fixture_id = ?", fixtureID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *fixtureRepository) DeleteMatchComments(ctx context.Context, fixtureID uint64) error {
	return r.db.WithContext(ctx).
		Where("fixture_id = ?", fixtureID).
		Delete(&model.MatchComment{}).Error
}
