package repository

import (
	"context"
	"errors"
	"time"

	"FanPulse/internal/model"

	"gorm.io/gorm"
)

// ProfileRepository 球迷档案持久化
type ProfileRepository interface {
	GetByUUID(ctx context.Context, profileUUID string) (*model.FanProfile, error)
	GetByID(ctx context.Context, profileID uint64) (*model.FanProfile, error)
	GetByUserID(ctx context.Context, userID uint64) (*model.FanProfile, error)
	Save(ctx context.Context, profile *model.FanProfile) error
	GetOrCreateClubStats(ctx context.Context, profileID, clubID uint64) (*model.ClubStats, error)
	ListClubStats(ctx context.Context, profileID uint64) ([]*model.ClubStats, error)
	SaveClubStats(ctx context.Context, stats *model.ClubStats) error
	ListClubs(ctx context.Context, limit int) ([]*model.Club, error)
	GetClub(ctx context.Context, clubID uint64) (*model.Club, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建档案仓储
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUUID(ctx context.Context, profileUUID string) (*model.FanProfile, error) {
	var p model.FanProfile
	if err := r.db.WithContext(ctx).
		Preload("SupportedClubs").Preload("ActiveClub").
		Where("profile_uuid = ?", profileUUID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetByID(ctx context.Context, profileID uint64) (*model.FanProfile, error) {
	var p model.FanProfile
	if err := r.db.WithContext(ctx).
		Preload("SupportedClubs").Preload("ActiveClub").
		First(&p, profileID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint64) (*model.FanProfile, error) {
	var p model.FanProfile
	if err := r.db.WithContext(ctx).
		Preload("SupportedClubs").Preload("ActiveClub").
		Where("user_id = ?", userID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *model.FanProfile) error {
	profile.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(profile).Error
}

// GetOrCreateClubStats 懒创建 (profile, club) 维度统计行
func (r *profileRepository) GetOrCreateClubStats(ctx context.Context, profileID, clubID uint64) (*model.ClubStats, error) {
	var stats model.ClubStats
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND club_id = ?", profileID, clubID).
		First(&stats).Error
	if err == nil {
		return &stats, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	stats = model.ClubStats{
		ProfileID: profileID,
		ClubID:    clubID,
		Badges:    model.EncodeSet(nil),
	}
	if err := r.db.WithContext(ctx).Create(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *profileRepository) ListClubStats(ctx context.Context, profileID uint64) ([]*model.ClubStats, error) {
	var list []*model.ClubStats
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *profileRepository) SaveClubStats(ctx context.Context, stats *model.ClubStats) error {
	stats.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(stats).Error
}

func (r *profileRepository) ListClubs(ctx context.Context, limit int) ([]*model.Club, error) {
	var clubs []*model.Club
	db := r.db.WithContext(ctx).Order("id ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&clubs).Error; err != nil {
		return nil, err
	}
	return clubs, nil
}

func (r *profileRepository) GetClub(ctx context.Context, clubID uint64) (*model.Club, error) {
	var club model.Club
	if err := r.db.WithContext(ctx).First(&club, clubID).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *profileRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.UserAccount{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
