package repository

import (
	"context"

	"FanPulse/internal/model"

	"gorm.io/gorm"
)

// PollRepository 投票持久化
type PollRepository interface {
	List(ctx context.Context) ([]*model.Poll, error)
	GetByID(ctx context.Context, pollID uint64) (*model.Poll, error)
	Create(ctx context.Context, poll *model.Poll) error
	Save(ctx context.Context, poll *model.Poll) error
	HasVoted(ctx context.Context, profileID, pollID uint64) (bool, error)
	CreateVote(ctx context.Context, vote *model.Vote) error
	ListVotedPollIDs(ctx context.Context, profileID uint64) ([]uint64, error)
	CountPolls(ctx context.Context) (int64, error)
}

type pollRepository struct {
	db *gorm.DB
}

// NewPollRepository 创建投票仓储
func NewPollRepository(db *gorm.DB) PollRepository {
	return &pollRepository{db: db}
}

func (r *pollRepository) List(ctx context.Context) ([]*model.Poll, error) {
	var polls []*model.Poll
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&polls).Error; err != nil {
		return nil, err
	}
	return polls, nil
}

func (r *pollRepository) GetByID(ctx context.Context, pollID uint64) (*model.Poll, error) {
	var p model.Poll
	if err := r.db.WithContext(ctx).First(&p, pollID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pollRepository) Create(ctx context.Context, poll *model.Poll) error {
	return r.db.WithContext(ctx).Create(poll).Error
}

func (r *pollRepository) Save(ctx context.Context, poll *model.Poll) error {
	return r.db.WithContext(ctx).Save(poll).Error
}

func (r *pollRepository) HasVoted(ctx context.Context, profileID, pollID uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Vote{}).
		Where("profile_id = ? AND poll_id = ?", profileID, pollID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *pollRepository) CreateVote(ctx context.Context, vote *model.Vote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

func (r *pollRepository) ListVotedPollIDs(ctx context.Context, profileID uint64) ([]uint64, error) {
	var ids []uint64
	if err := r.db.WithContext(ctx).Model(&model.Vote{}).
		Where("profile_id = ?", profileID).
		Pluck("poll_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *pollRepository) CountPolls(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Poll{}).Count(&count).Error
	return count, err
}
