package repository

import (
	"context"

	"FanPulse/internal/model"

	"gorm.io/gorm"
)

// CommentRepository 话题评论持久化与聚合计数
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListRecentByClub(ctx context.Context, clubID uint64, topicID *uint64, limit int) ([]*model.Comment, error)
	CountByProfileAndClub(ctx context.Context, profileID, clubID uint64) (int64, error)
	CountByProfileClubTopic(ctx context.Context, profileID, clubID, topicID uint64) (int64, error)
	DeleteByProfile(ctx context.Context, profileID uint64) error
	GetTopic(ctx context.Context, topicID uint64) (*model.Topic, error)
	ListTopicsByClub(ctx context.Context, clubID uint64) ([]*model.Topic, error)
	CreateTopic(ctx context.Context, topic *model.Topic) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓储
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) ListRecentByClub(ctx context.Context, clubID uint64, topicID *uint64, limit int) ([]*model.Comment, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	db := r.db.WithContext(ctx).Where("club_id = ?", clubID)
	if topicID != nil {
		db = db.Where("topic_id = ?", *topicID)
	}
	var list []*model.Comment
	if err := db.Order("created_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *commentRepository) CountByProfileAndClub(ctx context.Context, profileID, clubID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("profile_id = ? AND club_id = ?", profileID, clubID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) CountByProfileClubTopic(ctx context.Context, profileID, clubID, topicID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("profile_id = ? AND club_id = ? AND topic_id = ?", profileID, clubID, topicID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) DeleteByProfile(ctx context.Context, profileID uint64) error {
	return r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&model.Comment{}).Error
}

func (r *commentRepository) GetTopic(ctx context.Context, topicID uint64) (*model.Topic, error) {
	var topic model.Topic
	if err := r.db.WithContext(ctx).First(&topic, topicID).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *commentRepository) ListTopicsByClub(ctx context.Context, clubID uint64) ([]*model.Topic, error) {
	var topics []*model.Topic
	if err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *commentRepository) CreateTopic(ctx context.Context, topic *model.Topic) error {
	return r.db.WithContext(ctx).Create(topic).Error
}
