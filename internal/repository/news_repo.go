package repository

import (
	"context"

	"FanPulse/internal/model"

	"gorm.io/gorm"
)

// NewsRepository 新闻与新闻评论持久化
type NewsRepository interface {
	ListArticlesByClub(ctx context.Context, clubID uint64) ([]*model.NewsArticle, error)
	GetArticle(ctx context.Context, articleID uint64) (*model.NewsArticle, error)
	CreateComment(ctx context.Context, comment *model.NewsComment) error
	GetComment(ctx context.Context, commentID uint64) (*model.NewsComment, error)
	SaveComment(ctx context.Context, comment *model.NewsComment) error
	ListCommentsByArticle(ctx context.Context, articleID uint64) ([]*model.NewsComment, error)
	CreateReaction(ctx context.Context, reaction *model.NewsReaction) error
}

type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository 创建新闻仓储
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) ListArticlesByClub(ctx context.Context, clubID uint64) ([]*model.NewsArticle, error) {
	var list []*model.NewsArticle
	if err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("published_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *newsRepository) GetArticle(ctx context.Context, articleID uint64) (*model.NewsArticle, error) {
	var a model.NewsArticle
	if err := r.db.WithContext(ctx).First(&a, articleID).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *newsRepository) CreateComment(ctx context.Context, comment *model.NewsComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *newsRepository) GetComment(ctx context.Context, commentID uint64) (*model.NewsComment, error) {
	var c model.NewsComment
	if err := r.db.WithContext(ctx).First(&c, commentID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *newsRepository) SaveComment(ctx context.Context, comment *model.NewsComment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *newsRepository) ListCommentsByArticle(ctx context.Context, articleID uint64) ([]*model.NewsComment, error) {
	var list []*model.NewsComment
	if err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *newsRepository) CreateReaction(ctx context.Context, reaction *model.NewsReaction) error {
	return r.db.WithContext(ctx).Create(reaction).Error
}
