package service

import (
	"context"
	"strings"
	"time"

	"FanPulse/internal/apperr"
	"FanPulse/internal/model"
	"FanPulse/internal/repository"
	"FanPulse/internal/sentiment"

	"github.com/sirupsen/logrus"
)

// NewsService 新闻、新闻评论与点赞/点踩
type NewsService struct {
	newsRepo repository.NewsRepository
	scorer   sentiment.Scorer
	ledger   *LedgerService
	logger   *logrus.Logger
}

// NewNewsService 创建新闻服务
func NewNewsService(newsRepo repository.NewsRepository, scorer sentiment.Scorer, ledger *LedgerService, logger *logrus.Logger) *NewsService {
	return &NewsService{newsRepo: newsRepo, scorer: scorer, ledger: ledger, logger: logger}
}

// Articles 主队新闻列表
func (s *NewsService) Articles(ctx context.Context, profile *model.FanProfile) ([]*model.NewsArticle, error) {
	if profile.ActiveClubID == nil {
		return []*model.NewsArticle{}, nil
	}
	return s.newsRepo.ListArticlesByClub(ctx, *profile.ActiveClubID)
}

// ArticleDetail 新闻详情
type ArticleDetail struct {
	Article  *model.NewsArticle   `json:"article"`
	Comments []*model.NewsComment `json:"comments"`
}

// Article 单篇新闻与评论
func (s *NewsService) Article(ctx context.Context, articleID uint64) (*ArticleDetail, error) {
	article, err := s.newsRepo.GetArticle(ctx, articleID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, apperr.NotFound("article not found")
		}
		return nil, err
	}
	comments, err := s.newsRepo.ListCommentsByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	return &ArticleDetail{Article: article, Comments: comments}, nil
}

// NewsCommentResult 新闻评论回执
type NewsCommentResult struct {
	Sentiment     model.Sentiment `json:"sentiment"`
	Warning       string          `json:"warning,omitempty"`
	PointsAwarded int             `json:"points_awarded"`
}

// AddComment 发表新闻评论；负面评论返回提示但照常落库
func (s *NewsService) AddComment(ctx context.Context, profile *model.FanProfile, articleID uint64, text string) (*NewsCommentResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("comment cannot be empty")
	}
	if _, err := s.newsRepo.GetArticle(ctx, articleID); err != nil {
		if errorsIsNotFound(err) {
			return nil, apperr.NotFound("article not found")
		}
		return nil, err
	}
	label := sentiment.Classify(s.scorer.Score(text))
	comment := &model.NewsComment{
		ProfileID: profile.ID,
		ArticleID: articleID,
		Text:      text,
		Sentiment: label,
		CreatedAt: time.Now(),
	}
	if err := s.newsRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	awarded, err := s.ledger.AwardChallenges(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	result := &NewsCommentResult{Sentiment: label, PointsAwarded: awarded}
	if label == model.SentimentNegative {
		result.Warning = "Your comment was detected as negative. Let's keep it positive!"
	}
	return result, nil
}

// ReactionResult 点赞/点踩后的最新计数
type ReactionResult struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// React 点赞或点踩。换边时先把对侧计数减一（不低于0）再给本侧加一，
// 记录操作流水供 Engagement Booster 统计，并触发一次台账发放
func (s *NewsService) React(ctx context.Context, profile *model.FanProfile, commentID uint64, action string) (*ReactionResult, error) {
	if action != "like" && action != "dislike" {
		return nil, apperr.Validation("invalid action %q", action)
	}
	comment, err := s.newsRepo.GetComment(ctx, commentID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, err
	}
	if action == "like" {
		if comment.Dislikes > 0 {
			comment.Dislikes--
		}
		comment.Likes++
	} else {
		if comment.Likes > 0 {
			comment.Likes--
		}
		comment.Dislikes++
	}
	if err := s.newsRepo.SaveComment(ctx, comment); err != nil {
		return nil, err
	}
	reaction := &model.NewsReaction{
		ProfileID: profile.ID,
		CommentID: commentID,
		Action:    action,
		CreatedAt: time.Now(),
	}
	if err := s.newsRepo.CreateReaction(ctx, reaction); err != nil {
		return nil, err
	}
	if _, err := s.ledger.AwardChallenges(ctx, profile.ID); err != nil {
		return nil, err
	}
	return &ReactionResult{Likes: comment.Likes, Dislikes: comment.Dislikes}, nil
}
