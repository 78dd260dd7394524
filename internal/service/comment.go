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

// 正面评论的俱乐部维度奖励与徽章阶梯
const (
	positiveCommentPoints = 10
	dedicatedFanTarget    = 10
	loyalSupportersTarget = 20
	topicExpertTarget     = 10
)

// CommentService 话题评论：情绪打分、落库、俱乐部维度奖励、触发台账
type CommentService struct {
	commentRepo repository.CommentRepository
	profileRepo repository.ProfileRepository
	scorer      sentiment.Scorer
	ledger      *LedgerService
	logger      *logrus.Logger
}

// NewCommentService 创建评论服务
func NewCommentService(
	commentRepo repository.CommentRepository,
	profileRepo repository.ProfileRepository,
	scorer sentiment.Scorer,
	ledger *LedgerService,
	logger *logrus.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		profileRepo: profileRepo,
		scorer:      scorer,
		ledger:      ledger,
		logger:      logger,
	}
}

// RecordCommentResult 评论回执：情绪标签与本次台账发放积分
type RecordCommentResult struct {
	Sentiment     model.Sentiment `json:"sentiment"`
	PointsAwarded int             `json:"points_awarded"`
}

// RecordComment 发表话题评论。
// 打分映射：compound >= 0.05 正面、<= -0.05 负面、其余中性。
// 正面评论给俱乐部维度 +10 并按评论量解锁徽章阶梯，随后触发一次全局挑战发放
func (s *CommentService) RecordComment(ctx context.Context, profile *model.FanProfile, topicID *uint64, text string) (*RecordCommentResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("comment cannot be empty")
	}
	if profile.ActiveClubID == nil {
		return nil, apperr.Validation("no active club selected")
	}
	clubID := *profile.ActiveClubID

	if topicID != nil {
		topic, err := s.commentRepo.GetTopic(ctx, *topicID)
		if err != nil {
			if errorsIsNotFound(err) {
				return nil, apperr.NotFound("topic not found")
			}
			return nil, err
		}
		if topic.ClubID != clubID {
			return nil, apperr.Validation("topic does not belong to your active club")
		}
	}

	label := sentiment.Classify(s.scorer.Score(text))
	comment := &model.Comment{
		ProfileID: profile.ID,
		ClubID:    clubID,
		TopicID:   topicID,
		Text:      text,
		Sentiment: label,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if label == model.SentimentPositive {
		if err := s.awardPositiveCommentBonus(ctx, profile, clubID, topicID); err != nil {
			return nil, err
		}
	}

	awarded, err := s.ledger.AwardChallenges(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return &RecordCommentResult{Sentiment: label, PointsAwarded: awarded}, nil
}

// awardPositiveCommentBonus 正面评论的俱乐部维度加分与徽章阶梯
func (s *CommentService) awardPositiveCommentBonus(ctx context.Context, profile *model.FanProfile, clubID uint64, topicID *uint64) error {
	stats, err := s.profileRepo.GetOrCreateClubStats(ctx, profile.ID, clubID)
	if err != nil {
		return err
	}
	stats.Points += positiveCommentPoints
	stats.Badges = model.SetAdd(stats.Badges, "Positive Fan")

	clubComments, err := s.commentRepo.CountByProfileAndClub(ctx, profile.ID, clubID)
	if err != nil {
		return err
	}
	if clubComments >= dedicatedFanTarget {
		stats.Badges = model.SetAdd(stats.Badges, "Dedicated Fan")
	}
	if clubComments >= loyalSupportersTarget {
		stats.Badges = model.SetAdd(stats.Badges, "Loyal Supporters")
	}
	if topicID != nil {
		topicComments, err := s.commentRepo.CountByProfileClubTopic(ctx, profile.ID, clubID, *topicID)
		if err != nil {
			return err
		}
		if topicComments >= topicExpertTarget {
			stats.Badges = model.SetAdd(stats.Badges, "Topic Expert")
		}
	}
	return s.profileRepo.SaveClubStats(ctx, stats)
}

// RecentComments 主队最近评论（可按话题过滤）
func (s *CommentService) RecentComments(ctx context.Context, profile *model.FanProfile, topicID *uint64, limit int) ([]*model.Comment, error) {
	if profile.ActiveClubID == nil {
		return []*model.Comment{}, nil
	}
	return s.commentRepo.ListRecentByClub(ctx, *profile.ActiveClubID, topicID, limit)
}

// TopicsForClub 主队话题列表，为空时懒创建默认话题
func (s *CommentService) TopicsForClub(ctx context.Context, clubID uint64) ([]*model.Topic, error) {
	topics, err := s.commentRepo.ListTopicsByClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if len(topics) > 0 {
		return topics, nil
	}
	for _, name := range []string{"Match Reviews", "Player Discussions", "Fan Predictions"} {
		topic := &model.Topic{ClubID: clubID, Name: name}
		if err := s.commentRepo.CreateTopic(ctx, topic); err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}
	return topics, nil
}
