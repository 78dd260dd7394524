package service

import (
	"context"
	"errors"
	"time"

	"FanPulse/internal/config"
	"FanPulse/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Challenge 挑战定义：活动计数阈值 + 积分与徽章
type Challenge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Target      int    `json:"target"`
	Points      int    `json:"points"`
	Badge       string `json:"badge"`
}

// 挑战表按固定优先级排列，单次发放只取第一个新达成的
var challengeTable = []Challenge{
	{ID: "comment_king", Name: "Comment King", Description: "Post 5 comments.", Target: 5, Points: 10, Badge: "Comment King"},
	{ID: "positive_vibes", Name: "Positive Vibes", Description: "Post 3 positive comments.", Target: 3, Points: 15, Badge: "Positive Fan"},
	{ID: "loyal_supporter", Name: "Loyal Supporter", Description: "Comment 10 times on your active club's content.", Target: 10, Points: 15, Badge: "Loyal Supporters"},
	{ID: "prophet_of_the_pitch", Name: "Prophet of the Pitch", Description: "Submit 3 correct predictions.", Target: 3, Points: 20, Badge: "Seer"},
	{ID: "match_day_commentator", Name: "Match Day Commentator", Description: "Comment on 3 different news articles.", Target: 3, Points: 10, Badge: "Commentator"},
	{ID: "engagement_booster", Name: "Engagement Booster", Description: "Like or dislike 10 comments from other users.", Target: 10, Points: 5, Badge: "Engaged Fan"},
}

// ChallengeProgress 单个挑战的进度视图
type ChallengeProgress struct {
	Challenge
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
	Awarded   bool `json:"awarded"`
}

// LedgerService 积分/徽章台账：唯一的挑战发放入口。
// 同一 (档案, 挑战) 只发一次，靠 AwardedChallenges 集合保证幂等
type LedgerService struct {
	db     *gorm.DB
	cfg    *config.Config
	logger *logrus.Logger
}

// NewLedgerService 创建台账服务
func NewLedgerService(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *LedgerService {
	return &LedgerService{db: db, cfg: cfg, logger: logger}
}

// Challenges 挑战定义表（只读）
func (s *LedgerService) Challenges() []Challenge {
	out := make([]Challenge, len(challengeTable))
	copy(out, challengeTable)
	return out
}

// lockForUpdate 行级锁；sqlite 是单写者，不支持 FOR UPDATE 语法
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// progressByID 按挑战ID聚合当前活动计数
func (s *LedgerService) progressByID(tx *gorm.DB, profile *model.FanProfile) (map[string]int, error) {
	weekAgo := time.Now().AddDate(0, 0, -s.cfg.Engagement.CommentWindowDays)
	monthAgo := time.Now().AddDate(0, 0, -s.cfg.Engagement.PredictionWindowDays)
	progress := make(map[string]int, len(challengeTable))

	var n int64
	if err := tx.Model(&model.Comment{}).
		Where("profile_id = ? AND created_at >= ?", profile.ID, weekAgo).
		Count(&n).Error; err != nil {
		return nil, err
	}
	progress["comment_king"] = int(n)

	if err := tx.Model(&model.Comment{}).
		Where("profile_id = ? AND sentiment = ?", profile.ID, model.SentimentPositive).
		Count(&n).Error; err != nil {
		return nil, err
	}
	progress["positive_vibes"] = int(n)

	progress["loyal_supporter"] = 0
	if profile.ActiveClubID != nil {
		if err := tx.Model(&model.Comment{}).
			Where("profile_id = ? AND club_id = ?", profile.ID, *profile.ActiveClubID).
			Count(&n).Error; err != nil {
			return nil, err
		}
		progress["loyal_supporter"] = int(n)
	}

	if err := tx.Model(&model.Prediction{}).
		Where("profile_id = ? AND is_correct = ? AND created_at >= ?", profile.ID, true, monthAgo).
		Count(&n).Error; err != nil {
		return nil, err
	}
	progress["prophet_of_the_pitch"] = int(n)

	if err := tx.Model(&model.NewsComment{}).
		Where("profile_id = ?", profile.ID).
		Distinct("article_id").
		Count(&n).Error; err != nil {
		return nil, err
	}
	progress["match_day_commentator"] = int(n)

	if err := tx.Model(&model.NewsReaction{}).
		Where("profile_id = ?", profile.ID).
		Count(&n).Error; err != nil {
		return nil, err
	}
	progress["engagement_booster"] = int(n)

	return progress, nil
}

// Progress 挑战进度列表（挑战页展示用）
func (s *LedgerService) Progress(ctx context.Context, profileID uint64) ([]ChallengeProgress, error) {
	var profile model.FanProfile
	if err := s.db.WithContext(ctx).First(&profile, profileID).Error; err != nil {
		return nil, err
	}
	progress, err := s.progressByID(s.db.WithContext(ctx), &profile)
	if err != nil {
		return nil, err
	}
	list := make([]ChallengeProgress, 0, len(challengeTable))
	for _, ch := range challengeTable {
		p := progress[ch.ID]
		list = append(list, ChallengeProgress{
			Challenge: ch,
			Progress:  p,
			Completed: p >= ch.Target,
			Awarded:   model.SetContains(profile.AwardedChallenges, ch.ID),
		})
	}
	return list, nil
}

// AwardChallenges 全局发放：按优先级找第一个已达成且未发放过的挑战，
// 加积分、加徽章、记入已发放集合，返回本次发放的积分（无则0）。
// 多个挑战同时达成时调用方需重复调用
func (s *LedgerService) AwardChallenges(ctx context.Context, profileID uint64) (int, error) {
	var granted int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		granted, err = s.awardTx(tx, profileID)
		return err
	})
	return granted, err
}

// AwardChallengesTx 在调用方事务内发放（预测核验与发放同一事务）
func (s *LedgerService) AwardChallengesTx(tx *gorm.DB, profileID uint64) (int, error) {
	return s.awardTx(tx, profileID)
}

func (s *LedgerService) awardTx(tx *gorm.DB, profileID uint64) (int, error) {
	var profile model.FanProfile
	if err := lockForUpdate(tx).First(&profile, profileID).Error; err != nil {
		return 0, err
	}
	progress, err := s.progressByID(tx, &profile)
	if err != nil {
		return 0, err
	}
	for _, ch := range challengeTable {
		if model.SetContains(profile.AwardedChallenges, ch.ID) {
			continue
		}
		if progress[ch.ID] < ch.Target {
			continue
		}
		profile.Points += ch.Points
		profile.Badges = model.SetAdd(profile.Badges, ch.Badge)
		profile.AwardedChallenges = model.SetAdd(profile.AwardedChallenges, ch.ID)
		profile.UpdatedAt = time.Now()
		if err := tx.Save(&profile).Error; err != nil {
			return 0, err
		}
		s.logger.WithField("profile_id", profileID).Infof("挑战发放：%s +%d", ch.Name, ch.Points)
		return ch.Points, nil
	}
	return 0, nil
}

// AwardClubBadges 俱乐部维度发放：所有已达成且该俱乐部尚未持有徽章的挑战逐个发放，
// 徽章集合为空就是空集合，不存在 "None" 哨兵。返回本次累计积分
func (s *LedgerService) AwardClubBadges(ctx context.Context, profileID, clubID uint64) (int, error) {
	var granted int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile model.FanProfile
		if err := tx.First(&profile, profileID).Error; err != nil {
			return err
		}
		var stats model.ClubStats
		err := lockForUpdate(tx).
			Where("profile_id = ? AND club_id = ?", profileID, clubID).
			First(&stats).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stats = model.ClubStats{ProfileID: profileID, ClubID: clubID, Badges: model.EncodeSet(nil)}
			if err := tx.Create(&stats).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		progress, err := s.progressByID(tx, &profile)
		if err != nil {
			return err
		}
		changed := false
		for _, ch := range challengeTable {
			if progress[ch.ID] < ch.Target {
				continue
			}
			if model.SetContains(stats.Badges, ch.Badge) {
				continue
			}
			stats.Points += ch.Points
			stats.Badges = model.SetAdd(stats.Badges, ch.Badge)
			granted += ch.Points
			changed = true
		}
		if !changed {
			return nil
		}
		stats.UpdatedAt = time.Now()
		return tx.Save(&stats).Error
	})
	return granted, err
}
