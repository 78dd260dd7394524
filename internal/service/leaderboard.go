package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"FanPulse/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// LeaderboardService 排行榜：全站/俱乐部/话题三个口径。
// cache 可为 nil（未配置Redis），此时每次直接查库；缓存只做加速，读写失败降级为查库
type LeaderboardService struct {
	repo   repository.LeaderboardRepository
	cache  *redis.Client
	ttl    time.Duration
	topN   int
	logger *logrus.Logger
}

// NewLeaderboardService 创建排行榜服务
func NewLeaderboardService(repo repository.LeaderboardRepository, cache *redis.Client, ttl time.Duration, topN int, logger *logrus.Logger) *LeaderboardService {
	return &LeaderboardService{repo: repo, cache: cache, ttl: ttl, topN: topN, logger: logger}
}

// Global 全站榜
func (s *LeaderboardService) Global(ctx context.Context) ([]repository.LeaderboardRow, error) {
	return s.cached(ctx, "leaderboard:global", func() ([]repository.LeaderboardRow, error) {
		return s.repo.TopGlobal(ctx, s.topN)
	})
}

// Club 俱乐部榜
func (s *LeaderboardService) Club(ctx context.Context, clubID uint64) ([]repository.LeaderboardRow, error) {
	key := fmt.Sprintf("leaderboard:club:%d", clubID)
	return s.cached(ctx, key, func() ([]repository.LeaderboardRow, error) {
		return s.repo.TopByClub(ctx, clubID, s.topN)
	})
}

// Topic 话题榜（话题下评论数 × 10）
func (s *LeaderboardService) Topic(ctx context.Context, clubID, topicID uint64) ([]repository.LeaderboardRow, error) {
	key := fmt.Sprintf("leaderboard:topic:%d:%d", clubID, topicID)
	return s.cached(ctx, key, func() ([]repository.LeaderboardRow, error) {
		return s.repo.TopByTopic(ctx, clubID, topicID, s.topN)
	})
}

// cached 先读缓存，未命中查库后回写
func (s *LeaderboardService) cached(ctx context.Context, key string, load func() ([]repository.LeaderboardRow, error)) ([]repository.LeaderboardRow, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Bytes()
		if err == nil {
			var rows []repository.LeaderboardRow
			if jerr := json.Unmarshal(raw, &rows); jerr == nil {
				return rows, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.WithError(err).WithField("key", key).Warn("leaderboard cache get")
		}
	}
	rows, err := load()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if raw, jerr := json.Marshal(rows); jerr == nil {
			if serr := s.cache.Set(ctx, key, raw, s.ttl).Err(); serr != nil {
				s.logger.WithError(serr).WithField("key", key).Warn("leaderboard cache set")
			}
		}
	}
	return rows, nil
}
