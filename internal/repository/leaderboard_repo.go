package repository

import (
	"context"

	"gorm.io/gorm"
)

// LeaderboardRow 榜单单行
type LeaderboardRow struct {
	Username string `json:"username"`
	Points   int64  `json:"points"`
}

// LeaderboardRepository 排行榜聚合查询
type LeaderboardRepository interface {
	// TopGlobal 全站榜：按档案汇总所有俱乐部维度积分
	TopGlobal(ctx context.Context, limit int) ([]LeaderboardRow, error)
	// TopByClub 俱乐部榜：只汇总该俱乐部维度积分
	TopByClub(ctx context.Context, clubID uint64, limit int) ([]LeaderboardRow, error)
	// TopByTopic 话题榜：话题下评论数 × 10
	TopByTopic(ctx context.Context, clubID, topicID uint64, limit int) ([]LeaderboardRow, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository 创建排行榜仓储
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) TopGlobal(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []LeaderboardRow
	err := r.db.WithContext(ctx).
		Table("fan_profiles").
		Select("user_accounts.username AS username, COALESCE(SUM(club_stats.points), 0) AS points").
		Joins("JOIN user_accounts ON user_accounts.id = fan_profiles.user_id").
		Joins("LEFT JOIN club_stats ON club_stats.profile_id = fan_profiles.id").
		Group("user_accounts.username").
		Order("points DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *leaderboardRepository) TopByClub(ctx context.Context, clubID uint64, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []LeaderboardRow
	err := r.db.WithContext(ctx).
		Table("fan_profiles").
		Select("user_accounts.username AS username, COALESCE(SUM(club_stats.points), 0) AS points").
		Joins("JOIN user_accounts ON user_accounts.id = fan_profiles.user_id").
		Joins("LEFT JOIN club_stats ON club_stats.profile_id = fan_profiles.id AND club_stats.club_id = ?", clubID).
		Group("user_accounts.username").
		Order("points DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *leaderboardRepository) TopByTopic(ctx context.Context, clubID, topicID uint64, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []LeaderboardRow
	err := r.db.WithContext(ctx).
		Table("fan_profiles").
		Select("user_accounts.username AS username, COUNT(comments.id) * 10 AS points").
		Joins("JOIN user_accounts ON user_accounts.id = fan_profiles.user_id").
		Joins("LEFT JOIN comments ON comments.profile_id = fan_profiles.id AND comments.club_id = ? AND comments.topic_id = ?", clubID, topicID).
		Group("user_accounts.username").
		Order("points DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
