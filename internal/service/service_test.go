package service

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"FanPulse/internal/config"
	"FanPulse/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试独立的内存库，命名DSN避免连接池各连各库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("打开测试库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Club{},
		&model.Topic{},
		&model.UserAccount{},
		&model.FanProfile{},
		&model.ClubStats{},
		&model.Comment{},
		&model.NewsArticle{},
		&model.NewsComment{},
		&model.NewsReaction{},
		&model.Fixture{},
		&model.Prediction{},
		&model.MatchComment{},
		&model.Poll{},
		&model.Vote{},
	); err != nil {
		t.Fatalf("迁移测试库失败: %v", err)
	}
	return db
}

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestConfig() *config.Config {
	return &config.Config{
		Engagement: config.EngagementConfig{
			CommentWindowDays:    7,
			PredictionWindowDays: 30,
			MaxSubmissions:       2,
		},
		Leaderboard: config.LeaderboardConfig{TopN: 10},
	}
}

func createClub(t *testing.T, db *gorm.DB, name string) *model.Club {
	t.Helper()
	club := &model.Club{Name: name, PrimaryColor: "#ff0000"}
	if err := db.Create(club).Error; err != nil {
		t.Fatalf("创建俱乐部失败: %v", err)
	}
	return club
}

// createProfile 建账号+档案，active 非空时同时设为支持俱乐部与主队
func createProfile(t *testing.T, db *gorm.DB, username string, active *model.Club) *model.FanProfile {
	t.Helper()
	account := &model.UserAccount{Username: username, PasswordHash: "x"}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("创建账号失败: %v", err)
	}
	profile := &model.FanProfile{
		ProfileUUID:       "uuid-" + username,
		UserID:            account.ID,
		Badges:            model.EncodeSet(nil),
		AwardedChallenges: model.EncodeSet(nil),
	}
	if active != nil {
		profile.ActiveClubID = &active.ID
		profile.SupportedClubs = []model.Club{*active}
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("创建档案失败: %v", err)
	}
	return profile
}

// stubScorer 按关键词给定compound分，绕开真实情绪模型
type stubScorer struct{}

func (stubScorer) Score(text string) float64 {
	switch {
	case strings.Contains(text, "great"):
		return 0.6
	case strings.Contains(text, "awful"):
		return -0.6
	default:
		return 0
	}
}
