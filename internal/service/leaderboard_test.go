package service

import (
	"context"
	"testing"
	"time"

	"FanPulse/internal/model"
	"FanPulse/internal/repository"
)

func TestGlobalLeaderboardSumsClubPoints(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(repository.NewLeaderboardRepository(db), nil, 30*time.Second, 10, newTestLogger())

	a := createClub(t, db, "Arsenal")
	c := createClub(t, db, "Chelsea")
	alice := createProfile(t, db, "alice", a)
	bob := createProfile(t, db, "bob", c)

	for _, row := range []model.ClubStats{
		{ProfileID: alice.ID, ClubID: a.ID, Points: 30, Badges: model.EncodeSet(nil)},
		{ProfileID: alice.ID, ClubID: c.ID, Points: 20, Badges: model.EncodeSet(nil)},
		{ProfileID: bob.ID, ClubID: c.ID, Points: 40, Badges: model.EncodeSet(nil)},
	} {
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("写ClubStats失败: %v", err)
		}
	}

	rows, err := svc.Global(context.Background())
	if err != nil {
		t.Fatalf("Global: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("榜单应有2行，得到 %d", len(rows))
	}
	if rows[0].Username != "alice" || rows[0].Points != 50 {
		t.Fatalf("首位应为alice 50分: %+v", rows[0])
	}
	if rows[1].Username != "bob" || rows[1].Points != 40 {
		t.Fatalf("第二位应为bob 40分: %+v", rows[1])
	}
}

func TestClubLeaderboardScopedToClub(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(repository.NewLeaderboardRepository(db), nil, 30*time.Second, 10, newTestLogger())

	a := createClub(t, db, "Arsenal")
	c := createClub(t, db, "Chelsea")
	alice := createProfile(t, db, "alice", a)
	for _, row := range []model.ClubStats{
		{ProfileID: alice.ID, ClubID: a.ID, Points: 30, Badges: model.EncodeSet(nil)},
		{ProfileID: alice.ID, ClubID: c.ID, Points: 99, Badges: model.EncodeSet(nil)},
	} {
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("写ClubStats失败: %v", err)
		}
	}

	rows, err := svc.Club(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Club: %v", err)
	}
	if len(rows) == 0 || rows[0].Points != 30 {
		t.Fatalf("俱乐部榜应只算该俱乐部积分: %+v", rows)
	}
}

func TestTopicLeaderboardCountsComments(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(repository.NewLeaderboardRepository(db), nil, 30*time.Second, 10, newTestLogger())

	a := createClub(t, db, "Arsenal")
	alice := createProfile(t, db, "alice", a)
	topic := &model.Topic{ClubID: a.ID, Name: "Match Reviews"}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("创建话题失败: %v", err)
	}
	for i := 0; i < 3; i++ {
		c := &model.Comment{ProfileID: alice.ID, ClubID: a.ID, TopicID: &topic.ID, Text: "t", Sentiment: model.SentimentNeutral}
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("创建评论失败: %v", err)
		}
	}

	rows, err := svc.Topic(context.Background(), a.ID, topic.ID)
	if err != nil {
		t.Fatalf("Topic: %v", err)
	}
	if len(rows) == 0 || rows[0].Points != 30 {
		t.Fatalf("话题榜应为评论数×10: %+v", rows)
	}
}
