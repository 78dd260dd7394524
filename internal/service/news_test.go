package service

import (
	"context"
	"net/http"
	"testing"

	"FanPulse/internal/apperr"
	"FanPulse/internal/model"
	"FanPulse/internal/repository"
)

func newNewsFixture(t *testing.T) (*NewsService, *model.FanProfile, *model.NewsArticle) {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()
	logger := newTestLogger()
	ledger := NewLedgerService(db, cfg, logger)
	svc := NewNewsService(repository.NewNewsRepository(db), stubScorer{}, ledger, logger)
	club := createClub(t, db, "Arsenal")
	profile := createProfile(t, db, "alice", club)
	article := &model.NewsArticle{ClubID: club.ID, Title: "Transfer latest", Summary: "s", Content: "c"}
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("创建新闻失败: %v", err)
	}
	return svc, profile, article
}

func TestAddNewsCommentNegativeWarning(t *testing.T) {
	svc, profile, article := newNewsFixture(t)
	res, err := svc.AddComment(context.Background(), profile, article.ID, "awful decision")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if res.Sentiment != model.SentimentNegative {
		t.Fatalf("应判为负面，得到 %s", res.Sentiment)
	}
	if res.Warning == "" {
		t.Fatal("负面评论应返回提示")
	}
	// 负面评论照常落库
	var count int64
	if err := svc.ledger.db.Model(&model.NewsComment{}).Where("article_id = ?", article.ID).Count(&count).Error; err != nil {
		t.Fatalf("数评论失败: %v", err)
	}
	if count != 1 {
		t.Fatalf("评论应落库，得到 %d", count)
	}
}

func TestAddNewsCommentValidation(t *testing.T) {
	svc, profile, article := newNewsFixture(t)
	ctx := context.Background()
	if _, err := svc.AddComment(ctx, profile, article.ID, " "); err == nil || apperr.Status(err) != http.StatusBadRequest {
		t.Fatalf("空评论应返回400，得到 %v", err)
	}
	if _, err := svc.AddComment(ctx, profile, 9999, "great read"); err == nil || apperr.Status(err) != http.StatusNotFound {
		t.Fatalf("新闻不存在应返回404，得到 %v", err)
	}
}

func TestReactSwitchSides(t *testing.T) {
	svc, profile, article := newNewsFixture(t)
	ctx := context.Background()
	comment := &model.NewsComment{ProfileID: profile.ID, ArticleID: article.ID, Text: "t", Sentiment: model.SentimentNeutral}
	if err := svc.ledger.db.Create(comment).Error; err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}

	res, err := svc.React(ctx, profile, comment.ID, "like")
	if err != nil {
		t.Fatalf("React: %v", err)
	}
	if res.Likes != 1 || res.Dislikes != 0 {
		t.Fatalf("点赞后计数异常: %d/%d", res.Likes, res.Dislikes)
	}

	// 换边：赞减一踩加一
	res, err = svc.React(ctx, profile, comment.ID, "dislike")
	if err != nil {
		t.Fatalf("React: %v", err)
	}
	if res.Likes != 0 || res.Dislikes != 1 {
		t.Fatalf("换边后计数异常: %d/%d", res.Likes, res.Dislikes)
	}

	// 对侧为0时不减到负数
	res, err = svc.React(ctx, profile, comment.ID, "dislike")
	if err != nil {
		t.Fatalf("React: %v", err)
	}
	if res.Likes != 0 || res.Dislikes != 2 {
		t.Fatalf("计数不应为负: %d/%d", res.Likes, res.Dislikes)
	}
}

func TestReactInvalidAction(t *testing.T) {
	svc, profile, article := newNewsFixture(t)
	comment := &model.NewsComment{ProfileID: profile.ID, ArticleID: article.ID, Text: "t", Sentiment: model.SentimentNeutral}
	if err := svc.ledger.db.Create(comment).Error; err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}
	_, err := svc.React(context.Background(), profile, comment.ID, "love")
	if err == nil || apperr.Status(err) != http.StatusBadRequest {
		t.Fatalf("无效操作应返回400，得到 %v", err)
	}
}
