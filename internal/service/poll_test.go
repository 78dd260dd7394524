package service

import (
	"context"
	"net/http"
	"testing"

	"FanPulse/internal/apperr"
	"FanPulse/internal/model"
	"FanPulse/internal/repository"
)

func newPollFixture(t *testing.T) (*PollService, *model.FanProfile, *model.Poll) {
	t.Helper()
	db := newTestDB(t)
	svc := NewPollService(repository.NewPollRepository(db), newTestLogger())
	profile := createProfile(t, db, "alice", nil)
	poll := &model.Poll{
		Question: "Man of the match?",
		Option1:  "Saka",
		Option2:  "Rice",
	}
	if err := db.Create(poll).Error; err != nil {
		t.Fatalf("创建投票失败: %v", err)
	}
	return svc, profile, poll
}

func TestVoteOncePerPoll(t *testing.T) {
	svc, profile, poll := newPollFixture(t)
	ctx := context.Background()

	got, err := svc.Vote(ctx, profile, poll.ID, "Saka")
	if err != nil {
		t.Fatalf("Vote: %v", err)
	}
	if got.VotesOption1 != 1 || got.VotesOption2 != 0 {
		t.Fatalf("票数异常: %d/%d", got.VotesOption1, got.VotesOption2)
	}

	_, err = svc.Vote(ctx, profile, poll.ID, "Rice")
	if err == nil || apperr.Status(err) != http.StatusConflict {
		t.Fatalf("重复投票应返回409，得到 %v", err)
	}
}

func TestVoteRejectedKeepsTallies(t *testing.T) {
	svc, profile, poll := newPollFixture(t)
	ctx := context.Background()
	if _, err := svc.Vote(ctx, profile, poll.ID, "Saka"); err != nil {
		t.Fatalf("Vote: %v", err)
	}
	if _, err := svc.Vote(ctx, profile, poll.ID, "Rice"); err == nil {
		t.Fatal("重复投票应被拒绝")
	}
	fresh, err := svc.pollRepo.GetByID(ctx, poll.ID)
	if err != nil {
		t.Fatalf("读投票失败: %v", err)
	}
	if fresh.VotesOption1 != 1 || fresh.VotesOption2 != 0 {
		t.Fatalf("拒绝后票数不应变化: %d/%d", fresh.VotesOption1, fresh.VotesOption2)
	}
}

func TestVoteInvalidOption(t *testing.T) {
	svc, profile, poll := newPollFixture(t)
	_, err := svc.Vote(context.Background(), profile, poll.ID, "Nobody")
	if err == nil || apperr.Status(err) != http.StatusBadRequest {
		t.Fatalf("无效选项应返回400，得到 %v", err)
	}
}

func TestListSeedsDefaultPolls(t *testing.T) {
	db := newTestDB(t)
	svc := NewPollService(repository.NewPollRepository(db), newTestLogger())
	profile := createProfile(t, db, "bob", nil)

	list, err := svc.List(context.Background(), profile)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list.Polls) != 2 {
		t.Fatalf("空库应种入2个默认投票，得到 %d", len(list.Polls))
	}
	if len(list.VotedPollIDs) != 0 {
		t.Fatalf("新档案不应有已投记录: %v", list.VotedPollIDs)
	}
}
