package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"FanPulse/internal/apperr"
	"FanPulse/internal/model"
	"FanPulse/internal/repository"
)

func newPredictionFixture(t *testing.T) (*PredictionService, *model.FanProfile, *model.Fixture) {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()
	logger := newTestLogger()
	ledger := NewLedgerService(db, cfg, logger)
	svc := NewPredictionService(db, repository.NewFixtureRepository(db),
		repository.NewPredictionRepository(db), ledger, cfg, logger)

	club := createClub(t, db, "Arsenal")
	profile := createProfile(t, db, "alice", club)
	fixture := &model.Fixture{ClubID: club.ID, Opponent: "Chelsea", KickoffAt: time.Now().Add(24 * time.Hour)}
	if err := db.Create(fixture).Error; err != nil {
		t.Fatalf("创建赛程失败: %v", err)
	}
	return svc, profile, fixture
}

func TestSubmitPredictionCap(t *testing.T) {
	svc, profile, fixture := newPredictionFixture(t)
	ctx := context.Background()

	res, err := svc.SubmitPrediction(ctx, profile, fixture.ID, "2-1")
	if err != nil {
		t.Fatalf("首次提交失败: %v", err)
	}
	if res.SubmissionCount != 1 {
		t.Fatalf("提交次数应为1，得到 %d", res.SubmissionCount)
	}

	res, err = svc.SubmitPrediction(ctx, profile, fixture.ID, "3-0")
	if err != nil {
		t.Fatalf("第二次提交失败: %v", err)
	}
	if res.SubmissionCount != 2 {
		t.Fatalf("提交次数应为2，得到 %d", res.SubmissionCount)
	}

	_, err = svc.SubmitPrediction(ctx, profile, fixture.ID, "1-1")
	if err == nil {
		t.Fatal("第三次提交应被拒绝")
	}
	if apperr.Status(err) != http.StatusConflict {
		t.Fatalf("应返回409，得到 %d", apperr.Status(err))
	}

	// 拒绝后内容保持第二次提交
	pred, err := svc.GetPrediction(ctx, profile, fixture.ID)
	if err != nil {
		t.Fatalf("GetPrediction: %v", err)
	}
	if pred.Text != "3-0" || pred.SubmissionCount != 2 {
		t.Fatalf("预测内容被意外改写: %+v", pred)
	}
}

func TestSubmitPredictionLockedWhileLive(t *testing.T) {
	svc, profile, fixture := newPredictionFixture(t)
	fixture.IsLive = true
	if err := svc.db.Save(fixture).Error; err != nil {
		t.Fatalf("更新赛程失败: %v", err)
	}
	_, err := svc.SubmitPrediction(context.Background(), profile, fixture.ID, "2-1")
	if err == nil || apperr.Status(err) != http.StatusConflict {
		t.Fatalf("直播中提交应返回409，得到 %v", err)
	}
}

func TestSubmitPredictionEmpty(t *testing.T) {
	svc, profile, fixture := newPredictionFixture(t)
	_, err := svc.SubmitPrediction(context.Background(), profile, fixture.ID, "   ")
	if err == nil || apperr.Status(err) != http.StatusBadRequest {
		t.Fatalf("空预测应返回400，得到 %v", err)
	}
}

func TestVerifyCorrectPredictionOnce(t *testing.T) {
	svc, profile, fixture := newPredictionFixture(t)
	ctx := context.Background()

	if _, err := svc.SubmitPrediction(ctx, profile, fixture.ID, "2-1"); err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	fixture.FinalResult = "2-1"
	if err := svc.db.Save(fixture).Error; err != nil {
		t.Fatalf("写赛果失败: %v", err)
	}

	pred, err := svc.GetPrediction(ctx, profile, fixture.ID)
	if err != nil {
		t.Fatalf("GetPrediction: %v", err)
	}
	if err := svc.Verify(ctx, pred.ID); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	pred, _ = svc.GetPrediction(ctx, profile, fixture.ID)
	if !pred.IsCorrect || pred.VerifiedAt == nil {
		t.Fatalf("核验后状态异常: %+v", pred)
	}
	firstVerifiedAt := *pred.VerifiedAt

	var got model.FanProfile
	if err := svc.db.First(&got, profile.ID).Error; err != nil {
		t.Fatalf("读档案失败: %v", err)
	}
	if got.CorrectPredictions != 1 {
		t.Fatalf("正确预测数应为1，得到 %d", got.CorrectPredictions)
	}

	// 重复核验：无进一步变更
	if err := svc.Verify(ctx, pred.ID); err != nil {
		t.Fatalf("重复Verify: %v", err)
	}
	pred, _ = svc.GetPrediction(ctx, profile, fixture.ID)
	if !pred.VerifiedAt.Equal(firstVerifiedAt) {
		t.Fatal("verified_at 应只写一次")
	}
	if err := svc.db.First(&got, profile.ID).Error; err != nil {
		t.Fatalf("读档案失败: %v", err)
	}
	if got.CorrectPredictions != 1 {
		t.Fatalf("重复核验不应重复计数，得到 %d", got.CorrectPredictions)
	}
}

func TestVerifyNoResultIsNoop(t *testing.T) {
	svc, profile, fixture := newPredictionFixture(t)
	ctx := context.Background()
	if _, err := svc.SubmitPrediction(ctx, profile, fixture.ID, "2-1"); err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	pred, _ := svc.GetPrediction(ctx, profile, fixture.ID)
	if err := svc.Verify(ctx, pred.ID); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	pred, _ = svc.GetPrediction(ctx, profile, fixture.ID)
	if pred.IsCorrect || pred.VerifiedAt != nil {
		t.Fatalf("赛果未出不应有核验结果: %+v", pred)
	}
}

func TestVerifyMalformedTextRecordedNotRaised(t *testing.T) {
	svc, profile, fixture := newPredictionFixture(t)
	ctx := context.Background()
	if _, err := svc.SubmitPrediction(ctx, profile, fixture.ID, "we win big"); err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	fixture.FinalResult = "2-1"
	if err := svc.db.Save(fixture).Error; err != nil {
		t.Fatalf("写赛果失败: %v", err)
	}
	pred, _ := svc.GetPrediction(ctx, profile, fixture.ID)
	if err := svc.Verify(ctx, pred.ID); err != nil {
		t.Fatalf("格式错误不应抛给调用方: %v", err)
	}
	pred, _ = svc.GetPrediction(ctx, profile, fixture.ID)
	if pred.IsCorrect {
		t.Fatal("格式错误的预测不应判对")
	}
	if pred.VerifyError == "" {
		t.Fatal("应记录核验格式错误")
	}
}

func TestVerifyMismatchNeverReverts(t *testing.T) {
	svc, profile, fixture := newPredictionFixture(t)
	ctx := context.Background()
	if _, err := svc.SubmitPrediction(ctx, profile, fixture.ID, "2-1"); err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	fixture.FinalResult = "2-1"
	if err := svc.db.Save(fixture).Error; err != nil {
		t.Fatalf("写赛果失败: %v", err)
	}
	pred, _ := svc.GetPrediction(ctx, profile, fixture.ID)
	if err := svc.Verify(ctx, pred.ID); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	// 赛果被改后重核，is_correct 不回退
	fixture.FinalResult = "0-0"
	if err := svc.db.Save(fixture).Error; err != nil {
		t.Fatalf("改赛果失败: %v", err)
	}
	if err := svc.Verify(ctx, pred.ID); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	pred, _ = svc.GetPrediction(ctx, profile, fixture.ID)
	if !pred.IsCorrect {
		t.Fatal("is_correct 一旦置true不应回退")
	}
}
