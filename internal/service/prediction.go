package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"FanPulse/internal/apperr"
	"FanPulse/internal/config"
	"FanPulse/internal/model"
	"FanPulse/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PredictionService 比分预测：提交（带编辑窗口与直播锁定）与核验
type PredictionService struct {
	db          *gorm.DB
	fixtureRepo repository.FixtureRepository
	predRepo    repository.PredictionRepository
	ledger      *LedgerService
	cfg         *config.Config
	logger      *logrus.Logger
}

// NewPredictionService 创建预测服务
func NewPredictionService(
	db *gorm.DB,
	fixtureRepo repository.FixtureRepository,
	predRepo repository.PredictionRepository,
	ledger *LedgerService,
	cfg *config.Config,
	logger *logrus.Logger,
) *PredictionService {
	return &PredictionService{
		db:          db,
		fixtureRepo: fixtureRepo,
		predRepo:    predRepo,
		ledger:      ledger,
		cfg:         cfg,
		logger:      logger,
	}
}

// parseScore 解析 "主-客" 比分串，两侧必须是非负整数
func parseScore(text string) (home, away int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(text), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	home, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || home < 0 {
		return 0, 0, false
	}
	away, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || away < 0 {
		return 0, 0, false
	}
	return home, away, true
}

// SubmitPredictionResult 提交结果回执
type SubmitPredictionResult struct {
	Accepted        bool   `json:"accepted"`
	Message         string `json:"message"`
	Text            string `json:"prediction_text"`
	SubmissionCount int    `json:"submission_count"`
}

// SubmitPrediction 提交/修改比分预测。
// 直播中拒绝；第3次提交拒绝（已定稿）；空文本拒绝。
// 提交后立即按当前赛果重新核验（赛果未出则核验为no-op）
func (s *PredictionService) SubmitPrediction(ctx context.Context, profile *model.FanProfile, fixtureID uint64, text string) (*SubmitPredictionResult, error) {
	fixture, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, apperr.NotFound("fixture not found")
		}
		return nil, err
	}
	if fixture.IsLive {
		return nil, apperr.Conflict("predictions are locked during live matches")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("prediction cannot be empty")
	}

	clubID := uint64(0)
	if profile.ActiveClubID != nil {
		clubID = *profile.ActiveClubID
	}
	pred, err := s.predRepo.GetOrCreate(ctx, profile.ID, fixtureID, clubID)
	if err != nil {
		return nil, err
	}
	if pred.SubmissionCount >= s.cfg.Engagement.MaxSubmissions {
		return nil, apperr.Conflict("prediction finalized, no further changes allowed")
	}

	firstSubmission := pred.SubmissionCount == 0
	pred.Text = text
	pred.CreatedAt = time.Now()
	pred.SubmissionCount++
	pred.VerifyError = ""
	if err := s.predRepo.Save(ctx, pred); err != nil {
		return nil, err
	}
	if firstSubmission {
		if err := s.db.WithContext(ctx).Model(&model.FanProfile{}).
			Where("id = ?", profile.ID).
			UpdateColumn("predictions", gorm.Expr("predictions + 1")).Error; err != nil {
			return nil, err
		}
	}

	// 赛果若已存在（补交场景），立刻核验
	if err := s.Verify(ctx, pred.ID); err != nil {
		return nil, err
	}

	msg := "Prediction submitted!"
	if !firstSubmission {
		msg = "Prediction updated!"
	}
	return &SubmitPredictionResult{
		Accepted:        true,
		Message:         msg,
		Text:            text,
		SubmissionCount: pred.SubmissionCount,
	}, nil
}

// GetPrediction 查询某场比赛下的已有预测
func (s *PredictionService) GetPrediction(ctx context.Context, profile *model.FanProfile, fixtureID uint64) (*model.Prediction, error) {
	pred, err := s.predRepo.GetByProfileAndFixture(ctx, profile.ID, fixtureID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, apperr.NotFound("no prediction for this fixture")
		}
		return nil, err
	}
	return pred, nil
}

// Verify 核验单条预测（§见 Prediction 模型注释的写一次语义）：
// - 赛果未出：no-op
// - 比分串格式非法：记录在 VerifyError 上，不向调用方报错
// - 首次命中：置 is_correct、写一次 verified_at、档案 correct_predictions +1、触发台账发放
// - 重复核验：无进一步变更
// 整个过程与档案更新同一事务
func (s *PredictionService) Verify(ctx context.Context, predictionID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pred model.Prediction
		if err := lockForUpdate(tx).First(&pred, predictionID).Error; err != nil {
			return err
		}
		var fixture model.Fixture
		if err := tx.First(&fixture, pred.FixtureID).Error; err != nil {
			return err
		}
		if fixture.FinalResult == "" {
			return nil
		}

		resHome, resAway, ok := parseScore(fixture.FinalResult)
		if !ok {
			pred.VerifyError = fmt.Sprintf("malformed fixture result %q", fixture.FinalResult)
			return tx.Save(&pred).Error
		}
		predHome, predAway, ok := parseScore(pred.Text)
		if !ok {
			pred.VerifyError = fmt.Sprintf("malformed prediction text %q", pred.Text)
			return tx.Save(&pred).Error
		}
		if predHome != resHome || predAway != resAway {
			// 不命中不回退：is_correct 一旦为true永不撤销
			return nil
		}
		if pred.IsCorrect {
			// 已核验过，幂等返回
			return nil
		}

		pred.IsCorrect = true
		if pred.VerifiedAt == nil {
			now := time.Now()
			pred.VerifiedAt = &now
		}
		if err := tx.Save(&pred).Error; err != nil {
			return err
		}

		var profile model.FanProfile
		if err := lockForUpdate(tx).First(&profile, pred.ProfileID).Error; err != nil {
			return err
		}
		profile.CorrectPredictions++
		profile.UpdatedAt = time.Now()
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}
		if _, err := s.ledger.AwardChallengesTx(tx, profile.ID); err != nil {
			return err
		}
		s.logger.WithField("prediction_id", pred.ID).Info("预测核验命中")
		return nil
	})
}

// VerifyFixture 赛果落定后核验该场比赛的全部预测
func (s *PredictionService) VerifyFixture(ctx context.Context, fixtureID uint64) error {
	fixture, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return err
	}
	if fixture.FinalResult == "" {
		return nil
	}
	preds, err := s.predRepo.ListByFixture(ctx, fixtureID)
	if err != nil {
		return err
	}
	for _, p := range preds {
		if err := s.Verify(ctx, p.ID); err != nil {
			s.logger.WithError(err).WithField("prediction_id", p.ID).Warn("Verify")
		}
	}
	return nil
}

// errorsIsNotFound gorm 未找到判断
func errorsIsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
