package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"FanPulse/internal/apperr"
	"FanPulse/internal/model"
	"FanPulse/internal/repository"
	"FanPulse/internal/sentiment"

	"github.com/sirupsen/logrus"
)

// FixtureService 赛程：列表、赛果录入、直播模拟与比赛评论
type FixtureService struct {
	fixtureRepo repository.FixtureRepository
	predictions *PredictionService
	scorer      sentiment.Scorer
	logger      *logrus.Logger
	rng         *rand.Rand
}

// NewFixtureService 创建赛程服务
func NewFixtureService(
	fixtureRepo repository.FixtureRepository,
	predictions *PredictionService,
	scorer sentiment.Scorer,
	logger *logrus.Logger,
) *FixtureService {
	return &FixtureService{
		fixtureRepo: fixtureRepo,
		predictions: predictions,
		scorer:      scorer,
		logger:      logger,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// FixtureView 赛程视图：按观察者主队折算主/客场
type FixtureView struct {
	ID          uint64    `json:"id"`
	Opponent    string    `json:"opponent"`
	KickoffAt   time.Time `json:"kickoff_at"`
	Venue       string    `json:"venue"` // Home / Away
	IsLive      bool      `json:"is_live"`
	FinalResult string    `json:"final_result,omitempty"`
}

// ListForProfile 当前主队相关的赛程，主队即fixture俱乐部时为主场，否则客场
func (s *FixtureService) ListForProfile(ctx context.Context, profile *model.FanProfile) ([]FixtureView, error) {
	if profile.ActiveClubID == nil || profile.ActiveClub == nil {
		return []FixtureView{}, nil
	}
	fixtures, err := s.fixtureRepo.ListByClub(ctx, *profile.ActiveClubID, profile.ActiveClub.Name)
	if err != nil {
		return nil, err
	}
	views := make([]FixtureView, 0, len(fixtures))
	for _, f := range fixtures {
		venue := "Away"
		if f.ClubID == *profile.ActiveClubID {
			venue = "Home"
		}
		// 主队对阵自己的脏数据直接跳过
		if venue == "Home" && f.Opponent == profile.ActiveClub.Name {
			continue
		}
		views = append(views, FixtureView{
			ID:          f.ID,
			Opponent:    f.Opponent,
			KickoffAt:   f.KickoffAt,
			Venue:       venue,
			IsLive:      f.IsLive,
			FinalResult: f.FinalResult,
		})
	}
	return views, nil
}

// SetResult 录入最终比分并核验该场全部预测。直播中禁止录入
func (s *FixtureService) SetResult(ctx context.Context, fixtureID uint64, result string) error {
	result = strings.TrimSpace(result)
	if _, _, ok := parseScore(result); !ok {
		return apperr.Validation("result must be in home-away form, e.g. 2-1")
	}
	fixture, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		if errorsIsNotFound(err) {
			return apperr.NotFound("fixture not found")
		}
		return err
	}
	if fixture.IsLive {
		return apperr.Conflict("cannot set a result while the match is live")
	}
	fixture.FinalResult = result
	if err := s.fixtureRepo.Save(ctx, fixture); err != nil {
		return err
	}
	s.logger.WithField("fixture_id", fixtureID).Infof("赛果录入：%s", result)
	return s.predictions.VerifyFixture(ctx, fixtureID)
}

// LiveSnapshot 直播模拟状态
type LiveSnapshot struct {
	FixtureID uint64 `json:"fixture_id"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Minute    int    `json:"minute"`
	IsLive    bool   `json:"is_live"`
}

// StartLive 开始直播模拟：清零比分与分钟，锁定该场预测
func (s *FixtureService) StartLive(ctx context.Context, fixtureID uint64) (*LiveSnapshot, error) {
	fixture, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, apperr.NotFound("fixture not found")
		}
		return nil, err
	}
	if fixture.FinalResult != "" {
		return nil, apperr.Conflict("match already has a final result")
	}
	fixture.IsLive = true
	fixture.HomeScore = 0
	fixture.AwayScore = 0
	fixture.Minute = 0
	if err := s.fixtureRepo.Save(ctx, fixture); err != nil {
		return nil, err
	}
	return s.snapshot(fixture), nil
}

// Tick 推进模拟：分钟前进1~5，小概率进球，到90分钟封顶
func (s *FixtureService) Tick(ctx context.Context, fixtureID uint64) (*LiveSnapshot, error) {
	fixture, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, apperr.NotFound("fixture not found")
		}
		return nil, err
	}
	if !fixture.IsLive {
		return nil, apperr.Conflict("no live simulation in progress")
	}
	if fixture.Minute < 90 {
		fixture.Minute += 1 + s.rng.Intn(5)
		if fixture.Minute > 90 {
			fixture.Minute = 90
		}
		if s.rng.Intn(10) == 0 {
			fixture.HomeScore++
		}
		if s.rng.Intn(10) == 0 {
			fixture.AwayScore++
		}
	}
	if err := s.fixtureRepo.Save(ctx, fixture); err != nil {
		return nil, err
	}
	return s.snapshot(fixture), nil
}

// EndLive 结束模拟：解除直播锁，把模拟比分落为最终赛果并核验该场预测，
// 同时清空整场比赛评论
func (s *FixtureService) EndLive(ctx context.Context, fixtureID uint64) (*LiveSnapshot, error) {
	fixture, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, apperr.NotFound("fixture not found")
		}
		return nil, err
	}
	if !fixture.IsLive {
		return nil, apperr.Conflict("no live simulation in progress")
	}
	fixture.IsLive = false
	fixture.FinalResult = fmt.Sprintf("%d-%d", fixture.HomeScore, fixture.AwayScore)
	if err := s.fixtureRepo.Save(ctx, fixture); err != nil {
		return nil, err
	}
	if err := s.fixtureRepo.DeleteMatchComments(ctx, fixtureID); err != nil {
		return nil, err
	}
	s.logger.WithField("fixture_id", fixtureID).Infof("直播模拟结束：%s", fixture.FinalResult)
	if err := s.predictions.VerifyFixture(ctx, fixtureID); err != nil {
		return nil, err
	}
	return s.snapshot(fixture), nil
}

func (s *FixtureService) snapshot(f *model.Fixture) *LiveSnapshot {
	return &LiveSnapshot{
		FixtureID: f.ID,
		HomeScore: f.HomeScore,
		AwayScore: f.AwayScore,
		Minute:    f.Minute,
		IsLive:    f.IsLive,
	}
}

// LiveFixtures 当前处于直播模拟中的比赛
func (s *FixtureService) LiveFixtures(ctx context.Context) ([]*LiveSnapshot, error) {
	fixtures, err := s.fixtureRepo.ListLive(ctx)
	if err != nil {
		return nil, err
	}
	snaps := make([]*LiveSnapshot, 0, len(fixtures))
	for _, f := range fixtures {
		snaps = append(snaps, s.snapshot(f))
	}
	return snaps, nil
}

// AddMatchComment 直播比赛评论（仅直播中允许）
func (s *FixtureService) AddMatchComment(ctx context.Context, profile *model.FanProfile, fixtureID uint64, text string) (*model.MatchComment, error) {
	fixture, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, apperr.NotFound("fixture not found")
		}
		return nil, err
	}
	if !fixture.IsLive {
		return nil, apperr.Conflict("match is not live")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("comment cannot be empty")
	}
	comment := &model.MatchComment{
		ProfileID: profile.ID,
		FixtureID: fixtureID,
		Text:      text,
		Sentiment: sentiment.Classify(s.scorer.Score(text)),
		CreatedAt: time.Now(),
	}
	if err := s.fixtureRepo.CreateMatchComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListMatchComments 某场比赛的直播评论
func (s *FixtureService) ListMatchComments(ctx context.Context, fixtureID uint64) ([]*model.MatchComment, error) {
	return s.fixtureRepo.ListMatchComments(ctx, fixtureID)
}
