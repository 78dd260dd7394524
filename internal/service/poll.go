package service

import (
	"context"
	"time"

	"FanPulse/internal/apperr"
	"FanPulse/internal/model"
	"FanPulse/internal/repository"

	"github.com/sirupsen/logrus"
)

// PollService 投票：列表（含默认投票种子）与一人一票的投票操作
type PollService struct {
	pollRepo repository.PollRepository
	logger   *logrus.Logger
}

// NewPollService 创建投票服务
func NewPollService(pollRepo repository.PollRepository, logger *logrus.Logger) *PollService {
	return &PollService{pollRepo: pollRepo, logger: logger}
}

// PollList 投票列表与当前档案已投过的投票ID
type PollList struct {
	Polls        []*model.Poll `json:"polls"`
	VotedPollIDs []uint64      `json:"voted_poll_ids"`
}

// List 投票列表；库里没有任何投票时先种入默认投票
func (s *PollService) List(ctx context.Context, profile *model.FanProfile) (*PollList, error) {
	count, err := s.pollRepo.CountPolls(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if err := s.seedDefaultPolls(ctx); err != nil {
			return nil, err
		}
	}
	polls, err := s.pollRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	voted, err := s.pollRepo.ListVotedPollIDs(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return &PollList{Polls: polls, VotedPollIDs: voted}, nil
}

// seedDefaultPolls 默认投票种子
func (s *PollService) seedDefaultPolls(ctx context.Context) error {
	end := time.Now().AddDate(0, 0, 7)
	seeds := []*model.Poll{
		{
			Question: "Best Performers in the Last Game",
			Option1:  "Erling Haaland (Manchester City)",
			Option2:  "Mohamed Salah (Liverpool)",
			Option3:  "Bukayo Saka (Arsenal)",
			EndDate:  &end,
		},
		{
			Question: "Favorite Moment from the Last Game",
			Option1:  "The Winning Goal",
			Option2:  "A Spectacular Save",
			Option3:  "A Key Assist",
			EndDate:  &end,
		},
	}
	for _, p := range seeds {
		if err := s.pollRepo.Create(ctx, p); err != nil {
			return err
		}
	}
	s.logger.Info("默认投票已创建")
	return nil
}

// Vote 投票。同一档案对同一投票只允许一次，重复投票拒绝且票数不变
func (s *PollService) Vote(ctx context.Context, profile *model.FanProfile, pollID uint64, option string) (*model.Poll, error) {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, apperr.NotFound("poll not found")
		}
		return nil, err
	}
	voted, err := s.pollRepo.HasVoted(ctx, profile.ID, pollID)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, apperr.Conflict("you have already voted in this poll")
	}

	switch option {
	case poll.Option1:
		poll.VotesOption1++
	case poll.Option2:
		poll.VotesOption2++
	case poll.Option3:
		if poll.Option3 == "" {
			return nil, apperr.Validation("invalid option")
		}
		poll.VotesOption3++
	default:
		return nil, apperr.Validation("invalid option")
	}

	vote := &model.Vote{
		ProfileID: profile.ID,
		PollID:    pollID,
		Option:    option,
		VotedAt:   time.Now(),
	}
	// 先写唯一索引保护的投票记录，撞索引说明并发下已投过，票数保持不动
	if err := s.pollRepo.CreateVote(ctx, vote); err != nil {
		return nil, apperr.Conflict("you have already voted in this poll")
	}
	if err := s.pollRepo.Save(ctx, poll); err != nil {
		return nil, err
	}
	return poll, nil
}
