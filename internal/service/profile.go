package service

import (
	"context"
	"strings"
	"time"

	"FanPulse/internal/apperr"
	"FanPulse/internal/model"
	"FanPulse/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 注册时最多可选的支持俱乐部数
const maxSupportedClubs = 2

// ProfileService 账号注册与球迷档案：主队切换、统计快照、重置
type ProfileService struct {
	db          *gorm.DB
	profileRepo repository.ProfileRepository
	commentRepo repository.CommentRepository
	logger      *logrus.Logger
}

// NewProfileService 创建档案服务
func NewProfileService(db *gorm.DB, profileRepo repository.ProfileRepository, commentRepo repository.CommentRepository, logger *logrus.Logger) *ProfileService {
	return &ProfileService{db: db, profileRepo: profileRepo, commentRepo: commentRepo, logger: logger}
}

// Register 注册账号并创建档案。最多选2个俱乐部，主队默认取第一个；
// 每个支持的俱乐部懒创建一条 ClubStats
func (s *ProfileService) Register(ctx context.Context, username, password string, clubIDs []uint64) (*model.FanProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.Validation("username and password are required")
	}
	if len(clubIDs) > maxSupportedClubs {
		return nil, apperr.Validation("you can select a maximum of %d clubs", maxSupportedClubs)
	}
	exists, err := s.profileRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("username already exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	clubs := make([]model.Club, 0, len(clubIDs))
	for _, id := range clubIDs {
		club, err := s.profileRepo.GetClub(ctx, id)
		if err != nil {
			if errorsIsNotFound(err) {
				return nil, apperr.NotFound("club %d not found", id)
			}
			return nil, err
		}
		clubs = append(clubs, *club)
	}

	var profile model.FanProfile
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account := model.UserAccount{
			Username:     username,
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
		profile = model.FanProfile{
			ProfileUUID:       uuid.NewString(),
			UserID:            account.ID,
			SupportedClubs:    clubs,
			Badges:            model.EncodeSet(nil),
			AwardedChallenges: model.EncodeSet(nil),
			CreatedAt:         time.Now(),
			UpdatedAt:         time.Now(),
		}
		if len(clubs) > 0 {
			profile.ActiveClubID = &clubs[0].ID
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		for _, club := range clubs {
			stats := model.ClubStats{ProfileID: profile.ID, ClubID: club.ID, Badges: model.EncodeSet(nil)}
			if err := tx.Create(&stats).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.WithField("username", username).Info("新档案注册完成")
	return s.profileRepo.GetByID(ctx, profile.ID)
}

// Login 校验凭据并返回对应档案（调用方拿 ProfileUUID 作为后续请求身份）
func (s *ProfileService) Login(ctx context.Context, username, password string) (*model.FanProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.Validation("username and password are required")
	}
	var account model.UserAccount
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		if errorsIsNotFound(err) {
			return nil, apperr.AuthRequired("invalid username or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.AuthRequired("invalid username or password")
	}
	return s.profileRepo.GetByUserID(ctx, account.ID)
}

// GetByUUID 按对外ID取档案，身份缺失/未知返回 AuthRequired。
// 没选过俱乐部的老档案补默认支持（库里前两个）并回填主队
func (s *ProfileService) GetByUUID(ctx context.Context, profileUUID string) (*model.FanProfile, error) {
	if profileUUID == "" {
		return nil, apperr.AuthRequired("profile identity is required")
	}
	profile, err := s.profileRepo.GetByUUID(ctx, profileUUID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, apperr.AuthRequired("unknown profile")
		}
		return nil, err
	}
	if len(profile.SupportedClubs) == 0 {
		clubs, err := s.profileRepo.ListClubs(ctx, maxSupportedClubs)
		if err != nil {
			return nil, err
		}
		if len(clubs) > 0 {
			assigned := make([]model.Club, 0, len(clubs))
			for _, c := range clubs {
				assigned = append(assigned, *c)
			}
			if err := s.db.WithContext(ctx).Model(profile).
				Association("SupportedClubs").Replace(assigned); err != nil {
				return nil, err
			}
			profile.SupportedClubs = assigned
			profile.ActiveClubID = &assigned[0].ID
			if err := s.profileRepo.Save(ctx, profile); err != nil {
				return nil, err
			}
			return s.profileRepo.GetByID(ctx, profile.ID)
		}
	} else if profile.ActiveClubID == nil {
		profile.ActiveClubID = &profile.SupportedClubs[0].ID
		if err := s.profileRepo.Save(ctx, profile); err != nil {
			return nil, err
		}
		return s.profileRepo.GetByID(ctx, profile.ID)
	}
	return profile, nil
}

// SwitchClub 切换主队，只能切到已支持的俱乐部；返回俱乐部品牌色
func (s *ProfileService) SwitchClub(ctx context.Context, profile *model.FanProfile, clubID uint64) (string, error) {
	var target *model.Club
	for i := range profile.SupportedClubs {
		if profile.SupportedClubs[i].ID == clubID {
			target = &profile.SupportedClubs[i]
			break
		}
	}
	if target == nil {
		return "", apperr.Validation("invalid club selection")
	}
	profile.ActiveClubID = &target.ID
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return "", err
	}
	return target.PrimaryColor, nil
}

// ProfileStats 主队维度统计快照
type ProfileStats struct {
	CommentCount int64    `json:"comment_count"`
	Points       int      `json:"points"`
	Badges       []string `json:"badges"`
	BadgesCount  int      `json:"badges_count"`
	GlobalPoints int      `json:"global_points"`
}

// Stats 当前主队维度的评论数/积分/徽章快照
func (s *ProfileService) Stats(ctx context.Context, profile *model.FanProfile) (*ProfileStats, error) {
	stats := &ProfileStats{GlobalPoints: profile.Points, Badges: []string{}}
	if profile.ActiveClubID == nil {
		return stats, nil
	}
	clubID := *profile.ActiveClubID
	count, err := s.commentRepo.CountByProfileAndClub(ctx, profile.ID, clubID)
	if err != nil {
		return nil, err
	}
	stats.CommentCount = count
	clubStats, err := s.profileRepo.GetOrCreateClubStats(ctx, profile.ID, clubID)
	if err != nil {
		return nil, err
	}
	stats.Points = clubStats.Points
	stats.Badges = model.DecodeSet(clubStats.Badges)
	if stats.Badges == nil {
		stats.Badges = []string{}
	}
	stats.BadgesCount = len(stats.Badges)
	return stats, nil
}

// Reset 重置：删除全部话题评论，俱乐部维度积分清零、徽章清空
func (s *ProfileService) Reset(ctx context.Context, profile *model.FanProfile) error {
	if err := s.commentRepo.DeleteByProfile(ctx, profile.ID); err != nil {
		return err
	}
	statsList, err := s.profileRepo.ListClubStats(ctx, profile.ID)
	if err != nil {
		return err
	}
	for _, stats := range statsList {
		stats.Points = 0
		stats.Badges = model.EncodeSet(nil)
		if err := s.profileRepo.SaveClubStats(ctx, stats); err != nil {
			return err
		}
	}
	s.logger.WithField("profile_id", profile.ID).Info("档案统计已重置")
	return nil
}
