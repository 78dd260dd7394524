package api

import (
	"net/http"

	"FanPulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProfileHandler 注册、主队切换、统计、挑战页
type ProfileHandler struct {
	profiles *service.ProfileService
	ledger   *service.LedgerService
	logger   *logrus.Logger
}

// NewProfileHandler 创建 ProfileHandler
func NewProfileHandler(profiles *service.ProfileService, ledger *service.LedgerService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, ledger: ledger, logger: logger}
}

// RegisterRequest 注册请求体
type RegisterRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	ClubIDs  []uint64 `json:"club_ids"`
}

// Register 注册 POST /api/register
func (h *ProfileHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	profile, err := h.profiles.Register(c.Request.Context(), req.Username, req.Password, req.ClubIDs)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile_uuid": profile.ProfileUUID,
		"message":      "Registration successful",
	})
}

// LoginRequest 登录请求体
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login 登录换取档案身份 POST /api/login
func (h *ProfileHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	profile, err := h.profiles.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile_uuid": profile.ProfileUUID})
}

// SwitchClubRequest 主队切换请求体
type SwitchClubRequest struct {
	ClubID uint64 `json:"club_id"`
}

// SwitchClub 切换主队 POST /api/clubs/switch
func (h *ProfileHandler) SwitchClub(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	var req SwitchClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	color, err := h.profiles.SwitchClub(c.Request.Context(), profile, req.ClubID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "club_color": color})
}

// Stats 主队维度统计 GET /api/profile/stats
func (h *ProfileHandler) Stats(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	stats, err := h.profiles.Stats(c.Request.Context(), profile)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Reset 重置统计 POST /api/profile/reset
func (h *ProfileHandler) Reset(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if err := h.profiles.Reset(c.Request.Context(), profile); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stats have been reset successfully."})
}

// Challenges 挑战进度 GET /api/challenges
func (h *ProfileHandler) Challenges(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	progress, err := h.ledger.Progress(c.Request.Context(), profile.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenges": progress})
}

// AwardChallenges 发放挑战奖励 POST /api/challenges/award
// 先发俱乐部维度徽章，再触发一次全局发放，返回两者积分
func (h *ProfileHandler) AwardChallenges(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	clubPoints := 0
	if profile.ActiveClubID != nil {
		clubPoints, err = h.ledger.AwardClubBadges(c.Request.Context(), profile.ID, *profile.ActiveClubID)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
	}
	globalPoints, err := h.ledger.AwardChallenges(c.Request.Context(), profile.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"club_points_awarded":   clubPoints,
		"global_points_awarded": globalPoints,
	})
}
