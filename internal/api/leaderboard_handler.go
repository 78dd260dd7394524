package api

import (
	"net/http"
	"strconv"

	"FanPulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LeaderboardHandler 排行榜三个口径
type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
	profiles    *service.ProfileService
	logger      *logrus.Logger
}

// NewLeaderboardHandler 创建 LeaderboardHandler
func NewLeaderboardHandler(leaderboard *service.LeaderboardService, profiles *service.ProfileService, logger *logrus.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard, profiles: profiles, logger: logger}
}

// Global 全站榜 GET /api/leaderboard
func (h *LeaderboardHandler) Global(c *gin.Context) {
	rows, err := h.leaderboard.Global(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}

// Club 当前主队榜 GET /api/leaderboard/club
func (h *LeaderboardHandler) Club(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if profile.ActiveClubID == nil {
		c.JSON(http.StatusOK, gin.H{"leaderboard": []struct{}{}})
		return
	}
	rows, err := h.leaderboard.Club(c.Request.Context(), *profile.ActiveClubID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}

// Topic 话题榜 GET /api/leaderboard/topics/:id
func (h *LeaderboardHandler) Topic(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	topicID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid topic id"})
		return
	}
	if profile.ActiveClubID == nil {
		c.JSON(http.StatusOK, gin.H{"leaderboard": []struct{}{}})
		return
	}
	rows, err := h.leaderboard.Topic(c.Request.Context(), *profile.ActiveClubID, topicID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}
