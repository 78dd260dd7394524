package api

import (
	"net/http"
	"strconv"

	"FanPulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PollHandler 投票列表与投票
type PollHandler struct {
	polls    *service.PollService
	profiles *service.ProfileService
	logger   *logrus.Logger
}

// NewPollHandler 创建 PollHandler
func NewPollHandler(polls *service.PollService, profiles *service.ProfileService, logger *logrus.Logger) *PollHandler {
	return &PollHandler{polls: polls, profiles: profiles, logger: logger}
}

// List 投票列表 GET /api/polls
func (h *PollHandler) List(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	list, err := h.polls.List(c.Request.Context(), profile)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// VoteRequest 投票请求体，option 必须与选项原文一致
type VoteRequest struct {
	Option string `json:"option"`
}

// Vote 投票 POST /api/polls/:id/vote
func (h *PollHandler) Vote(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid poll id"})
		return
	}
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	poll, err := h.polls.Vote(c.Request.Context(), profile, id, req.Option)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vote recorded", "poll": poll})
}
