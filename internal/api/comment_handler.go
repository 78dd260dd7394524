package api

import (
	"net/http"
	"strconv"

	"FanPulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CommentHandler 话题评论与话题列表
type CommentHandler struct {
	comments *service.CommentService
	profiles *service.ProfileService
	logger   *logrus.Logger
}

// NewCommentHandler 创建 CommentHandler
func NewCommentHandler(comments *service.CommentService, profiles *service.ProfileService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, profiles: profiles, logger: logger}
}

// CreateCommentRequest 评论请求体，topic_id 可空
type CreateCommentRequest struct {
	Text    string  `json:"text"`
	TopicID *uint64 `json:"topic_id"`
}

// Create 发表评论 POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	result, err := h.comments.RecordComment(c.Request.Context(), profile, req.TopicID, req.Text)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// List 主队最近评论 GET /api/comments?topic_id=&limit=
func (h *CommentHandler) List(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	var topicID *uint64
	if raw := c.Query("topic_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid topic_id"})
			return
		}
		topicID = &id
	}
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	comments, err := h.comments.RecentComments(c.Request.Context(), profile, topicID, limit)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Topics 主队话题列表 GET /api/topics
func (h *CommentHandler) Topics(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if profile.ActiveClubID == nil {
		c.JSON(http.StatusOK, gin.H{"topics": []struct{}{}})
		return
	}
	topics, err := h.comments.TopicsForClub(c.Request.Context(), *profile.ActiveClubID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}
