package api

import (
	"net/http"
	"strconv"

	"FanPulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewsHandler 新闻、新闻评论与点赞/点踩
type NewsHandler struct {
	news     *service.NewsService
	profiles *service.ProfileService
	logger   *logrus.Logger
}

// NewNewsHandler 创建 NewsHandler
func NewNewsHandler(news *service.NewsService, profiles *service.ProfileService, logger *logrus.Logger) *NewsHandler {
	return &NewsHandler{news: news, profiles: profiles, logger: logger}
}

// List 主队新闻 GET /api/news
func (h *NewsHandler) List(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	articles, err := h.news.Articles(c.Request.Context(), profile)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// Detail 新闻详情 GET /api/news/:id
func (h *NewsHandler) Detail(c *gin.Context) {
	if _, err := currentProfile(c, h.profiles); err != nil {
		writeError(c, h.logger, err)
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}
	detail, err := h.news.Article(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// NewsCommentRequest 新闻评论请求体
type NewsCommentRequest struct {
	Text string `json:"text"`
}

// AddComment 发表新闻评论 POST /api/news/:id/comments
func (h *NewsHandler) AddComment(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}
	var req NewsCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	result, err := h.news.AddComment(c.Request.Context(), profile, id, req.Text)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ReactRequest 点赞/点踩请求体，action 取 like 或 dislike
type ReactRequest struct {
	Action string `json:"action"`
}

// React 点赞/点踩 POST /api/news/comments/:id/react
func (h *NewsHandler) React(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}
	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	result, err := h.news.React(c.Request.Context(), profile, id, req.Action)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
