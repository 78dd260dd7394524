package api

import (
	"net/http"
	"strconv"

	"FanPulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FixtureHandler 赛程、赛果与直播模拟
type FixtureHandler struct {
	fixtures *service.FixtureService
	profiles *service.ProfileService
	logger   *logrus.Logger
}

// NewFixtureHandler 创建 FixtureHandler
func NewFixtureHandler(fixtures *service.FixtureService, profiles *service.ProfileService, logger *logrus.Logger) *FixtureHandler {
	return &FixtureHandler{fixtures: fixtures, profiles: profiles, logger: logger}
}

func fixtureID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fixture id"})
		return 0, false
	}
	return id, true
}

// List 主队赛程 GET /api/fixtures
func (h *FixtureHandler) List(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	views, err := h.fixtures.ListForProfile(c.Request.Context(), profile)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fixtures": views})
}

// ListLive 直播中的比赛 GET /api/fixtures/live
func (h *FixtureHandler) ListLive(c *gin.Context) {
	if _, err := currentProfile(c, h.profiles); err != nil {
		writeError(c, h.logger, err)
		return
	}
	snaps, err := h.fixtures.LiveFixtures(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"live": snaps})
}

// SetResultRequest 赛果录入请求体
type SetResultRequest struct {
	Result string `json:"result"`
}

// SetResult 录入赛果并核验预测 POST /api/fixtures/:id/result
func (h *FixtureHandler) SetResult(c *gin.Context) {
	if _, err := currentProfile(c, h.profiles); err != nil {
		writeError(c, h.logger, err)
		return
	}
	id, ok := fixtureID(c)
	if !ok {
		return
	}
	var req SetResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := h.fixtures.SetResult(c.Request.Context(), id, req.Result); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Result recorded and predictions verified."})
}

// StartLive 开始直播模拟 POST /api/fixtures/:id/live/start
func (h *FixtureHandler) StartLive(c *gin.Context) {
	if _, err := currentProfile(c, h.profiles); err != nil {
		writeError(c, h.logger, err)
		return
	}
	id, ok := fixtureID(c)
	if !ok {
		return
	}
	snap, err := h.fixtures.StartLive(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Tick 推进直播模拟 POST /api/fixtures/:id/live/tick
func (h *FixtureHandler) Tick(c *gin.Context) {
	if _, err := currentProfile(c, h.profiles); err != nil {
		writeError(c, h.logger, err)
		return
	}
	id, ok := fixtureID(c)
	if !ok {
		return
	}
	snap, err := h.fixtures.Tick(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// EndLive 结束直播模拟 POST /api/fixtures/:id/live/end
func (h *FixtureHandler) EndLive(c *gin.Context) {
	if _, err := currentProfile(c, h.profiles); err != nil {
		writeError(c, h.logger, err)
		return
	}
	id, ok := fixtureID(c)
	if !ok {
		return
	}
	snap, err := h.fixtures.EndLive(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// MatchCommentRequest 比赛评论请求体
type MatchCommentRequest struct {
	Text string `json:"text"`
}

// AddMatchComment 直播评论 POST /api/fixtures/:id/comments
func (h *FixtureHandler) AddMatchComment(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	id, ok := fixtureID(c)
	if !ok {
		return
	}
	var req MatchCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	comment, err := h.fixtures.AddMatchComment(c.Request.Context(), profile, id, req.Text)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// ListMatchComments 直播评论列表 GET /api/fixtures/:id/comments
func (h *FixtureHandler) ListMatchComments(c *gin.Context) {
	if _, err := currentProfile(c, h.profiles); err != nil {
		writeError(c, h.logger, err)
		return
	}
	id, ok := fixtureID(c)
	if !ok {
		return
	}
	comments, err := h.fixtures.ListMatchComments(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
