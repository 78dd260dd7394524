package api

import (
	"net/http"
	"strconv"

	"FanPulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PredictionHandler 比分预测提交与查询
type PredictionHandler struct {
	predictions *service.PredictionService
	profiles    *service.ProfileService
	logger      *logrus.Logger
}

// NewPredictionHandler 创建 PredictionHandler
func NewPredictionHandler(predictions *service.PredictionService, profiles *service.ProfileService, logger *logrus.Logger) *PredictionHandler {
	return &PredictionHandler{predictions: predictions, profiles: profiles, logger: logger}
}

// SubmitPredictionRequest 预测提交请求体
type SubmitPredictionRequest struct {
	Text string `json:"prediction_text"`
}

// Submit 提交预测 POST /api/fixtures/:id/prediction
func (h *PredictionHandler) Submit(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	fixtureID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fixture id"})
		return
	}
	var req SubmitPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	result, err := h.predictions.SubmitPrediction(c.Request.Context(), profile, fixtureID, req.Text)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get 查询本人预测 GET /api/fixtures/:id/prediction
func (h *PredictionHandler) Get(c *gin.Context) {
	profile, err := currentProfile(c, h.profiles)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	fixtureID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fixture id"})
		return
	}
	pred, err := h.predictions.GetPrediction(c.Request.Context(), profile, fixtureID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pred)
}
