package api

import (
	"net/http"

	"FanPulse/internal/apperr"
	"FanPulse/internal/model"
	"FanPulse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// profileHeader 调用方身份头：档案对外UUID（登录态由外层网关维护）
const profileHeader = "X-Profile-UUID"

// currentProfile 从请求头解析当前档案，缺失或未知返回 AuthRequired
func currentProfile(c *gin.Context, profiles *service.ProfileService) (*model.FanProfile, error) {
	return profiles.GetByUUID(c.Request.Context(), c.GetHeader(profileHeader))
}

// writeError 业务错误按其状态码返回，其余一律500
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		logger.WithError(err).Error("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": apperr.Code(err)})
}
