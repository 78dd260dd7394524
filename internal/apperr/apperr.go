package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error 业务错误：携带HTTP状态码与稳定错误码，handler据此返回结构化错误
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

// New 构造任意状态码的业务错误
func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation 参数/输入非法（400）
func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, "validation", fmt.Errorf(format, args...))
}

// NotFound 资源不存在（404）
func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, "not_found", fmt.Errorf(format, args...))
}

// Conflict 状态冲突：重复投票、预测已定稿、直播锁定等（409）
func Conflict(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, "conflict", fmt.Errorf(format, args...))
}

// AuthRequired 未登录/身份缺失（401）
func AuthRequired(format string, args ...interface{}) *Error {
	return New(http.StatusUnauthorized, "auth_required", fmt.Errorf(format, args...))
}

// Status 解析错误对应的HTTP状态码，非业务错误一律500
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Code 解析错误码，非业务错误返回 internal
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "internal"
}
