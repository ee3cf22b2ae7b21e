package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/logger"
	"go-gin-jobboard/internal/domain"
)

// Success 成功信封；data 为 nil 时输出 null
type Success struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Data       any                `json:"data"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

// FieldError 参数校验明细
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Failure 失败信封；error 与 message 同值，兼容只读 error 的旧客户端
type Failure struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Error   string       `json:"error"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func OK(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, Success{Success: true, Message: msg, Data: data})
}

func Paged(c *gin.Context, status int, msg string, data any, p *domain.Pagination) {
	c.JSON(status, Success{Success: true, Message: msg, Data: data, Pagination: p})
}

// Fail 写失败信封并中止后续 handler
func Fail(c *gin.Context, status int, msg string, errs ...FieldError) {
	c.AbortWithStatusJSON(status, Failure{Message: msg, Error: msg, Errors: errs})
}

// StatusOf domain 错误类别 -> http 状态码
func StatusOf(k domain.Kind) int {
	switch k {
	case domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Err 输出 service 层错误；500 只返回通用文案，原因写日志
func Err(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		Fail(c, http.StatusGatewayTimeout, "Request timeout")
		return
	}
	var de *domain.Error
	if errors.As(err, &de) {
		status := StatusOf(de.Kind)
		msg := de.Msg
		if status >= http.StatusInternalServerError {
			logger.FromContext(c.Request.Context(), nil).Error("request failed",
				zap.String("path", c.FullPath()), zap.String("msg", de.Msg), zap.Error(de.Err))
			if msg == "" {
				msg = InternalMessage
			}
		}
		Fail(c, status, msg)
		return
	}
	logger.FromContext(c.Request.Context(), nil).Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	Fail(c, http.StatusInternalServerError, InternalMessage)
}

const InternalMessage = "Internal server error"
