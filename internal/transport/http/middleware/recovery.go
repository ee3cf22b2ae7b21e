package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/logger"
	resp "go-gin-jobboard/internal/transport/http/response"
)

// SimpleRecovery panic 时记日志并回 500 信封
func SimpleRecovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.FromContext(c.Request.Context(), l).Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()),
				)
				resp.Fail(c, http.StatusInternalServerError, resp.InternalMessage)
			}
		}()
		c.Next()
	}
}
