package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/logger"
)

const KeyRequestID = "X-Request-ID"

// RequestID 透传或生成 request id，并把带 rid 的 logger 放进 request ctx
func RequestID(l *zap.Logger) gin.HandlerFunc {
	if l == nil {
		l = zap.NewNop()
	}
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(KeyRequestID)
		if rid == "" || len(rid) > 128 {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		ctx := logger.WithContext(c.Request.Context(), l.With(zap.String("rid", rid)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
