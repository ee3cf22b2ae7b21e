package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	resp "go-gin-jobboard/internal/transport/http/response"
)

// PathTimeout 某个前缀下的超时（如 chatbot 走 LLM 需要更长）
type PathTimeout struct {
	Prefix string
	D      time.Duration
}

// Timeout 给 request ctx 加超时；handler 未写响应时回 504
func Timeout(d time.Duration, overrides ...PathTimeout) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := d
		for _, o := range overrides {
			if strings.HasPrefix(c.Request.URL.Path, o.Prefix) {
				limit = o.D
				break
			}
		}
		if limit <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), limit)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			resp.Fail(c, http.StatusGatewayTimeout, "Request timeout")
		}
	}
}
