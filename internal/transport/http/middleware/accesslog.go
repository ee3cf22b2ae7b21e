package middleware

import (
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/logger"
)

// query 里这些 key 的值不落日志（小写比较）
var sensitiveKeys = map[string]struct{}{
	"password": {}, "token": {}, "authorization": {}, "secret": {},
	"access_token": {}, "email": {}, "phone": {},
}

// Sensitive 日志和错误回显里都不能带原值的字段
func Sensitive(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

func maskQuery(q url.Values) map[string][]string {
	if len(q) == 0 {
		return nil
	}
	out := make(map[string][]string, len(q))
	for k, v := range q {
		if Sensitive(k) {
			out[k] = []string{"****"}
			continue
		}
		out[k] = v
	}
	return out
}

// AccessLog 每个请求一行；rid 由 RequestID 放进 ctx logger，这里直接复用
func AccessLog(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("ua", c.Request.UserAgent()),
			zap.Int("size", max(c.Writer.Size(), 0)),
		}
		if q := maskQuery(c.Request.URL.Query()); q != nil {
			fields = append(fields, zap.Any("query", q))
		}
		if u := CurrentUser(c); u != nil {
			fields = append(fields, zap.Uint("uid", u.ID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		log := logger.FromContext(c.Request.Context(), l)
		switch {
		case status >= 500:
			log.Error("HTTP", fields...)
		case status >= 400:
			log.Warn("HTTP", fields...)
		default:
			log.Info("HTTP", fields...)
		}
	}
}
