package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resp "go-gin-jobboard/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小；超限时 handler 读 body 得到 *http.MaxBytesError
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			resp.Fail(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		var mbe *http.MaxBytesError
		if !c.Writer.Written() && errors.As(c.Errors.Last(), &mbe) {
			resp.Fail(c, http.StatusRequestEntityTooLarge, "Request body too large")
		}
	}
}
