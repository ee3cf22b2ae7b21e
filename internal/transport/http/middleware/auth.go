package middleware

import (
	"context"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"go-gin-jobboard/internal/domain"
	resp "go-gin-jobboard/internal/transport/http/response"
)

const keyUser = "currentUser"

const (
	MsgNoAuthHeader  = "Authorization header is missing"
	MsgBadAuthFormat = "Invalid authorization format. Use: Bearer <token>"
	MsgNoToken       = "Token is missing"
)

// Identifier 由 token 解析出当前用户（service.AuthService 实现）
type Identifier interface {
	Identify(ctx context.Context, token string) (*domain.User, error)
}

// Authenticate 校验 Bearer token，当前用户存入 gin ctx
func Authenticate(id Identifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if ah == "" {
			resp.Fail(c, http.StatusUnauthorized, MsgNoAuthHeader)
			return
		}
		scheme, token, found := strings.Cut(ah, " ")
		if !found || scheme != "Bearer" {
			resp.Fail(c, http.StatusUnauthorized, MsgBadAuthFormat)
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			resp.Fail(c, http.StatusUnauthorized, MsgNoToken)
			return
		}
		u, err := id.Identify(c.Request.Context(), token)
		if err != nil {
			resp.Err(c, err)
			return
		}
		c.Set(keyUser, u)
		c.Next()
	}
}

// AuthorizeRole 必须在 Authenticate 之后
func AuthorizeRole(role string) gin.HandlerFunc {
	denied := "Access denied. " + capitalize(role) + " role required"
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			resp.Fail(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		if u.Role == nil || u.Role.Name != role {
			resp.Fail(c, http.StatusForbidden, denied)
			return
		}
		c.Next()
	}
}

// CurrentUser 未登录返回 nil
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(keyUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

// SetUser 测试或内部路由直接注入当前用户
func SetUser(c *gin.Context, u *domain.User) { c.Set(keyUser, u) }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
