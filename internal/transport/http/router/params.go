package router

import (
	"github.com/gin-gonic/gin"

	"go-gin-jobboard/internal/domain"
	mdw "go-gin-jobboard/internal/transport/http/middleware"
)

// pageQuery 通用分页参数
type pageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q pageQuery) opts() domain.ListOptions {
	return domain.ListOptions{Page: q.Page, Limit: q.Limit}
}

// uid 当前登录用户 id，只在 Auth 路由里调用
func uid(c *gin.Context) uint {
	if u := mdw.CurrentUser(c); u != nil {
		return u.ID
	}
	return 0
}
