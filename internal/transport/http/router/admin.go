package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-jobboard/internal/core/server"
	"go-gin-jobboard/internal/domain"
	httpez "go-gin-jobboard/internal/transport/http/ez"
	mdw "go-gin-jobboard/internal/transport/http/middleware"
	resp "go-gin-jobboard/internal/transport/http/response"
)

// NewAdminEngine 管理端，只监听内网地址
func NewAdminEngine(d Deps) *gin.Engine {
	d.defaults()
	r := server.NewRouter(d.Log, d.CORSOrigins)
	r.Use(common(d)...)

	// 健康检查
	r.GET("/health", health)
	r.NoRoute(func(c *gin.Context) { resp.Fail(c, http.StatusNotFound, "Route not found") })

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1", mdw.Authenticate(d.Svc.Auth), mdw.AuthorizeRole(domain.RoleAdmin))

	// 分组已校验 admin，Action 上不再重复挂
	mountAdmin(httpez.New(admin, nil), userModule{svc: d.Svc.Users})
	return r
}
