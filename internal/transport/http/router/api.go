package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-jobboard/internal/core/config"
	"go-gin-jobboard/internal/core/metrics"
	"go-gin-jobboard/internal/core/server"
	"go-gin-jobboard/internal/service"
	httpez "go-gin-jobboard/internal/transport/http/ez"
	mdw "go-gin-jobboard/internal/transport/http/middleware"
	resp "go-gin-jobboard/internal/transport/http/response"
)

// Deps 路由层依赖
type Deps struct {
	Log            *zap.Logger
	Svc            *service.Services
	Uploads        Uploads
	Limits         config.Limits
	RequestTimeout time.Duration
	ChatTimeout    time.Duration
	CORSOrigins    []string
}

// DepsFromConfig 从配置取限流/超时/上传限制
func DepsFromConfig(c *config.Config, l *zap.Logger, svc *service.Services) Deps {
	return Deps{
		Log: l,
		Svc: svc,
		Uploads: Uploads{
			MaxFileBytes: int64(c.Upload.MaxFileMB) << 20,
			MaxFiles:     c.Upload.MaxFiles,
		},
		Limits:         c.Limits,
		RequestTimeout: time.Duration(c.App.HTTP.RequestTimeoutSec) * time.Second,
		ChatTimeout:    time.Duration(c.LLM.TimeoutSec) * time.Second,
		CORSOrigins:    c.App.HTTP.CORSOrigins,
	}
}

func (d *Deps) defaults() {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Uploads.MaxFileBytes <= 0 {
		d.Uploads.MaxFileBytes = 10 << 20
	}
	if d.Uploads.MaxFiles <= 0 {
		d.Uploads.MaxFiles = 5
	}
	if d.Limits.RPS <= 0 {
		d.Limits.RPS = 200
	}
	if d.Limits.Burst <= 0 {
		d.Limits.Burst = 400
	}
	if d.Limits.MaxConcurrent <= 0 {
		d.Limits.MaxConcurrent = 300
	}
	if d.Limits.MaxBodyMB <= 0 {
		d.Limits.MaxBodyMB = 55
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}
	if d.ChatTimeout <= 0 {
		d.ChatTimeout = 60 * time.Second
	}
}

// common 两个 engine 共用的中间件链
func common(d Deps, overrides ...mdw.PathTimeout) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		mdw.RequestID(d.Log),
		mdw.SimpleRecovery(d.Log),
		mdw.AccessLog(d.Log),
		mdw.Metrics(),
		mdw.RateLimit(rate.Limit(d.Limits.RPS), d.Limits.Burst),
		mdw.ConcurrencyLimit(d.Limits.MaxConcurrent),
		mdw.MaxBodyBytes(d.Limits.MaxBodyMB << 20),
		mdw.Timeout(d.RequestTimeout, overrides...),
	}
}

func health(c *gin.Context) {
	resp.OK(c, http.StatusOK, "Server is running", gin.H{"status": "ok", "time": time.Now().UTC()})
}

func NewAPIEngine(d Deps) *gin.Engine {
	d.defaults()
	r := server.NewRouter(d.Log, d.CORSOrigins)

	// 中间件
	r.Use(common(d, mdw.PathTimeout{Prefix: "/api/v1/chatbot", D: d.ChatTimeout})...)

	// 健康检查 / 指标
	r.GET("/health", health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.NoRoute(func(c *gin.Context) { resp.Fail(c, http.StatusNotFound, "Route not found") })

	// 前缀
	api := r.Group("/api/v1")
	e := httpez.New(api, mdw.Authenticate(d.Svc.Auth))

	var guestLimit gin.HandlerFunc
	if d.Limits.GuestChatRPS > 0 {
		guestLimit = mdw.RateLimitPerIP(rate.Limit(d.Limits.GuestChatRPS), max(d.Limits.GuestChatBurst, 1))
	}

	mountAPI(e,
		authModule{svc: d.Svc.Auth},
		companyModule{svc: d.Svc.Companies, uploads: d.Uploads},
		jobModule{svc: d.Svc.Jobs},
		applicationModule{svc: d.Svc.Applications},
		profileModule{svc: d.Svc.Profiles, uploads: d.Uploads},
		chatModule{svc: d.Svc.Chat, guestLimit: guestLimit},
		userModule{svc: d.Svc.Users},
	)
	return r
}
