package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-jobboard/internal/domain"
	"go-gin-jobboard/internal/service"
	httpez "go-gin-jobboard/internal/transport/http/ez"
)

type chatModule struct {
	svc        *service.ChatService
	guestLimit gin.HandlerFunc // 匿名入口按 IP 限速
}

func (chatModule) Priority() int { return 60 }

const chatDone = "Chat completed successfully"

func (m chatModule) MountAPI(e httpez.EZ) {
	g := e.Group("/chatbot")

	var guestMws []gin.HandlerFunc
	if m.guestLimit != nil {
		guestMws = append(guestMws, m.guestLimit)
	}
	httpez.RegisterAction(g, httpez.Action[service.ChatInput, *service.GuestAnswer]{
		Method:      http.MethodPost,
		Path:        "/guest",
		Binder:      httpez.BindJSON,
		Message:     chatDone,
		Middlewares: guestMws,
		Handler: func(c *gin.Context, in *service.ChatInput) (*service.GuestAnswer, error) {
			return m.svc.Guest(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(g, httpez.Action[service.ChatInput, *service.JobseekerAnswer]{
		Method:  http.MethodPost,
		Path:    "/jobseeker",
		Binder:  httpez.BindJSON,
		Message: chatDone,
		Auth:    true,
		Role:    domain.RoleJobseeker,
		Handler: func(c *gin.Context, in *service.ChatInput) (*service.JobseekerAnswer, error) {
			return m.svc.Jobseeker(c.Request.Context(), uid(c), *in)
		},
	})

	httpez.RegisterAction(g, httpez.Action[service.EmployerChatInput, *service.EmployerAnswer]{
		Method:  http.MethodPost,
		Path:    "/employer",
		Binder:  httpez.BindJSON,
		Message: chatDone,
		Auth:    true,
		Role:    domain.RoleEmployer,
		Handler: func(c *gin.Context, in *service.EmployerChatInput) (*service.EmployerAnswer, error) {
			return m.svc.Employer(c.Request.Context(), *in)
		},
	})
}
