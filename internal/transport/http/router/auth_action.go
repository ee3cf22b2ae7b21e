package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-jobboard/internal/domain"
	"go-gin-jobboard/internal/service"
	httpez "go-gin-jobboard/internal/transport/http/ez"
)

// authModule /public/login、/public/register
type authModule struct{ svc *service.AuthService }

func (authModule) Priority() int { return 10 }

func (m authModule) MountAPI(e httpez.EZ) {
	pub := e.Group("/public")

	httpez.RegisterAction(pub, httpez.Action[service.RegisterInput, *domain.User]{
		Method:  http.MethodPost,
		Path:    "/register",
		Binder:  httpez.BindJSON,
		Status:  http.StatusCreated,
		Message: "Registration successful",
		Handler: func(c *gin.Context, in *service.RegisterInput) (*domain.User, error) {
			return m.svc.Register(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(pub, httpez.Action[service.LoginInput, *service.LoginResult]{
		Method:  http.MethodPost,
		Path:    "/login",
		Binder:  httpez.BindJSON,
		Message: "Login successful",
		Handler: func(c *gin.Context, in *service.LoginInput) (*service.LoginResult, error) {
			return m.svc.Login(c.Request.Context(), *in)
		},
	})
}
