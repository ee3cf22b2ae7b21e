package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-jobboard/internal/domain"
	"go-gin-jobboard/internal/service"
	httpez "go-gin-jobboard/internal/transport/http/ez"
)

type profileModule struct {
	svc     *service.ProfileService
	uploads Uploads
}

func (profileModule) Priority() int { return 50 }

func (m profileModule) MountAPI(e httpez.EZ) {
	g := e.Group("/profiles")

	httpez.RegisterAction(g, httpez.Action[struct{}, *domain.UserProfile]{
		Method:  http.MethodGet,
		Path:    "/me",
		Binder:  httpez.BindNone,
		Message: "Profile retrieved successfully",
		Auth:    true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.UserProfile, error) {
			return m.svc.GetMine(c.Request.Context(), uid(c))
		},
	})

	// multipart: 文本字段 + avatar（单图）+ cv（最多 5 个文档）；也接受纯 JSON
	httpez.RegisterAction(g, httpez.Action[service.ProfileInput, *domain.UserProfile]{
		Method:  http.MethodPut,
		Path:    "/me",
		Binder:  httpez.BindForm,
		Message: "Profile updated successfully",
		Auth:    true,
		Handler: func(c *gin.Context, in *service.ProfileInput) (*domain.UserProfile, error) {
			files, err := m.uploads.read(c, avatarField, cvField)
			if err != nil {
				return nil, err
			}
			return m.svc.UpdateMine(c.Request.Context(), uid(c), *in, service.ProfileFiles{
				Avatar: single(files, avatarField.Name),
				CVs:    files[cvField.Name],
			})
		},
	})

	httpez.RegisterAction(g, httpez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/me",
		Binder:  httpez.BindNone,
		Message: "Profile deleted successfully",
		Auth:    true,
		Handler: func(c *gin.Context, _ *struct{}) (any, error) {
			return nil, m.svc.DeleteMine(c.Request.Context(), uid(c))
		},
	})

	httpez.RegisterAction(g, httpez.Action[struct{}, *domain.UserProfile]{
		Method:  http.MethodGet,
		Path:    "/:userId",
		Binder:  httpez.BindNone,
		Message: "Profile retrieved successfully",
		Auth:    true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.UserProfile, error) {
			userID, err := httpez.ParamUint(c, "userId")
			if err != nil {
				return nil, err
			}
			return m.svc.GetByUserID(c.Request.Context(), userID)
		},
	})
}
