package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-jobboard/internal/domain"
	"go-gin-jobboard/internal/service"
	httpez "go-gin-jobboard/internal/transport/http/ez"
)

// userModule 用户管理：/api/v1/users 与管理端 /admin/v1/users 共用
type userModule struct{ svc *service.UserService }

func (userModule) Priority() int { return 90 }

type userListQuery struct {
	pageQuery
	Search string `form:"search" binding:"omitempty,max=255"`
	RoleID uint   `form:"role_id"`
}

func (m userModule) MountAPI(e httpez.EZ)   { m.mount(e.Group("/users")) }
func (m userModule) MountAdmin(e httpez.EZ) { m.mount(e.Group("/users")) }

func (m userModule) mount(g httpez.EZ) {
	httpez.RegisterAction(g, httpez.Action[userListQuery, domain.Page[domain.User]]{
		Method:  http.MethodGet,
		Path:    "",
		Binder:  httpez.BindQuery,
		Message: "Users retrieved successfully",
		Auth:    true,
		Role:    domain.RoleAdmin,
		Handler: func(c *gin.Context, in *userListQuery) (domain.Page[domain.User], error) {
			return m.svc.List(c.Request.Context(), domain.UserFilter{
				ListOptions: in.opts(), Search: in.Search, RoleID: in.RoleID,
			})
		},
	})

	httpez.RegisterAction(g, httpez.Action[service.UserCreateInput, *domain.User]{
		Method:  http.MethodPost,
		Path:    "",
		Binder:  httpez.BindJSON,
		Status:  http.StatusCreated,
		Message: "User created successfully",
		Auth:    true,
		Role:    domain.RoleAdmin,
		Handler: func(c *gin.Context, in *service.UserCreateInput) (*domain.User, error) {
			return m.svc.Create(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(g, httpez.Action[struct{}, *domain.User]{
		Method:  http.MethodGet,
		Path:    "/:id",
		Binder:  httpez.BindNone,
		Message: "User retrieved successfully",
		Auth:    true,
		Role:    domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			id, err := httpez.ParamUint(c, "id")
			if err != nil {
				return nil, err
			}
			return m.svc.GetByID(c.Request.Context(), id)
		},
	})

	httpez.RegisterAction(g, httpez.Action[service.UserUpdateInput, *domain.User]{
		Method:  http.MethodPut,
		Path:    "/:id",
		Binder:  httpez.BindJSON,
		Message: "User updated successfully",
		Auth:    true,
		Role:    domain.RoleAdmin,
		Handler: func(c *gin.Context, in *service.UserUpdateInput) (*domain.User, error) {
			id, err := httpez.ParamUint(c, "id")
			if err != nil {
				return nil, err
			}
			return m.svc.Update(c.Request.Context(), id, *in)
		},
	})

	httpez.RegisterAction(g, httpez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Binder:  httpez.BindNone,
		Message: "User deleted successfully",
		Auth:    true,
		Role:    domain.RoleAdmin,
		Handler: func(c *gin.Context, _ *struct{}) (any, error) {
			id, err := httpez.ParamUint(c, "id")
			if err != nil {
				return nil, err
			}
			return nil, m.svc.Delete(c.Request.Context(), id)
		},
	})
}
