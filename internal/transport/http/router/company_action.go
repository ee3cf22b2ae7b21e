package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-jobboard/internal/domain"
	"go-gin-jobboard/internal/service"
	httpez "go-gin-jobboard/internal/transport/http/ez"
)

type companyModule struct {
	svc     *service.CompanyService
	uploads Uploads
}

func (companyModule) Priority() int { return 20 }

type companyListQuery struct {
	pageQuery
	Search string `form:"search" binding:"omitempty,max=255"`
	Type   string `form:"type" binding:"omitempty,max=100"`
	Size   string `form:"size" binding:"omitempty,max=20"`
}

// createCompanyReq 新建时 name 必填，其余同更新
type createCompanyReq struct {
	Name string `json:"name" form:"name" binding:"required,min=2,max=255"`
	service.CompanyInput
}

func (m companyModule) MountAPI(e httpez.EZ) {
	g := e.Group("/companies")

	httpez.RegisterAction(g, httpez.Action[companyListQuery, domain.Page[domain.Company]]{
		Method:  http.MethodGet,
		Path:    "",
		Binder:  httpez.BindQuery,
		Message: "Companies retrieved successfully",
		Handler: func(c *gin.Context, in *companyListQuery) (domain.Page[domain.Company], error) {
			return m.svc.List(c.Request.Context(), domain.CompanyFilter{
				ListOptions: in.opts(), Search: in.Search, Type: in.Type, Size: in.Size,
			})
		},
	})

	httpez.RegisterAction(g, httpez.Action[createCompanyReq, *domain.Company]{
		Method:  http.MethodPost,
		Path:    "",
		Binder:  httpez.BindForm,
		Status:  http.StatusCreated,
		Message: "Company created successfully",
		Auth:    true,
		Handler: func(c *gin.Context, in *createCompanyReq) (*domain.Company, error) {
			files, err := m.uploads.read(c, logoField)
			if err != nil {
				return nil, err
			}
			in.CompanyInput.Name = &in.Name
			return m.svc.Create(c.Request.Context(), uid(c), in.CompanyInput, single(files, logoField.Name))
		},
	})

	// 静态段要先于 /:id 注册
	httpez.RegisterAction(g, httpez.Action[struct{}, *domain.Company]{
		Method:  http.MethodGet,
		Path:    "/my/company",
		Binder:  httpez.BindNone,
		Message: "Company retrieved successfully",
		Auth:    true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Company, error) {
			return m.svc.GetMine(c.Request.Context(), uid(c))
		},
	})

	httpez.RegisterAction(g, httpez.Action[struct{}, *domain.Company]{
		Method:  http.MethodGet,
		Path:    "/:id",
		Binder:  httpez.BindNone,
		Message: "Company retrieved successfully",
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Company, error) {
			id, err := httpez.ParamUint(c, "id")
			if err != nil {
				return nil, err
			}
			return m.svc.GetByID(c.Request.Context(), id)
		},
	})

	httpez.RegisterAction(g, httpez.Action[service.CompanyInput, *domain.Company]{
		Method:  http.MethodPut,
		Path:    "/:id",
		Binder:  httpez.BindForm,
		Message: "Company updated successfully",
		Auth:    true,
		Handler: func(c *gin.Context, in *service.CompanyInput) (*domain.Company, error) {
			id, err := httpez.ParamUint(c, "id")
			if err != nil {
				return nil, err
			}
			files, err := m.uploads.read(c, logoField)
			if err != nil {
				return nil, err
			}
			return m.svc.Update(c.Request.Context(), id, uid(c), *in, single(files, logoField.Name))
		},
	})

	httpez.RegisterAction(g, httpez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Binder:  httpez.BindNone,
		Message: "Company deleted successfully",
		Auth:    true,
		Handler: func(c *gin.Context, _ *struct{}) (any, error) {
			id, err := httpez.ParamUint(c, "id")
			if err != nil {
				return nil, err
			}
			return nil, m.svc.Delete(c.Request.Context(), id, uid(c))
		},
	})
}
