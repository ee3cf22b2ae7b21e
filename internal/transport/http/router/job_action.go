package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-jobboard/internal/domain"
	"go-gin-jobboard/internal/service"
	httpez "go-gin-jobboard/internal/transport/http/ez"
)

type jobModule struct{ svc *service.JobService }

func (jobModule) Priority() int { return 30 }

// jobListQuery 职位列表允许更大的 limit（前端一次拉全量做筛选）
type jobListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=10000"`
	Search    string `form:"search" binding:"omitempty,max=255"`
	Location  string `form:"location" binding:"omitempty,max=255"`
	CompanyID uint   `form:"company_id"`
	Status    string `form:"status" binding:"omitempty,max=50"`
	Level     string `form:"level" binding:"omitempty,max=100"`
}

type createJobReq struct {
	CompanyID uint   `json:"company_id" binding:"required,min=1"`
	Title     string `json:"title" binding:"required,max=255"`
	service.JobInput
}

func (m jobModule) MountAPI(e httpez.EZ) {
	g := e.Group("/jobs")

	httpez.RegisterAction(g, httpez.Action[jobListQuery, domain.Page[domain.Job]]{
		Method:  http.MethodGet,
		Path:    "",
		Binder:  httpez.BindQuery,
		Message: "Jobs retrieved successfully",
		Handler: func(c *gin.Context, in *jobListQuery) (domain.Page[domain.Job], error) {
			return m.svc.List(c.Request.Context(), domain.JobFilter{
				ListOptions: domain.ListOptions{Page: in.Page, Limit: in.Limit},
				Search:      in.Search,
				Location:    in.Location,
				CompanyID:   in.CompanyID,
				Status:      in.Status,
				Level:       in.Level,
			})
		},
	})

	httpez.RegisterAction(g, httpez.Action[createJobReq, *domain.Job]{
		Method:  http.MethodPost,
		Path:    "",
		Binder:  httpez.BindJSON,
		Status:  http.StatusCreated,
		Message: "Job created successfully",
		Auth:    true,
		Handler: func(c *gin.Context, in *createJobReq) (*domain.Job, error) {
			in.JobInput.Title = &in.Title
			return m.svc.Create(c.Request.Context(), uid(c), in.CompanyID, in.JobInput)
		},
	})

	httpez.RegisterAction(g, httpez.Action[struct{}, *domain.Job]{
		Method:  http.MethodGet,
		Path:    "/:id",
		Binder:  httpez.BindNone,
		Message: "Job retrieved successfully",
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Job, error) {
			id, err := httpez.ParamUint(c, "id")
			if err != nil {
				return nil, err
			}
			return m.svc.GetByID(c.Request.Context(), id)
		},
	})

	httpez.RegisterAction(g, httpez.Action[service.JobInput, *domain.Job]{
		Method:  http.MethodPut,
		Path:    "/:id",
		Binder:  httpez.BindJSON,
		Message: "Job updated successfully",
		Auth:    true,
		Handler: func(c *gin.Context, in *service.JobInput) (*domain.Job, error) {
			id, err := httpez.ParamUint(c, "id")
			if err != nil {
				return nil, err
			}
			return m.svc.Update(c.Request.Context(), id, uid(c), *in)
		},
	})

	httpez.RegisterAction(g, httpez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Binder:  httpez.BindNone,
		Message: "Job deleted successfully",
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
