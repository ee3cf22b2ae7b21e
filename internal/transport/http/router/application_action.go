package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-jobboard/internal/domain"
	"go-gin-jobboard/internal/service"
	httpez "go-gin-jobboard/internal/transport/http/ez"
)

type applicationModule struct{ svc *service.ApplicationService }

func (applicationModule) Priority() int { return 40 }

type applyReq struct {
	JobID uint `json:"job_id" binding:"required,min=1"`
}

type statusReq struct {
	Status string `json:"status" binding:"required,oneof=applied under_review interview_scheduled offered rejected"`
}

type myApplicationsQuery struct {
	pageQuery
	Status string `form:"status" binding:"omitempty,oneof=applied under_review interview_scheduled offered rejected"`
	JobID  uint   `form:"job_id"`
}

type jobApplicationsQuery struct {
	pageQuery
	Status string `form:"status" binding:"omitempty,oneof=applied under_review interview_scheduled offered rejected"`
	UserID uint   `form:"user_id"`
}

func (m applicationModule) MountAPI(e httpez.EZ) {
	g := e.Group("/applications")

	httpez.RegisterAction(g, httpez.Action[applyReq, *domain.JobApplication]{
		Method:  http.MethodPost,
		Path:    "",
		Binder:  httpez.BindJSON,
		Status:  http.StatusCreated,
		Message: "Application submitted successfully",
		Auth:    true,
		Handler: func(c *gin.Context, in *applyReq) (*domain.JobApplication, error) {
			return m.svc.Apply(c.Request.Context(), uid(c), in.JobID)
		},
	})

	httpez.RegisterAction(g, httpez.Action[myApplicationsQuery, domain.Page[domain.JobApplication]]{
		Method:  http.MethodGet,
		Path:    "/my-applications",
		Binder:  httpez.BindQuery,
		Message: "Applications retrieved successfully",
		Auth:    true,
		Handler: func(c *gin.Context, in *myApplicationsQuery) (domain.Page[domain.JobApplication], error) {
			return m.svc.ListMine(c.Request.Context(), uid(c), domain.ApplicationFilter{
				ListOptions: in.opts(), Status: in.Status, JobID: in.JobID,
			})
		},
	})

	httpez.RegisterAction(g, httpez.Action[jobApplicationsQuery, domain.Page[domain.JobApplication]]{
		Method:  http.MethodGet,
		Path:    "/job/:jobId",
		Binder:  httpez.BindQuery,
		Message: "Applications retrieved successfully",
		Auth:    true,
		Handler: func(c *gin.Context, in *jobApplicationsQuery) (domain.Page[domain.JobApplication], error) {
			jobID, err := httpez.ParamUint(c, "jobId")
			if err != nil {
				return domain.Page[domain.JobApplication]{}, err
			}
			return m.svc.ListForJob(c.Request.Context(), jobID, uid(c), domain.ApplicationFilter{
				ListOptions: in.opts(), Status: in.Status, UserID: in.UserID,
			})
		},
	})

	httpez.RegisterAction(g, httpez.Action[struct{}, *domain.JobApplication]{
		Method:  http.MethodGet,
		Path:    "/:id",
		Binder:  httpez.BindNone,
		Message: "Application retrieved successfully",
		Auth:    true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.JobApplication, error) {
			id, err := httpez.ParamUint(c, "id")
			if err != nil {
				return nil, err
			}
			return m.svc.GetByID(c.Request.Context(), id)
		},
	})

	httpez.RegisterAction(g, httpez.Action[statusReq, *domain.JobApplication]{
		Method:  http.MethodPut,
		Path:    "/:id",
		Binder:  httpez.BindJSON,
		Message: "Application status updated successfully",
		Auth:    true,
		Handler: func(c *gin.Context, in *statusReq) (*domain.JobApplication, error) {
			id, err := httpez.ParamUint(c, "id")
			if err != nil {
				return nil, err
			}
			return m.svc.UpdateStatus(c.Request.Context(), id, uid(c), in.Status)
		},
	})

	httpez.RegisterAction(g, httpez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Binder:  httpez.BindNone,
		Message: "Application deleted successfully",
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
