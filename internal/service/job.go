package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"go-gin-jobboard/internal/core/cache"
	"go-gin-jobboard/internal/core/logger"
	"go-gin-jobboard/internal/domain"
)

const dateLayout = "2006-01-02"

type JobInput struct {
	Title        *string `json:"title" binding:"omitempty,min=1,max=255"`
	Level        *string `json:"level" binding:"omitempty,max=100"`
	Salary       *string `json:"salary" binding:"omitempty,max=100"`
	Location     *string `json:"location" binding:"omitempty,max=255"`
	Deadline     *string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	Description  *string `json:"description" binding:"omitempty,max=10000"`
	Requirements *string `json:"requirements" binding:"omitempty,max=10000"`
	Benefits     *string `json:"benefits" binding:"omitempty,max=10000"`
	Status       *string `json:"status" binding:"omitempty,max=50"`
}

func (in JobInput) apply(j *domain.Job) error {
	for _, f := range []struct {
		dst *string
		v   *string
	}{
		{&j.Title, in.Title}, {&j.Level, in.Level}, {&j.Salary, in.Salary}, {&j.Location, in.Location},
		{&j.Description, in.Description}, {&j.Requirements, in.Requirements}, {&j.Benefits, in.Benefits},
		{&j.Status, in.Status},
	} {
		if f.v != nil {
			*f.dst = strings.TrimSpace(*f.v)
		}
	}
	if j.Title == "" {
		return errJobTitle
	}
	if in.Deadline != nil {
		d, err := parseDate(*in.Deadline)
		if err != nil {
			return domain.BadRequest("Deadline must be a valid date (YYYY-MM-DD)")
		}
		j.Deadline = d
	}
	return nil
}

// parseDate 空串表示清空
func parseDate(s string) (*datatypes.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}

var (
	errJobNotFound   = domain.NotFound("Job not found")
	errNotCompanyOwn = domain.Forbidden("You do not own this company")
	errJobUpdate     = domain.Forbidden("You do not have permission to update this job")
	errJobDelete     = domain.Forbidden("You do not have permission to delete this job")
	errJobTitle      = domain.BadRequest("Job title is required")
)

type JobService struct {
	store domain.Store
	cache *cache.Cache
	log   *zap.Logger
}

func NewJobService(store domain.Store, c *cache.Cache, l *zap.Logger) *JobService {
	return &JobService{store: store, cache: c, log: l.Named("job")}
}

// Create 公司不存在和不属于自己一样返回 Forbidden
func (s *JobService) Create(ctx context.Context, userID, companyID uint, in JobInput) (*domain.Job, error) {
	c, err := s.store.Companies().FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if !c.OwnedBy(userID) {
		return nil, errNotCompanyOwn
	}

	j := &domain.Job{CompanyID: c.ID}
	if err := in.apply(j); err != nil {
		return nil, err
	}
	if j.Status == "" {
		j.Status = domain.JobStatusActive
	}
	if err := s.store.Jobs().Create(ctx, j); err != nil {
		return nil, err
	}
	j.CompanyInfo = &domain.CompanySummary{ID: c.ID, Name: c.Name, LogoCompanyURL: c.LogoCompanyURL}
	logger.FromContext(ctx, s.log).Info("job created", zap.Uint("job_id", j.ID), zap.Uint("company_id", c.ID))
	return j, nil
}

func (s *JobService) List(ctx context.Context, f domain.JobFilter) (domain.Page[domain.Job], error) {
	f.ListOptions = f.Normalize()
	rows, total, err := s.store.Jobs().List(ctx, f)
	if err != nil {
		return domain.Page[domain.Job]{}, err
	}
	return domain.NewPage(rows, f.ListOptions, total), nil
}

func (s *JobService) GetByID(ctx context.Context, id uint) (*domain.Job, error) {
	j, err := cache.GetOrLoadJSON(s.cache, ctx, cache.JobKey(id), 0, func(ctx context.Context) (*domain.Job, error) {
		return s.store.Jobs().FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, errJobNotFound
	}
	return j, nil
}

// owned 通过岗位所属公司判断归属
func (s *JobService) owned(ctx context.Context, id, userID uint, denied error) (*domain.Job, error) {
	j, err := s.store.Jobs().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, errJobNotFound
	}
	c, err := s.store.Companies().FindByID(ctx, j.CompanyID)
	if err != nil {
		return nil, err
	}
	if !c.OwnedBy(userID) {
		return nil, denied
	}
	return j, nil
}

// Update company_id 不可改
func (s *JobService) Update(ctx context.Context, id, userID uint, in JobInput) (*domain.Job, error) {
	j, err := s.owned(ctx, id, userID, errJobUpdate)
	if err != nil {
		return nil, err
	}
	if err := in.apply(j); err != nil {
		return nil, err
	}
	if err := s.store.Jobs().Update(ctx, j); err != nil {
		return nil, err
	}
	s.cache.Del(ctx, cache.JobKey(id))
	return j, nil
}

func (s *JobService) Delete(ctx context.Context, id, userID uint) error {
	if _, err := s.owned(ctx, id, userID, errJobDelete); err != nil {
		return err
	}
	if err := s.store.Jobs().Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Del(ctx, cache.JobKey(id))
	return nil
}
