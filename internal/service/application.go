package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/logger"
	"go-gin-jobboard/internal/core/metrics"
	"go-gin-jobboard/internal/domain"
)

var (
	errAppNotFound     = domain.NotFound("Application not found")
	errAlreadyApplied  = domain.BadRequest("You have already applied for this job")
	errAppliedRace     = domain.Conflict("You have already applied for this job")
	errNotJobOwner     = domain.Forbidden("You do not own this job")
	errAppUpdateDenied = domain.Forbidden("You do not have permission to update this application")
	errAppDeleteDenied = domain.Forbidden("You do not have permission to delete this application")
)

type ApplicationService struct {
	store domain.Store
	log   *zap.Logger
}

func NewApplicationService(store domain.Store, l *zap.Logger) *ApplicationService {
	return &ApplicationService{store: store, log: l.Named("application")}
}

// Apply cv_url 取投递时档案里最新的一份 CV
func (s *ApplicationService) Apply(ctx context.Context, userID, jobID uint) (*domain.JobApplication, error) {
	job, err := s.store.Jobs().FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errJobNotFound
	}
	existing, err := s.store.Applications().FindByJobAndUser(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errAlreadyApplied
	}
	profile, err := s.store.Profiles().FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	a := &domain.JobApplication{
		JobID:  jobID,
		UserID: userID,
		CVURL:  profile.LatestCV(),
		Status: domain.StatusApplied,
	}
	if err := s.store.Applications().Create(ctx, a); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, errAppliedRace
		}
		return nil, err
	}
	metrics.ApplicationsTotal.Inc()
	a.JobInfo = &domain.JobSummary{ID: job.ID, Title: job.Title, CompanyID: job.CompanyID, Location: job.Location, Salary: job.Salary}
	logger.FromContext(ctx, s.log).Info("application submitted", zap.Uint("job_id", jobID), zap.Uint("user_id", userID))
	return a, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, userID uint, f domain.ApplicationFilter) (domain.Page[domain.JobApplication], error) {
	f.ListOptions = f.Normalize()
	rows, total, err := s.store.Applications().ListByUser(ctx, userID, f)
	if err != nil {
		return domain.Page[domain.JobApplication]{}, err
	}
	return domain.NewPage(rows, f.ListOptions, total), nil
}

// ownsJob 调用方是否拥有岗位所属公司
func (s *ApplicationService) ownsJob(ctx context.Context, companyID, userID uint) (bool, error) {
	c, err := s.store.Companies().FindByID(ctx, companyID)
	if err != nil {
		return false, err
	}
	return c.OwnedBy(userID), nil
}

func (s *ApplicationService) ListForJob(ctx context.Context, jobID, userID uint, f domain.ApplicationFilter) (domain.Page[domain.JobApplication], error) {
	var empty domain.Page[domain.JobApplication]
	job, err := s.store.Jobs().FindByID(ctx, jobID)
	if err != nil {
		return empty, err
	}
	if job == nil {
		return empty, errJobNotFound
	}
	ok, err := s.ownsJob(ctx, job.CompanyID, userID)
	if err != nil {
		return empty, err
	}
	if !ok {
		return empty, errNotJobOwner
	}

	f.ListOptions = f.Normalize()
	rows, total, err := s.store.Applications().ListByJob(ctx, jobID, f)
	if err != nil {
		return empty, err
	}
	return domain.NewPage(rows, f.ListOptions, total), nil
}

func (s *ApplicationService) GetByID(ctx context.Context, id uint) (*domain.JobApplication, error) {
	a, err := s.store.Applications().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errAppNotFound
	}
	return a, nil
}

// UpdateStatus 状态值在 http 层校验，这里不限制流转
func (s *ApplicationService) UpdateStatus(ctx context.Context, id, userID uint, status string) (*domain.JobApplication, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Job == nil {
		return nil, errAppUpdateDenied
	}
	ok, err := s.ownsJob(ctx, a.Job.CompanyID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errAppUpdateDenied
	}
	if err := s.store.Applications().UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	a.Status = status
	return a, nil
}

// Delete 投递人本人或岗位所属雇主可删
func (s *ApplicationService) Delete(ctx context.Context, id, userID uint) error {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.UserID != userID {
		ok := false
		if a.Job != nil {
			if ok, err = s.ownsJob(ctx, a.Job.CompanyID, userID); err != nil {
				return err
			}
		}
		if !ok {
			return errAppDeleteDenied
		}
	}
	return s.store.Applications().Delete(ctx, id)
}
