package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-jobboard/internal/domain"
)

type ApplicationRepo struct{ db *gorm.DB }

func NewApplicationRepo(db *gorm.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

func jobBrief(db *gorm.DB) *gorm.DB {
	return db.Select("id", "title", "company_id", "location", "salary")
}

func withJobInfo(a *domain.JobApplication) {
	if a.Job != nil {
		a.JobInfo = &domain.JobSummary{
			ID:        a.Job.ID,
			Title:     a.Job.Title,
			CompanyID: a.Job.CompanyID,
			Location:  a.Job.Location,
			Salary:    a.Job.Salary,
		}
	}
}

func (r *ApplicationRepo) Create(ctx context.Context, a *domain.JobApplication) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error)
}

// FindByID 带上 Job（含 company_id），归属校验要用
func (r *ApplicationRepo) FindByID(ctx context.Context, id uint) (*domain.JobApplication, error) {
	var a domain.JobApplication
	err := r.db.WithContext(ctx).Preload("Job", jobBrief).First(&a, id).Error
	if err == nil {
		withJobInfo(&a)
	}
	return notFound(&a, err)
}

func (r *ApplicationRepo) FindByJobAndUser(ctx context.Context, jobID, userID uint) (*domain.JobApplication, error) {
	var a domain.JobApplication
	return notFound(&a, r.db.WithContext(ctx).Where("job_id = ? AND user_id = ?", jobID, userID).First(&a).Error)
}

func (r *ApplicationRepo) filtered(ctx context.Context, f domain.ApplicationFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.JobApplication{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.JobID != 0 {
		q = q.Where("job_id = ?", f.JobID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	return q
}

func (r *ApplicationRepo) ListByUser(ctx context.Context, userID uint, f domain.ApplicationFilter) ([]domain.JobApplication, int64, error) {
	f.ListOptions = f.Normalize()
	f.UserID = userID
	q := r.filtered(ctx, f)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	out := make([]domain.JobApplication, 0, f.Limit)
	err := q.Preload("Job", jobBrief).Order("id DESC").Offset(f.Offset()).Limit(f.Limit).Find(&out).Error
	for i := range out {
		withJobInfo(&out[i])
	}
	return out, total, err
}

// ListByJob 雇主视角：附带申请人 email + 档案摘要
func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID uint, f domain.ApplicationFilter) ([]domain.JobApplication, int64, error) {
	f.ListOptions = f.Normalize()
	f.JobID = jobID
	q := r.filtered(ctx, f)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	out := make([]domain.JobApplication, 0, f.Limit)
	err := q.Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "email") }).
		Order("id DESC").Offset(f.Offset()).Limit(f.Limit).Find(&out).Error
	if err != nil || len(out) == 0 {
		return out, total, err
	}

	ids := make([]uint, 0, len(out))
	for _, a := range out {
		ids = append(ids, a.UserID)
	}
	var profiles []domain.UserProfile
	if err := r.db.WithContext(ctx).Select("user_id", "full_name", "phone").
		Where("user_id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	byUser := make(map[uint]domain.UserProfile, len(profiles))
	for _, p := range profiles {
		byUser[p.UserID] = p
	}
	for i := range out {
		a := &out[i]
		s := &domain.ApplicantSummary{ID: a.UserID}
		if a.User != nil {
			s.Email = a.User.Email
		}
		if p, ok := byUser[a.UserID]; ok {
			s.FullName, s.Phone = p.FullName, p.Phone
		}
		a.Applicant = s
	}
	return out, total, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&domain.JobApplication{}).Where("id = ?", id).Update("status", status).Error
}

func (r *ApplicationRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.JobApplication{}, id).Error
}
