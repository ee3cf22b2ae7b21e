package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-jobboard/internal/domain"
)

type JobRepo struct{ db *gorm.DB }

func NewJobRepo(db *gorm.DB) *JobRepo { return &JobRepo{db: db} }

func companyBrief(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "logo_company_url")
}

func withCompanyInfo(j *domain.Job) {
	if j.Company != nil {
		j.CompanyInfo = &domain.CompanySummary{
			ID:             j.Company.ID,
			Name:           j.Company.Name,
			LogoCompanyURL: j.Company.LogoCompanyURL,
		}
	}
}

func (r *JobRepo) Create(ctx context.Context, j *domain.Job) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(j).Error)
}

func (r *JobRepo) FindByID(ctx context.Context, id uint) (*domain.Job, error) {
	var j domain.Job
	err := r.db.WithContext(ctx).Preload("Company", companyBrief).First(&j, id).Error
	if err == nil {
		withCompanyInfo(&j)
	}
	return notFound(&j, err)
}

func (r *JobRepo) IDsByCompany(ctx context.Context, companyID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.Job{}).Where("company_id = ?", companyID).Order("id").Pluck("id", &ids).Error
	return ids, err
}

func (r *JobRepo) List(ctx context.Context, f domain.JobFilter) ([]domain.Job, int64, error) {
	f.ListOptions = f.Normalize()
	q := r.db.WithContext(ctx).Model(&domain.Job{})
	if f.Search != "" {
		like := likeLower(f.Search)
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(requirements) LIKE ?)", like, like, like)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", likeLower(f.Location))
	}
	if f.CompanyID != 0 {
		q = q.Where("company_id = ?", f.CompanyID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Level != "" {
		q = q.Where("level = ?", f.Level)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	out := make([]domain.Job, 0, f.Limit)
	err := q.Preload("Company", companyBrief).Order("id DESC").Offset(f.Offset()).Limit(f.Limit).Find(&out).Error
	for i := range out {
		withCompanyInfo(&out[i])
	}
	return out, total, err
}

func (r *JobRepo) Update(ctx context.Context, j *domain.Job) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(j).Error)
}

func (r *JobRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Job{}, id).Error
}
