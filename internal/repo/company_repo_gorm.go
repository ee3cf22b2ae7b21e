package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-jobboard/internal/domain"
)

type CompanyRepo struct{ db *gorm.DB }

func NewCompanyRepo(db *gorm.DB) *CompanyRepo { return &CompanyRepo{db: db} }

func (r *CompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

func (r *CompanyRepo) FindByID(ctx context.Context, id uint) (*domain.Company, error) {
	var c domain.Company
	return notFound(&c, r.db.WithContext(ctx).First(&c, id).Error)
}

func (r *CompanyRepo) FindByUserID(ctx context.Context, userID uint) (*domain.Company, error) {
	var c domain.Company
	return notFound(&c, r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error)
}

// FindByName 导入时按名称复用公司，同名取最早一条
func (r *CompanyRepo) FindByName(ctx context.Context, name string) (*domain.Company, error) {
	var c domain.Company
	return notFound(&c, r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&c).Error)
}

func (r *CompanyRepo) List(ctx context.Context, f domain.CompanyFilter) ([]domain.Company, int64, error) {
	f.ListOptions = f.Normalize()
	q := r.db.WithContext(ctx).Model(&domain.Company{})
	if f.Search != "" {
		like := likeLower(f.Search)
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}
	if f.Type != "" {
		q = q.Where("LOWER(type) LIKE ?", likeLower(f.Type))
	}
	if f.Size != "" {
		q = q.Where("size = ?", f.Size)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	out := make([]domain.Company, 0, f.Limit)
	err := q.Order("id DESC").Offset(f.Offset()).Limit(f.Limit).Find(&out).Error
	return out, total, err
}

func (r *CompanyRepo) Update(ctx context.Context, c *domain.Company) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error)
}

func (r *CompanyRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Company{}, id).Error
}
