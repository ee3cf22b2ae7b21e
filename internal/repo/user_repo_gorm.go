package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-jobboard/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error)
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	return notFound(&u, r.db.WithContext(ctx).Preload("Role").First(&u, id).Error)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	return notFound(&u, r.db.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&u).Error)
}

func (r *UserRepo) List(ctx context.Context, f domain.UserFilter) ([]domain.User, int64, error) {
	f.ListOptions = f.Normalize()
	q := r.db.WithContext(ctx).Model(&domain.User{})
	if f.Search != "" {
		q = q.Where("LOWER(email) LIKE ?", likeLower(f.Search))
	}
	if f.RoleID != 0 {
		q = q.Where("role_id = ?", f.RoleID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	users := make([]domain.User, 0, f.Limit)
	err := q.Preload("Role").Order("created_at DESC").Order("id DESC").
		Offset(f.Offset()).Limit(f.Limit).Find(&users).Error
	return users, total, err
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error)
}

func (r *UserRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.User{}, id).Error
}
