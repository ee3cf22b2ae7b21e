package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-jobboard/internal/domain"
)

type RoleRepo struct{ db *gorm.DB }

func NewRoleRepo(db *gorm.DB) *RoleRepo { return &RoleRepo{db: db} }

func (r *RoleRepo) FindByID(ctx context.Context, id uint) (*domain.Role, error) {
	var role domain.Role
	return notFound(&role, r.db.WithContext(ctx).First(&role, id).Error)
}

func (r *RoleRepo) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	return notFound(&role, r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error)
}

// EnsureDefaults admin/employer/jobseeker 幂等写入
func (r *RoleRepo) EnsureDefaults(ctx context.Context) error {
	for _, name := range domain.DefaultRoles {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
			Create(&domain.Role{Name: name}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
