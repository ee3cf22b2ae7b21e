package repo

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-jobboard/internal/domain"
)

type ProfileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) FindByUserID(ctx context.Context, userID uint) (*domain.UserProfile, error) {
	var p domain.UserProfile
	return notFound(&p, r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error)
}

func (r *ProfileRepo) Create(ctx context.Context, p *domain.UserProfile) error {
	if p.CVURL == nil {
		p.CVURL = datatypes.JSONSlice[string]{}
	}
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *ProfileRepo) Update(ctx context.Context, p *domain.UserProfile) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error)
}

func (r *ProfileRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.UserProfile{}, id).Error
}
