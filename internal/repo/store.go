package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"go-gin-jobboard/internal/domain"
)

// Store gorm 版 domain.Store
type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Roles() domain.RoleRepository               { return NewRoleRepo(s.db) }
func (s *Store) Users() domain.UserRepository               { return NewUserRepo(s.db) }
func (s *Store) Profiles() domain.ProfileRepository         { return NewProfileRepo(s.db) }
func (s *Store) Companies() domain.CompanyRepository        { return NewCompanyRepo(s.db) }
func (s *Store) Jobs() domain.JobRepository                 { return NewJobRepo(s.db) }
func (s *Store) Applications() domain.ApplicationRepository { return NewApplicationRepo(s.db) }

func (s *Store) Tx(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// translate 唯一冲突统一成 domain.ErrDuplicate
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDupKey(err) {
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	}
	return err
}

func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

// notFound First 查不到时返回 (nil, nil)
func notFound[T any](v *T, err error) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// likeLower 大小写无关的子串匹配，postgres/mysql/sqlite 通用
func likeLower(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
