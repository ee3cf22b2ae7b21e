package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/cache"
	"go-gin-jobboard/internal/core/logger"
	"go-gin-jobboard/internal/domain"
	"go-gin-jobboard/pkg/utils"
)

type UserCreateInput struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	RoleID   uint   `json:"role_id" binding:"required,min=1"`
	FullName string `json:"full_name" binding:"max=255"`
}

type UserUpdateInput struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
	RoleID   *uint   `json:"role_id" binding:"omitempty,min=1"`
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
}

// UserService 管理员用的用户 CRUD
type UserService struct {
	store domain.Store
	files fileStore
	cache *cache.Cache
	log   *zap.Logger
}

func NewUserService(store domain.Store, files fileStore, c *cache.Cache, l *zap.Logger) *UserService {
	return &UserService{store: store, files: files, cache: c, log: l.Named("user")}
}

func (s *UserService) role(ctx context.Context, id uint) (*domain.Role, error) {
	r, err := s.store.Roles().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errRoleNotFound
	}
	return r, nil
}

func (s *UserService) Create(ctx context.Context, in UserCreateInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	existing, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errEmailExists
	}
	role, err := s.role(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{Email: email, PasswordHash: hash, RoleID: role.ID}
	fullName := strings.TrimSpace(in.FullName)
	err = s.store.Tx(ctx, func(tx domain.Store) error {
		if err := tx.Users().Create(ctx, u); err != nil {
			return err
		}
		if fullName == "" {
			return nil
		}
		u.Profile = &domain.UserProfile{UserID: u.ID, FullName: fullName}
		return tx.Profiles().Create(ctx, u.Profile)
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, errEmailExists
	}
	if err != nil {
		return nil, err
	}
	u.Role = role
	return u, nil
}

func (s *UserService) List(ctx context.Context, f domain.UserFilter) (domain.Page[domain.User], error) {
	f.ListOptions = f.Normalize()
	rows, total, err := s.store.Users().List(ctx, f)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}
	return domain.NewPage(rows, f.ListOptions, total), nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errUserNotFound
	}
	if u.Profile, err = s.store.Profiles().FindByUserID(ctx, id); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id uint, in UserUpdateInput) (*domain.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != u.Email {
			other, err := s.store.Users().FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, errEmailExists
			}
			u.Email = email
		}
	}
	if in.RoleID != nil && *in.RoleID != u.RoleID {
		role, err := s.role(ctx, *in.RoleID)
		if err != nil {
			return nil, err
		}
		u.RoleID, u.Role = role.ID, role
	}
	if in.Password != nil {
		if u.PasswordHash, err = utils.HashPassword(*in.Password); err != nil {
			return nil, err
		}
	}

	err = s.store.Tx(ctx, func(tx domain.Store) error {
		if err := tx.Users().Update(ctx, u); err != nil {
			return err
		}
		if in.FullName == nil {
			return nil
		}
		if u.Profile == nil {
			u.Profile = &domain.UserProfile{UserID: u.ID, FullName: strings.TrimSpace(*in.FullName)}
			return tx.Profiles().Create(ctx, u.Profile)
		}
		u.Profile.FullName = strings.TrimSpace(*in.FullName)
		return tx.Profiles().Update(ctx, u.Profile)
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, errEmailExists
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Delete 外键级联删档案/公司/投递，存储里的文件尽力清理
func (s *UserService) Delete(ctx context.Context, id uint) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	var urls, keys []string
	if u.Profile != nil {
		urls = append(urls, u.Profile.AvatarURL)
		urls = append(urls, u.Profile.CVURL...)
	}
	c, err := s.store.Companies().FindByUserID(ctx, id)
	if err != nil {
		return err
	}
	if c != nil {
		urls = append(urls, c.LogoCompanyURL)
		if keys, err = companyKeys(ctx, s.store, c.ID); err != nil {
			return err
		}
	}

	if err := s.store.Users().Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Del(ctx, keys...)
	logger.FromContext(ctx, s.log).Info("user deleted", zap.Uint("user_id", id), zap.Int("objects", len(urls)))
	s.files.cleanup(ctx, urls...)
	return nil
}
