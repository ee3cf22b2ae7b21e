package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/auth"
	"go-gin-jobboard/internal/core/logger"
	"go-gin-jobboard/internal/core/metrics"
	"go-gin-jobboard/internal/domain"
	"go-gin-jobboard/pkg/utils"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	FullName string `json:"fullName" binding:"max=255"`
	RoleName string `json:"roleName" binding:"omitempty,oneof=employer jobseeker admin"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

var (
	errEmailExists     = domain.Conflict("Email already exists")
	errRoleNotFound    = domain.NotFound("Role not found")
	errBadCredentials  = domain.Unauthorized("Invalid email or password")
	errUserNotFound    = domain.NotFound("User not found")
	errTokenExpired    = domain.Unauthorized("Token has expired")
	errTokenInvalid    = domain.Unauthorized("Invalid token")
	errTokenUserAbsent = domain.Unauthorized("User not found")
)

// 未知邮箱也跑一次 bcrypt，响应耗时和密码错误时一致
var dummyHash = sync.OnceValue(func() string {
	h, _ := utils.HashPassword("not-a-real-password")
	return h
})

type AuthService struct {
	store domain.Store
	jwt   *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(store domain.Store, jwt *auth.JWTer, l *zap.Logger) *AuthService {
	return &AuthService{store: store, jwt: jwt, log: l.Named("auth")}
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (u *domain.User, err error) {
	defer func() { metrics.RegisterTotal.WithLabelValues(metrics.Status(err)).Inc() }()

	email := normalizeEmail(in.Email)
	existing, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errEmailExists
	}

	roleName := in.RoleName
	if roleName == "" {
		roleName = domain.RoleJobseeker
	}
	role, err := s.store.Roles().FindByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, errRoleNotFound
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u = &domain.User{Email: email, PasswordHash: hash, RoleID: role.ID}
	fullName := strings.TrimSpace(in.FullName)

	err = s.store.Tx(ctx, func(tx domain.Store) error {
		if err := tx.Users().Create(ctx, u); err != nil {
			return err
		}
		if role.Name == domain.RoleJobseeker && fullName != "" {
			return tx.Profiles().Create(ctx, &domain.UserProfile{UserID: u.ID, FullName: fullName})
		}
		return nil
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, errEmailExists
	}
	if err != nil {
		return nil, err
	}
	u.Role = role
	logger.FromContext(ctx, s.log).Info("user registered", zap.Uint("user_id", u.ID), zap.String("role", role.Name))
	return u, nil
}

// Login 邮箱不存在和密码错误返回同一个错误
func (s *AuthService) Login(ctx context.Context, in LoginInput) (res *LoginResult, err error) {
	defer func() { metrics.LoginTotal.WithLabelValues(metrics.Status(err)).Inc() }()

	u, err := s.store.Users().FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		utils.CheckPassword(in.Password, dummyHash())
		return nil, errBadCredentials
	}
	if !utils.CheckPassword(in.Password, u.PasswordHash) {
		return nil, errBadCredentials
	}

	token, err := s.jwt.Issue(u.ID, u.Email, u.RoleID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: u}, nil
}

// Identify 校验 token 并加载当前用户（带 role）
func (s *AuthService) Identify(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return nil, errTokenExpired
	case err != nil:
		return nil, errTokenInvalid
	}
	u, err := s.store.Users().FindByID(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errTokenUserAbsent
	}
	return u, nil
}
