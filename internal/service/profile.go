package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/config"
	"go-gin-jobboard/internal/core/logger"
	"go-gin-jobboard/internal/core/storage"
	"go-gin-jobboard/internal/domain"
)

type ProfileInput struct {
	FullName   *string `json:"full_name" form:"full_name" binding:"omitempty,max=255"`
	Phone      *string `json:"phone" form:"phone" binding:"omitempty,max=20"`
	Address    *string `json:"address" form:"address" binding:"omitempty,max=500"`
	DOB        *string `json:"dob" form:"dob" binding:"omitempty,datetime=2006-01-02"`
	Skills     *string `json:"skills" form:"skills" binding:"omitempty,max=5000"`
	Experience *string `json:"experience" form:"experience" binding:"omitempty,max=5000"`
	Education  *string `json:"education" form:"education" binding:"omitempty,max=5000"`
}

func (in ProfileInput) apply(p *domain.UserProfile) error {
	for _, f := range []struct {
		dst *string
		v   *string
	}{
		{&p.FullName, in.FullName}, {&p.Phone, in.Phone}, {&p.Address, in.Address},
		{&p.Skills, in.Skills}, {&p.Experience, in.Experience}, {&p.Education, in.Education},
	} {
		if f.v != nil {
			*f.dst = strings.TrimSpace(*f.v)
		}
	}
	if in.DOB != nil {
		d, err := parseDate(*in.DOB)
		if err != nil {
			return domain.BadRequest("Date of birth must be a valid date (YYYY-MM-DD)")
		}
		p.DOB = d
	}
	return nil
}

// ProfileFiles multipart 里的 avatar / cv
type ProfileFiles struct {
	Avatar *File
	CVs    []File
}

var errProfileNotFound = domain.NotFound("Profile not found")

type ProfileService struct {
	store   domain.Store
	files   fileStore
	buckets config.Buckets
	log     *zap.Logger
}

func NewProfileService(store domain.Store, files fileStore, b config.Buckets, l *zap.Logger) *ProfileService {
	return &ProfileService{store: store, files: files, buckets: b, log: l.Named("profile")}
}

// GetMine 第一次访问自动建空档案
func (s *ProfileService) GetMine(ctx context.Context, userID uint) (*domain.UserProfile, error) {
	return ensureProfile(ctx, s.store, userID)
}

func ensureProfile(ctx context.Context, store domain.Store, userID uint) (*domain.UserProfile, error) {
	p, err := store.Profiles().FindByUserID(ctx, userID)
	if err != nil || p != nil {
		return p, err
	}
	p = &domain.UserProfile{UserID: userID}
	err = store.Profiles().Create(ctx, p)
	if errors.Is(err, domain.ErrDuplicate) {
		// 并发请求已经建好
		return store.Profiles().FindByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateMine 头像替换并删旧的；CV 追加到 cv_url 末尾
func (s *ProfileService) UpdateMine(ctx context.Context, userID uint, in ProfileInput, files ProfileFiles) (*domain.UserProfile, error) {
	p, err := s.GetMine(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := in.apply(p); err != nil {
		return nil, err
	}

	l := logger.FromContext(ctx, s.log).With(zap.Uint("user_id", userID))
	prefix := storage.UserPrefix(userID)
	var uploaded []string
	fail := func(err error) (*domain.UserProfile, error) {
		s.files.cleanup(ctx, uploaded...)
		return nil, err
	}

	oldAvatar := p.AvatarURL
	if files.Avatar != nil {
		u, err := s.files.put(ctx, bucketOr(s.buckets.Avatars, s.buckets.Default), prefix, files.Avatar)
		if err != nil {
			return fail(err)
		}
		uploaded = append(uploaded, u)
		p.AvatarURL = u
	}

	var lastPDF *File
	for i := range files.CVs {
		f := &files.CVs[i]
		u, err := s.files.put(ctx, bucketOr(s.buckets.Resumes, s.buckets.Default), prefix, f)
		if err != nil {
			return fail(err)
		}
		uploaded = append(uploaded, u)
		p.CVURL = append(p.CVURL, u)
		if f.IsPDF() {
			lastPDF = f
		}
	}
	if lastPDF != nil {
		text, err := extractPDFText(lastPDF.Data, CVTextLimit)
		if err != nil {
			l.Warn("cv text extraction failed", zap.String("file", lastPDF.Name), zap.Error(err))
		} else {
			p.CVText = text
		}
	}

	if err := s.store.Profiles().Update(ctx, p); err != nil {
		return fail(err)
	}
	if files.Avatar != nil && oldAvatar != "" {
		s.files.cleanup(ctx, oldAvatar)
	}
	return p, nil
}

// GetByUserID 查看他人档案，不自动创建
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*domain.UserProfile, error) {
	p, err := s.store.Profiles().FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errProfileNotFound
	}
	return p, nil
}

func (s *ProfileService) DeleteMine(ctx context.Context, userID uint) error {
	p, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	s.files.cleanup(ctx, append([]string{p.AvatarURL}, p.CVURL...)...)
	return s.store.Profiles().Delete(ctx, p.ID)
}
