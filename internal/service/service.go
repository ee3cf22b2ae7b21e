package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/auth"
	"go-gin-jobboard/internal/core/cache"
	"go-gin-jobboard/internal/core/config"
	"go-gin-jobboard/internal/core/llm"
	"go-gin-jobboard/internal/domain"
)

// Deps 进程级依赖，main 里构造一次
type Deps struct {
	Store   domain.Store
	Objects ObjectStore
	Buckets config.Buckets
	Cache   *cache.Cache
	JWT     *auth.JWTer
	LLM     llm.Completer
	Log     *zap.Logger
}

type Services struct {
	Auth         *AuthService
	Companies    *CompanyService
	Jobs         *JobService
	Applications *ApplicationService
	Profiles     *ProfileService
	Users        *UserService
	Chat         *ChatService
}

func New(d Deps) *Services {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	files := fileStore{store: d.Objects, log: d.Log.Named("storage"), now: time.Now}
	return &Services{
		Auth:         NewAuthService(d.Store, d.JWT, d.Log),
		Companies:    NewCompanyService(d.Store, files, bucketOr(d.Buckets.Logos, d.Buckets.Default), d.Cache, d.Log),
		Jobs:         NewJobService(d.Store, d.Cache, d.Log),
		Applications: NewApplicationService(d.Store, d.Log),
		Profiles:     NewProfileService(d.Store, files, d.Buckets, d.Log),
		Users:        NewUserService(d.Store, files, d.Cache, d.Log),
		Chat:         NewChatService(d.Store, d.LLM, d.Log),
	}
}

func bucketOr(b, def string) string {
	if b != "" {
		return b
	}
	return def
}

// str 可选字段取值
func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// companyKeys 公司及其岗位的缓存 key；岗位缓存里带公司摘要，公司变动要一起失效。
// 删除前调用，级联之后就查不到岗位了
func companyKeys(ctx context.Context, store domain.Store, companyID uint) ([]string, error) {
	ids, err := store.Jobs().IDsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, cache.CompanyKey(companyID))
	for _, id := range ids {
		keys = append(keys, cache.JobKey(id))
	}
	return keys, nil
}
