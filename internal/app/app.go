package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-jobboard/internal/core/auth"
	"go-gin-jobboard/internal/core/cache"
	"go-gin-jobboard/internal/core/config"
	"go-gin-jobboard/internal/core/database"
	"go-gin-jobboard/internal/core/llm"
	"go-gin-jobboard/internal/core/storage"
	"go-gin-jobboard/internal/repo"
	"go-gin-jobboard/internal/service"
)

// App 进程级依赖，api / admin 两个入口共用
type App struct {
	DB    *gorm.DB
	Store *repo.Store
	Svc   *service.Services
	close []func()
}

func (a *App) Close() {
	for i := len(a.close) - 1; i >= 0; i-- {
		a.close[i]()
	}
}

// OpenDB 连接 + 迁移 + 角色种子
func OpenDB(ctx context.Context, cfg *config.Config, l *zap.Logger) (*gorm.DB, *repo.Store, error) {
	db, err := database.NewGorm(database.OptsFromConfig(cfg.DB, l))
	if err != nil {
		return nil, nil, fmt.Errorf("db open: %w", err)
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx, db, cfg.DB.Migrate, cfg.DB.Driver, cfg.DB.DSN, l); err != nil {
			return nil, nil, err
		}
	}
	store := repo.NewStore(db)
	if err := store.Roles().EnsureDefaults(ctx); err != nil {
		return nil, nil, fmt.Errorf("seed roles: %w", err)
	}
	return db, store, nil
}

// New 构造所有客户端和 service；storage / redis / llm 连不上只告警，不阻止启动
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	db, store, err := OpenDB(ctx, cfg, l)
	if err != nil {
		return nil, err
	}
	a := &App{DB: db, Store: store}
	if sqlDB, err := db.DB(); err == nil {
		a.close = append(a.close, func() { _ = sqlDB.Close() })
	}

	objects, err := storage.New(cfg.Storage)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}
	bctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := objects.EnsureBuckets(bctx, l); err != nil {
		l.Warn("object storage not ready", zap.Error(err))
	}
	cancel()

	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, time.Duration(cfg.Redis.TTLSec)*time.Second)
	if c != nil {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := c.Ping(pctx); err != nil {
			l.Warn("redis unreachable, cache calls will fall through", zap.Error(err))
		}
		cancel()
		a.close = append(a.close, func() { _ = c.Close() })
	}

	completer, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("llm: %w", err)
	}
	if cfg.LLM.APIKey == "" {
		l.Warn("llm api key not set, chatbot endpoints will fail")
	}

	a.Svc = service.New(service.Deps{
		Store:   store,
		Objects: objects,
		Buckets: cfg.Storage.Buckets,
		Cache:   c,
		JWT: &auth.JWTer{
			Secret: []byte(cfg.JWT.Secret),
			Issuer: cfg.JWT.Issuer,
			TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
			Leeway: 30 * time.Second,
		},
		LLM: completer,
		Log: l,
	})
	return a, nil
}
