package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-gin-jobboard/internal/core/logger"
	"go-gin-jobboard/internal/core/metrics"
	"go-gin-jobboard/internal/core/storage"
)

// ObjectStore 对象存储，*storage.Client 实现
type ObjectStore interface {
	Upload(ctx context.Context, bucket, object string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, rawURL string) error
}

// File 已读入内存并校验过类型的上传文件
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f *File) IsPDF() bool { return f != nil && f.ContentType == "application/pdf" }

type fileStore struct {
	store ObjectStore
	log   *zap.Logger
	now   func() time.Time
}

func (fs fileStore) put(ctx context.Context, bucket, prefix string, f *File) (string, error) {
	return fs.store.Upload(ctx, bucket, storage.ObjectName(prefix, f.Name, fs.now()), f.Data, f.ContentType)
}

// cleanup 尽力删除，失败只记日志和指标，不影响主流程
func (fs fileStore) cleanup(ctx context.Context, urls ...string) {
	ctx = context.WithoutCancel(ctx)
	l := logger.FromContext(ctx, fs.log)

	var g errgroup.Group
	g.SetLimit(4)
	for _, u := range urls {
		if u == "" {
			continue
		}
		g.Go(func() error {
			if err := fs.store.Delete(ctx, u); err != nil {
				metrics.StorageCleanupFailures.Inc()
				l.Warn("storage cleanup failed", zap.String("url", u), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}
