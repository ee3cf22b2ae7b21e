package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/config"
)

// Client minio 封装，进程级单例，启动时创建
type Client struct {
	mc      *minio.Client
	urls    URLBuilder
	region  string
	buckets []string
}

func New(c config.Storage) (*Client, error) {
	endpoint := c.Endpoint
	if c.Port > 0 && !strings.Contains(endpoint, ":") {
		endpoint = fmt.Sprintf("%s:%d", endpoint, c.Port)
	}
	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
		Region: c.Region,
	})
	if err != nil {
		return nil, err
	}
	return &Client{
		mc:      mc,
		urls:    NewURLBuilder(c.PublicURL, endpoint, c.UseSSL),
		region:  c.Region,
		buckets: []string{c.Buckets.Default, c.Buckets.Avatars, c.Buckets.Resumes, c.Buckets.Logos},
	}, nil
}

// publicReadPolicy 匿名只读，头像/logo/CV 直接用 url 访问
func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

// EnsureBuckets 不存在就建，并设置公开读
func (c *Client) EnsureBuckets(ctx context.Context, l *zap.Logger) error {
	for _, b := range c.buckets {
		if b == "" {
			continue
		}
		exists, err := c.mc.BucketExists(ctx, b)
		if err != nil {
			return fmt.Errorf("bucket %s: %w", b, err)
		}
		if !exists {
			if err := c.mc.MakeBucket(ctx, b, minio.MakeBucketOptions{Region: c.region}); err != nil {
				return fmt.Errorf("make bucket %s: %w", b, err)
			}
			l.Info("bucket created", zap.String("bucket", b))
		}
		if err := c.mc.SetBucketPolicy(ctx, b, publicReadPolicy(b)); err != nil {
			return fmt.Errorf("bucket policy %s: %w", b, err)
		}
	}
	return nil
}

func (c *Client) Upload(ctx context.Context, bucket, object string, data []byte, contentType string) (string, error) {
	_, err := c.mc.PutObject(ctx, bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return c.urls.URL(bucket, object), nil
}

func (c *Client) Delete(ctx context.Context, rawURL string) error {
	bucket, object, err := c.urls.Parse(rawURL)
	if err != nil {
		return err
	}
	return c.mc.RemoveObject(ctx, bucket, object, minio.RemoveObjectOptions{})
}
