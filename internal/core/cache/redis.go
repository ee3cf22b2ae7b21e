package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache 读穿缓存；nil *Cache 表示未启用，直接回源
type Cache struct {
	RDB *redis.Client
	TTL time.Duration
	sf  singleflight.Group
}

func New(addr, pass string, db int, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	return NewFromClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), ttl)
}

func NewFromClient(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{RDB: rdb, TTL: ttl}
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.RDB.Close()
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil {
		return load(ctx)
	}
	if ttl <= 0 {
		ttl = c.TTL
	}
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	// 同 key 并发回源合并
	v, err, _ := c.sf.Do(key, func() (any, error) {
		ver, verErr := c.RDB.Get(ctx, verKey(key)).Int64()
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if verErr == nil || errors.Is(verErr, redis.Nil) {
			c.store(ctx, key, ver, b, ttl)
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// store 版本号没变才回写；回源期间有 Del 就放弃，免得旧值盖回去
func (c *Cache) store(ctx context.Context, key string, ver int64, b []byte, ttl time.Duration) {
	vk := verKey(key)
	_ = c.RDB.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, vk).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != ver {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, b, ttl)
			return nil
		})
		return err
	}, vk)
}

// Del 写路径失效，redis 出错也不影响主流程。
// 先递增版本号，让正在回源的读放弃回写
func (c *Cache) Del(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	verTTL := c.TTL
	if verTTL < time.Hour {
		verTTL = time.Hour
	}
	_, _ = c.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range keys {
			p.Incr(ctx, verKey(k))
			p.Expire(ctx, verKey(k), verTTL)
		}
		p.Del(ctx, keys...)
		return nil
	})
}

func verKey(key string) string { return key + ":ver" }
