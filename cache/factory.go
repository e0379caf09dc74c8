package cache

import (
	"fmt"
	"log"
	"time"

	"github.com/space458/gallery-backend/cache/redis"
	"github.com/space458/gallery-backend/cache/ristretto"
	"github.com/space458/gallery-backend/cache/types"
	"github.com/space458/gallery-backend/config"
)

// Ristretto 默认参数，面向图片字节缓存
const (
	defaultNumCounters = 1e6
	defaultMaxCost     = 256 << 20 // 256 MB
	defaultBufferItems = 64
)

// New 按配置创建缓存实例
func New(cfg *config.Config) (types.Cache, error) {
	switch cfg.CacheType {
	case "memory", "":
		return ristretto.NewRistretto(ristretto.Config{
			NumCounters: defaultNumCounters,
			MaxCost:     defaultMaxCost,
			BufferItems: defaultBufferItems,
		})
	case "redis":
		return redis.NewRedis(cfg.CacheRedisAddr, cfg.CacheRedisPassword, cfg.CacheRedisDB)
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.CacheType)
	}
}

// MustNew 创建缓存实例，redis 不可用时回退到内存缓存
func MustNew(cfg *config.Config) types.Cache {
	c, err := New(cfg)
	if err != nil {
		log.Printf("[cache] %s cache unavailable (%v), falling back to memory", cfg.CacheType, err)
		c, err = ristretto.NewRistretto(ristretto.Config{
			NumCounters: defaultNumCounters,
			MaxCost:     defaultMaxCost,
			BufferItems: defaultBufferItems,
		})
		if err != nil {
			log.Fatalf("[cache] failed to initialize memory cache: %v", err)
		}
	}
	return c
}

// ImageTTL 返回图片缓存过期时间
func ImageTTL(cfg *config.Config) time.Duration {
	if cfg.CacheImageTTL <= 0 {
		return time.Hour
	}
	return time.Duration(cfg.CacheImageTTL) * time.Second
}

// ImageKey 构造图片缓存键
func ImageKey(kind string, id uint, variant string) string {
	if variant == "" {
		return fmt.Sprintf("image:%s:%d", kind, id)
	}
	return fmt.Sprintf("image:%s:%d:%s", kind, id, variant)
}
