package ristretto

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/space458/gallery-backend/cache/types"
)

// Ristretto 进程内缓存实现，主要缓存图片字节
type Ristretto struct {
	client *ristretto.Cache
}

// Config Ristretto 配置
type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
}

// NewRistretto 创建 Ristretto 实例
func NewRistretto(config Config) (types.Cache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: config.NumCounters,
		MaxCost:     config.MaxCost,
		BufferItems: config.BufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &Ristretto{
		client: cache,
	}, nil
}

// Set 设置缓存项
// []byte 按实际大小计费，其余按 1 计
func (r *Ristretto) Set(key string, value interface{}, expiration time.Duration) error {
	cost := int64(1)
	if data, ok := value.([]byte); ok {
		cost = int64(len(data))
	}

	if r.client.SetWithTTL(key, value, cost, expiration) {
		r.client.Wait()
	}
	return nil
}

// Get 获取缓存项
func (r *Ristretto) Get(key string, dest interface{}) error {
	value, found := r.client.Get(key)
	if !found {
		return types.ErrCacheMiss
	}

	if ptr, ok := dest.(*[]byte); ok {
		if data, ok := value.([]byte); ok {
			*ptr = data
			return nil
		}
		return types.ErrCacheMiss
	}

	data, err := json.Marshal(value)
	if err != nil {
		return types.ErrCacheMiss
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return types.ErrCacheMiss
	}
	return nil
}

// Delete 删除缓存项
func (r *Ristretto) Delete(key string) error {
	r.client.Del(key)
	return nil
}

// Exists 检查缓存项是否存在
func (r *Ristretto) Exists(key string) (bool, error) {
	_, found := r.client.Get(key)
	return found, nil
}

// Close 关闭缓存连接
func (r *Ristretto) Close() error {
	r.client.Close()
	return nil
}
