package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/space458/gallery-backend/cache/types"
)

// Redis 实现 types.Cache 接口
type Redis struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedis 创建 Redis 实例
func NewRedis(addr, password string, db int) (types.Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return &Redis{
		client: client,
		ctx:    ctx,
	}, nil
}

// Set 设置缓存项
// []byte 原样写入，其余序列化为 JSON
func (r *Redis) Set(key string, value interface{}, expiration time.Duration) error {
	var data []byte
	if b, ok := value.([]byte); ok {
		data = b
	} else {
		var err error
		data, err = json.Marshal(value)
		if err != nil {
			return err
		}
	}

	return r.client.Set(r.ctx, key, data, expiration).Err()
}

// Get 获取缓存项
func (r *Redis) Get(key string, dest interface{}) error {
	data, err := r.client.Get(r.ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return types.ErrCacheMiss
		}
		return err
	}

	if ptr, ok := dest.(*[]byte); ok {
		*ptr = data
		return nil
	}

	return json.Unmarshal(data, dest)
}

// Delete 删除缓存项
func (r *Redis) Delete(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

// Exists 检查缓存项是否存在
func (r *Redis) Exists(key string) (bool, error) {
	exists, err := r.client.Exists(r.ctx, key).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Close 关闭缓存连接
func (r *Redis) Close() error {
	return r.client.Close()
}
