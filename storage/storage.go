package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/space458/gallery-backend/config"
)

// ErrNotFound 对象不存在错误
var ErrNotFound = errors.New("object not found")

// Provider 媒体文件存储提供者接口
// identifier 为相对路径，形如 "banners/5b8e....webp"
type Provider interface {
	// SaveWithContext 保存文件
	SaveWithContext(ctx context.Context, identifier string, file io.Reader) error

	// GetWithContext 获取文件，调用方负责关闭返回的 reader
	GetWithContext(ctx context.Context, identifier string) (io.ReadCloser, error)

	// DeleteWithContext 删除文件，文件不存在不算错误
	DeleteWithContext(ctx context.Context, identifier string) error

	// Exists 检查文件是否存在
	Exists(ctx context.Context, identifier string) (bool, error)

	// Health 检查存储健康状态
	Health(ctx context.Context) error

	// Name 返回存储名称
	Name() string
}

// NewProvider 按配置创建存储提供者
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.MediaStorage {
	case "local", "":
		return NewLocalStorage(cfg.UploadDir)
	case "minio":
		return newMinioStorage(cfg)
	case "blob":
		// blob 策略不经过文件存储，字节直接写入实体行
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported media storage type: %s", cfg.MediaStorage)
	}
}
