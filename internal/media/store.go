package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/space458/gallery-backend/storage"
)

// ErrNoContent 实体没有关联图片字节
var ErrNoContent = errors.New("no media content")

// Stored 保存结果，按存储策略恰有一侧有值
// blob 策略填 Data，文件策略填 Path
type Stored struct {
	Path     string
	Data     []byte
	MimeType string
}

// Store 媒体存取层
// provider 为 nil 时走 blob 策略，图片字节随实体行入库
type Store struct {
	provider storage.Provider
}

// NewStore 创建媒体存取层
func NewStore(provider storage.Provider) *Store {
	return &Store{provider: provider}
}

// Blob 返回是否为 blob 策略
func (s *Store) Blob() bool {
	return s.provider == nil
}

// Save 转码后保存图片
func (s *Store) Save(ctx context.Context, kind Kind, processed *Processed) (*Stored, error) {
	if s.provider == nil {
		return &Stored{
			Data:     processed.Data,
			MimeType: processed.MimeType,
		}, nil
	}

	identifier := fmt.Sprintf("%s/%s.webp", kind, uuid.NewString())
	if err := s.provider.SaveWithContext(ctx, identifier, bytes.NewReader(processed.Data)); err != nil {
		return nil, fmt.Errorf("failed to save media file: %w", err)
	}

	return &Stored{
		Path:     identifier,
		MimeType: processed.MimeType,
	}, nil
}

// Open 按实体行里的路径或字节取出图片内容
func (s *Store) Open(ctx context.Context, path string, data []byte) ([]byte, error) {
	if len(data) > 0 {
		return data, nil
	}

	if path == "" || s.provider == nil {
		return nil, ErrNoContent
	}

	stream, err := s.provider.GetWithContext(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoContent
		}
		return nil, err
	}
	defer stream.Close()

	content, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read media file '%s': %w", path, err)
	}
	return content, nil
}

// Remove 删除图片文件
// blob 策略和已不存在的文件都视为成功
func (s *Store) Remove(ctx context.Context, path string) error {
	if s.provider == nil || path == "" {
		return nil
	}
	return s.provider.DeleteWithContext(ctx, path)
}
