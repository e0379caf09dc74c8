package media

import (
	"errors"
	"fmt"

	"github.com/space458/gallery-backend/utils/format"
)

var (
	// ErrUnsupportedType 不支持的文件类型错误
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrFileTooLarge 文件超过大小上限错误
	ErrFileTooLarge = errors.New("file too large")
)

// allowedMimeTypes 允许上传的图片类型
// 以客户端声明的 Content-Type 为准，转码阶段解码失败会再次拦截
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ValidateUpload 校验上传文件的类型和大小
// size 等于上限时放行
func ValidateUpload(mimeType string, size, maxSize int64) error {
	if !allowedMimeTypes[mimeType] {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}

	if size > maxSize {
		return fmt.Errorf("%w: %s exceeds limit of %s",
			ErrFileTooLarge, format.HumanReadableSize(size), format.HumanReadableSize(maxSize))
	}

	return nil
}
