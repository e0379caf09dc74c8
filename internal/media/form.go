package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
)

// ReadFormFile 校验并读取 multipart 文件
// 返回文件内容和声明的 Content-Type
func ReadFormFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	mimeType := fh.Header.Get("Content-Type")
	if err := ValidateUpload(mimeType, fh.Size, maxSize); err != nil {
		return nil, "", err
	}

	file, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// Header.Size 可能与实际不符，读取时再设一道上限
	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, "", fmt.Errorf("%w: upload exceeds limit", ErrFileTooLarge)
	}

	return data, mimeType, nil
}

// IngestFormFile 校验、转码并保存 multipart 文件
func (s *Store) IngestFormFile(ctx context.Context, fh *multipart.FileHeader, kind Kind, maxSize int64) (*Stored, error) {
	data, _, err := ReadFormFile(fh, maxSize)
	if err != nil {
		return nil, err
	}

	processed, err := Process(data, kind)
	if err != nil {
		return nil, err
	}

	return s.Save(ctx, kind, processed)
}
