package gallery

import (
	"context"
	"errors"

	"github.com/space458/gallery-backend/database/models"
	"gorm.io/gorm"
)

// Repository 画廊信息仓库，单行记录
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建画廊信息仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get 获取画廊信息，不存在时返回 nil
func (r *Repository) Get(ctx context.Context) (*models.GalleryInfo, error) {
	var info models.GalleryInfo
	err := r.db.WithContext(ctx).First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// Upsert 更新或创建画廊信息
func (r *Repository) Upsert(ctx context.Context, info *models.GalleryInfo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.GalleryInfo
		err := tx.First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(info).Error
			}
			return err
		}

		info.ID = existing.ID
		info.CreatedAt = existing.CreatedAt
		return tx.Save(info).Error
	})
}
