package banners

import (
	"context"
	"errors"

	"github.com/space458/gallery-backend/database/models"
	"gorm.io/gorm"
)

// ErrBannerNotFound 横幅不存在错误
var ErrBannerNotFound = errors.New("banner not found")

// Repository 横幅仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建横幅仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 创建横幅
func (r *Repository) Create(ctx context.Context, banner *models.Banner) error {
	return r.db.WithContext(ctx).Create(banner).Error
}

// GetByID 通过 ID 获取横幅
func (r *Repository) GetByID(ctx context.Context, id uint) (*models.Banner, error) {
	var banner models.Banner
	err := r.db.WithContext(ctx).First(&banner, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, err
	}
	return &banner, nil
}

// ListActive 获取启用的横幅，按展示顺序升序
func (r *Repository) ListActive(ctx context.Context) ([]*models.Banner, error) {
	var banners []*models.Banner
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("display_order asc").
		Find(&banners).Error
	return banners, err
}

// ListAll 获取全部横幅（管理端），按展示顺序升序
func (r *Repository) ListAll(ctx context.Context) ([]*models.Banner, error) {
	var banners []*models.Banner
	err := r.db.WithContext(ctx).Order("display_order asc").Find(&banners).Error
	return banners, err
}

// Update 保存横幅（整行覆盖，blob 列随行事务写入）
func (r *Repository) Update(ctx context.Context, banner *models.Banner) error {
	return r.db.WithContext(ctx).Save(banner).Error
}

// Delete 删除横幅（硬删除）
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.Banner{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBannerNotFound
	}
	return nil
}
