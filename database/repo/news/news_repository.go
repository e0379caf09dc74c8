package news

import (
	"context"
	"errors"

	"github.com/space458/gallery-backend/database/models"
	"gorm.io/gorm"
)

// ErrNewsNotFound 新闻不存在错误
var ErrNewsNotFound = errors.New("news not found")

// Repository 新闻仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新闻仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 创建新闻
func (r *Repository) Create(ctx context.Context, item *models.News) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID 通过 ID 获取新闻
func (r *Repository) GetByID(ctx context.Context, id uint) (*models.News, error) {
	var item models.News
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return &item, nil
}

// List 获取全部新闻，按日期降序
func (r *Repository) List(ctx context.Context) ([]*models.News, error) {
	var items []*models.News
	err := r.db.WithContext(ctx).Order("date desc").Find(&items).Error
	return items, err
}

// Update 保存新闻
func (r *Repository) Update(ctx context.Context, item *models.News) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete 删除新闻（硬删除）
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.News{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNewsNotFound
	}
	return nil
}
