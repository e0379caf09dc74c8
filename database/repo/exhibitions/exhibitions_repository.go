package exhibitions

import (
	"context"
	"errors"

	"github.com/space458/gallery-backend/database/models"
	"gorm.io/gorm"
)

var (
	// ErrExhibitionNotFound 展览不存在错误
	ErrExhibitionNotFound = errors.New("exhibition not found")
	// ErrImageNotFound 附属图片不存在错误
	ErrImageNotFound = errors.New("exhibition image not found")
)

// Repository 展览仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建展览仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 创建展览及其附属图片（同一事务）
func (r *Repository) Create(ctx context.Context, exhibition *models.Exhibition) error {
	return r.db.WithContext(ctx).Create(exhibition).Error
}

// GetByID 通过 ID 获取展览，附属图片按 Position 升序预加载
func (r *Repository) GetByID(ctx context.Context, id uint) (*models.Exhibition, error) {
	var exhibition models.Exhibition
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&exhibition, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExhibitionNotFound
		}
		return nil, err
	}
	return &exhibition, nil
}

// List 获取全部展览，按开始日期降序
func (r *Repository) List(ctx context.Context) ([]*models.Exhibition, error) {
	var exhibitions []*models.Exhibition
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Order("start_date desc").
		Find(&exhibitions).Error
	return exhibitions, err
}

// Update 保存展览主行
func (r *Repository) Update(ctx context.Context, exhibition *models.Exhibition) error {
	return r.db.WithContext(ctx).Omit("Images").Save(exhibition).Error
}

// ReplaceImages 替换展览全部附属图片（同一事务）
func (r *Repository) ReplaceImages(ctx context.Context, exhibitionID uint, images []models.ExhibitionImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("exhibition_id = ?", exhibitionID).
			Delete(&models.ExhibitionImage{}).Error; err != nil {
			return err
		}
		if len(images) == 0 {
			return nil
		}
		for i := range images {
			images[i].ExhibitionID = exhibitionID
		}
		return tx.Create(&images).Error
	})
}

// GetImage 按序号获取附属图片
func (r *Repository) GetImage(ctx context.Context, exhibitionID uint, position int) (*models.ExhibitionImage, error) {
	var image models.ExhibitionImage
	err := r.db.WithContext(ctx).
		Where("exhibition_id = ? AND position = ?", exhibitionID, position).
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

// Delete 删除展览及其附属图片（硬删除，同一事务）
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("exhibition_id = ?", id).
			Delete(&models.ExhibitionImage{}).Error; err != nil {
			return err
		}
		result := tx.Unscoped().Delete(&models.Exhibition{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrExhibitionNotFound
		}
		return nil
	})
}
