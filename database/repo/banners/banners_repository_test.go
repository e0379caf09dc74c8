package banners

import (
	"context"
	"fmt"
	"testing"

	"github.com/space458/gallery-backend/database/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 创建测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.Banner{})
	assert.NoError(t, err)

	return db
}

func TestBannerRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	banner := &models.Banner{
		Title:  "현재 전시",
		Type:   models.BannerTypeImage,
		Active: true,
	}
	err := repo.Create(ctx, banner)
	assert.NoError(t, err)
	assert.NotZero(t, banner.ID)

	got, err := repo.GetByID(ctx, banner.ID)
	assert.NoError(t, err)
	assert.Equal(t, "현재 전시", got.Title)
}

func TestBannerRepository_GetByID_NotFound(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrBannerNotFound)
}

// TestBannerRepository_ListActive 测试公开列表只含启用横幅且按顺序排列
func TestBannerRepository_ListActive(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	assert.NoError(t, repo.Create(ctx, &models.Banner{Title: "second", Type: models.BannerTypeImage, DisplayOrder: 2, Active: true}))
	assert.NoError(t, repo.Create(ctx, &models.Banner{Title: "hidden", Type: models.BannerTypeImage, DisplayOrder: 0, Active: false}))
	assert.NoError(t, repo.Create(ctx, &models.Banner{Title: "first", Type: models.BannerTypeImage, DisplayOrder: 1, Active: true}))

	active, err := repo.ListActive(ctx)
	assert.NoError(t, err)
	assert.Len(t, active, 2)
	assert.Equal(t, "first", active[0].Title)
	assert.Equal(t, "second", active[1].Title)

	all, err := repo.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestBannerRepository_Update(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	banner := &models.Banner{Title: "before", Type: models.BannerTypeImage, Active: true}
	assert.NoError(t, repo.Create(ctx, banner))

	banner.Title = "after"
	banner.Active = false
	assert.NoError(t, repo.Update(ctx, banner))

	got, err := repo.GetByID(ctx, banner.ID)
	assert.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.False(t, got.Active)
}

// TestBannerRepository_Delete 测试硬删除
func TestBannerRepository_Delete(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	banner := &models.Banner{Title: "doomed", Type: models.BannerTypeImage}
	assert.NoError(t, repo.Create(ctx, banner))

	assert.NoError(t, repo.Delete(ctx, banner.ID))

	_, err := repo.GetByID(ctx, banner.ID)
	assert.ErrorIs(t, err, ErrBannerNotFound)

	// 第二次删除报不存在
	assert.ErrorIs(t, repo.Delete(ctx, banner.ID), ErrBannerNotFound)
}
