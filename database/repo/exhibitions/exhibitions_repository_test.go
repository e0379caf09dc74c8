package exhibitions

import (
	"context"
	"fmt"
	"testing"
	"time"

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

	err = db.AutoMigrate(&models.Exhibition{}, &models.ExhibitionImage{})
	assert.NoError(t, err)

	return db
}

func newExhibition(title string, start time.Time) *models.Exhibition {
	return &models.Exhibition{
		Title:       title,
		Artist:      "김예진",
		StartDate:   start,
		EndDate:     start.AddDate(0, 1, 0),
		Description: "desc",
	}
}

func TestExhibitionRepository_CreateWithImages(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	exhibition := newExhibition("경계의 확장", time.Now())
	exhibition.Images = []models.ExhibitionImage{
		{Position: 0, Data: []byte("img0"), MimeType: "image/webp"},
		{Position: 1, Data: []byte("img1"), MimeType: "image/webp"},
	}

	assert.NoError(t, repo.Create(ctx, exhibition))
	assert.NotZero(t, exhibition.ID)

	got, err := repo.GetByID(ctx, exhibition.ID)
	assert.NoError(t, err)
	assert.Len(t, got.Images, 2)
	assert.Equal(t, 0, got.Images[0].Position)
	assert.Equal(t, 1, got.Images[1].Position)
}

// TestExhibitionRepository_List 测试按开始日期降序
func TestExhibitionRepository_List(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	older := newExhibition("older", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := newExhibition("newer", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, repo.Create(ctx, older))
	assert.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Title)
	assert.Equal(t, "older", list[1].Title)
}

// TestExhibitionRepository_ReplaceImages 测试整组替换附属图片
func TestExhibitionRepository_ReplaceImages(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	exhibition := newExhibition("전시", time.Now())
	exhibition.Images = []models.ExhibitionImage{
		{Position: 0, Data: []byte("old")},
	}
	assert.NoError(t, repo.Create(ctx, exhibition))

	err := repo.ReplaceImages(ctx, exhibition.ID, []models.ExhibitionImage{
		{Position: 0, Data: []byte("new0")},
		{Position: 1, Data: []byte("new1")},
	})
	assert.NoError(t, err)

	got, err := repo.GetByID(ctx, exhibition.ID)
	assert.NoError(t, err)
	assert.Len(t, got.Images, 2)
	assert.Equal(t, []byte("new0"), got.Images[0].Data)

	// 替换为空组清掉全部图片
	assert.NoError(t, repo.ReplaceImages(ctx, exhibition.ID, nil))
	got, err = repo.GetByID(ctx, exhibition.ID)
	assert.NoError(t, err)
	assert.Empty(t, got.Images)
}

func TestExhibitionRepository_GetImage(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	exhibition := newExhibition("전시", time.Now())
	exhibition.Images = []models.ExhibitionImage{
		{Position: 0, Data: []byte("a")},
		{Position: 1, Data: []byte("b")},
	}
	assert.NoError(t, repo.Create(ctx, exhibition))

	img, err := repo.GetImage(ctx, exhibition.ID, 1)
	assert.NoError(t, err)
	assert.Equal(t, []byte("b"), img.Data)

	_, err = repo.GetImage(ctx, exhibition.ID, 5)
	assert.ErrorIs(t, err, ErrImageNotFound)
}

// TestExhibitionRepository_Delete 测试删除展览级联清理附属图片
func TestExhibitionRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	exhibition := newExhibition("doomed", time.Now())
	exhibition.Images = []models.ExhibitionImage{{Position: 0, Data: []byte("x")}}
	assert.NoError(t, repo.Create(ctx, exhibition))

	assert.NoError(t, repo.Delete(ctx, exhibition.ID))

	_, err := repo.GetByID(ctx, exhibition.ID)
	assert.ErrorIs(t, err, ErrExhibitionNotFound)

	var count int64
	assert.NoError(t, db.Model(&models.ExhibitionImage{}).Where("exhibition_id = ?", exhibition.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, repo.Delete(ctx, exhibition.ID), ErrExhibitionNotFound)
}
