package banners

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/space458/gallery-backend/cache"
	"github.com/space458/gallery-backend/cache/ristretto"
	"github.com/space458/gallery-backend/cache/types"
	"github.com/space458/gallery-backend/database/models"
	bannersrepo "github.com/space458/gallery-backend/database/repo/banners"
	"github.com/space458/gallery-backend/internal/media"
	"github.com/space458/gallery-backend/storage"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupBannerRouter 构建文件策略下的管理端横幅路由
func setupBannerRouter(t *testing.T) (*gin.Engine, *gorm.DB, *media.Store, types.Cache) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Banner{}))

	provider, err := storage.NewLocalStorage(t.TempDir())
	assert.NoError(t, err)
	store := media.NewStore(provider)

	imageCache, err := ristretto.NewRistretto(ristretto.Config{NumCounters: 1e4, MaxCost: 1 << 20, BufferItems: 64})
	assert.NoError(t, err)
	t.Cleanup(func() { _ = imageCache.Close() })

	handler := NewHandler(bannersrepo.NewRepository(db), store, imageCache, 50<<20)
	router := gin.New()
	router.PUT("/api/admin/banners/:id", handler.Update)
	router.DELETE("/api/admin/banners/:id", handler.Delete)
	return router, db, store, imageCache
}

// seedBannerWithFile 落盘一张图片并建横幅行，预热读缓存
func seedBannerWithFile(t *testing.T, db *gorm.DB, store *media.Store, imageCache types.Cache) *models.Banner {
	stored, err := store.Save(context.Background(), media.KindBanner,
		&media.Processed{Data: []byte("stale-webp"), MimeType: "image/webp"})
	assert.NoError(t, err)

	banner := &models.Banner{Title: "main", Type: models.BannerTypeImage, Active: true,
		ImagePath: stored.Path, ImageMimeType: "image/webp"}
	assert.NoError(t, db.Create(banner).Error)

	assert.NoError(t, imageCache.Set(cache.ImageKey("banners", banner.ID, ""), []byte("stale-webp"), 0))
	return banner
}

// makePNGForm 构造带 title 和 PNG 图片的 multipart 请求体
func makePNGForm(t *testing.T, title string) (*bytes.Buffer, string) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 64, A: 255})
		}
	}
	var pngBuf bytes.Buffer
	assert.NoError(t, png.Encode(&pngBuf, img))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	assert.NoError(t, writer.WriteField("title", title))

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="new.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write(pngBuf.Bytes())
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

// TestDelete_InvalidatesImageCache 删除横幅后缓存里的旧字节被清掉
func TestDelete_InvalidatesImageCache(t *testing.T) {
	router, db, store, imageCache := setupBannerRouter(t)
	banner := seedBannerWithFile(t, db, store, imageCache)
	key := cache.ImageKey("banners", banner.ID, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/admin/banners/%d", banner.ID), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var cached []byte
	assert.True(t, types.IsCacheMiss(imageCache.Get(key, &cached)))
}

// TestUpdate_ReplaceInvalidatesImageCache 替换图片后缓存和旧文件都被清掉
func TestUpdate_ReplaceInvalidatesImageCache(t *testing.T) {
	router, db, store, imageCache := setupBannerRouter(t)
	banner := seedBannerWithFile(t, db, store, imageCache)
	oldPath := banner.ImagePath
	key := cache.ImageKey("banners", banner.ID, "")

	body, contentType := makePNGForm(t, "updated")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/api/admin/banners/%d", banner.ID), body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var cached []byte
	assert.True(t, types.IsCacheMiss(imageCache.Get(key, &cached)))

	var updated models.Banner
	assert.NoError(t, db.First(&updated, banner.ID).Error)
	assert.Equal(t, "updated", updated.Title)
	assert.NotEmpty(t, updated.ImagePath)
	assert.NotEqual(t, oldPath, updated.ImagePath)

	// 旧文件已清理，新文件可读
	_, err := store.Open(context.Background(), oldPath, nil)
	assert.ErrorIs(t, err, media.ErrNoContent)
	content, err := store.Open(context.Background(), updated.ImagePath, nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, content)
}
