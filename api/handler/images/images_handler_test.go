package images

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/space458/gallery-backend/database/models"
	bannersrepo "github.com/space458/gallery-backend/database/repo/banners"
	exhibitionsrepo "github.com/space458/gallery-backend/database/repo/exhibitions"
	newsrepo "github.com/space458/gallery-backend/database/repo/news"
	"github.com/space458/gallery-backend/internal/media"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupImageRouter 构建 blob 策略下的图片路由
func setupImageRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Banner{}, &models.Exhibition{}, &models.ExhibitionImage{}, &models.News{}))

	handler := NewHandler(
		bannersrepo.NewRepository(db),
		exhibitionsrepo.NewRepository(db),
		newsrepo.NewRepository(db),
		media.NewStore(nil),
		nil,
		time.Minute,
	)

	router := gin.New()
	router.GET("/api/images/banners/:id", handler.ServeBanner)
	router.GET("/api/images/exhibitions/:id", handler.ServeExhibition)
	router.GET("/api/images/news/:id", handler.ServeNews)
	return router, db
}

// TestServeBanner_Blob blob 字节直接输出，带长期缓存头
func TestServeBanner_Blob(t *testing.T) {
	router, db := setupImageRouter(t)

	banner := &models.Banner{Title: "main", ImageData: []byte("webp-bytes"), ImageMimeType: "image/webp"}
	assert.NoError(t, db.Create(banner).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/images/banners/%d", banner.ID), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/webp", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000, immutable", w.Header().Get("Cache-Control"))
	assert.Equal(t, "webp-bytes", w.Body.String())
}

// TestServeBanner_NotFound 实体缺失和字节缺失都返回 404
func TestServeBanner_NotFound(t *testing.T) {
	router, db := setupImageRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/images/banners/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 行存在但没有图片字节
	banner := &models.Banner{Title: "empty"}
	assert.NoError(t, db.Create(banner).Error)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/images/banners/%d", banner.ID), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/images/banners/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestServeExhibition_Variants type 缺省取海报，数字取附属图片
func TestServeExhibition_Variants(t *testing.T) {
	router, db := setupImageRouter(t)

	exhibition := &models.Exhibition{
		Title:       "경계의 확장",
		Artist:      "김예진",
		StartDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Description: "desc",
		PosterData:  []byte("poster-bytes"),
		Images: []models.ExhibitionImage{
			{Position: 0, Data: []byte("gallery-0")},
			{Position: 1, Data: []byte("gallery-1")},
		},
	}
	assert.NoError(t, db.Create(exhibition).Error)

	// 缺省 poster
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/images/exhibitions/%d", exhibition.ID), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "poster-bytes", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/images/exhibitions/%d?type=poster", exhibition.ID), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "poster-bytes", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/images/exhibitions/%d?type=1", exhibition.ID), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gallery-1", w.Body.String())

	// 不存在的位置
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/images/exhibitions/%d?type=5", exhibition.ID), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 非法 type
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/images/exhibitions/%d?type=cover", exhibition.ID), nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestServeNews_Blob 新闻图片输出
func TestServeNews_Blob(t *testing.T) {
	router, db := setupImageRouter(t)

	item := &models.News{
		Title: "notice", Content: "c", Type: models.NewsTypeNotice, Date: time.Now(),
		ImageData: []byte("news-bytes"), ImageMimeType: "image/webp",
	}
	assert.NoError(t, db.Create(item).Error)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/images/news/%d", item.ID), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "news-bytes", w.Body.String())
	assert.Equal(t, "public, max-age=31536000, immutable", w.Header().Get("Cache-Control"))
}
