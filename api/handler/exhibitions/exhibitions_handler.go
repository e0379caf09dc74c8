package exhibitions

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/space458/gallery-backend/api/common"
	"github.com/space458/gallery-backend/cache"
	"github.com/space458/gallery-backend/cache/types"
	"github.com/space458/gallery-backend/database/models"
	exhibitionsrepo "github.com/space458/gallery-backend/database/repo/exhibitions"
	"github.com/space458/gallery-backend/internal/media"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

// Handler 展览处理器
type Handler struct {
	repo       *exhibitionsrepo.Repository
	store      *media.Store
	imageCache types.Cache
	maxBytes   int64
}

// NewHandler 创建展览处理器
func NewHandler(repo *exhibitionsrepo.Repository, store *media.Store, imageCache types.Cache, maxBytes int64) *Handler {
	return &Handler{
		repo:       repo,
		store:      store,
		imageCache: imageCache,
		maxBytes:   maxBytes,
	}
}

type exhibitionView struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Artist      string   `json:"artist"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Status      string   `json:"status"`
	PosterURL   string   `json:"posterUrl,omitempty"`
	ImageURLs   []string `json:"imageUrls"`
	Description string   `json:"description"`
	Curator     string   `json:"curator,omitempty"`
}

func toView(e *models.Exhibition, now time.Time) exhibitionView {
	view := exhibitionView{
		ID:          e.ID,
		Title:       e.Title,
		Artist:      e.Artist,
		StartDate:   e.StartDate.Format(dateLayout),
		EndDate:     e.EndDate.Format(dateLayout),
		Status:      string(e.StatusAt(now)),
		ImageURLs:   make([]string, 0, len(e.Images)),
		Description: e.Description,
		Curator:     e.Curator,
	}
	if e.HasPoster() {
		view.PosterURL = fmt.Sprintf("/api/images/exhibitions/%d?type=poster", e.ID)
	}
	for _, img := range e.Images {
		view.ImageURLs = append(view.ImageURLs,
			fmt.Sprintf("/api/images/exhibitions/%d?type=%d", e.ID, img.Position))
	}
	return view
}

// List 公开接口，按开始日期降序返回展览
func (h *Handler) List(c *gin.Context) {
	exhibitions, err := h.repo.List(c.Request.Context())
	if err != nil {
		log.Printf("[exhibitions] failed to list exhibitions: %v", err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	now := time.Now()
	views := make([]exhibitionView, 0, len(exhibitions))
	for _, e := range exhibitions {
		views = append(views, toView(e, now))
	}
	common.RespondSuccess(c, views)
}

// AdminGet 管理端接口，返回单个展览
func (h *Handler) AdminGet(c *gin.Context) {
	exhibition, ok := h.loadExhibition(c)
	if !ok {
		return
	}
	common.RespondSuccess(c, toView(exhibition, time.Now()))
}

// Create 创建展览（multipart，poster 文件 + images 文件组）
func (h *Handler) Create(c *gin.Context) {
	exhibition := &models.Exhibition{}
	if !h.applyForm(c, exhibition, true) {
		return
	}

	if fh, err := c.FormFile("poster"); err == nil {
		stored, err := h.store.IngestFormFile(c.Request.Context(), fh, media.KindPoster, h.maxBytes)
		if err != nil {
			respondMediaError(c, err)
			return
		}
		exhibition.PosterPath = stored.Path
		exhibition.PosterData = stored.Data
		exhibition.PosterMimeType = stored.MimeType
	}

	images, ok := h.ingestGalleryImages(c)
	if !ok {
		return
	}
	exhibition.Images = images

	if err := h.repo.Create(c.Request.Context(), exhibition); err != nil {
		log.Printf("[exhibitions] failed to create exhibition: %v", err)
		h.removeFiles(c, exhibition.PosterPath, exhibition.Images)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	common.RespondSuccessMessage(c, "Exhibition created", toView(exhibition, time.Now()))
}

// Update 更新展览（multipart，字段缺省保持原值）
// 提交了 images 文件组时整组替换附属图片
func (h *Handler) Update(c *gin.Context) {
	exhibition, ok := h.loadExhibition(c)
	if !ok {
		return
	}
	if !h.applyForm(c, exhibition, false) {
		return
	}

	oldPoster := exhibition.PosterPath
	posterReplaced := false
	if fh, err := c.FormFile("poster"); err == nil {
		stored, err := h.store.IngestFormFile(c.Request.Context(), fh, media.KindPoster, h.maxBytes)
		if err != nil {
			respondMediaError(c, err)
			return
		}
		exhibition.PosterPath = stored.Path
		exhibition.PosterData = stored.Data
		exhibition.PosterMimeType = stored.MimeType
		posterReplaced = true
	}

	if err := h.repo.Update(c.Request.Context(), exhibition); err != nil {
		log.Printf("[exhibitions] failed to update exhibition %d: %v", exhibition.ID, err)
		if posterReplaced {
			_ = h.store.Remove(c.Request.Context(), exhibition.PosterPath)
		}
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if posterReplaced {
		if oldPoster != "" && oldPoster != exhibition.PosterPath {
			if err := h.store.Remove(c.Request.Context(), oldPoster); err != nil {
				log.Printf("[exhibitions] failed to remove old poster %s: %v", oldPoster, err)
			}
		}
		h.invalidateCacheKey(cache.ImageKey("exhibitions", exhibition.ID, "poster"))
	}

	form, err := c.MultipartForm()
	if err == nil && len(form.File["images"]) > 0 {
		images, ok := h.ingestGalleryImages(c)
		if !ok {
			return
		}

		oldImages := exhibition.Images
		if err := h.repo.ReplaceImages(c.Request.Context(), exhibition.ID, images); err != nil {
			log.Printf("[exhibitions] failed to replace images for %d: %v", exhibition.ID, err)
			h.removeFiles(c, "", images)
			common.RespondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		h.removeFiles(c, "", oldImages)
		h.invalidateImageCache(exhibition.ID, max(len(oldImages), len(images)))
		exhibition.Images = images
	}

	common.RespondSuccessMessage(c, "Exhibition updated", toView(exhibition, time.Now()))
}

// Delete 删除展览及其全部图片
func (h *Handler) Delete(c *gin.Context) {
	exhibition, ok := h.loadExhibition(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), exhibition.ID); err != nil {
		if errors.Is(err, exhibitionsrepo.ErrExhibitionNotFound) {
			common.RespondError(c, http.StatusNotFound, "Exhibition not found")
			return
		}
		log.Printf("[exhibitions] failed to delete exhibition %d: %v", exhibition.ID, err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.removeFiles(c, exhibition.PosterPath, exhibition.Images)
	h.invalidateCacheKey(cache.ImageKey("exhibitions", exhibition.ID, "poster"))
	h.invalidateImageCache(exhibition.ID, len(exhibition.Images))
	common.RespondSuccessMessage(c, "Exhibition deleted", nil)
}

// invalidateCacheKey 清掉读缓存里的单个键
func (h *Handler) invalidateCacheKey(key string) {
	if h.imageCache == nil {
		return
	}
	if err := h.imageCache.Delete(key); err != nil {
		log.Printf("[exhibitions] failed to invalidate cache key %s: %v", key, err)
	}
}

// invalidateImageCache 清掉附属图片位置 0..count-1 的缓存键
func (h *Handler) invalidateImageCache(id uint, count int) {
	for position := 0; position < count; position++ {
		h.invalidateCacheKey(cache.ImageKey("exhibitions", id, strconv.Itoa(position)))
	}
}

// ingestGalleryImages 并发转码 images 文件组
// 单张失败只丢弃该张，不影响其余图片
func (h *Handler) ingestGalleryImages(c *gin.Context) ([]models.ExhibitionImage, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, true
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, true
	}

	results := make([]*media.Stored, len(files))
	var mu sync.Mutex

	group, ctx := errgroup.WithContext(c.Request.Context())
	group.SetLimit(4)
	for i, fh := range files {
		i, fh := i, fh
		group.Go(func() error {
			stored, err := h.store.IngestFormFile(ctx, fh, media.KindExhibition, h.maxBytes)
			if err != nil {
				log.Printf("[exhibitions] dropping gallery image %s: %v", fh.Filename, err)
				return nil
			}
			mu.Lock()
			results[i] = stored
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	images := make([]models.ExhibitionImage, 0, len(files))
	for _, stored := range results {
		if stored == nil {
			continue
		}
		images = append(images, models.ExhibitionImage{
			Position: len(images),
			Path:     stored.Path,
			Data:     stored.Data,
			MimeType: stored.MimeType,
		})
	}
	return images, true
}

// removeFiles 清理海报和附属图片文件
func (h *Handler) removeFiles(c *gin.Context, posterPath string, images []models.ExhibitionImage) {
	if posterPath != "" {
		if err := h.store.Remove(c.Request.Context(), posterPath); err != nil {
			log.Printf("[exhibitions] failed to remove poster %s: %v", posterPath, err)
		}
	}
	for _, img := range images {
		if img.Path == "" {
			continue
		}
		if err := h.store.Remove(c.Request.Context(), img.Path); err != nil {
			log.Printf("[exhibitions] failed to remove image %s: %v", img.Path, err)
		}
	}
}

// loadExhibition 从路径参数加载展览
func (h *Handler) loadExhibition(c *gin.Context) (*models.Exhibition, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid exhibition ID")
		return nil, false
	}

	exhibition, err := h.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, exhibitionsrepo.ErrExhibitionNotFound) {
			common.RespondError(c, http.StatusNotFound, "Exhibition not found")
			return nil, false
		}
		log.Printf("[exhibitions] failed to get exhibition %d: %v", id, err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return exhibition, true
}

// applyForm 将表单字段写入模型
func (h *Handler) applyForm(c *gin.Context, exhibition *models.Exhibition, create bool) bool {
	if v, ok := c.GetPostForm("title"); ok {
		exhibition.Title = v
	}
	if v, ok := c.GetPostForm("artist"); ok {
		exhibition.Artist = v
	}
	if v, ok := c.GetPostForm("description"); ok {
		exhibition.Description = v
	}
	if v, ok := c.GetPostForm("curator"); ok {
		exhibition.Curator = v
	}
	if v, ok := c.GetPostForm("startDate"); ok {
		date, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			common.RespondError(c, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
			return false
		}
		exhibition.StartDate = date
	}
	if v, ok := c.GetPostForm("endDate"); ok {
		date, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			common.RespondError(c, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
			return false
		}
		exhibition.EndDate = date
	}

	if create {
		if exhibition.Title == "" || exhibition.Artist == "" {
			common.RespondError(c, http.StatusBadRequest, "title and artist are required")
			return false
		}
		if exhibition.StartDate.IsZero() || exhibition.EndDate.IsZero() {
			common.RespondError(c, http.StatusBadRequest, "startDate and endDate are required")
			return false
		}
	}
	if exhibition.EndDate.Before(exhibition.StartDate) {
		common.RespondError(c, http.StatusBadRequest, "endDate must not be before startDate")
		return false
	}
	return true
}

// respondMediaError 将媒体管线错误映射为响应
func respondMediaError(c *gin.Context, err error) {
	if errors.Is(err, media.ErrUnsupportedType) || errors.Is(err, media.ErrFileTooLarge) {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("[exhibitions] media processing failed: %v", err)
	common.RespondError(c, http.StatusBadRequest, "failed to process image")
}
