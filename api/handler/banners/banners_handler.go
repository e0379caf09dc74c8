package banners

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/space458/gallery-backend/api/common"
	"github.com/space458/gallery-backend/cache"
	"github.com/space458/gallery-backend/cache/types"
	"github.com/space458/gallery-backend/database/models"
	bannersrepo "github.com/space458/gallery-backend/database/repo/banners"
	"github.com/space458/gallery-backend/internal/media"
)

// Handler 横幅处理器
type Handler struct {
	repo       *bannersrepo.Repository
	store      *media.Store
	imageCache types.Cache
	maxBytes   int64
}

// NewHandler 创建横幅处理器
func NewHandler(repo *bannersrepo.Repository, store *media.Store, imageCache types.Cache, maxBytes int64) *Handler {
	return &Handler{
		repo:       repo,
		store:      store,
		imageCache: imageCache,
		maxBytes:   maxBytes,
	}
}

type bannerView struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Link     string `json:"link,omitempty"`
	Type     string `json:"type"`
	Order    int    `json:"order"`
	Active   bool   `json:"active"`
}

func toView(b *models.Banner) bannerView {
	view := bannerView{
		ID:       b.ID,
		Title:    b.Title,
		Subtitle: b.Subtitle,
		Link:     b.Link,
		Type:     b.Type,
		Order:    b.DisplayOrder,
		Active:   b.Active,
	}
	if b.HasImage() {
		view.ImageURL = fmt.Sprintf("/api/images/banners/%d", b.ID)
	}
	return view
}

func toViews(banners []*models.Banner) []bannerView {
	views := make([]bannerView, 0, len(banners))
	for _, b := range banners {
		views = append(views, toView(b))
	}
	return views
}

// List 公开接口，返回启用的横幅
func (h *Handler) List(c *gin.Context) {
	banners, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		log.Printf("[banners] failed to list banners: %v", err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	common.RespondSuccess(c, toViews(banners))
}

// AdminList 管理端接口，返回全部横幅
func (h *Handler) AdminList(c *gin.Context) {
	banners, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		log.Printf("[banners] failed to list banners: %v", err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	common.RespondSuccess(c, toViews(banners))
}

// AdminGet 管理端接口，返回单个横幅
func (h *Handler) AdminGet(c *gin.Context) {
	banner, ok := h.loadBanner(c)
	if !ok {
		return
	}
	common.RespondSuccess(c, toView(banner))
}

// Create 创建横幅（multipart）
func (h *Handler) Create(c *gin.Context) {
	banner := &models.Banner{
		Type:   models.BannerTypeImage,
		Active: true,
	}
	if !h.applyForm(c, banner) {
		return
	}

	if fh, err := c.FormFile("image"); err == nil {
		stored, err := h.store.IngestFormFile(c.Request.Context(), fh, media.KindBanner, h.maxBytes)
		if err != nil {
			respondMediaError(c, err)
			return
		}
		banner.ImagePath = stored.Path
		banner.ImageData = stored.Data
		banner.ImageMimeType = stored.MimeType
	}

	if err := h.repo.Create(c.Request.Context(), banner); err != nil {
		log.Printf("[banners] failed to create banner: %v", err)
		_ = h.store.Remove(c.Request.Context(), banner.ImagePath)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	common.RespondSuccessMessage(c, "Banner created", toView(banner))
}

// Update 更新横幅（multipart，字段缺省保持原值）
func (h *Handler) Update(c *gin.Context) {
	banner, ok := h.loadBanner(c)
	if !ok {
		return
	}
	if !h.applyForm(c, banner) {
		return
	}

	oldPath := banner.ImagePath
	replaced := false
	if fh, err := c.FormFile("image"); err == nil {
		stored, err := h.store.IngestFormFile(c.Request.Context(), fh, media.KindBanner, h.maxBytes)
		if err != nil {
			respondMediaError(c, err)
			return
		}
		banner.ImagePath = stored.Path
		banner.ImageData = stored.Data
		banner.ImageMimeType = stored.MimeType
		replaced = true
	}

	if err := h.repo.Update(c.Request.Context(), banner); err != nil {
		log.Printf("[banners] failed to update banner %d: %v", banner.ID, err)
		if replaced {
			_ = h.store.Remove(c.Request.Context(), banner.ImagePath)
		}
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	// 行更新成功后再清理旧文件和缓存
	if replaced {
		if oldPath != "" && oldPath != banner.ImagePath {
			if err := h.store.Remove(c.Request.Context(), oldPath); err != nil {
				log.Printf("[banners] failed to remove old image %s: %v", oldPath, err)
			}
		}
		h.invalidateCache(banner.ID)
	}

	common.RespondSuccessMessage(c, "Banner updated", toView(banner))
}

// Delete 删除横幅
func (h *Handler) Delete(c *gin.Context) {
	banner, ok := h.loadBanner(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), banner.ID); err != nil {
		if errors.Is(err, bannersrepo.ErrBannerNotFound) {
			common.RespondError(c, http.StatusNotFound, "Banner not found")
			return
		}
		log.Printf("[banners] failed to delete banner %d: %v", banner.ID, err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.store.Remove(c.Request.Context(), banner.ImagePath); err != nil {
		log.Printf("[banners] failed to remove image %s: %v", banner.ImagePath, err)
	}
	h.invalidateCache(banner.ID)

	common.RespondSuccessMessage(c, "Banner deleted", nil)
}

// invalidateCache 图片被替换或删除后清掉读缓存里的旧字节
func (h *Handler) invalidateCache(id uint) {
	if h.imageCache == nil {
		return
	}
	if err := h.imageCache.Delete(cache.ImageKey("banners", id, "")); err != nil {
		log.Printf("[banners] failed to invalidate image cache for %d: %v", id, err)
	}
}

// loadBanner 从路径参数加载横幅
func (h *Handler) loadBanner(c *gin.Context) (*models.Banner, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid banner ID")
		return nil, false
	}

	banner, err := h.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, bannersrepo.ErrBannerNotFound) {
			common.RespondError(c, http.StatusNotFound, "Banner not found")
			return nil, false
		}
		log.Printf("[banners] failed to get banner %d: %v", id, err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return banner, true
}

// applyForm 将表单字段写入模型，缺省字段保持原值
func (h *Handler) applyForm(c *gin.Context, banner *models.Banner) bool {
	if v, ok := c.GetPostForm("title"); ok {
		banner.Title = v
	}
	if banner.Title == "" {
		common.RespondError(c, http.StatusBadRequest, "title is required")
		return false
	}
	if v, ok := c.GetPostForm("subtitle"); ok {
		banner.Subtitle = v
	}
	if v, ok := c.GetPostForm("link"); ok {
		banner.Link = v
	}
	if v, ok := c.GetPostForm("type"); ok {
		if v != models.BannerTypeImage && v != models.BannerTypeVideo {
			common.RespondError(c, http.StatusBadRequest, "type must be image or video")
			return false
		}
		banner.Type = v
	}
	if v, ok := c.GetPostForm("order"); ok {
		order, err := strconv.Atoi(v)
		if err != nil {
			common.RespondError(c, http.StatusBadRequest, "order must be an integer")
			return false
		}
		banner.DisplayOrder = order
	}
	if v, ok := c.GetPostForm("active"); ok {
		active, err := strconv.ParseBool(v)
		if err != nil {
			common.RespondError(c, http.StatusBadRequest, "active must be a boolean")
			return false
		}
		banner.Active = active
	}
	return true
}

// respondMediaError 将媒体管线错误映射为响应
func respondMediaError(c *gin.Context, err error) {
	if errors.Is(err, media.ErrUnsupportedType) || errors.Is(err, media.ErrFileTooLarge) {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("[banners] media processing failed: %v", err)
	common.RespondError(c, http.StatusBadRequest, "failed to process image")
}
