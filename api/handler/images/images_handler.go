package images

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/space458/gallery-backend/api/common"
	"github.com/space458/gallery-backend/cache"
	"github.com/space458/gallery-backend/cache/types"
	bannersrepo "github.com/space458/gallery-backend/database/repo/banners"
	exhibitionsrepo "github.com/space458/gallery-backend/database/repo/exhibitions"
	newsrepo "github.com/space458/gallery-backend/database/repo/news"
	"github.com/space458/gallery-backend/internal/media"
)

// 转码产物不会原地变化，允许客户端长期缓存
const cacheControl = "public, max-age=31536000, immutable"

// Handler 图片服务处理器
type Handler struct {
	banners     *bannersrepo.Repository
	exhibitions *exhibitionsrepo.Repository
	news        *newsrepo.Repository
	store       *media.Store
	cache       types.Cache
	cacheTTL    time.Duration
}

// NewHandler 创建图片服务处理器
func NewHandler(banners *bannersrepo.Repository, exhibitions *exhibitionsrepo.Repository,
	news *newsrepo.Repository, store *media.Store, imageCache types.Cache, cacheTTL time.Duration) *Handler {
	return &Handler{
		banners:     banners,
		exhibitions: exhibitions,
		news:        news,
		store:       store,
		cache:       imageCache,
		cacheTTL:    cacheTTL,
	}
}

// ServeBanner GET /api/images/banners/:id
func (h *Handler) ServeBanner(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	banner, err := h.banners.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, bannersrepo.ErrBannerNotFound) {
			common.RespondError(c, http.StatusNotFound, "Image not found")
			return
		}
		log.Printf("[images] failed to load banner %d: %v", id, err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.serve(c, cache.ImageKey("banners", id, ""), banner.ImagePath, banner.ImageData, banner.ImageMimeType)
}

// ServeNews GET /api/images/news/:id
func (h *Handler) ServeNews(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.news.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, newsrepo.ErrNewsNotFound) {
			common.RespondError(c, http.StatusNotFound, "Image not found")
			return
		}
		log.Printf("[images] failed to load news %d: %v", id, err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.serve(c, cache.ImageKey("news", id, ""), item.ImagePath, item.ImageData, item.ImageMimeType)
}

// ServeExhibition GET /api/images/exhibitions/:id?type=poster|<index>
// type 缺省为 poster
func (h *Handler) ServeExhibition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	variant := c.DefaultQuery("type", "poster")
	if variant == "poster" {
		exhibition, err := h.exhibitions.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, exhibitionsrepo.ErrExhibitionNotFound) {
				common.RespondError(c, http.StatusNotFound, "Image not found")
				return
			}
			log.Printf("[images] failed to load exhibition %d: %v", id, err)
			common.RespondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		h.serve(c, cache.ImageKey("exhibitions", id, "poster"),
			exhibition.PosterPath, exhibition.PosterData, exhibition.PosterMimeType)
		return
	}

	position, err := strconv.Atoi(variant)
	if err != nil || position < 0 {
		common.RespondError(c, http.StatusBadRequest, "type must be poster or a non-negative index")
		return
	}

	image, err := h.exhibitions.GetImage(c.Request.Context(), id, position)
	if err != nil {
		if errors.Is(err, exhibitionsrepo.ErrImageNotFound) {
			common.RespondError(c, http.StatusNotFound, "Image not found")
			return
		}
		log.Printf("[images] failed to load exhibition %d image %d: %v", id, position, err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.serve(c, cache.ImageKey("exhibitions", id, variant), image.Path, image.Data, image.MimeType)
}

// serve 输出图片字节，文件策略经过缓存
func (h *Handler) serve(c *gin.Context, cacheKey, path string, data []byte, mimeType string) {
	content := data

	if len(content) == 0 {
		if h.cache != nil {
			var cached []byte
			if err := h.cache.Get(cacheKey, &cached); err == nil && len(cached) > 0 {
				content = cached
			}
		}

		if len(content) == 0 {
			loaded, err := h.store.Open(c.Request.Context(), path, nil)
			if err != nil {
				if errors.Is(err, media.ErrNoContent) {
					common.RespondError(c, http.StatusNotFound, "Image not found")
					return
				}
				log.Printf("[images] failed to open media %s: %v", path, err)
				common.RespondError(c, http.StatusInternalServerError, "Internal server error")
				return
			}
			content = loaded

			if h.cache != nil {
				if err := h.cache.Set(cacheKey, content, h.cacheTTL); err != nil {
					log.Printf("[images] failed to cache %s: %v", cacheKey, err)
				}
			}
		}
	}

	if mimeType == "" {
		mimeType = "image/webp"
	}

	c.Header("Cache-Control", cacheControl)
	c.Data(http.StatusOK, mimeType, content)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid image ID")
		return 0, false
	}
	return uint(id), true
}
