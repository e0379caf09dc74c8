package news

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/space458/gallery-backend/api/common"
	"github.com/space458/gallery-backend/cache"
	"github.com/space458/gallery-backend/cache/types"
	"github.com/space458/gallery-backend/database/models"
	newsrepo "github.com/space458/gallery-backend/database/repo/news"
	"github.com/space458/gallery-backend/internal/media"
)

const dateLayout = "2006-01-02"

// Handler 新闻处理器
type Handler struct {
	repo       *newsrepo.Repository
	store      *media.Store
	imageCache types.Cache
	maxBytes   int64
}

// NewHandler 创建新闻处理器
func NewHandler(repo *newsrepo.Repository, store *media.Store, imageCache types.Cache, maxBytes int64) *Handler {
	return &Handler{
		repo:       repo,
		store:      store,
		imageCache: imageCache,
		maxBytes:   maxBytes,
	}
}

type newsView struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
	Link     string `json:"link,omitempty"`
	Featured bool   `json:"featured"`
}

func toView(n *models.News) newsView {
	view := newsView{
		ID:       n.ID,
		Title:    n.Title,
		Type:     n.Type,
		Date:     n.Date.Format(dateLayout),
		Content:  n.Content,
		Link:     n.Link,
		Featured: n.Featured,
	}
	if n.HasImage() {
		view.ImageURL = fmt.Sprintf("/api/images/news/%d", n.ID)
	}
	return view
}

func toViews(items []*models.News) []newsView {
	views := make([]newsView, 0, len(items))
	for _, n := range items {
		views = append(views, toView(n))
	}
	return views
}

// List 公开接口，按日期降序返回新闻
func (h *Handler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		log.Printf("[news] failed to list news: %v", err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	common.RespondSuccess(c, toViews(items))
}

// AdminGet 管理端接口，返回单条新闻
func (h *Handler) AdminGet(c *gin.Context) {
	item, ok := h.loadNews(c)
	if !ok {
		return
	}
	common.RespondSuccess(c, toView(item))
}

// Create 创建新闻（multipart）
func (h *Handler) Create(c *gin.Context) {
	item := &models.News{
		Type: models.NewsTypeNotice,
		Date: time.Now(),
	}
	if !h.applyForm(c, item) {
		return
	}

	if fh, err := c.FormFile("image"); err == nil {
		stored, err := h.store.IngestFormFile(c.Request.Context(), fh, media.KindNews, h.maxBytes)
		if err != nil {
			respondMediaError(c, err)
			return
		}
		item.ImagePath = stored.Path
		item.ImageData = stored.Data
		item.ImageMimeType = stored.MimeType
	}

	if err := h.repo.Create(c.Request.Context(), item); err != nil {
		log.Printf("[news] failed to create news: %v", err)
		_ = h.store.Remove(c.Request.Context(), item.ImagePath)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	common.RespondSuccessMessage(c, "News created", toView(item))
}

// Update 更新新闻（multipart，字段缺省保持原值）
func (h *Handler) Update(c *gin.Context) {
	item, ok := h.loadNews(c)
	if !ok {
		return
	}
	if !h.applyForm(c, item) {
		return
	}

	oldPath := item.ImagePath
	replaced := false
	if fh, err := c.FormFile("image"); err == nil {
		stored, err := h.store.IngestFormFile(c.Request.Context(), fh, media.KindNews, h.maxBytes)
		if err != nil {
			respondMediaError(c, err)
			return
		}
		item.ImagePath = stored.Path
		item.ImageData = stored.Data
		item.ImageMimeType = stored.MimeType
		replaced = true
	}

	if err := h.repo.Update(c.Request.Context(), item); err != nil {
		log.Printf("[news] failed to update news %d: %v", item.ID, err)
		if replaced {
			_ = h.store.Remove(c.Request.Context(), item.ImagePath)
		}
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if replaced {
		if oldPath != "" && oldPath != item.ImagePath {
			if err := h.store.Remove(c.Request.Context(), oldPath); err != nil {
				log.Printf("[news] failed to remove old image %s: %v", oldPath, err)
			}
		}
		h.invalidateCache(item.ID)
	}

	common.RespondSuccessMessage(c, "News updated", toView(item))
}

// Delete 删除新闻
func (h *Handler) Delete(c *gin.Context) {
	item, ok := h.loadNews(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), item.ID); err != nil {
		if errors.Is(err, newsrepo.ErrNewsNotFound) {
			common.RespondError(c, http.StatusNotFound, "News not found")
			return
		}
		log.Printf("[news] failed to delete news %d: %v", item.ID, err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.store.Remove(c.Request.Context(), item.ImagePath); err != nil {
		log.Printf("[news] failed to remove image %s: %v", item.ImagePath, err)
	}
	h.invalidateCache(item.ID)

	common.RespondSuccessMessage(c, "News deleted", nil)
}

// invalidateCache 图片被替换或删除后清掉读缓存里的旧字节
func (h *Handler) invalidateCache(id uint) {
	if h.imageCache == nil {
		return
	}
	if err := h.imageCache.Delete(cache.ImageKey("news", id, "")); err != nil {
		log.Printf("[news] failed to invalidate image cache for %d: %v", id, err)
	}
}

// loadNews 从路径参数加载新闻
func (h *Handler) loadNews(c *gin.Context) (*models.News, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid news ID")
		return nil, false
	}

	item, err := h.repo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, newsrepo.ErrNewsNotFound) {
			common.RespondError(c, http.StatusNotFound, "News not found")
			return nil, false
		}
		log.Printf("[news] failed to get news %d: %v", id, err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return item, true
}

// applyForm 将表单字段写入模型
func (h *Handler) applyForm(c *gin.Context, item *models.News) bool {
	if v, ok := c.GetPostForm("title"); ok {
		item.Title = v
	}
	if item.Title == "" {
		common.RespondError(c, http.StatusBadRequest, "title is required")
		return false
	}
	if v, ok := c.GetPostForm("content"); ok {
		item.Content = v
	}
	if item.Content == "" {
		common.RespondError(c, http.StatusBadRequest, "content is required")
		return false
	}
	if v, ok := c.GetPostForm("type"); ok {
		if !models.IsValidNewsType(v) {
			common.RespondError(c, http.StatusBadRequest, "type must be NOTICE, PRESS, EVENT or WORKSHOP")
			return false
		}
		item.Type = v
	}
	if v, ok := c.GetPostForm("date"); ok {
		date, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			common.RespondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return false
		}
		item.Date = date
	}
	if v, ok := c.GetPostForm("link"); ok {
		item.Link = v
	}
	if v, ok := c.GetPostForm("featured"); ok {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			common.RespondError(c, http.StatusBadRequest, "featured must be a boolean")
			return false
		}
		item.Featured = featured
	}
	return true
}

// respondMediaError 将媒体管线错误映射为响应
func respondMediaError(c *gin.Context, err error) {
	if errors.Is(err, media.ErrUnsupportedType) || errors.Is(err, media.ErrFileTooLarge) {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("[news] media processing failed: %v", err)
	common.RespondError(c, http.StatusBadRequest, "failed to process image")
}
