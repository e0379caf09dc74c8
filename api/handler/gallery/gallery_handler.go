package gallery

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/space458/gallery-backend/api/common"
	"github.com/space458/gallery-backend/database/models"
	galleryrepo "github.com/space458/gallery-backend/database/repo/gallery"
)

// Handler 画廊信息处理器
type Handler struct {
	repo *galleryrepo.Repository
}

// NewHandler 创建画廊信息处理器
func NewHandler(repo *galleryrepo.Repository) *Handler {
	return &Handler{repo: repo}
}

type infoRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	Hours       string `json:"hours"`
	Instagram   string `json:"instagram"`
}

// Get 返回画廊信息单例，未初始化时返回空对象
func (h *Handler) Get(c *gin.Context) {
	info, err := h.repo.Get(c.Request.Context())
	if err != nil {
		log.Printf("[gallery] failed to get gallery info: %v", err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if info == nil {
		info = &models.GalleryInfo{}
	}
	common.RespondSuccess(c, info)
}

// Update 更新画廊信息（upsert）
func (h *Handler) Update(c *gin.Context) {
	var req infoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	info := &models.GalleryInfo{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Hours:       req.Hours,
		Instagram:   req.Instagram,
	}

	if err := h.repo.Upsert(c.Request.Context(), info); err != nil {
		log.Printf("[gallery] failed to upsert gallery info: %v", err)
		common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	common.RespondSuccessMessage(c, "Gallery info updated", info)
}
