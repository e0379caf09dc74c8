package contact

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/space458/gallery-backend/api/common"
	contactsvc "github.com/space458/gallery-backend/internal/contact"
)

// Handler 联系表单处理器
type Handler struct {
	service *contactsvc.Service
}

// NewHandler 创建联系表单处理器
func NewHandler(service *contactsvc.Service) *Handler {
	return &Handler{service: service}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Type    string `json:"type"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Submit 接收联系表单并转发邮件
func (h *Handler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	msg := &contactsvc.Message{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		InquiryType: req.Type,
		Content:     req.Subject + "\n\n" + req.Message,
	}

	if err := h.service.Send(c.Request.Context(), msg); err != nil {
		if errors.Is(err, contactsvc.ErrNotConfigured) {
			common.RespondError(c, http.StatusServiceUnavailable, "Contact email is not configured")
			return
		}
		log.Printf("[contact] failed to forward message: %v", err)
		common.RespondError(c, http.StatusBadGateway, "Failed to send message")
		return
	}

	common.RespondSuccessMessage(c, "Message sent", nil)
}
