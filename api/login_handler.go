package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/space458/gallery-backend/api/common"
	"github.com/space458/gallery-backend/api/middleware"
	"github.com/space458/gallery-backend/database/repo/accounts"
	"github.com/space458/gallery-backend/internal/auth"
)

// LoginHandler 登录处理器
type LoginHandler struct {
	loginService *auth.LoginService
}

// NewLoginHandler 创建登录处理器
func NewLoginHandler(loginService *auth.LoginService) *LoginHandler {
	return &LoginHandler{
		loginService: loginService,
	}
}

type userAuthRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken       string `json:"access_token"`
	AccessTokenExpiry int64  `json:"access_token_expiry"`
	Username          string `json:"username"`
}

// LoginHandlerFunc user login
func (h *LoginHandler) LoginHandlerFunc(c *gin.Context) {
	if h.loginService == nil {
		common.RespondError(c, http.StatusInternalServerError, "Login service not initialized")
		return
	}

	var req userAuthRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ip := middleware.GetClientIP(c)
	result, err := h.loginService.Login(ip, req.Username, req.Password, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrTooManyAttempts):
			common.RespondError(c, http.StatusTooManyRequests, "Too many failed attempts, try again later")
		case errors.Is(err, auth.ErrInvalidCredentials):
			common.RespondError(c, http.StatusUnauthorized, "Invalid credentials")
		default:
			log.Printf("[auth] login failed for %s: %v", ip, err)
			common.RespondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	common.RespondSuccessMessage(c, "Login successful", loginResponse{
		AccessToken:       result.Token,
		AccessTokenExpiry: result.Expiry.Unix(),
		Username:          result.Username,
	})
}
