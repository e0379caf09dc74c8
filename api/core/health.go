package core

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/space458/gallery-backend/config"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	deps *ServerDependencies
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(deps *ServerDependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// Handle GET /health
func (h *HealthHandler) Handle(c *gin.Context) {
	checks := gin.H{
		"database": h.checkDatabase(c),
		"cache":    h.checkCache(),
		"storage":  h.checkStorage(c),
	}

	httpStatus := http.StatusOK
	for _, result := range checks {
		if s, ok := result.(string); ok && s != "ok" && s != "disabled" {
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":  statusLabel(httpStatus),
		"uptime":  time.Since(startTime).Round(time.Second).String(),
		"version": config.Version,
		"checks":  checks,
	})
}

func (h *HealthHandler) checkDatabase(c *gin.Context) string {
	if h.deps.Provider == nil {
		return "not initialized"
	}
	if err := h.deps.Provider.Ping(); err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}

func (h *HealthHandler) checkCache() string {
	if h.deps.Cache == nil {
		return "disabled"
	}
	return "ok"
}

func (h *HealthHandler) checkStorage(c *gin.Context) string {
	// blob 策略字节随行入库，存储健康等同数据库健康
	if h.deps.Storage == nil {
		return "disabled"
	}
	if err := h.deps.Storage.Health(c.Request.Context()); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

func statusLabel(httpStatus int) string {
	if httpStatus == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
