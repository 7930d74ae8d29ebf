package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentwheels/rental-admin/internal/middleware"
)

// DBPool is the part of *sql.DB the health check needs
type DBPool interface {
	PingContext(ctx context.Context) error
	Stats() sql.DBStats
}

// HealthHandler reports service health and refreshes the DB pool gauge
type HealthHandler struct {
	db           DBPool
	cacheEnabled bool
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db DBPool, cacheEnabled bool) *HealthHandler {
	return &HealthHandler{db: db, cacheEnabled: cacheEnabled}
}

// Health godoc
// @Summary      헬스 체크
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := gin.H{
		"status":  "ok",
		"service": "rental-admin",
		"time":    time.Now().Unix(),
		"cache":   h.cacheEnabled,
	}
	if h.db == nil {
		status["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}

	err := h.db.PingContext(c.Request.Context())
	// 스크레이프 주기와 무관하게 헬스 체크마다 풀 상태를 갱신
	middleware.SetDBConnectionsOpen(h.db.Stats().OpenConnections)
	if err != nil {
		status["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}
