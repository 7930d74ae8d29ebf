package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rentwheels/rental-admin/internal/config"
	"github.com/rentwheels/rental-admin/internal/handler"
	"github.com/rentwheels/rental-admin/internal/middleware"
	"github.com/rentwheels/rental-admin/pkg/jwt"
)

// Setup configures the admin API routes. redisClient may be nil.
func Setup(
	router *gin.Engine,
	entryHandler *handler.EntryHandler,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	cfg *config.Config,
) {
	admin := router.Group("/api/v1/admin",
		middleware.SecurityHeaders(),
		middleware.JWTAuth(jwtManager),
		middleware.RequireAdmin(),
		middleware.WriteRateLimit(redisClient, cfg.RateLimit.WritesPerMinute),
	)

	// FAQ 관리 (브랜드/차량/블로그별)
	entries := admin.Group("/entries")
	entries.GET("", entryHandler.ListEntries)
	entries.POST("", entryHandler.CreateEntry)
	entries.PUT("/order", entryHandler.ReorderEntries) // 순서 저장 (/:id 보다 우선)
	entries.GET("/:id", entryHandler.GetEntry)
	entries.PUT("/:id", entryHandler.UpdateEntry)
	entries.DELETE("/:id", entryHandler.DeleteEntry)
}
