package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"foodybuddy/pkg/utils"
)

type HealthController struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthController accepts a nil redis client when the cache is in memory.
func NewHealthController(db *gorm.DB, redisClient *redis.Client) *HealthController {
	return &HealthController{db: db, redis: redisClient}
}

// Check godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /health [get]
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"status": "ok", "database": "ok"}
	healthy := true

	if err := h.pingDB(ctx); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}
	if h.redis != nil {
		checks["redis"] = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}
	}

	if !healthy {
		checks["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, utils.APIResponse{
			Status:  "error",
			Code:    http.StatusServiceUnavailable,
			Message: "Service unavailable",
			TraceID: c.GetString("trace_id"),
			Data:    checks,
		})
		return
	}
	utils.RespondSuccess(c, checks, "healthy")
}

func (h *HealthController) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
