package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DatabasePinger is satisfied by *sql.DB.
type DatabasePinger interface {
	PingContext(ctx context.Context) error
}

// RedisStatus is satisfied by *cache.RedisClient.
type RedisStatus interface {
	GetStatus(ctx context.Context) (map[string]interface{}, error)
}

type HealthController struct {
	db    DatabasePinger
	redis RedisStatus
}

func NewHealthController(db DatabasePinger, redis RedisStatus) *HealthController {
	return &HealthController{db: db, redis: redis}
}

// Root godoc
// @Summary Service info
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (hc *HealthController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Vraja Marii API is running",
		"version": "1.0.0",
		"status":  "healthy",
	})
}

// Health godoc
// @Summary Dependency health
// @Description Pings the database and Redis.
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{} "All dependencies reachable"
// @Failure 503 {object} map[string]interface{} "A dependency is down"
// @Router /health [get]
func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	healthy := true
	database := gin.H{"connected": true}
	if err := hc.db.PingContext(ctx); err != nil {
		healthy = false
		database = gin.H{"connected": false, "error": err.Error()}
	}

	redisStatus, err := hc.redis.GetStatus(ctx)
	if err != nil {
		healthy = false
		redisStatus = map[string]interface{}{"connected": false, "error": err.Error()}
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":   status,
		"database": database,
		"redis":    redisStatus,
	})
}
