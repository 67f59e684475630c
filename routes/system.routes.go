package routes

import (
	"vrajamarii/internal/controllers"
	"vrajamarii/internal/metrics"

	"github.com/gin-gonic/gin"
)

func RegisterSystemRoutes(router *gin.Engine, healthController *controllers.HealthController, collector *metrics.Collector) {
	router.GET("/", healthController.Root)
	router.GET("/health", healthController.Health)
	router.GET("/metrics", gin.WrapH(collector.Handler()))
}
