package routes

import (
	"vrajamarii/internal/controllers"
	"vrajamarii/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterWebhookRoutes(router *gin.Engine, webhookController *controllers.WebhookController, secret string) {
	webhookRoutes := router.Group("/api/webhooks")
	webhookRoutes.Use(middleware.APIKeyMiddleware(secret))
	{
		webhookRoutes.POST("/bitmanager", webhookController.BookingStatus)
	}
}
