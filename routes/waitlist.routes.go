package routes

import (
	"vrajamarii/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterWaitlistRoutes(router *gin.Engine, waitlistController *controllers.WaitlistController) {
	router.POST("/waitlist", waitlistController.JoinWaitlist)
}
