package routes

import (
	"vrajamarii/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterUserProfileRoutes(router *gin.Engine, userProfileController *controllers.UserProfileController, auth gin.HandlerFunc) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Use(auth)
	{
		profileRoutes.GET("", userProfileController.GetUserProfile)
		profileRoutes.PUT("", userProfileController.UpdateUserProfile)
	}
}
