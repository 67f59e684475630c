package routes

import (
	"vrajamarii/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterEvaluationRoutes(router *gin.Engine, evaluationController *controllers.EvaluationController, auth gin.HandlerFunc) {
	evaluationRoutes := router.Group("/evaluation")
	evaluationRoutes.Use(auth)
	{
		evaluationRoutes.GET("", evaluationController.GetEvaluation)
	}

	draftRoutes := evaluationRoutes.Group("/draft")
	{
		draftRoutes.POST("", evaluationController.StartDraft)
		draftRoutes.GET("", evaluationController.GetDraft)
		draftRoutes.PATCH("", evaluationController.UpdateDraft)
		draftRoutes.POST("/advance", evaluationController.AdvanceDraft)
		draftRoutes.POST("/retreat", evaluationController.RetreatDraft)
		draftRoutes.POST("/subsections/:name/clear", evaluationController.ClearSubsection)
		draftRoutes.POST("/submit", evaluationController.SubmitDraft)
	}
}
