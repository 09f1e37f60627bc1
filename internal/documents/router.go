package documents

import (
	"github.com/gin-gonic/gin"

	"yatra/internal/shared/middleware"
)

// SetupDocumentRoutes configures all document-related routes.
func SetupDocumentRoutes(rg *gin.RouterGroup, controller *Controller) {
	pilgrims := rg.Group("/pilgrims")
	pilgrims.Use(middleware.JWTAuth())
	{
		pilgrims.POST("/:id/documents", controller.UploadDocument)
		pilgrims.GET("/:id/documents", controller.GetPilgrimDocuments)
	}

	documents := rg.Group("/documents")
	documents.Use(middleware.JWTAuth(), middleware.RequireRoles("AGENT", "ADMIN"))
	{
		documents.POST("/:id/verify", controller.VerifyDocument)
		documents.POST("/:id/reject", controller.RejectDocument)
	}
}
