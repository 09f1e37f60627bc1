package analytics

import (
	"github.com/gin-gonic/gin"

	"yatra/internal/shared/middleware"
)

// SetupAnalyticsRoutes configures the admin reporting routes.
func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller *Controller) {
	analytics := rg.Group("/analytics")
	analytics.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		analytics.GET("/dashboard", controller.GetDashboard)
	}
}
