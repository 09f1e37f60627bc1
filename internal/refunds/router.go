package refunds

import (
	"github.com/gin-gonic/gin"

	"yatra/internal/shared/middleware"
)

// SetupRefundRoutes configures all refund-related routes.
func SetupRefundRoutes(rg *gin.RouterGroup, controller *Controller) {
	refunds := rg.Group("/refunds")
	refunds.Use(middleware.JWTAuth())
	{
		refunds.GET("/:id", controller.GetRefund)
		refunds.POST("/:id/method", controller.SelectRefundMethod)

		agents := refunds.Group("")
		agents.Use(middleware.RequireRoles("AGENT", "ADMIN"))
		{
			agents.POST("/:id/complete", controller.CompleteRefund)
			agents.POST("/:id/fail", controller.FailRefund)
		}
	}

	users := rg.Group("/users")
	users.Use(middleware.JWTAuth())
	{
		users.GET("/refunds", controller.GetUserRefunds)
	}
}
