package policy

import (
	"github.com/gin-gonic/gin"

	"yatra/internal/shared/middleware"
)

// SetupPolicyRoutes configures cancellation policy routes. Policies are
// managed per travel package by agents; customers can read them.
func SetupPolicyRoutes(rg *gin.RouterGroup, controller *Controller) {
	packages := rg.Group("/packages")
	packages.Use(middleware.JWTAuth())
	{
		packages.GET("/:id/cancellation-policy", controller.GetPolicy)

		agents := packages.Group("")
		agents.Use(middleware.RequireRoles("AGENT", "ADMIN"))
		{
			agents.POST("/:id/cancellation-policy", controller.CreatePolicy)
			agents.PUT("/:id/cancellation-policy", controller.UpdatePolicy)
		}
	}
}
