package auth

import (
	"github.com/gin-gonic/gin"

	"yatra/internal/shared/middleware"
)

// SetupAuthRoutes registers all auth routes.
func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller) {
	authGroup := rg.Group("/auth")
	{
		// Public routes
		authGroup.POST("/register", controller.Register)
		authGroup.POST("/login", controller.Login)
		authGroup.POST("/refresh", controller.RefreshToken)
		authGroup.POST("/logout", controller.Logout)

		// Protected routes
		protected := authGroup.Group("")
		protected.Use(middleware.JWTAuth())
		{
			protected.PUT("/change-password", controller.ChangePassword)
			protected.GET("/me", controller.GetMe)
		}
	}
}
