package bookings

import (
	"github.com/gin-gonic/gin"

	"yatra/internal/shared/middleware"
)

// SetupBookingRoutes configures all booking-related routes.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.POST("", controller.CreateBooking)
		bookings.GET("/:id", controller.GetBooking)
		bookings.GET("/:id/readiness", controller.GetReadiness)
		bookings.POST("/:id/payments", controller.RecordPayment)
		bookings.POST("/:id/cancel", controller.CancelBooking)

		agents := bookings.Group("")
		agents.Use(middleware.RequireRoles("AGENT", "ADMIN"))
		{
			agents.GET("", controller.GetAllBookings)
			agents.POST("/:id/reject", controller.RejectBooking)
			agents.POST("/:id/complete", controller.CompleteBooking)
		}
	}

	users := rg.Group("/users")
	users.Use(middleware.JWTAuth())
	{
		users.GET("/bookings", controller.GetUserBookings)
	}
}
