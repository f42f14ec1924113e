package bookings

import (
	"github.com/gin-gonic/gin"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/middleware"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller *Controller) {
	// Explorer routes - booking creation and self-service
	explorerBookings := router.Group("/bookings")
	explorerBookings.Use(middleware.JWTAuth(), middleware.RequireExplorer())
	{
		explorerBookings.POST("", controller.CreateBooking)            // POST /api/v1/bookings - Create booking request
		explorerBookings.GET("", controller.ListBookings)              // GET /api/v1/bookings - List own bookings
		explorerBookings.GET("/:id", controller.GetBooking)            // GET /api/v1/bookings/:id - Booking details
		explorerBookings.POST("/:id/cancel", controller.CancelBooking) // POST /api/v1/bookings/:id/cancel - Cancel booking
	}

	// Vendor routes - approvals and oversight of own listings' bookings
	vendorBookings := router.Group("/vendor/bookings")
	vendorBookings.Use(middleware.JWTAuth(), middleware.RequireVendor())
	{
		vendorBookings.GET("", controller.ListVendorBookings)            // GET /api/v1/vendor/bookings - List bookings for vendor
		vendorBookings.POST("/:id/approve", controller.ApproveBooking)   // POST /api/v1/vendor/bookings/:id/approve - Approve request
	}
}
