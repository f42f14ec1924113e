package payments

import (
	"github.com/gin-gonic/gin"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/middleware"
)

func SetupPaymentRoutes(router *gin.RouterGroup, controller *Controller) {
	payments := router.Group("/payments")
	payments.Use(middleware.JWTAuth())
	{
		payments.POST("/initiate", middleware.RequireExplorer(), controller.InitiatePayment) // POST /api/v1/payments/initiate
		payments.GET("/booking/:id", controller.GetBookingPayment)                           // GET /api/v1/payments/booking/:id
	}
}
