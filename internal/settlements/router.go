package settlements

import (
	"github.com/gin-gonic/gin"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/middleware"
)

func SetupSettlementRoutes(router *gin.RouterGroup, controller *Controller) {
	settlements := router.Group("/vendor/settlements")
	settlements.Use(middleware.JWTAuth(), middleware.RequireVendor())
	{
		settlements.GET("", controller.ListSettlements)       // GET /api/v1/vendor/settlements
		settlements.GET("/:id", controller.GetSettlement)     // GET /api/v1/vendor/settlements/:id
	}
}
