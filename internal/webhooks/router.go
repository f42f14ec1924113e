package webhooks

import (
	"github.com/gin-gonic/gin"
)

// SetupWebhookRoutes registers the public gateway callback. Auth is the
// HMAC signature on the body, not a JWT.
func SetupWebhookRoutes(router *gin.RouterGroup, controller *Controller) {
	router.POST("/webhooks/paystack", controller.HandleGatewayEvent)
}
