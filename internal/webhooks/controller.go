package webhooks

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/utils/response"
	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/logger"
)

const maxBodyBytes = 1 << 20 // gateway payloads are small

const signatureHeader = "x-paystack-signature"

type Controller struct {
	service Service
	log     *logger.Logger
}

func NewController(service Service, log *logger.Logger) *Controller {
	return &Controller{service: service, log: log}
}

// HandleGatewayEvent handles POST /webhooks/paystack. The signature is
// checked against the raw bytes before anything is parsed; a mismatch
// mutates nothing.
func (c *Controller) HandleGatewayEvent(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxBodyBytes))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "unreadable request body", nil, nil)
		return
	}

	if !c.service.VerifySignature(body, ctx.GetHeader(signatureHeader)) {
		c.log.LogWebhookRejected(ctx.Request.Context(), ctx.ClientIP())
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "invalid signature", nil, nil)
		return
	}

	if err := c.service.Process(ctx.Request.Context(), body); err != nil {
		if apperrors.IsKind(err, apperrors.KindValidation) {
			// A signed but unusable payload will not get better on
			// retry; acknowledge-and-drop would hide it, so reject.
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "unprocessable webhook payload", nil, nil)
			return
		}
		// Non-2xx asks the gateway to redeliver.
		c.log.ErrorWithContext(ctx.Request.Context(), "webhook processing failed", err, nil)
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "webhook processing failed", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "webhook processed", nil, nil)
}
