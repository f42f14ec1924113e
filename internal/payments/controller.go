package payments

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func callerID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "user not authenticated", nil, nil)
		return uuid.Nil, false
	}
	idStr, ok := raw.(string)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "invalid user identity", nil, nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "invalid user identity", nil, nil)
		return uuid.Nil, false
	}
	return id, true
}

// InitiatePayment handles POST /payments/initiate
func (c *Controller) InitiatePayment(ctx *gin.Context) {
	explorerID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req InitiatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	result, err := c.service.InitiatePayment(ctx.Request.Context(), explorerID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "payment initiated", result, nil)
}

// GetBookingPayment handles GET /payments/booking/:id
func (c *Controller) GetBookingPayment(ctx *gin.Context) {
	caller, ok := callerID(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid booking id", nil, nil)
		return
	}

	payment, err := c.service.GetPaymentForBooking(ctx.Request.Context(), caller, bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "payment retrieved", payment, nil)
}
