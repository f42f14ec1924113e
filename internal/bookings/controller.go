package bookings

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

// callerID extracts the authenticated user's id set by the JWT middleware
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

// CreateBooking handles POST /bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	explorerID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.CreateBookingRequest(ctx.Request.Context(), explorerID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "booking request created", booking, nil)
}

// GetBooking handles GET /bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	caller, ok := callerID(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid booking id", nil, nil)
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID, caller)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "booking retrieved", booking.ToResponse(), nil)
}

// ListBookings handles GET /bookings for the authenticated explorer
func (c *Controller) ListBookings(ctx *gin.Context) {
	explorerID, ok := callerID(ctx)
	if !ok {
		return
	}

	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid query parameters", nil, err.Error())
		return
	}

	items, total, err := c.service.GetExplorerBookings(ctx.Request.Context(), explorerID, query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	responses := make([]BookingResponse, 0, len(items))
	for i := range items {
		responses = append(responses, items[i].ToResponse())
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "bookings retrieved", gin.H{
		"bookings": responses,
		"total":    total,
	}, nil)
}

// ListVendorBookings handles GET /vendor/bookings
func (c *Controller) ListVendorBookings(ctx *gin.Context) {
	vendorID, ok := callerID(ctx)
	if !ok {
		return
	}

	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid query parameters", nil, err.Error())
		return
	}

	items, total, err := c.service.GetVendorBookings(ctx.Request.Context(), vendorID, query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	responses := make([]BookingResponse, 0, len(items))
	for i := range items {
		responses = append(responses, items[i].ToResponse())
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "bookings retrieved", gin.H{
		"bookings": responses,
		"total":    total,
	}, nil)
}

// ApproveBooking handles POST /vendor/bookings/:id/approve
func (c *Controller) ApproveBooking(ctx *gin.Context) {
	vendorID, ok := callerID(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid booking id", nil, nil)
		return
	}

	if err := c.service.ApproveBooking(ctx.Request.Context(), vendorID, bookingID); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "booking approved", nil, nil)
}

// CancelBooking handles POST /bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	explorerID, ok := callerID(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid booking id", nil, nil)
		return
	}

	if err := c.service.CancelBooking(ctx.Request.Context(), explorerID, bookingID); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "booking cancelled", nil, nil)
}
