package settlements

import (
	"net/http"
	"strconv"

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

// ListSettlements handles GET /vendor/settlements
func (c *Controller) ListSettlements(ctx *gin.Context) {
	vendorID, ok := callerID(ctx)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	settlements, total, err := c.service.ListVendorSettlements(ctx.Request.Context(), vendorID, page, limit)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "settlements retrieved", gin.H{
		"settlements": settlements,
		"total":       total,
		"page":        page,
		"limit":       limit,
	}, nil)
}

// GetSettlement handles GET /vendor/settlements/:id
func (c *Controller) GetSettlement(ctx *gin.Context) {
	vendorID, ok := callerID(ctx)
	if !ok {
		return
	}

	settlementID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid settlement id", nil, nil)
		return
	}

	settlement, err := c.service.GetSettlement(ctx.Request.Context(), vendorID, settlementID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "settlement retrieved", settlement, nil)
}
