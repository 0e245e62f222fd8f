package sales

import (
	"errors"
	"net/http"

	"tessera/internal/payments"
	"tessera/internal/seats"
	"tessera/internal/shared/middleware"
	"tessera/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CompletePurchase commits the caller's held seats against a confirmed
// payment intent
func (c *Controller) CompletePurchase(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req CompletePurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	sale, err := c.service.CompletePurchase(ctx.Request.Context(), userID, ctx.Param("id"), req.IntentID)
	if err != nil {
		switch {
		case errors.Is(err, seats.ErrEventNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
		case errors.Is(err, payments.ErrIntentNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Payment intent not found", nil, nil)
		case errors.Is(err, ErrIntentMismatch):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Payment intent does not match purchase", nil, nil)
		case errors.Is(err, ErrPaymentNotConfirmed):
			response.RespondJSON(ctx, "error", http.StatusPaymentRequired, "Payment not confirmed", nil, nil)
		case errors.Is(err, ErrNoSeats):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "No seats reserved", nil, nil)
		case errors.Is(err, ErrCommitConflict):
			response.RespondJSON(ctx, "error", http.StatusConflict, "One or more seats were already sold", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to complete purchase", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Purchase completed", sale, nil)
}

// ListMySales returns the caller's purchase history
func (c *Controller) ListMySales(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	userSales, err := c.service.ListUserSales(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list purchases", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Purchases retrieved", userSales, nil)
}
