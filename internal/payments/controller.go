package payments

import (
	"errors"
	"net/http"

	"tessera/internal/seats"
	"tessera/internal/shared/middleware"
	"tessera/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Controller struct {
	service     Service
	seatService seats.Service
	currency    string
}

func NewController(service Service, seatService seats.Service, currency string) *Controller {
	return &Controller{
		service:     service,
		seatService: seatService,
		currency:    currency,
	}
}

// CreateIntent creates a payment intent for the caller's held seats.
// The amount is computed server side from the holds, never taken from
// the client.
func (c *Controller) CreateIntent(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	eventID := ctx.Param("id")
	held, err := c.seatService.HeldSeats(ctx.Request.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, seats.ErrEventNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to read held seats", nil, nil)
		return
	}
	if len(held) == 0 {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "No seats reserved", nil, nil)
		return
	}

	total := decimal.Zero
	for _, seat := range held {
		total = total.Add(seat.Price)
	}
	amount := total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	intent, err := c.service.CreateIntent(ctx.Request.Context(), userID, eventID, amount, c.currency)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create payment intent", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Payment intent created", CreateIntentResponse{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
		SeatCount:    len(held),
	}, nil)
}

// Confirm charges a payment intent with the provided card
func (c *Controller) Confirm(ctx *gin.Context) {
	if _, ok := middleware.GetUserID(ctx); !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req ConfirmIntentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	err := c.service.Confirm(ctx.Request.Context(), req.IntentID, req.ClientSecret, Card{
		Number:   req.CardNumber,
		ExpMonth: req.ExpMonth,
		ExpYear:  req.ExpYear,
		CVC:      req.CVC,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrIntentNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Payment intent not found", nil, nil)
		case errors.Is(err, ErrInvalidSecret):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Invalid client secret", nil, nil)
		case errors.Is(err, ErrAlreadyConfirmed):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Payment already confirmed", nil, nil)
		case errors.Is(err, ErrIntentExpired):
			response.RespondJSON(ctx, "error", http.StatusGone, "Payment intent expired", nil, nil)
		case errors.Is(err, ErrCardDeclined):
			response.RespondJSON(ctx, "error", http.StatusPaymentRequired, "Card declined", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusBadGateway, "Payment failed", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment confirmed", gin.H{
		"intent_id": req.IntentID,
		"status":    IntentStatusSucceeded,
	}, nil)
}
