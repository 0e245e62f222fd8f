package checkout

import (
	"errors"
	"net/http"

	"tessera/internal/payments"
	"tessera/internal/reservation"
	"tessera/internal/sales"
	"tessera/internal/seats"
	"tessera/internal/shared/middleware"
	"tessera/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Controller runs the full checkout in one request: it rebuilds the
// caller's session from their server-side holds and drives the
// orchestrator through payment and commit
type Controller struct {
	seatService seats.Service
	gateway     Gateway
	ledger      Ledger
	currency    string
}

func NewController(seatService seats.Service, paymentService payments.Service, salesService sales.Service, currency string) *Controller {
	return &Controller{
		seatService: seatService,
		gateway:     NewGateway(paymentService),
		ledger:      NewLedger(salesService),
		currency:    currency,
	}
}

// Checkout charges the caller's current selection and commits the sale
func (c *Controller) Checkout(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	identity := NewIdentity(userID)
	session := reservation.NewSession(NewSeatStore(c.seatService), identity, ctx.Param("id"))
	if _, err := session.LoadSeatMap(ctx.Request.Context()); err != nil {
		if errors.Is(err, reservation.ErrEventNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load seat map", nil, nil)
		return
	}

	orchestrator := NewOrchestrator(c.gateway, c.ledger, identity, c.currency)
	result := orchestrator.Run(ctx.Request.Context(), session, req.Card)

	if result.Succeeded() {
		response.RespondJSON(ctx, "success", http.StatusCreated, "Checkout completed", result, nil)
		return
	}

	response.RespondJSON(ctx, "error", statusForReason(result.Reason), "Checkout failed", result, nil)
}

func statusForReason(reason FailureReason) int {
	switch reason {
	case ReasonEmptySelection:
		return http.StatusBadRequest
	case ReasonAuthExpired:
		return http.StatusUnauthorized
	case ReasonCardDeclined:
		return http.StatusPaymentRequired
	case ReasonPostChargeConflict:
		return http.StatusConflict
	case ReasonGatewayUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// CheckoutRequest carries the card the selection is charged to
type CheckoutRequest struct {
	Card CardDetails `json:"card" binding:"required"`
}
