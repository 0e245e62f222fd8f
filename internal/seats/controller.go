package seats

import (
	"context"
	"errors"
	"net/http"

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

// GetSeatMap returns the event's seat layout merged with live holds
func (c *Controller) GetSeatMap(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	seatMap, err := c.service.GetSeatMap(ctx.Request.Context(), ctx.Param("id"), userID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get seat map", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved", seatMap, nil)
}

// Reserve places a hold on one seat for the authenticated user
func (c *Controller) Reserve(ctx *gin.Context) {
	c.toggle(ctx, c.service.Reserve, "Seat reserved")
}

// Release drops the authenticated user's hold on one seat
func (c *Controller) Release(ctx *gin.Context) {
	c.toggle(ctx, c.service.Release, "Seat released")
}

func (c *Controller) toggle(ctx *gin.Context, action func(context.Context, string, string, SeatID) (*SeatActionResponse, error), successMsg string) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req SeatActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := action(ctx.Request.Context(), ctx.Param("id"), userID, SeatID{Row: req.Row, Number: req.Number})
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
		case errors.Is(err, ErrSeatNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Seat not found", nil, nil)
		case errors.Is(err, ErrSeatSold):
			response.RespondJSON(ctx, "error", http.StatusGone, "Seat already sold", nil, nil)
		case errors.Is(err, ErrSeatConflict):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Seat held by another user", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Seat operation failed", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, successMsg, result, nil)
}

// ProvisionSeats creates the seat layout for an event
func (c *Controller) ProvisionSeats(ctx *gin.Context) {
	var req ProvisionSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	eventID := ctx.Param("id")
	created, err := c.service.ProvisionSeats(ctx.Request.Context(), eventID, req)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to provision seats", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Seats provisioned", ProvisionSeatsResponse{
		EventID: eventID,
		Created: created,
	}, nil)
}
