package events

import (
	"errors"
	"io"
	"net/http"
	"time"

	"tessera/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) CreateEvent(ctx *gin.Context) {
	var req CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	event, err := c.service.CreateEvent(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create event", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Event created", event, nil)
}

func (c *Controller) GetEvent(ctx *gin.Context) {
	event, err := c.service.GetEvent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get event", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event retrieved", event, nil)
}

func (c *Controller) GetCountdown(ctx *gin.Context) {
	event, err := c.service.GetEvent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get event", nil, nil)
		return
	}

	startsAt, err := event.StartsAt()
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Invalid event schedule", nil, nil)
		return
	}

	now := time.Now()
	countdown := CountdownResponse{Started: !startsAt.After(now)}
	if countdown.Started {
		countdown.Remaining = StartedMessage
	} else {
		countdown.Remaining = FormatRemaining(startsAt.Sub(now))
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Countdown retrieved", countdown, nil)
}

// StreamCountdown pushes live countdown ticks as server-sent events
// until the event starts or the client disconnects
func (c *Controller) StreamCountdown(ctx *gin.Context) {
	event, err := c.service.GetEvent(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get event", nil, nil)
		return
	}

	startsAt, err := event.StartsAt()
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Invalid event schedule", nil, nil)
		return
	}

	values := NewCountdown(startsAt).Start(ctx.Request.Context())
	ctx.Stream(func(w io.Writer) bool {
		value, ok := <-values
		if !ok {
			return false
		}
		ctx.SSEvent("countdown", value)
		return true
	})
}

func (c *Controller) ListEvents(ctx *gin.Context) {
	var query EventListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	events, err := c.service.ListEvents(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list events", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Events retrieved", events, nil)
}
