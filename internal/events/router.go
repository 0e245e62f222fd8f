package events

import (
	"tessera/internal/shared/config"
	"tessera/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.GET("", r.controller.ListEvents)
		events.GET("/:id", r.controller.GetEvent)
		events.GET("/:id/countdown", r.controller.GetCountdown)
		events.GET("/:id/countdown/stream", r.controller.StreamCountdown)
	}

	admin := rg.Group("/events")
	admin.Use(middleware.JWTAuthWithConfig(r.config), middleware.RequireRole("ADMIN"))
	{
		admin.POST("", r.controller.CreateEvent)
	}
}
