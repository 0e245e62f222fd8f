package seats

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
	seats := rg.Group("/events/:id/seats")
	seats.Use(middleware.JWTAuthWithConfig(r.config))
	{
		seats.GET("", r.controller.GetSeatMap)
		seats.PUT("/reserve", r.controller.Reserve)
		seats.PUT("/release", r.controller.Release)
	}

	admin := rg.Group("/events/:id/seats")
	admin.Use(middleware.JWTAuthWithConfig(r.config), middleware.RequireRole("ADMIN"))
	{
		admin.POST("", r.controller.ProvisionSeats)
	}
}
