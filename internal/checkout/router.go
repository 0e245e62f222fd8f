package checkout

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
	checkout := rg.Group("/events/:id/checkout")
	checkout.Use(middleware.JWTAuthWithConfig(r.config))
	{
		checkout.POST("", r.controller.Checkout)
	}
}
