package payments

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
	payments := rg.Group("/events/:id/payments")
	payments.Use(middleware.JWTAuthWithConfig(r.config))
	{
		payments.POST("/intent", r.controller.CreateIntent)
		payments.POST("/confirm", r.controller.Confirm)
	}
}
