package sales

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
	purchases := rg.Group("/events/:id/purchase")
	purchases.Use(middleware.JWTAuthWithConfig(r.config))
	{
		purchases.POST("", r.controller.CompletePurchase)
	}

	me := rg.Group("/purchases")
	me.Use(middleware.JWTAuthWithConfig(r.config))
	{
		me.GET("", r.controller.ListMySales)
	}
}
