package reservations

import (
	"driftwood/internal/shared/config"
	"driftwood/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles reservation-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new reservation router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all reservation routes. Everything requires auth;
// ownership is enforced in the service layer.
func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	reservations := rg.Group("/reservations")
	reservations.Use(middleware.JWTAuthWithConfig(r.config))
	{
		reservations.POST("", r.controller.CreateReservation)
		reservations.GET("", r.controller.GetMyReservations)
		reservations.GET("/:id", r.controller.GetReservation)
		reservations.PATCH("/:id", r.controller.ModifyReservation)
		reservations.POST("/:id/confirm", r.controller.ConfirmReservation)
		reservations.POST("/:id/cancel", r.controller.CancelReservation)
		reservations.GET("/:id/refund-preview", r.controller.GetRefundPreview)
	}
}
