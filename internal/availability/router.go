package availability

import (
	"github.com/gin-gonic/gin"

	"driftwood/internal/shared/middleware"
)

// SetupAvailabilityRoutes configures all availability-related routes.
// Checks and calendars are public; blocking is staff only.
func SetupAvailabilityRoutes(rg *gin.RouterGroup, controller *Controller) {
	avail := rg.Group("/availability")
	{
		avail.GET("/check", controller.CheckAvailability)          // GET /api/v1/availability/check
		avail.GET("/calendar", controller.GetCalendar)             // GET /api/v1/availability/calendar
		avail.GET("/alternatives", controller.SuggestAlternatives) // GET /api/v1/availability/alternatives

		blocks := avail.Group("/blocks")
		blocks.Use(middleware.JWTAuth(), middleware.RequireStaff())
		{
			blocks.POST("", controller.BlockRange)     // POST /api/v1/availability/blocks
			blocks.DELETE("", controller.UnblockRange) // DELETE /api/v1/availability/blocks
		}
	}
}
