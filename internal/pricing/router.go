package pricing

import (
	"github.com/gin-gonic/gin"
)

// SetupPricingRoutes configures all pricing-related routes. Pricing is
// public: guests need quotes before they authenticate.
func SetupPricingRoutes(rg *gin.RouterGroup, controller *Controller) {
	pricing := rg.Group("/pricing")
	{
		pricing.GET("/quote", controller.GetQuote)              // GET /api/v1/pricing/quote
		pricing.GET("/minimum-stay", controller.GetMinimumStay) // GET /api/v1/pricing/minimum-stay
		pricing.GET("/rates/:date", controller.GetRateForDate)  // GET /api/v1/pricing/rates/2025-07-15
	}
}
