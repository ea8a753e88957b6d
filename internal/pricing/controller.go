package pricing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"driftwood/internal/shared/dates"
	"driftwood/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetQuote handles GET /api/v1/pricing/quote
//
//	@Summary	Price a stay
//	@Tags		pricing
//	@Param		check_in	query	string	true	"Check-in date (YYYY-MM-DD)"
//	@Param		check_out	query	string	true	"Check-out date (YYYY-MM-DD)"
//	@Success	200	{object}	response.StandardApiResponse
//	@Router		/pricing/quote [get]
func (c *Controller) GetQuote(ctx *gin.Context) {
	checkIn, err := dates.Parse(ctx.Query("check_in"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid check_in date", nil, err.Error())
		return
	}
	checkOut, err := dates.Parse(ctx.Query("check_out"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid check_out date", nil, err.Error())
		return
	}

	quote, err := c.service.CalculateTotal(ctx.Request.Context(), checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRange):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "check_out must be after check_in", nil, nil)
		case errors.Is(err, ErrNoPricingConfigured):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "No pricing configured for the requested dates", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to calculate quote", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Quote calculated", quote, nil)
}

// GetMinimumStay handles GET /api/v1/pricing/minimum-stay
//
//	@Summary	Validate a stay length against the season minimum
//	@Tags		pricing
//	@Param		check_in	query	string	true	"Check-in date (YYYY-MM-DD)"
//	@Param		check_out	query	string	true	"Check-out date (YYYY-MM-DD)"
//	@Success	200	{object}	response.StandardApiResponse
//	@Router		/pricing/minimum-stay [get]
func (c *Controller) GetMinimumStay(ctx *gin.Context) {
	checkIn, err := dates.Parse(ctx.Query("check_in"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid check_in date", nil, err.Error())
		return
	}
	checkOut, err := dates.Parse(ctx.Query("check_out"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid check_out date", nil, err.Error())
		return
	}

	check, err := c.service.CheckMinimumStay(ctx.Request.Context(), checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRange):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "check_out must be after check_in", nil, nil)
		case errors.Is(err, ErrNoPricingConfigured):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "No pricing configured for the requested dates", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to check minimum stay", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Minimum stay checked", check, nil)
}

// GetRateForDate handles GET /api/v1/pricing/rates/:date
//
//	@Summary	Resolve the seasonal rate covering a date
//	@Tags		pricing
//	@Param		date	path	string	true	"Date (YYYY-MM-DD)"
//	@Success	200	{object}	response.StandardApiResponse
//	@Router		/pricing/rates/{date} [get]
func (c *Controller) GetRateForDate(ctx *gin.Context) {
	date, err := dates.Parse(ctx.Param("date"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid date", nil, err.Error())
		return
	}

	rate, err := c.service.RateForDate(ctx.Request.Context(), date)
	if err != nil {
		if errors.Is(err, ErrNoPricingConfigured) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "No pricing configured for this date", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to resolve rate", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Rate resolved", rate, nil)
}
