package availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"driftwood/internal/pricing"
	"driftwood/internal/shared/dates"
	"driftwood/internal/shared/utils/response"
)

const defaultMaxShiftDays = 7

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CheckAvailability handles GET /api/v1/availability/check
//
//	@Summary	Check whether a date range is bookable
//	@Tags		availability
//	@Param		check_in	query	string	true	"Check-in date (YYYY-MM-DD)"
//	@Param		check_out	query	string	true	"Check-out date (YYYY-MM-DD)"
//	@Success	200	{object}	response.StandardApiResponse
//	@Router		/availability/check [get]
func (c *Controller) CheckAvailability(ctx *gin.Context) {
	checkIn, checkOut, ok := c.parseRange(ctx, "check_in", "check_out")
	if !ok {
		return
	}

	result, err := c.service.CheckAvailability(ctx.Request.Context(), checkIn, checkOut)
	if err != nil {
		c.respondRangeError(ctx, err, "Failed to check availability")
		return
	}

	payload := gin.H{"availability": result}
	if !result.IsAvailable {
		alternatives, err := c.service.SuggestAlternatives(ctx.Request.Context(), checkIn, checkOut, defaultMaxShiftDays)
		if err == nil {
			payload["alternatives"] = alternatives
		}
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability checked", payload, nil)
}

// GetCalendar handles GET /api/v1/availability/calendar
//
//	@Summary	Day-by-day availability for calendar views
//	@Tags		availability
//	@Param		start	query	string	true	"Range start (YYYY-MM-DD, inclusive)"
//	@Param		end		query	string	true	"Range end (YYYY-MM-DD, exclusive)"
//	@Success	200	{object}	response.StandardApiResponse
//	@Router		/availability/calendar [get]
func (c *Controller) GetCalendar(ctx *gin.Context) {
	start, end, ok := c.parseRange(ctx, "start", "end")
	if !ok {
		return
	}

	days, err := c.service.GetCalendar(ctx.Request.Context(), start, end)
	if err != nil {
		c.respondRangeError(ctx, err, "Failed to load calendar")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Calendar loaded", gin.H{
		"start": start,
		"end":   end,
		"days":  days,
	}, nil)
}

// SuggestAlternatives handles GET /api/v1/availability/alternatives
//
//	@Summary	Nearby fully-available ranges for an unavailable request
//	@Tags		availability
//	@Param		check_in		query	string	true	"Check-in date (YYYY-MM-DD)"
//	@Param		check_out		query	string	true	"Check-out date (YYYY-MM-DD)"
//	@Param		max_shift_days	query	int		false	"Maximum shift in days (default 7)"
//	@Success	200	{object}	response.StandardApiResponse
//	@Router		/availability/alternatives [get]
func (c *Controller) SuggestAlternatives(ctx *gin.Context) {
	checkIn, checkOut, ok := c.parseRange(ctx, "check_in", "check_out")
	if !ok {
		return
	}

	maxShift := defaultMaxShiftDays
	if raw := ctx.Query("max_shift_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 30 {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "max_shift_days must be between 1 and 30", nil, nil)
			return
		}
		maxShift = parsed
	}

	alternatives, err := c.service.SuggestAlternatives(ctx.Request.Context(), checkIn, checkOut, maxShift)
	if err != nil {
		c.respondRangeError(ctx, err, "Failed to suggest alternatives")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Alternatives suggested", gin.H{
		"alternatives": alternatives,
	}, nil)
}

// BlockRange handles POST /api/v1/availability/blocks (staff only)
func (c *Controller) BlockRange(ctx *gin.Context) {
	var req BlockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	start, err := dates.Parse(req.Start)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid start date", nil, err.Error())
		return
	}
	end, err := dates.Parse(req.End)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid end date", nil, err.Error())
		return
	}

	if err := c.service.BlockRange(ctx.Request.Context(), start, end); err != nil {
		switch {
		case errors.Is(err, ErrInvalidRange):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "end must be after start", nil, nil)
		case errors.Is(err, ErrRangeConflict):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Range contains booked days", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to block range", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Range blocked", nil, nil)
}

// UnblockRange handles DELETE /api/v1/availability/blocks (staff only)
func (c *Controller) UnblockRange(ctx *gin.Context) {
	var req BlockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	start, err := dates.Parse(req.Start)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid start date", nil, err.Error())
		return
	}
	end, err := dates.Parse(req.End)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid end date", nil, err.Error())
		return
	}

	if err := c.service.UnblockRange(ctx.Request.Context(), start, end); err != nil {
		if errors.Is(err, ErrInvalidRange) {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "end must be after start", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to unblock range", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Range unblocked", nil, nil)
}

// BlockRequest is the staff block/unblock payload.
type BlockRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

func (c *Controller) parseRange(ctx *gin.Context, inParam, outParam string) (dates.Date, dates.Date, bool) {
	start, err := dates.Parse(ctx.Query(inParam))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid "+inParam+" date", nil, err.Error())
		return dates.Date{}, dates.Date{}, false
	}
	end, err := dates.Parse(ctx.Query(outParam))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid "+outParam+" date", nil, err.Error())
		return dates.Date{}, dates.Date{}, false
	}
	return start, end, true
}

func (c *Controller) respondRangeError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidRange):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "check_out must be after check_in", nil, nil)
	case errors.Is(err, pricing.ErrNoPricingConfigured):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "No pricing configured for the requested dates", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}
