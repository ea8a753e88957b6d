package reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"driftwood/internal/pricing"
	"driftwood/internal/shared/middleware"
	"driftwood/internal/shared/utils/response"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// CreateReservation handles POST /api/v1/reservations
//
//	@Summary	Place a pending reservation
//	@Tags		reservations
//	@Accept		json
//	@Produce	json
//	@Param		request	body	CreateReservationRequest	true	"Reservation payload"
//	@Success	201	{object}	response.StandardApiResponse{data=ReservationResponse}
//	@Failure	409	{object}	response.StandardApiResponse
//	@Security	BearerAuth
//	@Router		/reservations [post]
func (c *Controller) CreateReservation(ctx *gin.Context) {
	guestID, ok := c.actorGuestID(ctx)
	if !ok {
		return
	}

	var req CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.Create(ctx.Request.Context(), guestID, &req)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to create reservation")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Reservation created", resp, nil)
}

// ConfirmReservation handles POST /api/v1/reservations/:id/confirm
//
//	@Summary	Confirm a pending reservation
//	@Tags		reservations
//	@Produce	json
//	@Param		id	path	string	true	"Reservation ID"
//	@Success	200	{object}	response.StandardApiResponse{data=ReservationResponse}
//	@Failure	409	{object}	response.StandardApiResponse
//	@Security	BearerAuth
//	@Router		/reservations/{id}/confirm [post]
func (c *Controller) ConfirmReservation(ctx *gin.Context) {
	actor, reservationID, ok := c.actorAndID(ctx)
	if !ok {
		return
	}

	resp, err := c.service.Confirm(ctx.Request.Context(), actor, reservationID)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to confirm reservation")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation confirmed", resp, nil)
}

// ModifyReservation handles PATCH /api/v1/reservations/:id
//
//	@Summary	Modify reservation dates, party size or requests
//	@Tags		reservations
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string						true	"Reservation ID"
//	@Param		request	body	ModifyReservationRequest	true	"Fields to change"
//	@Success	200	{object}	response.StandardApiResponse{data=ReservationResponse}
//	@Security	BearerAuth
//	@Router		/reservations/{id} [patch]
func (c *Controller) ModifyReservation(ctx *gin.Context) {
	actor, reservationID, ok := c.actorAndID(ctx)
	if !ok {
		return
	}

	var req ModifyReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.Modify(ctx.Request.Context(), actor, reservationID, &req)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to modify reservation")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation modified", resp, nil)
}

// CancelReservation handles POST /api/v1/reservations/:id/cancel
//
//	@Summary	Cancel a reservation and compute its refund
//	@Tags		reservations
//	@Produce	json
//	@Param		id	path	string	true	"Reservation ID"
//	@Success	200	{object}	response.StandardApiResponse{data=CancellationResponse}
//	@Failure	409	{object}	response.StandardApiResponse
//	@Security	BearerAuth
//	@Router		/reservations/{id}/cancel [post]
func (c *Controller) CancelReservation(ctx *gin.Context) {
	actor, reservationID, ok := c.actorAndID(ctx)
	if !ok {
		return
	}

	resp, err := c.service.Cancel(ctx.Request.Context(), actor, reservationID)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to cancel reservation")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation cancelled", resp, nil)
}

// GetRefundPreview handles GET /api/v1/reservations/:id/refund-preview
func (c *Controller) GetRefundPreview(ctx *gin.Context) {
	actor, reservationID, ok := c.actorAndID(ctx)
	if !ok {
		return
	}

	resp, err := c.service.PreviewRefund(ctx.Request.Context(), actor, reservationID)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to preview refund")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Refund previewed", resp, nil)
}

// GetReservation handles GET /api/v1/reservations/:id
func (c *Controller) GetReservation(ctx *gin.Context) {
	actor, reservationID, ok := c.actorAndID(ctx)
	if !ok {
		return
	}

	resp, err := c.service.Get(ctx.Request.Context(), actor, reservationID)
	if err != nil {
		c.respondServiceError(ctx, err, "Failed to get reservation")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation retrieved", resp, nil)
}

// GetMyReservations handles GET /api/v1/reservations
func (c *Controller) GetMyReservations(ctx *gin.Context) {
	guestID, ok := c.actorGuestID(ctx)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	reservations, total, err := c.service.GetGuestReservations(ctx.Request.Context(), guestID, limit, offset)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list reservations", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved", map[string]interface{}{
		"reservations": reservations,
		"total":        total,
		"limit":        limit,
		"offset":       offset,
	}, nil)
}

func (c *Controller) actorGuestID(ctx *gin.Context) (uuid.UUID, bool) {
	guestIDStr, exists := middleware.GuestID(ctx)
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Guest not authenticated", nil, nil)
		return uuid.Nil, false
	}
	guestID, err := uuid.Parse(guestIDStr)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid guest identity", nil, nil)
		return uuid.Nil, false
	}
	return guestID, true
}

func (c *Controller) actorAndID(ctx *gin.Context) (Actor, uuid.UUID, bool) {
	guestID, ok := c.actorGuestID(ctx)
	if !ok {
		return Actor{}, uuid.Nil, false
	}

	reservationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid reservation ID", nil, nil)
		return Actor{}, uuid.Nil, false
	}

	return Actor{GuestID: guestID, IsStaff: middleware.IsStaff(ctx)}, reservationID, true
}

// respondServiceError maps lifecycle errors onto HTTP statuses.
func (c *Controller) respondServiceError(ctx *gin.Context, err error, fallback string) {
	var unavailable *DatesUnavailableError
	var minNights *MinimumNightsError

	switch {
	case errors.As(err, &unavailable):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Requested dates are not available",
			UnavailableDetails{
				UnavailableDates: unavailable.UnavailableDates,
				Alternatives:     unavailable.Alternatives,
			}, nil)
	case errors.As(err, &minNights):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, minNights.Message, nil, nil)
	case errors.Is(err, ErrReservationNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Reservation not found", nil, nil)
	case errors.Is(err, ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Reservation belongs to another guest", nil, nil)
	case errors.Is(err, ErrAlreadyCancelled):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Reservation is already cancelled", nil, nil)
	case errors.Is(err, ErrInvalidTransition):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Reservation status does not allow this operation", nil, nil)
	case errors.Is(err, ErrInvalidRange):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "check_out must be after check_in", nil, nil)
	case errors.Is(err, ErrCapacityExceeded):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Party size exceeds the property capacity", nil, nil)
	case errors.Is(err, pricing.ErrNoPricingConfigured):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "No pricing configured for the requested dates", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}
