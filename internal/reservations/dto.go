package reservations

import (
	"time"

	"driftwood/internal/availability"
	"driftwood/internal/refunds"
	"driftwood/internal/shared/dates"
)

// CreateReservationRequest represents the reservation creation payload.
// Dates are YYYY-MM-DD strings; check_out is exclusive.
type CreateReservationRequest struct {
	CheckIn         string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut        string `json:"check_out" validate:"required,datetime=2006-01-02"`
	NumAdults       int    `json:"num_adults" validate:"required,min=1,max=4"`
	NumChildren     int    `json:"num_children" validate:"min=0,max=4"`
	SpecialRequests string `json:"special_requests,omitempty" validate:"max=1000"`
}

// ModifyReservationRequest represents a reservation modification payload.
// All fields are optional; omitted ones keep their current value.
type ModifyReservationRequest struct {
	CheckIn         *string `json:"check_in,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CheckOut        *string `json:"check_out,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NumAdults       *int    `json:"num_adults,omitempty" validate:"omitempty,min=1,max=4"`
	NumChildren     *int    `json:"num_children,omitempty" validate:"omitempty,min=0,max=4"`
	SpecialRequests *string `json:"special_requests,omitempty" validate:"omitempty,max=1000"`
}

// ReservationResponse represents reservation data in responses
type ReservationResponse struct {
	ID              string        `json:"id"`
	GuestID         string        `json:"guest_id"`
	CheckIn         dates.Date    `json:"check_in"`
	CheckOut        dates.Date    `json:"check_out"`
	Nights          int           `json:"nights"`
	NumAdults       int           `json:"num_adults"`
	NumChildren     int           `json:"num_children"`
	TotalAmount     int64         `json:"total_amount"`
	Status          Status        `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
}

// CancellationResponse pairs the cancelled reservation with the refund the
// policy engine computed for it.
type CancellationResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Refund      refunds.Calculation `json:"refund"`
}

// RefundPreviewResponse shows what a cancellation would refund today,
// without changing anything.
type RefundPreviewResponse struct {
	ReservationID string              `json:"reservation_id"`
	Refund        refunds.Calculation `json:"refund"`
}

// UnavailableDetails is attached to conflict responses so clients can show
// which dates blocked the request and what nearby ranges are open.
type UnavailableDetails struct {
	UnavailableDates []dates.Date               `json:"unavailable_dates,omitempty"`
	Alternatives     []availability.Alternative `json:"alternatives,omitempty"`
}

func toReservationResponse(r *Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              r.ID.String(),
		GuestID:         r.GuestID.String(),
		CheckIn:         r.CheckInDate(),
		CheckOut:        r.CheckOutDate(),
		Nights:          r.Nights(),
		NumAdults:       r.NumAdults,
		NumChildren:     r.NumChildren,
		TotalAmount:     r.TotalAmount,
		Status:          r.Status,
		PaymentStatus:   r.PaymentStatus,
		SpecialRequests: r.SpecialRequests,
		CreatedAt:       r.CreatedAt,
		CancelledAt:     r.CancelledAt,
		CompletedAt:     r.CompletedAt,
	}
}

func toReservationResponses(list []Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for i := range list {
		out = append(out, toReservationResponse(&list[i]))
	}
	return out
}
