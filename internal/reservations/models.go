package reservations

import (
	"time"

	"github.com/google/uuid"

	"driftwood/internal/shared/dates"
)

// Status is the lifecycle state of a reservation.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// IsValid checks if the status is a known lifecycle state
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
// PENDING may confirm or cancel; CONFIRMED may complete or cancel;
// CANCELLED and COMPLETED are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// PaymentStatus tracks the money side of a reservation.
type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "PENDING"
	PaymentStatusPaid          PaymentStatus = "PAID"
	PaymentStatusRefunded      PaymentStatus = "REFUNDED"
	PaymentStatusPartialRefund PaymentStatus = "PARTIAL_REFUND"
	PaymentStatusCancelled     PaymentStatus = "CANCELLED"
)

// Reservation defines the main reservation structure. Dates are stored as
// UTC-midnight date columns; checkout is exclusive.
type Reservation struct {
	ID              uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	GuestID         uuid.UUID     `gorm:"type:uuid;index;not null" json:"guest_id"`
	CheckIn         time.Time     `gorm:"type:date;not null" json:"-"`
	CheckOut        time.Time     `gorm:"type:date;not null" json:"-"`
	NumAdults       int           `gorm:"not null" json:"num_adults"`
	NumChildren     int           `gorm:"not null;default:0" json:"num_children"`
	TotalAmount     int64         `gorm:"not null" json:"total_amount"` // minor currency units
	Status          Status        `gorm:"type:varchar(20);check:status IN ('PENDING', 'CONFIRMED', 'CANCELLED', 'COMPLETED');default:'PENDING'" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(20);default:'PENDING'" json:"payment_status"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	HoldID          string        `gorm:"type:varchar(64)" json:"-"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
}

// TableName sets the table name for Reservation
func (Reservation) TableName() string {
	return "reservations"
}

// CheckInDate returns the check-in as a calendar date.
func (r *Reservation) CheckInDate() dates.Date {
	return dates.FromTime(r.CheckIn)
}

// CheckOutDate returns the (exclusive) check-out as a calendar date.
func (r *Reservation) CheckOutDate() dates.Date {
	return dates.FromTime(r.CheckOut)
}

// Nights returns the number of occupied nights.
func (r *Reservation) Nights() int {
	return dates.NightsBetween(r.CheckInDate(), r.CheckOutDate())
}

// TotalGuests returns the combined party size.
func (r *Reservation) TotalGuests() int {
	return r.NumAdults + r.NumChildren
}

// IsOwnedBy reports whether the reservation belongs to the given guest.
func (r *Reservation) IsOwnedBy(guestID uuid.UUID) bool {
	return r.GuestID == guestID
}

func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}
