package availability

import (
	"time"

	"github.com/google/uuid"

	"driftwood/internal/pricing"
	"driftwood/internal/shared/dates"
)

// Status is the booking state of a single calendar day.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusBooked    Status = "BOOKED"
	StatusBlocked   Status = "BLOCKED" // maintenance or owner block
)

// IsValid checks if the day status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked, StatusBlocked:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// DayStatus is one calendar day of the property's availability calendar.
// Days without a row are AVAILABLE; rows exist only for BOOKED and BLOCKED
// days, so releasing a booking means deleting its rows.
type DayStatus struct {
	Date          time.Time  `gorm:"type:date;primaryKey" json:"date"`
	Status        Status     `gorm:"type:varchar(20);not null;check:status IN ('BOOKED', 'BLOCKED')" json:"status"`
	ReservationID *uuid.UUID `gorm:"type:uuid;index" json:"reservation_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName sets the table name for DayStatus
func (DayStatus) TableName() string {
	return "day_statuses"
}

// DayInfo is a (date, status) pair for calendar views.
type DayInfo struct {
	Date   dates.Date `json:"date"`
	Status Status     `json:"status"`
}

// Result is the outcome of an availability check. The pricing quote is
// always populated when pricing is configured, even for unavailable ranges,
// so callers can show what the stay would cost.
type Result struct {
	IsAvailable      bool           `json:"is_available"`
	CheckIn          dates.Date     `json:"check_in"`
	CheckOut         dates.Date     `json:"check_out"`
	UnavailableDates []dates.Date   `json:"unavailable_dates,omitempty"`
	Quote            *pricing.Quote `json:"quote,omitempty"`
}

// Direction labels which way an alternative range was shifted.
type Direction string

const (
	DirectionEarlier Direction = "earlier"
	DirectionLater   Direction = "later"
)

// Alternative is a fully-available date range near an unavailable request,
// same night count as the original.
type Alternative struct {
	CheckIn    dates.Date `json:"check_in"`
	CheckOut   dates.Date `json:"check_out"`
	OffsetDays int        `json:"offset_days"`
	Direction  Direction  `json:"direction"`
}
