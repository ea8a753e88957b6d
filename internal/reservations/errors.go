package reservations

import (
	"errors"
	"fmt"

	"driftwood/internal/availability"
	"driftwood/internal/shared/dates"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotOwner            = errors.New("reservation belongs to another guest")
	ErrAlreadyCancelled    = errors.New("reservation is already cancelled")
	ErrInvalidTransition   = errors.New("reservation status does not allow this transition")
	ErrInvalidRange        = errors.New("check-out date must be after check-in date")
	ErrCapacityExceeded    = errors.New("party size exceeds the property capacity")
)

// DatesUnavailableError reports which nights blocked a create or modify,
// with nearby fully-open ranges when any exist.
type DatesUnavailableError struct {
	CheckIn          dates.Date
	CheckOut         dates.Date
	UnavailableDates []dates.Date
	Alternatives     []availability.Alternative
}

func (e *DatesUnavailableError) Error() string {
	return fmt.Sprintf("dates %s to %s are not available", e.CheckIn, e.CheckOut)
}

// MinimumNightsError reports a stay shorter than the check-in season allows.
type MinimumNightsError struct {
	RequestedNights int
	MinimumNights   int
	SeasonName      string
	Message         string
}

func (e *MinimumNightsError) Error() string {
	return e.Message
}
