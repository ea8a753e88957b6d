package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies which lifecycle transition produced the event.
type EventType string

const (
	EventTypeReservationCreated   EventType = "RESERVATION_CREATED"
	EventTypeReservationConfirmed EventType = "RESERVATION_CONFIRMED"
	EventTypeReservationModified  EventType = "RESERVATION_MODIFIED"
	EventTypeReservationCancelled EventType = "RESERVATION_CANCELLED"
	EventTypeReservationCompleted EventType = "RESERVATION_COMPLETED"
)

// ReservationEvent is the message published to Kafka on every reservation
// lifecycle transition. Downstream consumers (email, ledger) read these.
type ReservationEvent struct {
	ID            uuid.UUID `json:"id"`
	Type          EventType `json:"type"`
	ReservationID uuid.UUID `json:"reservation_id"`
	GuestID       uuid.UUID `json:"guest_id"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	TotalAmount   int64     `json:"total_amount"`
	RefundAmount  int64     `json:"refund_amount,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewReservationEvent builds an event with a fresh ID and timestamp.
func NewReservationEvent(eventType EventType, reservationID, guestID uuid.UUID) *ReservationEvent {
	return &ReservationEvent{
		ID:            uuid.New(),
		Type:          eventType,
		ReservationID: reservationID,
		GuestID:       guestID,
		OccurredAt:    time.Now().UTC(),
	}
}

// GetPartitionKey routes all events for one guest to the same partition so
// consumers see that guest's transitions in order.
func (e *ReservationEvent) GetPartitionKey() string {
	return e.GuestID.String()
}

func (e *ReservationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
