package refunds

import "driftwood/internal/shared/dates"

// Tier identifies the refund bracket selected by days-until-check-in.
type Tier string

const (
	TierFull    Tier = "full"    // 14+ days before check-in, 100% refund
	TierPartial Tier = "partial" // 7-13 days before check-in, 50% refund
	TierNone    Tier = "none"    // under 7 days (or after check-in), no refund
)

// Calculation is the outcome of applying the refund policy to a cancellation.
// It is derived on every request and never persisted.
type Calculation struct {
	RefundAmount     int64      `json:"refund_amount"` // minor currency units
	Percentage       int        `json:"percentage"`    // 0, 50 or 100
	Tier             Tier       `json:"tier"`
	DaysUntilCheckIn int        `json:"days_until_check_in"`
	CheckInDate      dates.Date `json:"check_in_date"`
	CancellationDate dates.Date `json:"cancellation_date"`
	Description      string     `json:"description"`
}

// IsFullRefund reports whether the whole payment is returned.
func (c Calculation) IsFullRefund() bool {
	return c.Tier == TierFull
}

// IsRefundable reports whether any amount is returned.
func (c Calculation) IsRefundable() bool {
	return c.RefundAmount > 0
}
