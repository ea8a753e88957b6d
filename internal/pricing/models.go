package pricing

import (
	"time"

	"github.com/google/uuid"

	"driftwood/internal/shared/dates"
)

// SeasonalRate defines the nightly pricing for a configured date range.
// Amounts are integers in minor currency units (cents). Rates are managed
// by the pricing-management tooling and read-only to the booking core.
type SeasonalRate struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	StartDate     time.Time `gorm:"type:date;index;not null" json:"start_date"`
	EndDate       time.Time `gorm:"type:date;not null" json:"end_date"`
	NightlyRate   int64     `gorm:"not null" json:"nightly_rate"`
	CleaningFee   int64     `gorm:"not null" json:"cleaning_fee"`
	MinimumNights int       `gorm:"not null;default:1" json:"minimum_nights"`
	IsActive      bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName sets the table name for SeasonalRate
func (SeasonalRate) TableName() string {
	return "seasonal_rates"
}

// Contains reports whether the rate's [start, end] range covers the date.
// Both boundaries are inclusive.
func (r SeasonalRate) Contains(d dates.Date) bool {
	day := d.Time()
	return !day.Before(r.StartDate) && !day.After(r.EndDate)
}

// Quote is the price breakdown for a stay. The season containing the
// check-in date governs the whole stay, even across a season boundary.
type Quote struct {
	SeasonName  string `json:"season_name"`
	NightlyRate int64  `json:"nightly_rate"`
	CleaningFee int64  `json:"cleaning_fee"`
	Nights      int    `json:"nights"`
	TotalAmount int64  `json:"total_amount"`
}

// MinimumStayCheck is the outcome of validating a stay length against the
// check-in season's minimum-nights rule.
type MinimumStayCheck struct {
	IsValid         bool   `json:"is_valid"`
	RequestedNights int    `json:"requested_nights"`
	MinimumNights   int    `json:"minimum_nights"`
	SeasonName      string `json:"season_name"`
	Message         string `json:"message,omitempty"`
}
