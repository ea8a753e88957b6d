package refunds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"driftwood/internal/shared/dates"
)

func TestCalculateRefundTiers(t *testing.T) {
	svc := NewService()
	checkIn := dates.New(2026, time.August, 20)

	tests := []struct {
		name        string
		cancelledOn dates.Date
		wantAmount  int64
		wantPct     int
		wantTier    Tier
	}{
		{"thirty days out", checkIn.AddDays(-30), 10000, 100, TierFull},
		{"exactly fourteen days", checkIn.AddDays(-14), 10000, 100, TierFull},
		{"fifteen days out", checkIn.AddDays(-15), 10000, 100, TierFull},
		{"thirteen days out", checkIn.AddDays(-13), 5000, 50, TierPartial},
		{"ten days out", checkIn.AddDays(-10), 5000, 50, TierPartial},
		{"exactly seven days", checkIn.AddDays(-7), 5000, 50, TierPartial},
		{"six days out", checkIn.AddDays(-6), 0, 0, TierNone},
		{"one day out", checkIn.AddDays(-1), 0, 0, TierNone},
		{"on check-in day", checkIn, 0, 0, TierNone},
		{"after check-in", checkIn.AddDays(3), 0, 0, TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := svc.CalculateRefund(10000, checkIn, tt.cancelledOn)

			assert.Equal(t, tt.wantAmount, calc.RefundAmount)
			assert.Equal(t, tt.wantPct, calc.Percentage)
			assert.Equal(t, tt.wantTier, calc.Tier)
			assert.Equal(t, checkIn, calc.CheckInDate)
			assert.Equal(t, tt.cancelledOn, calc.CancellationDate)
		})
	}
}

func TestCalculateRefundDaysUntil(t *testing.T) {
	svc := NewService()
	checkIn := dates.New(2026, time.August, 20)

	calc := svc.CalculateRefund(10000, checkIn, checkIn.AddDays(-14))
	assert.Equal(t, 14, calc.DaysUntilCheckIn)

	calc = svc.CalculateRefund(10000, checkIn, checkIn.AddDays(3))
	assert.Equal(t, -3, calc.DaysUntilCheckIn)
}

func TestPartialRefundRoundsDown(t *testing.T) {
	svc := NewService()
	checkIn := dates.New(2026, time.August, 20)

	// 50% of an odd amount floors to whole minor units.
	calc := svc.CalculateRefund(10001, checkIn, checkIn.AddDays(-10))
	assert.Equal(t, int64(5000), calc.RefundAmount)
}

func TestPostCheckInDescriptionDiffers(t *testing.T) {
	svc := NewService()
	checkIn := dates.New(2026, time.August, 20)

	before := svc.CalculateRefund(10000, checkIn, checkIn.AddDays(-2))
	after := svc.CalculateRefund(10000, checkIn, checkIn.AddDays(2))

	assert.Equal(t, before.Tier, after.Tier)
	assert.NotEqual(t, before.Description, after.Description)
	assert.Contains(t, after.Description, "after check-in")
}

func TestZeroPayment(t *testing.T) {
	svc := NewService()
	checkIn := dates.New(2026, time.August, 20)

	calc := svc.CalculateRefund(0, checkIn, checkIn.AddDays(-30))
	assert.Equal(t, int64(0), calc.RefundAmount)
	assert.Equal(t, TierFull, calc.Tier)
	assert.False(t, calc.IsRefundable())
	assert.True(t, calc.IsFullRefund())
}
