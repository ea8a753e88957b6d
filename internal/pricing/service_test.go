package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftwood/internal/shared/dates"
)

type fakeRepository struct {
	rates []SeasonalRate
	err   error
}

func (f *fakeRepository) ListActiveRates(ctx context.Context) ([]SeasonalRate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

func testRates() []SeasonalRate {
	return []SeasonalRate{
		{
			Name:          "Low Season",
			StartDate:     dates.New(2026, time.January, 1).Time(),
			EndDate:       dates.New(2026, time.May, 31).Time(),
			NightlyRate:   15000,
			CleaningFee:   8000,
			MinimumNights: 2,
			IsActive:      true,
		},
		{
			Name:          "High Season",
			StartDate:     dates.New(2026, time.June, 1).Time(),
			EndDate:       dates.New(2026, time.September, 30).Time(),
			NightlyRate:   25000,
			CleaningFee:   12500,
			MinimumNights: 3,
			IsActive:      true,
		},
	}
}

func TestRateForDate(t *testing.T) {
	svc := NewService(&fakeRepository{rates: testRates()})

	rate, err := svc.RateForDate(context.Background(), dates.New(2026, time.July, 15))
	require.NoError(t, err)
	assert.Equal(t, "High Season", rate.Name)

	// Season boundaries are inclusive on both ends.
	rate, err = svc.RateForDate(context.Background(), dates.New(2026, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, "High Season", rate.Name)

	rate, err = svc.RateForDate(context.Background(), dates.New(2026, time.May, 31))
	require.NoError(t, err)
	assert.Equal(t, "Low Season", rate.Name)
}

func TestRateForDateNoCoverage(t *testing.T) {
	svc := NewService(&fakeRepository{rates: testRates()})

	_, err := svc.RateForDate(context.Background(), dates.New(2026, time.November, 1))
	assert.ErrorIs(t, err, ErrNoPricingConfigured)

	empty := NewService(&fakeRepository{})
	_, err = empty.RateForDate(context.Background(), dates.New(2026, time.July, 15))
	assert.ErrorIs(t, err, ErrNoPricingConfigured)
}

func TestOverlappingRatesEarliestStartWins(t *testing.T) {
	overlapping := testRates()
	overlapping = append(overlapping, SeasonalRate{
		Name:          "Promo Week",
		StartDate:     dates.New(2026, time.July, 10).Time(),
		EndDate:       dates.New(2026, time.July, 20).Time(),
		NightlyRate:   9000,
		CleaningFee:   5000,
		MinimumNights: 1,
		IsActive:      true,
	})
	svc := NewService(&fakeRepository{rates: overlapping})

	// High Season starts June 1, before the promo's July 10; it wins.
	rate, err := svc.RateForDate(context.Background(), dates.New(2026, time.July, 15))
	require.NoError(t, err)
	assert.Equal(t, "High Season", rate.Name)
}

func TestCalculateTotal(t *testing.T) {
	svc := NewService(&fakeRepository{rates: testRates()})

	quote, err := svc.CalculateTotal(context.Background(),
		dates.New(2026, time.July, 10), dates.New(2026, time.July, 14))
	require.NoError(t, err)

	assert.Equal(t, "High Season", quote.SeasonName)
	assert.Equal(t, 4, quote.Nights)
	assert.Equal(t, int64(25000), quote.NightlyRate)
	assert.Equal(t, int64(12500), quote.CleaningFee)
	assert.Equal(t, int64(112500), quote.TotalAmount) // 4*25000 + 12500
}

func TestCalculateTotalCheckInSeasonGovernsStay(t *testing.T) {
	svc := NewService(&fakeRepository{rates: testRates()})

	// Stay straddles the May 31 / June 1 boundary; the check-in season's
	// rate applies to every night.
	quote, err := svc.CalculateTotal(context.Background(),
		dates.New(2026, time.May, 30), dates.New(2026, time.June, 3))
	require.NoError(t, err)

	assert.Equal(t, "Low Season", quote.SeasonName)
	assert.Equal(t, int64(4*15000+8000), quote.TotalAmount)
}

func TestCalculateTotalInvalidRange(t *testing.T) {
	svc := NewService(&fakeRepository{rates: testRates()})

	_, err := svc.CalculateTotal(context.Background(),
		dates.New(2026, time.July, 14), dates.New(2026, time.July, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.CalculateTotal(context.Background(),
		dates.New(2026, time.July, 10), dates.New(2026, time.July, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCheckMinimumStay(t *testing.T) {
	svc := NewService(&fakeRepository{rates: testRates()})

	check, err := svc.CheckMinimumStay(context.Background(),
		dates.New(2026, time.July, 10), dates.New(2026, time.July, 12))
	require.NoError(t, err)
	assert.False(t, check.IsValid)
	assert.Equal(t, 2, check.RequestedNights)
	assert.Equal(t, 3, check.MinimumNights)
	assert.Contains(t, check.Message, "High Season")

	check, err = svc.CheckMinimumStay(context.Background(),
		dates.New(2026, time.July, 10), dates.New(2026, time.July, 13))
	require.NoError(t, err)
	assert.True(t, check.IsValid)
	assert.Empty(t, check.Message)
}

func TestMinimumNightsForDate(t *testing.T) {
	svc := NewService(&fakeRepository{rates: testRates()})

	n, err := svc.MinimumNightsForDate(context.Background(), dates.New(2026, time.February, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
