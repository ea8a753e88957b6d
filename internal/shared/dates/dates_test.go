package dates

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("2026-07-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-15", d.String())
	assert.Equal(t, time.UTC, d.Time().Location())

	_, err = Parse("15/07/2026")
	assert.Error(t, err)

	_, err = Parse("2026-02-30")
	assert.Error(t, err)
}

func TestFromTimeTruncates(t *testing.T) {
	instant := time.Date(2026, time.July, 15, 23, 45, 12, 0, time.UTC)
	assert.Equal(t, New(2026, time.July, 15), FromTime(instant))
}

func TestDaysUntil(t *testing.T) {
	base := New(2026, time.July, 1)

	assert.Equal(t, 14, base.DaysUntil(New(2026, time.July, 15)))
	assert.Equal(t, 0, base.DaysUntil(base))
	assert.Equal(t, -5, base.DaysUntil(New(2026, time.June, 26)))
}

func TestNightsBetween(t *testing.T) {
	checkIn := New(2026, time.July, 10)
	checkOut := New(2026, time.July, 14)

	// Exclusive check-out: four nights, last occupied night is the 13th.
	assert.Equal(t, 4, NightsBetween(checkIn, checkOut))
}

func TestRangeDays(t *testing.T) {
	start := New(2026, time.July, 10)
	end := New(2026, time.July, 13)

	days := RangeDays(start, end)
	require.Len(t, days, 3)
	assert.Equal(t, "2026-07-10", days[0].String())
	assert.Equal(t, "2026-07-12", days[2].String())

	// Check-out day is never part of the stay.
	for _, d := range days {
		assert.True(t, d.Before(end))
	}

	assert.Nil(t, RangeDays(end, start))
	assert.Nil(t, RangeDays(start, start))
}

func TestRangeCrossesMonthBoundary(t *testing.T) {
	days := RangeDays(New(2026, time.July, 30), New(2026, time.August, 2))
	require.Len(t, days, 3)
	assert.Equal(t, "2026-07-31", days[1].String())
	assert.Equal(t, "2026-08-01", days[2].String())
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		CheckIn Date `json:"check_in"`
	}

	data, err := json.Marshal(payload{CheckIn: New(2026, time.July, 15)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"check_in":"2026-07-15"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"check_in":"2026-07-15"}`), &decoded))
	assert.Equal(t, New(2026, time.July, 15), decoded.CheckIn)

	assert.Error(t, json.Unmarshal([]byte(`{"check_in":"not-a-date"}`), &decoded))
}
