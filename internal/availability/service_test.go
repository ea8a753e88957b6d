package availability

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftwood/internal/pricing"
	"driftwood/internal/shared/dates"
)

// memRepository is an in-memory calendar keyed by date string.
type memRepository struct {
	mu   sync.Mutex
	days map[string]DayStatus
}

func newMemRepository() *memRepository {
	return &memRepository{days: make(map[string]DayStatus)}
}

func (m *memRepository) GetDay(ctx context.Context, day dates.Date) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.days[day.String()]; ok {
		return row.Status, nil
	}
	return StatusAvailable, nil
}

func (m *memRepository) GetRange(ctx context.Context, start, end dates.Date) ([]DayInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var infos []DayInfo
	for _, day := range dates.RangeDays(start, end) {
		status := StatusAvailable
		if row, ok := m.days[day.String()]; ok {
			status = row.Status
		}
		infos = append(infos, DayInfo{Date: day, Status: status})
	}
	return infos, nil
}

func (m *memRepository) UnavailableDates(ctx context.Context, start, end dates.Date, excludeReservationID *uuid.UUID) ([]dates.Date, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var unavailable []dates.Date
	for _, day := range dates.RangeDays(start, end) {
		row, ok := m.days[day.String()]
		if !ok {
			continue
		}
		if excludeReservationID != nil && row.ReservationID != nil && *row.ReservationID == *excludeReservationID {
			continue
		}
		unavailable = append(unavailable, day)
	}
	return unavailable, nil
}

func (m *memRepository) ClaimRange(ctx context.Context, start, end dates.Date, reservationID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	days := dates.RangeDays(start, end)
	for _, day := range days {
		if _, taken := m.days[day.String()]; taken {
			return ErrRangeConflict
		}
	}
	resID := reservationID
	for _, day := range days {
		m.days[day.String()] = DayStatus{Date: day.Time(), Status: StatusBooked, ReservationID: &resID}
	}
	return nil
}

func (m *memRepository) ReleaseRange(ctx context.Context, reservationID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, row := range m.days {
		if row.Status == StatusBooked && row.ReservationID != nil && *row.ReservationID == reservationID {
			delete(m.days, key)
		}
	}
	return nil
}

func (m *memRepository) BlockRange(ctx context.Context, start, end dates.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	days := dates.RangeDays(start, end)
	for _, day := range days {
		if row, ok := m.days[day.String()]; ok && row.Status == StatusBooked {
			return ErrRangeConflict
		}
	}
	for _, day := range days {
		m.days[day.String()] = DayStatus{Date: day.Time(), Status: StatusBlocked}
	}
	return nil
}

func (m *memRepository) UnblockRange(ctx context.Context, start, end dates.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, day := range dates.RangeDays(start, end) {
		if row, ok := m.days[day.String()]; ok && row.Status == StatusBlocked {
			delete(m.days, day.String())
		}
	}
	return nil
}

// memHoldStore mimics the Redis hold semantics in memory.
type memHoldStore struct {
	mu        sync.Mutex
	dayOwners map[string]string   // date -> holdID
	holds     map[string][]string // holdID -> dates
}

func newMemHoldStore() *memHoldStore {
	return &memHoldStore{
		dayOwners: make(map[string]string),
		holds:     make(map[string][]string),
	}
}

func (m *memHoldStore) HoldRange(ctx context.Context, days []dates.Date, guestID, holdID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, day := range days {
		if owner, held := m.dayOwners[day.String()]; held && owner != holdID {
			return &HoldConflictError{Date: day}
		}
	}
	for _, day := range days {
		m.dayOwners[day.String()] = holdID
		m.holds[holdID] = append(m.holds[holdID], day.String())
	}
	return nil
}

func (m *memHoldStore) ReleaseHold(ctx context.Context, holdID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	released := 0
	for _, key := range m.holds[holdID] {
		if m.dayOwners[key] == holdID {
			delete(m.dayOwners, key)
			released++
		}
	}
	delete(m.holds, holdID)
	return released, nil
}

func (m *memHoldStore) HeldDates(ctx context.Context, days []dates.Date, excludeHoldID string) ([]dates.Date, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var held []dates.Date
	for _, day := range days {
		owner, ok := m.dayOwners[day.String()]
		if ok && (excludeHoldID == "" || owner != excludeHoldID) {
			held = append(held, day)
		}
	}
	return held, nil
}

type staticPricing struct{}

func (staticPricing) RateForDate(ctx context.Context, date dates.Date) (*pricing.SeasonalRate, error) {
	return &pricing.SeasonalRate{Name: "Test Season", NightlyRate: 10000, CleaningFee: 5000, MinimumNights: 1}, nil
}

func (staticPricing) MinimumNightsForDate(ctx context.Context, date dates.Date) (int, error) {
	return 1, nil
}

func (staticPricing) CalculateTotal(ctx context.Context, checkIn, checkOut dates.Date) (*pricing.Quote, error) {
	nights := dates.NightsBetween(checkIn, checkOut)
	return &pricing.Quote{
		SeasonName:  "Test Season",
		NightlyRate: 10000,
		CleaningFee: 5000,
		Nights:      nights,
		TotalAmount: int64(nights)*10000 + 5000,
	}, nil
}

func (staticPricing) CheckMinimumStay(ctx context.Context, checkIn, checkOut dates.Date) (*pricing.MinimumStayCheck, error) {
	return &pricing.MinimumStayCheck{IsValid: true, RequestedNights: dates.NightsBetween(checkIn, checkOut), MinimumNights: 1}, nil
}

func newTestService() (Service, *memRepository, *memHoldStore) {
	repo := newMemRepository()
	holds := newMemHoldStore()
	return NewService(repo, holds, staticPricing{}), repo, holds
}

func TestCheckAvailabilityOpenRange(t *testing.T) {
	svc, _, _ := newTestService()

	result, err := svc.CheckAvailability(context.Background(),
		dates.New(2026, time.July, 10), dates.New(2026, time.July, 14))
	require.NoError(t, err)

	assert.True(t, result.IsAvailable)
	assert.Empty(t, result.UnavailableDates)
	require.NotNil(t, result.Quote)
	assert.Equal(t, int64(45000), result.Quote.TotalAmount)
}

func TestCheckAvailabilityReportsBookedDays(t *testing.T) {
	svc, repo, _ := newTestService()

	resID := uuid.New()
	require.NoError(t, repo.ClaimRange(context.Background(),
		dates.New(2026, time.July, 11), dates.New(2026, time.July, 13), resID))

	result, err := svc.CheckAvailability(context.Background(),
		dates.New(2026, time.July, 10), dates.New(2026, time.July, 14))
	require.NoError(t, err)

	assert.False(t, result.IsAvailable)
	require.Len(t, result.UnavailableDates, 2)
	assert.Equal(t, "2026-07-11", result.UnavailableDates[0].String())
	assert.Equal(t, "2026-07-12", result.UnavailableDates[1].String())

	// Unavailable responses still carry a quote.
	assert.NotNil(t, result.Quote)
}

func TestCheckAvailabilitySeesHolds(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	checkIn, checkOut := dates.New(2026, time.July, 10), dates.New(2026, time.July, 12)
	require.NoError(t, svc.HoldRange(ctx, checkIn, checkOut, "guest-a", "hold-1", time.Minute))

	result, err := svc.CheckAvailability(ctx, checkIn, checkOut)
	require.NoError(t, err)
	assert.False(t, result.IsAvailable)

	// The holder re-checking its own range is not blocked by its hold.
	result, err = svc.CheckAvailabilityExcluding(ctx, checkIn, checkOut, CheckOptions{ExcludeHoldID: "hold-1"})
	require.NoError(t, err)
	assert.True(t, result.IsAvailable)

	// Released holds free the days immediately.
	require.NoError(t, svc.ReleaseHold(ctx, "hold-1"))
	result, err = svc.CheckAvailability(ctx, checkIn, checkOut)
	require.NoError(t, err)
	assert.True(t, result.IsAvailable)
}

func TestCheckAvailabilityInvalidRange(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CheckAvailability(context.Background(),
		dates.New(2026, time.July, 14), dates.New(2026, time.July, 10))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGetCalendar(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, repo.BlockRange(ctx, dates.New(2026, time.July, 12), dates.New(2026, time.July, 13)))

	infos, err := svc.GetCalendar(ctx, dates.New(2026, time.July, 10), dates.New(2026, time.July, 14))
	require.NoError(t, err)
	require.Len(t, infos, 4)

	assert.Equal(t, StatusAvailable, infos[0].Status)
	assert.Equal(t, StatusBlocked, infos[2].Status)
	for i := 1; i < len(infos); i++ {
		assert.True(t, infos[i-1].Date.Before(infos[i].Date), "calendar must be chronological")
	}
}

func TestSuggestAlternativesPrefersLaterAtSameOffset(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	// Book exactly the requested night; both one-day shifts remain open.
	resID := uuid.New()
	checkIn := dates.Today().AddDays(30)
	checkOut := checkIn.AddDays(1)
	require.NoError(t, repo.ClaimRange(ctx, checkIn, checkOut, resID))

	alts, err := svc.SuggestAlternatives(ctx, checkIn, checkOut, 3)
	require.NoError(t, err)
	require.NotEmpty(t, alts)

	// Smallest offset first, later before earlier at the same offset.
	assert.Equal(t, 1, alts[0].OffsetDays)
	assert.Equal(t, DirectionLater, alts[0].Direction)
	assert.Equal(t, checkIn.AddDays(1).String(), alts[0].CheckIn.String())

	assert.Equal(t, 1, alts[1].OffsetDays)
	assert.Equal(t, DirectionEarlier, alts[1].Direction)
	assert.Equal(t, checkIn.AddDays(-1).String(), alts[1].CheckIn.String())

	// Alternatives keep the requested night count.
	for _, alt := range alts {
		assert.Equal(t, 1, dates.NightsBetween(alt.CheckIn, alt.CheckOut))
	}
}

func TestSuggestAlternativesSkipsConflictingShifts(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	// Occupy the requested range plus the next two days so every "later"
	// shift within the window collides.
	resID := uuid.New()
	checkIn := dates.Today().AddDays(30)
	checkOut := checkIn.AddDays(2)
	require.NoError(t, repo.ClaimRange(ctx, checkIn, checkIn.AddDays(4), resID))

	alts, err := svc.SuggestAlternatives(ctx, checkIn, checkOut, 2)
	require.NoError(t, err)

	for _, alt := range alts {
		assert.Equal(t, DirectionEarlier, alt.Direction)
		free, err := svc.CheckAvailability(ctx, alt.CheckIn, alt.CheckOut)
		require.NoError(t, err)
		assert.True(t, free.IsAvailable, "suggested alternative must be fully available")
	}
}

func TestSuggestAlternativesNeverSuggestsPastCheckIns(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// A stay starting tomorrow: shifting earlier by more than one day would
	// land the check-in in the past.
	checkIn := dates.Today().AddDays(1)
	checkOut := checkIn.AddDays(1)

	alts, err := svc.SuggestAlternatives(ctx, checkIn, checkOut, 3)
	require.NoError(t, err)
	require.NotEmpty(t, alts)

	earlierOffsets := make(map[int]bool)
	for _, alt := range alts {
		assert.False(t, alt.CheckIn.Before(dates.Today()),
			"alternative %s starts in the past", alt.CheckIn)
		if alt.Direction == DirectionEarlier {
			earlierOffsets[alt.OffsetDays] = true
		}
	}

	// A same-day check-in is still a valid earlier shift; anything beyond
	// that is not.
	assert.True(t, earlierOffsets[1])
	assert.False(t, earlierOffsets[2])
	assert.False(t, earlierOffsets[3])
}

func TestClaimRangeConflict(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	first := uuid.New()
	require.NoError(t, svc.ClaimRange(ctx, dates.New(2026, time.July, 10), dates.New(2026, time.July, 14), first))

	// A second claim overlapping one night must fail entirely.
	second := uuid.New()
	err := svc.ClaimRange(ctx, dates.New(2026, time.July, 13), dates.New(2026, time.July, 16), second)
	assert.ErrorIs(t, err, ErrRangeConflict)

	// The failed claim left nothing behind.
	unavailable, err := repo.UnavailableDates(ctx, dates.New(2026, time.July, 14), dates.New(2026, time.July, 16), nil)
	require.NoError(t, err)
	assert.Empty(t, unavailable)
}

func TestReleaseRangeFreesOnlyOwnDays(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, second := uuid.New(), uuid.New()
	require.NoError(t, svc.ClaimRange(ctx, dates.New(2026, time.July, 10), dates.New(2026, time.July, 12), first))
	require.NoError(t, svc.ClaimRange(ctx, dates.New(2026, time.July, 12), dates.New(2026, time.July, 14), second))

	require.NoError(t, svc.ReleaseRange(ctx, first))

	result, err := svc.CheckAvailability(ctx, dates.New(2026, time.July, 10), dates.New(2026, time.July, 12))
	require.NoError(t, err)
	assert.True(t, result.IsAvailable)

	result, err = svc.CheckAvailability(ctx, dates.New(2026, time.July, 12), dates.New(2026, time.July, 14))
	require.NoError(t, err)
	assert.False(t, result.IsAvailable)
}

func TestBlockRangeRefusesBookedDays(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.ClaimRange(ctx, dates.New(2026, time.July, 10), dates.New(2026, time.July, 12), uuid.New()))

	err := svc.BlockRange(ctx, dates.New(2026, time.July, 11), dates.New(2026, time.July, 13))
	assert.ErrorIs(t, err, ErrRangeConflict)
}

func TestHoldRangeConflict(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	checkIn, checkOut := dates.New(2026, time.July, 10), dates.New(2026, time.July, 13)
	require.NoError(t, svc.HoldRange(ctx, checkIn, checkOut, "guest-a", "hold-a", time.Minute))

	err := svc.HoldRange(ctx, dates.New(2026, time.July, 12), dates.New(2026, time.July, 15), "guest-b", "hold-b", time.Minute)

	var conflict *HoldConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "2026-07-12", conflict.Date.String())
}
