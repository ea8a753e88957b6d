package reservations

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftwood/internal/availability"
	"driftwood/internal/pricing"
	"driftwood/internal/refunds"
	"driftwood/internal/shared/dates"
	"driftwood/pkg/logger"
)

// memRepo is an in-memory Repository.
type memRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]Reservation
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[uuid.UUID]Reservation)}
}

func (m *memRepo) Create(ctx context.Context, reservation *Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	reservation.CreatedAt = time.Now().UTC()
	reservation.UpdatedAt = reservation.CreatedAt
	m.rows[reservation.ID] = *reservation
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	copied := row
	return &copied, nil
}

func (m *memRepo) GetByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]Reservation, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []Reservation
	for _, row := range m.rows {
		if row.GuestID == guestID {
			all = append(all, row)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *memRepo) Update(ctx context.Context, reservation *Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[reservation.ID]; !ok {
		return ErrReservationNotFound
	}
	reservation.UpdatedAt = time.Now().UTC()
	m.rows[reservation.ID] = *reservation
	return nil
}

func (m *memRepo) ListDueForCompletion(ctx context.Context, today time.Time) ([]Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var due []Reservation
	for _, row := range m.rows {
		if row.Status == StatusConfirmed && !row.CheckOut.After(today) {
			due = append(due, row)
		}
	}
	return due, nil
}

// stubPricing quotes a flat 10000/night plus a 5000 cleaning fee.
type stubPricing struct {
	minNights int
}

func (p stubPricing) RateForDate(ctx context.Context, date dates.Date) (*pricing.SeasonalRate, error) {
	return &pricing.SeasonalRate{Name: "Flat Season", NightlyRate: 10000, CleaningFee: 5000, MinimumNights: p.minNights}, nil
}

func (p stubPricing) MinimumNightsForDate(ctx context.Context, date dates.Date) (int, error) {
	return p.minNights, nil
}

func (p stubPricing) CalculateTotal(ctx context.Context, checkIn, checkOut dates.Date) (*pricing.Quote, error) {
	nights := dates.NightsBetween(checkIn, checkOut)
	return &pricing.Quote{
		SeasonName:  "Flat Season",
		NightlyRate: 10000,
		CleaningFee: 5000,
		Nights:      nights,
		TotalAmount: int64(nights)*10000 + 5000,
	}, nil
}

func (p stubPricing) CheckMinimumStay(ctx context.Context, checkIn, checkOut dates.Date) (*pricing.MinimumStayCheck, error) {
	requested := dates.NightsBetween(checkIn, checkOut)
	check := &pricing.MinimumStayCheck{
		IsValid:         requested >= p.minNights,
		RequestedNights: requested,
		MinimumNights:   p.minNights,
		SeasonName:      "Flat Season",
	}
	if !check.IsValid {
		check.Message = fmt.Sprintf("Flat Season requires a minimum stay of %d nights; %d requested", p.minNights, requested)
	}
	return check, nil
}

// fakeAvailability keeps booked days and holds in memory with the same
// conflict semantics as the real engine.
type fakeAvailability struct {
	mu        sync.Mutex
	booked    map[string]uuid.UUID
	holdOwner map[string]string
	holdDays  map[string][]string
	claimErr  error
	pricing   pricing.Service
}

func newFakeAvailability(p pricing.Service) *fakeAvailability {
	return &fakeAvailability{
		booked:    make(map[string]uuid.UUID),
		holdOwner: make(map[string]string),
		holdDays:  make(map[string][]string),
		pricing:   p,
	}
}

func (f *fakeAvailability) CheckAvailability(ctx context.Context, checkIn, checkOut dates.Date) (*availability.Result, error) {
	return f.CheckAvailabilityExcluding(ctx, checkIn, checkOut, availability.CheckOptions{})
}

func (f *fakeAvailability) CheckAvailabilityExcluding(ctx context.Context, checkIn, checkOut dates.Date, opts availability.CheckOptions) (*availability.Result, error) {
	f.mu.Lock()
	var unavailable []dates.Date
	for _, day := range dates.RangeDays(checkIn, checkOut) {
		if resID, ok := f.booked[day.String()]; ok {
			if opts.ExcludeReservationID != nil && resID == *opts.ExcludeReservationID {
				continue
			}
			unavailable = append(unavailable, day)
			continue
		}
		if owner, held := f.holdOwner[day.String()]; held && owner != opts.ExcludeHoldID {
			unavailable = append(unavailable, day)
		}
	}
	f.mu.Unlock()

	quote, err := f.pricing.CalculateTotal(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return &availability.Result{
		IsAvailable:      len(unavailable) == 0,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		UnavailableDates: unavailable,
		Quote:            quote,
	}, nil
}

func (f *fakeAvailability) GetCalendar(ctx context.Context, start, end dates.Date) ([]availability.DayInfo, error) {
	return nil, nil
}

func (f *fakeAvailability) SuggestAlternatives(ctx context.Context, checkIn, checkOut dates.Date, maxShiftDays int) ([]availability.Alternative, error) {
	return []availability.Alternative{
		{
			CheckIn:    checkIn.AddDays(maxShiftDays),
			CheckOut:   checkOut.AddDays(maxShiftDays),
			OffsetDays: maxShiftDays,
			Direction:  availability.DirectionLater,
		},
	}, nil
}

func (f *fakeAvailability) HoldRange(ctx context.Context, checkIn, checkOut dates.Date, guestID, holdID string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	days := dates.RangeDays(checkIn, checkOut)
	for _, day := range days {
		if owner, held := f.holdOwner[day.String()]; held && owner != holdID {
			return &availability.HoldConflictError{Date: day}
		}
		if _, taken := f.booked[day.String()]; taken {
			return &availability.HoldConflictError{Date: day}
		}
	}
	for _, day := range days {
		f.holdOwner[day.String()] = holdID
		f.holdDays[holdID] = append(f.holdDays[holdID], day.String())
	}
	return nil
}

func (f *fakeAvailability) ReleaseHold(ctx context.Context, holdID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range f.holdDays[holdID] {
		if f.holdOwner[key] == holdID {
			delete(f.holdOwner, key)
		}
	}
	delete(f.holdDays, holdID)
	return nil
}

func (f *fakeAvailability) ClaimRange(ctx context.Context, checkIn, checkOut dates.Date, reservationID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimErr != nil {
		return f.claimErr
	}
	days := dates.RangeDays(checkIn, checkOut)
	for _, day := range days {
		if owner, taken := f.booked[day.String()]; taken && owner != reservationID {
			return availability.ErrRangeConflict
		}
	}
	for _, day := range days {
		f.booked[day.String()] = reservationID
	}
	return nil
}

func (f *fakeAvailability) ReleaseRange(ctx context.Context, reservationID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, owner := range f.booked {
		if owner == reservationID {
			delete(f.booked, key)
		}
	}
	return nil
}

func (f *fakeAvailability) BlockRange(ctx context.Context, start, end dates.Date) error {
	return nil
}

func (f *fakeAvailability) UnblockRange(ctx context.Context, start, end dates.Date) error {
	return nil
}

func (f *fakeAvailability) bookedDayCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.booked)
}

func (f *fakeAvailability) heldDayCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.holdOwner)
}

func newTestStack(minNights int) (Service, *memRepo, *fakeAvailability) {
	repo := newMemRepo()
	pricingService := stubPricing{minNights: minNights}
	avail := newFakeAvailability(pricingService)
	svc := NewService(repo, avail, pricingService, refunds.NewService(), nil, Config{
		HoldTTL:                 15 * time.Minute,
		MaxAlternativeShiftDays: 3,
		MaxOccupancy:            4,
	}, logger.GetDefault())
	return svc, repo, avail
}

func createRequest(checkIn, checkOut dates.Date) *CreateReservationRequest {
	return &CreateReservationRequest{
		CheckIn:   checkIn.String(),
		CheckOut:  checkOut.String(),
		NumAdults: 2,
	}
}

func TestCreateConfirmCancelFullRefund(t *testing.T) {
	svc, _, avail := newTestStack(1)
	ctx := context.Background()
	guestID := uuid.New()
	actor := Actor{GuestID: guestID}

	// Four nights starting a month out; cancellation lands in the full tier.
	checkIn := dates.Today().AddDays(30)
	checkOut := checkIn.AddDays(4)

	created, err := svc.Create(ctx, guestID, createRequest(checkIn, checkOut))
	require.NoError(t, err)
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, PaymentStatusPending, created.PaymentStatus)
	assert.Equal(t, int64(45000), created.TotalAmount)
	assert.Equal(t, 4, avail.heldDayCount())
	assert.Zero(t, avail.bookedDayCount(), "no durable claim before confirmation")

	resID := uuid.MustParse(created.ID)
	confirmed, err := svc.Confirm(ctx, actor, resID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)
	assert.Equal(t, PaymentStatusPaid, confirmed.PaymentStatus)
	assert.Equal(t, 4, avail.bookedDayCount())
	assert.Zero(t, avail.heldDayCount(), "hold released once the claim exists")

	cancelled, err := svc.Cancel(ctx, actor, resID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Reservation.Status)
	assert.Equal(t, PaymentStatusRefunded, cancelled.Reservation.PaymentStatus)
	assert.Equal(t, refunds.TierFull, cancelled.Refund.Tier)
	assert.Equal(t, 100, cancelled.Refund.Percentage)
	assert.Equal(t, int64(45000), cancelled.Refund.RefundAmount)
	assert.Zero(t, avail.bookedDayCount(), "cancellation frees the nights")
}

func TestCancelTwice(t *testing.T) {
	svc, _, _ := newTestStack(1)
	ctx := context.Background()
	guestID := uuid.New()
	actor := Actor{GuestID: guestID}

	checkIn := dates.Today().AddDays(20)
	created, err := svc.Create(ctx, guestID, createRequest(checkIn, checkIn.AddDays(2)))
	require.NoError(t, err)
	resID := uuid.MustParse(created.ID)

	_, err = svc.Cancel(ctx, actor, resID)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, actor, resID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelUnpaidPending(t *testing.T) {
	svc, _, _ := newTestStack(1)
	ctx := context.Background()
	guestID := uuid.New()

	checkIn := dates.Today().AddDays(20)
	created, err := svc.Create(ctx, guestID, createRequest(checkIn, checkIn.AddDays(2)))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, Actor{GuestID: guestID}, uuid.MustParse(created.ID))
	require.NoError(t, err)

	// Nothing was charged, so nothing is returned regardless of tier.
	assert.Zero(t, cancelled.Refund.RefundAmount)
	assert.Equal(t, PaymentStatusCancelled, cancelled.Reservation.PaymentStatus)
}

func TestCancelRefundTiers(t *testing.T) {
	tests := []struct {
		name          string
		daysOut       int
		wantTier      refunds.Tier
		wantAmount    int64
		wantPayStatus PaymentStatus
	}{
		{"partial refund inside two weeks", 10, refunds.TierPartial, 12500, PaymentStatusPartialRefund},
		{"no refund inside one week", 3, refunds.TierNone, 0, PaymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestStack(1)
			ctx := context.Background()
			guestID := uuid.New()
			actor := Actor{GuestID: guestID}

			checkIn := dates.Today().AddDays(tt.daysOut)
			created, err := svc.Create(ctx, guestID, createRequest(checkIn, checkIn.AddDays(2)))
			require.NoError(t, err)
			resID := uuid.MustParse(created.ID)
			_, err = svc.Confirm(ctx, actor, resID)
			require.NoError(t, err)

			cancelled, err := svc.Cancel(ctx, actor, resID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTier, cancelled.Refund.Tier)
			assert.Equal(t, tt.wantAmount, cancelled.Refund.RefundAmount)
			assert.Equal(t, tt.wantPayStatus, cancelled.Reservation.PaymentStatus)
		})
	}
}

func TestConcurrentCreateSameDates(t *testing.T) {
	svc, _, avail := newTestStack(1)
	ctx := context.Background()

	checkIn := dates.Today().AddDays(30)
	checkOut := checkIn.AddDays(3)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, uuid.New(), createRequest(checkIn, checkOut))
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		var unavail *DatesUnavailableError
		require.ErrorAs(t, err, &unavail)
		assert.NotEmpty(t, unavail.Alternatives)
		conflicts++
	}

	assert.Equal(t, 1, successes, "exactly one guest wins the dates")
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, 3, avail.heldDayCount(), "loser left no partial hold behind")
}

func TestCreateCapacityExceeded(t *testing.T) {
	svc, _, _ := newTestStack(1)
	checkIn := dates.Today().AddDays(10)

	req := createRequest(checkIn, checkIn.AddDays(2))
	req.NumAdults = 3
	req.NumChildren = 2

	_, err := svc.Create(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestCreateBelowMinimumStay(t *testing.T) {
	svc, _, _ := newTestStack(3)
	checkIn := dates.Today().AddDays(10)

	_, err := svc.Create(context.Background(), uuid.New(), createRequest(checkIn, checkIn.AddDays(2)))

	var minErr *MinimumNightsError
	require.ErrorAs(t, err, &minErr)
	assert.Equal(t, 2, minErr.RequestedNights)
	assert.Equal(t, 3, minErr.MinimumNights)
	assert.Contains(t, minErr.Message, "Flat Season")
}

func TestCreateUnavailableSuggestsAlternatives(t *testing.T) {
	svc, _, _ := newTestStack(1)
	ctx := context.Background()

	checkIn := dates.Today().AddDays(15)
	checkOut := checkIn.AddDays(2)

	first, err := svc.Create(ctx, uuid.New(), createRequest(checkIn, checkOut))
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, Actor{GuestID: uuid.MustParse(first.GuestID)}, uuid.MustParse(first.ID))
	require.NoError(t, err)

	_, err = svc.Create(ctx, uuid.New(), createRequest(checkIn, checkOut))

	var unavail *DatesUnavailableError
	require.ErrorAs(t, err, &unavail)
	assert.NotEmpty(t, unavail.UnavailableDates)
	require.NotEmpty(t, unavail.Alternatives)
	assert.Equal(t, availability.DirectionLater, unavail.Alternatives[0].Direction)
}

func TestOwnershipAndStaffOverride(t *testing.T) {
	svc, _, _ := newTestStack(1)
	ctx := context.Background()
	owner := uuid.New()

	checkIn := dates.Today().AddDays(10)
	created, err := svc.Create(ctx, owner, createRequest(checkIn, checkIn.AddDays(2)))
	require.NoError(t, err)
	resID := uuid.MustParse(created.ID)

	_, err = svc.Get(ctx, Actor{GuestID: uuid.New()}, resID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Get(ctx, Actor{GuestID: uuid.New(), IsStaff: true}, resID)
	assert.NoError(t, err)

	_, err = svc.Cancel(ctx, Actor{GuestID: uuid.New(), IsStaff: true}, resID)
	assert.NoError(t, err)
}

func TestConfirmClaimConflictLeavesPending(t *testing.T) {
	svc, repo, avail := newTestStack(1)
	ctx := context.Background()
	guestID := uuid.New()

	checkIn := dates.Today().AddDays(10)
	created, err := svc.Create(ctx, guestID, createRequest(checkIn, checkIn.AddDays(2)))
	require.NoError(t, err)
	resID := uuid.MustParse(created.ID)

	avail.claimErr = availability.ErrRangeConflict
	_, err = svc.Confirm(ctx, Actor{GuestID: guestID}, resID)

	var unavail *DatesUnavailableError
	require.ErrorAs(t, err, &unavail)

	stored, err := repo.GetByID(ctx, resID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Equal(t, PaymentStatusPending, stored.PaymentStatus)
}

func TestConfirmCancelledReservation(t *testing.T) {
	svc, _, _ := newTestStack(1)
	ctx := context.Background()
	guestID := uuid.New()
	actor := Actor{GuestID: guestID}

	checkIn := dates.Today().AddDays(10)
	created, err := svc.Create(ctx, guestID, createRequest(checkIn, checkIn.AddDays(2)))
	require.NoError(t, err)
	resID := uuid.MustParse(created.ID)
	_, err = svc.Cancel(ctx, actor, resID)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, actor, resID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestModifyDatesReprices(t *testing.T) {
	svc, _, avail := newTestStack(1)
	ctx := context.Background()
	guestID := uuid.New()
	actor := Actor{GuestID: guestID}

	checkIn := dates.Today().AddDays(20)
	created, err := svc.Create(ctx, guestID, createRequest(checkIn, checkIn.AddDays(2)))
	require.NoError(t, err)
	assert.Equal(t, int64(25000), created.TotalAmount)
	resID := uuid.MustParse(created.ID)
	_, err = svc.Confirm(ctx, actor, resID)
	require.NoError(t, err)

	newIn := checkIn.AddDays(1).String()
	newOut := checkIn.AddDays(5).String()
	modified, err := svc.Modify(ctx, actor, resID, &ModifyReservationRequest{
		CheckIn:  &newIn,
		CheckOut: &newOut,
	})
	require.NoError(t, err)

	assert.Equal(t, newIn, modified.CheckIn.String())
	assert.Equal(t, newOut, modified.CheckOut.String())
	assert.Equal(t, int64(45000), modified.TotalAmount)
	assert.Equal(t, 4, avail.bookedDayCount(), "claim moved to the new range")
}

func TestModifyPendingMovesHold(t *testing.T) {
	svc, _, avail := newTestStack(1)
	ctx := context.Background()
	guestID := uuid.New()

	checkIn := dates.Today().AddDays(20)
	created, err := svc.Create(ctx, guestID, createRequest(checkIn, checkIn.AddDays(2)))
	require.NoError(t, err)
	assert.Equal(t, 2, avail.heldDayCount())

	newIn := checkIn.AddDays(10).String()
	newOut := checkIn.AddDays(12).String()
	modified, err := svc.Modify(ctx, Actor{GuestID: guestID}, uuid.MustParse(created.ID), &ModifyReservationRequest{
		CheckIn:  &newIn,
		CheckOut: &newOut,
	})
	require.NoError(t, err)
	assert.Equal(t, newIn, modified.CheckIn.String())

	// The hold moved with the dates rather than lingering on the old range.
	assert.Equal(t, 2, avail.heldDayCount())

	// The vacated dates are open to another guest immediately.
	_, err = svc.Create(ctx, uuid.New(), createRequest(checkIn, checkIn.AddDays(2)))
	require.NoError(t, err)

	// The new dates are protected by the moved hold.
	_, err = svc.Create(ctx, uuid.New(), createRequest(checkIn.AddDays(10), checkIn.AddDays(12)))
	var unavail *DatesUnavailableError
	assert.ErrorAs(t, err, &unavail)
}

func TestModifyPartyOnlyKeepsPrice(t *testing.T) {
	svc, _, _ := newTestStack(1)
	ctx := context.Background()
	guestID := uuid.New()

	checkIn := dates.Today().AddDays(20)
	created, err := svc.Create(ctx, guestID, createRequest(checkIn, checkIn.AddDays(2)))
	require.NoError(t, err)

	adults := 3
	modified, err := svc.Modify(ctx, Actor{GuestID: guestID}, uuid.MustParse(created.ID), &ModifyReservationRequest{NumAdults: &adults})
	require.NoError(t, err)

	assert.Equal(t, 3, modified.NumAdults)
	assert.Equal(t, created.TotalAmount, modified.TotalAmount)
}

func TestPreviewRefundDoesNotMutate(t *testing.T) {
	svc, repo, _ := newTestStack(1)
	ctx := context.Background()
	guestID := uuid.New()
	actor := Actor{GuestID: guestID}

	checkIn := dates.Today().AddDays(30)
	created, err := svc.Create(ctx, guestID, createRequest(checkIn, checkIn.AddDays(2)))
	require.NoError(t, err)
	resID := uuid.MustParse(created.ID)
	_, err = svc.Confirm(ctx, actor, resID)
	require.NoError(t, err)

	preview, err := svc.PreviewRefund(ctx, actor, resID)
	require.NoError(t, err)
	assert.Equal(t, refunds.TierFull, preview.Refund.Tier)
	assert.Equal(t, int64(25000), preview.Refund.RefundAmount)

	stored, err := repo.GetByID(ctx, resID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, stored.Status)
}

func TestCompleteElapsed(t *testing.T) {
	svc, repo, _ := newTestStack(1)
	ctx := context.Background()

	// Seed a confirmed stay that checked out yesterday, bypassing the
	// service so past dates are accepted.
	past := &Reservation{
		GuestID:       uuid.New(),
		CheckIn:       dates.Today().AddDays(-5).Time(),
		CheckOut:      dates.Today().AddDays(-1).Time(),
		NumAdults:     2,
		TotalAmount:   45000,
		Status:        StatusConfirmed,
		PaymentStatus: PaymentStatusPaid,
	}
	require.NoError(t, repo.Create(ctx, past))

	// A future confirmed stay must be left alone.
	future := &Reservation{
		GuestID:       uuid.New(),
		CheckIn:       dates.Today().AddDays(10).Time(),
		CheckOut:      dates.Today().AddDays(12).Time(),
		NumAdults:     2,
		TotalAmount:   25000,
		Status:        StatusConfirmed,
		PaymentStatus: PaymentStatusPaid,
	}
	require.NoError(t, repo.Create(ctx, future))

	completed, err := svc.CompleteElapsed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)

	stored, err := repo.GetByID(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, stored.Status)
	assert.NotNil(t, stored.CompletedAt)

	stored, err = repo.GetByID(ctx, future.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, stored.Status)
}
