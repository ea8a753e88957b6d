package reservations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"driftwood/internal/availability"
	"driftwood/internal/notifications"
	"driftwood/internal/pricing"
	"driftwood/internal/refunds"
	"driftwood/internal/shared/dates"
	"driftwood/pkg/logger"
)

// Config carries the lifecycle tuning knobs.
type Config struct {
	// How long a PENDING reservation's soft hold lives before expiring.
	HoldTTL time.Duration
	// Maximum shift when suggesting alternatives for unavailable dates.
	MaxAlternativeShiftDays int
	// Property sleeping capacity; adults plus children may not exceed it.
	MaxOccupancy int
}

// Actor identifies who is performing an operation. Staff bypass the
// ownership check; guests may only touch their own reservations.
type Actor struct {
	GuestID uuid.UUID
	IsStaff bool
}

// Service interface defines the contract for reservation lifecycle logic
type Service interface {
	Create(ctx context.Context, guestID uuid.UUID, req *CreateReservationRequest) (*ReservationResponse, error)
	Confirm(ctx context.Context, actor Actor, reservationID uuid.UUID) (*ReservationResponse, error)
	Modify(ctx context.Context, actor Actor, reservationID uuid.UUID, req *ModifyReservationRequest) (*ReservationResponse, error)
	Cancel(ctx context.Context, actor Actor, reservationID uuid.UUID) (*CancellationResponse, error)
	PreviewRefund(ctx context.Context, actor Actor, reservationID uuid.UUID) (*RefundPreviewResponse, error)
	Get(ctx context.Context, actor Actor, reservationID uuid.UUID) (*ReservationResponse, error)
	GetGuestReservations(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]ReservationResponse, int64, error)
	CompleteElapsed(ctx context.Context) (int, error)
}

// service implements the Service interface
type service struct {
	repo         Repository
	availability availability.Service
	pricing      pricing.Service
	refunds      refunds.Service
	notifier     notifications.Service
	cfg          Config
	log          *logger.Logger
}

// NewService creates a new reservation service instance
func NewService(
	repo Repository,
	availabilityService availability.Service,
	pricingService pricing.Service,
	refundService refunds.Service,
	notifier notifications.Service,
	cfg Config,
	log *logger.Logger,
) Service {
	if cfg.HoldTTL <= 0 {
		cfg.HoldTTL = 15 * time.Minute
	}
	if cfg.MaxAlternativeShiftDays <= 0 {
		cfg.MaxAlternativeShiftDays = 7
	}
	if cfg.MaxOccupancy <= 0 {
		cfg.MaxOccupancy = 4
	}
	return &service{
		repo:         repo,
		availability: availabilityService,
		pricing:      pricingService,
		refunds:      refundService,
		notifier:     notifier,
		cfg:          cfg,
		log:          log,
	}
}

// Create places a PENDING reservation. The requested nights are soft-locked
// with a TTL'd hold so two guests cannot both carry the same dates to
// payment; the durable calendar flips only at confirmation.
func (s *service) Create(ctx context.Context, guestID uuid.UUID, req *CreateReservationRequest) (*ReservationResponse, error) {
	checkIn, checkOut, err := parseRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	if req.NumAdults+req.NumChildren > s.cfg.MaxOccupancy {
		return nil, ErrCapacityExceeded
	}

	stay, err := s.pricing.CheckMinimumStay(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if !stay.IsValid {
		return nil, &MinimumNightsError{
			RequestedNights: stay.RequestedNights,
			MinimumNights:   stay.MinimumNights,
			SeasonName:      stay.SeasonName,
			Message:         stay.Message,
		}
	}

	result, err := s.availability.CheckAvailability(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if !result.IsAvailable {
		return nil, s.datesUnavailable(ctx, checkIn, checkOut, result.UnavailableDates)
	}

	holdID := uuid.NewString()
	if err := s.availability.HoldRange(ctx, checkIn, checkOut, guestID.String(), holdID, s.cfg.HoldTTL); err != nil {
		var conflict *availability.HoldConflictError
		if errors.As(err, &conflict) {
			// Lost the race to a concurrent guest between check and hold.
			return nil, s.datesUnavailable(ctx, checkIn, checkOut, []dates.Date{conflict.Date})
		}
		return nil, err
	}

	reservation := &Reservation{
		GuestID:         guestID,
		CheckIn:         checkIn.Time(),
		CheckOut:        checkOut.Time(),
		NumAdults:       req.NumAdults,
		NumChildren:     req.NumChildren,
		TotalAmount:     result.Quote.TotalAmount,
		Status:          StatusPending,
		PaymentStatus:   PaymentStatusPending,
		SpecialRequests: req.SpecialRequests,
		HoldID:          holdID,
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		// Compensate: the hold must not outlive the failed insert.
		if relErr := s.availability.ReleaseHold(ctx, holdID); relErr != nil {
			s.log.WithError(relErr).Warn("Failed to release hold after create failure", "hold_id", holdID)
		}
		return nil, err
	}

	s.log.LogReservationCreated(ctx, reservation.ID.String(), guestID.String(), checkIn.String(), checkOut.String())
	s.publish(ctx, notifications.EventTypeReservationCreated, reservation, 0)

	resp := toReservationResponse(reservation)
	return &resp, nil
}

// Confirm flips a PENDING reservation to CONFIRMED by durably claiming its
// nights. The claim is transactional and all-or-nothing, so a conflict
// leaves the calendar untouched and the reservation PENDING.
func (s *service) Confirm(ctx context.Context, actor Actor, reservationID uuid.UUID) (*ReservationResponse, error) {
	reservation, err := s.getOwned(ctx, actor, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if !reservation.Status.CanTransitionTo(StatusConfirmed) {
		return nil, ErrInvalidTransition
	}

	checkIn, checkOut := reservation.CheckInDate(), reservation.CheckOutDate()
	if err := s.availability.ClaimRange(ctx, checkIn, checkOut, reservation.ID); err != nil {
		if errors.Is(err, availability.ErrRangeConflict) {
			return nil, s.datesUnavailable(ctx, checkIn, checkOut, nil)
		}
		return nil, err
	}

	reservation.Status = StatusConfirmed
	reservation.PaymentStatus = PaymentStatusPaid
	if err := s.repo.Update(ctx, reservation); err != nil {
		// Compensate: claimed days must not survive a failed confirmation.
		if relErr := s.availability.ReleaseRange(ctx, reservation.ID); relErr != nil {
			s.log.WithError(relErr).Error("Failed to release claimed range after update failure",
				"reservation_id", reservation.ID.String())
		}
		return nil, err
	}

	// The soft hold is redundant once the durable claim exists.
	if reservation.HoldID != "" {
		if err := s.availability.ReleaseHold(ctx, reservation.HoldID); err != nil {
			s.log.WithError(err).Warn("Failed to release hold after confirmation", "hold_id", reservation.HoldID)
		}
	}

	s.log.LogReservationConfirmed(ctx, reservation.ID.String(), reservation.GuestID.String())
	s.publish(ctx, notifications.EventTypeReservationConfirmed, reservation, 0)

	resp := toReservationResponse(reservation)
	return &resp, nil
}

// Modify changes dates, party size or requests on a PENDING or CONFIRMED
// reservation, repricing the stay when the dates move.
func (s *service) Modify(ctx context.Context, actor Actor, reservationID uuid.UUID, req *ModifyReservationRequest) (*ReservationResponse, error) {
	reservation, err := s.getOwned(ctx, actor, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if !reservation.IsActive() {
		return nil, ErrInvalidTransition
	}

	newCheckIn, newCheckOut := reservation.CheckInDate(), reservation.CheckOutDate()
	if req.CheckIn != nil {
		if newCheckIn, err = dates.Parse(*req.CheckIn); err != nil {
			return nil, err
		}
	}
	if req.CheckOut != nil {
		if newCheckOut, err = dates.Parse(*req.CheckOut); err != nil {
			return nil, err
		}
	}
	if !newCheckOut.After(newCheckIn) {
		return nil, ErrInvalidRange
	}

	numAdults := reservation.NumAdults
	if req.NumAdults != nil {
		numAdults = *req.NumAdults
	}
	numChildren := reservation.NumChildren
	if req.NumChildren != nil {
		numChildren = *req.NumChildren
	}
	if numAdults+numChildren > s.cfg.MaxOccupancy {
		return nil, ErrCapacityExceeded
	}

	datesChanged := !newCheckIn.Equal(reservation.CheckInDate()) || !newCheckOut.Equal(reservation.CheckOutDate())
	if datesChanged {
		stay, err := s.pricing.CheckMinimumStay(ctx, newCheckIn, newCheckOut)
		if err != nil {
			return nil, err
		}
		if !stay.IsValid {
			return nil, &MinimumNightsError{
				RequestedNights: stay.RequestedNights,
				MinimumNights:   stay.MinimumNights,
				SeasonName:      stay.SeasonName,
				Message:         stay.Message,
			}
		}

		// The reservation's own hold and claim must not block its move.
		result, err := s.availability.CheckAvailabilityExcluding(ctx, newCheckIn, newCheckOut, availability.CheckOptions{
			ExcludeReservationID: &reservation.ID,
			ExcludeHoldID:        reservation.HoldID,
		})
		if err != nil {
			return nil, err
		}
		if !result.IsAvailable {
			return nil, s.datesUnavailable(ctx, newCheckIn, newCheckOut, result.UnavailableDates)
		}

		switch {
		case reservation.Status == StatusConfirmed:
			if err := s.reclaim(ctx, reservation, newCheckIn, newCheckOut); err != nil {
				return nil, err
			}
		case reservation.HoldID != "":
			if err := s.rehold(ctx, reservation, newCheckIn, newCheckOut); err != nil {
				return nil, err
			}
		}

		reservation.CheckIn = newCheckIn.Time()
		reservation.CheckOut = newCheckOut.Time()
		reservation.TotalAmount = result.Quote.TotalAmount
	}

	reservation.NumAdults = numAdults
	reservation.NumChildren = numChildren
	if req.SpecialRequests != nil {
		reservation.SpecialRequests = *req.SpecialRequests
	}

	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.publish(ctx, notifications.EventTypeReservationModified, reservation, 0)

	resp := toReservationResponse(reservation)
	return &resp, nil
}

// reclaim moves a confirmed reservation's durable claim to a new range,
// restoring the old range if the new claim fails.
func (s *service) reclaim(ctx context.Context, reservation *Reservation, newCheckIn, newCheckOut dates.Date) error {
	oldCheckIn, oldCheckOut := reservation.CheckInDate(), reservation.CheckOutDate()

	if err := s.availability.ReleaseRange(ctx, reservation.ID); err != nil {
		return err
	}
	if err := s.availability.ClaimRange(ctx, newCheckIn, newCheckOut, reservation.ID); err != nil {
		// Compensate: put the original claim back before surfacing the error.
		if reclaimErr := s.availability.ClaimRange(ctx, oldCheckIn, oldCheckOut, reservation.ID); reclaimErr != nil {
			s.log.WithError(reclaimErr).Error("Failed to restore original claim after modify conflict",
				"reservation_id", reservation.ID.String())
		}
		if errors.Is(err, availability.ErrRangeConflict) {
			return s.datesUnavailable(ctx, newCheckIn, newCheckOut, nil)
		}
		return err
	}
	return nil
}

// rehold moves a pending reservation's soft hold to a new range, restoring
// the old hold if the new one cannot be taken. Without this the old range
// would stay held until the TTL expires while the new range carried no hold
// at all.
func (s *service) rehold(ctx context.Context, reservation *Reservation, newCheckIn, newCheckOut dates.Date) error {
	oldCheckIn, oldCheckOut := reservation.CheckInDate(), reservation.CheckOutDate()
	oldHoldID := reservation.HoldID

	if err := s.availability.ReleaseHold(ctx, oldHoldID); err != nil {
		return err
	}

	newHoldID := uuid.NewString()
	if err := s.availability.HoldRange(ctx, newCheckIn, newCheckOut, reservation.GuestID.String(), newHoldID, s.cfg.HoldTTL); err != nil {
		// Compensate: put the original hold back before surfacing the error.
		if holdErr := s.availability.HoldRange(ctx, oldCheckIn, oldCheckOut, reservation.GuestID.String(), oldHoldID, s.cfg.HoldTTL); holdErr != nil {
			s.log.WithError(holdErr).Error("Failed to restore original hold after modify conflict",
				"reservation_id", reservation.ID.String())
		}
		var conflict *availability.HoldConflictError
		if errors.As(err, &conflict) {
			return s.datesUnavailable(ctx, newCheckIn, newCheckOut, []dates.Date{conflict.Date})
		}
		return err
	}

	reservation.HoldID = newHoldID
	return nil
}

// Cancel applies the refund policy and releases the reservation's nights.
// Cancelling twice fails with ErrAlreadyCancelled rather than recomputing a
// refund at the later date.
func (s *service) Cancel(ctx context.Context, actor Actor, reservationID uuid.UUID) (*CancellationResponse, error) {
	reservation, err := s.getOwned(ctx, actor, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if !reservation.Status.CanTransitionTo(StatusCancelled) {
		return nil, ErrInvalidTransition
	}

	wasPaid := reservation.PaymentStatus == PaymentStatusPaid
	refund := s.refunds.CalculateRefund(reservation.TotalAmount, reservation.CheckInDate(), dates.Today())
	if !wasPaid {
		// Nothing was charged yet; the policy result is informational only.
		refund.RefundAmount = 0
	}

	now := time.Now().UTC()
	prevStatus := reservation.Status
	reservation.Status = StatusCancelled
	reservation.CancelledAt = &now

	switch {
	case !wasPaid:
		reservation.PaymentStatus = PaymentStatusCancelled
	case refund.Tier == refunds.TierFull:
		reservation.PaymentStatus = PaymentStatusRefunded
	case refund.Tier == refunds.TierPartial:
		reservation.PaymentStatus = PaymentStatusPartialRefund
	default:
		// Kept in full; payment state stays PAID.
	}

	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	// Free the nights for other guests.
	if prevStatus == StatusConfirmed {
		if err := s.availability.ReleaseRange(ctx, reservation.ID); err != nil {
			s.log.WithError(err).Error("Failed to release booked range after cancellation",
				"reservation_id", reservation.ID.String())
		}
	}
	if reservation.HoldID != "" {
		if err := s.availability.ReleaseHold(ctx, reservation.HoldID); err != nil {
			s.log.WithError(err).Warn("Failed to release hold after cancellation", "hold_id", reservation.HoldID)
		}
	}

	s.log.LogReservationCancelled(ctx, reservation.ID.String(), reservation.GuestID.String(), string(refund.Tier))
	s.publish(ctx, notifications.EventTypeReservationCancelled, reservation, refund.RefundAmount)

	return &CancellationResponse{
		Reservation: toReservationResponse(reservation),
		Refund:      refund,
	}, nil
}

// PreviewRefund computes what cancelling today would return, without
// touching the reservation.
func (s *service) PreviewRefund(ctx context.Context, actor Actor, reservationID uuid.UUID) (*RefundPreviewResponse, error) {
	reservation, err := s.getOwned(ctx, actor, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if !reservation.Status.CanTransitionTo(StatusCancelled) {
		return nil, ErrInvalidTransition
	}

	refund := s.refunds.CalculateRefund(reservation.TotalAmount, reservation.CheckInDate(), dates.Today())
	if reservation.PaymentStatus != PaymentStatusPaid {
		refund.RefundAmount = 0
	}

	return &RefundPreviewResponse{
		ReservationID: reservation.ID.String(),
		Refund:        refund,
	}, nil
}

func (s *service) Get(ctx context.Context, actor Actor, reservationID uuid.UUID) (*ReservationResponse, error) {
	reservation, err := s.getOwned(ctx, actor, reservationID)
	if err != nil {
		return nil, err
	}
	resp := toReservationResponse(reservation)
	return &resp, nil
}

func (s *service) GetGuestReservations(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]ReservationResponse, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	reservations, total, err := s.repo.GetByGuest(ctx, guestID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return toReservationResponses(reservations), total, nil
}

// CompleteElapsed moves confirmed reservations whose checkout has passed to
// COMPLETED. Returns how many were transitioned.
func (s *service) CompleteElapsed(ctx context.Context) (int, error) {
	due, err := s.repo.ListDueForCompletion(ctx, dates.Today().Time())
	if err != nil {
		return 0, err
	}

	completed := 0
	for i := range due {
		reservation := &due[i]
		now := time.Now().UTC()
		reservation.Status = StatusCompleted
		reservation.CompletedAt = &now

		if err := s.repo.Update(ctx, reservation); err != nil {
			s.log.WithError(err).Error("Failed to complete reservation",
				"reservation_id", reservation.ID.String())
			continue
		}

		s.publish(ctx, notifications.EventTypeReservationCompleted, reservation, 0)
		completed++
	}

	return completed, nil
}

// getOwned loads a reservation and enforces the ownership rule.
func (s *service) getOwned(ctx context.Context, actor Actor, reservationID uuid.UUID) (*Reservation, error) {
	reservation, err := s.repo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff && !reservation.IsOwnedBy(actor.GuestID) {
		return nil, ErrNotOwner
	}
	return reservation, nil
}

// datesUnavailable builds the conflict error, attaching nearby alternatives
// when the suggestion probe succeeds.
func (s *service) datesUnavailable(ctx context.Context, checkIn, checkOut dates.Date, unavailable []dates.Date) error {
	unavailErr := &DatesUnavailableError{
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		UnavailableDates: unavailable,
	}

	alternatives, err := s.availability.SuggestAlternatives(ctx, checkIn, checkOut, s.cfg.MaxAlternativeShiftDays)
	if err != nil {
		s.log.WithError(err).Warn("Failed to suggest alternative dates")
	} else {
		unavailErr.Alternatives = alternatives
	}

	return unavailErr
}

func (s *service) publish(ctx context.Context, eventType notifications.EventType, reservation *Reservation, refundAmount int64) {
	if s.notifier == nil {
		return
	}
	event := notifications.NewReservationEvent(eventType, reservation.ID, reservation.GuestID)
	event.CheckIn = reservation.CheckInDate().String()
	event.CheckOut = reservation.CheckOutDate().String()
	event.TotalAmount = reservation.TotalAmount
	event.RefundAmount = refundAmount
	s.notifier.NotifyReservationEvent(ctx, event)
}

func parseRange(checkInStr, checkOutStr string) (dates.Date, dates.Date, error) {
	checkIn, err := dates.Parse(checkInStr)
	if err != nil {
		return dates.Date{}, dates.Date{}, err
	}
	checkOut, err := dates.Parse(checkOutStr)
	if err != nil {
		return dates.Date{}, dates.Date{}, err
	}
	if !checkOut.After(checkIn) {
		return dates.Date{}, dates.Date{}, ErrInvalidRange
	}
	return checkIn, checkOut, nil
}
