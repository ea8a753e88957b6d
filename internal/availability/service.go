package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"driftwood/internal/pricing"
	"driftwood/internal/shared/dates"
)

var (
	// ErrInvalidRange guards against unvalidated ranges reaching the
	// engine; callers are expected to reject check_out <= check_in first.
	ErrInvalidRange = errors.New("check-out date must be after check-in date")
)

// Conditional claims are retried a bounded number of times before the
// conflict is surfaced; a competing transaction may abort and free the days.
const claimAttempts = 3

// CheckOptions excludes a reservation's own claim and hold when it
// re-validates dates during a modification.
type CheckOptions struct {
	ExcludeReservationID *uuid.UUID
	ExcludeHoldID        string
}

// Service interface defines the contract for availability business logic
type Service interface {
	CheckAvailability(ctx context.Context, checkIn, checkOut dates.Date) (*Result, error)
	CheckAvailabilityExcluding(ctx context.Context, checkIn, checkOut dates.Date, opts CheckOptions) (*Result, error)
	GetCalendar(ctx context.Context, start, end dates.Date) ([]DayInfo, error)
	SuggestAlternatives(ctx context.Context, checkIn, checkOut dates.Date, maxShiftDays int) ([]Alternative, error)

	// Hold lifecycle (soft locks taken at PENDING creation).
	HoldRange(ctx context.Context, checkIn, checkOut dates.Date, guestID, holdID string, ttl time.Duration) error
	ReleaseHold(ctx context.Context, holdID string) error

	// Durable claim lifecycle (BOOKED flips at confirmation).
	ClaimRange(ctx context.Context, checkIn, checkOut dates.Date, reservationID uuid.UUID) error
	ReleaseRange(ctx context.Context, reservationID uuid.UUID) error

	// Maintenance blocking (staff only).
	BlockRange(ctx context.Context, start, end dates.Date) error
	UnblockRange(ctx context.Context, start, end dates.Date) error
}

// service implements the Service interface
type service struct {
	repo           Repository
	holds          HoldStore
	pricingService pricing.Service
}

// NewService creates a new availability service instance. The hold store is
// optional; without it availability falls back to the durable calendar only.
func NewService(repo Repository, holds HoldStore, pricingService pricing.Service) Service {
	return &service{
		repo:           repo,
		holds:          holds,
		pricingService: pricingService,
	}
}

// CheckAvailability reports whether every night of [checkIn, checkOut) is
// bookable, and always includes the pricing quote so callers can show what
// an unavailable stay would have cost.
func (s *service) CheckAvailability(ctx context.Context, checkIn, checkOut dates.Date) (*Result, error) {
	return s.CheckAvailabilityExcluding(ctx, checkIn, checkOut, CheckOptions{})
}

func (s *service) CheckAvailabilityExcluding(ctx context.Context, checkIn, checkOut dates.Date, opts CheckOptions) (*Result, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidRange
	}

	unavailable, err := s.repo.UnavailableDates(ctx, checkIn, checkOut, opts.ExcludeReservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to read day statuses: %w", err)
	}

	if s.holds != nil {
		held, err := s.holds.HeldDates(ctx, dates.RangeDays(checkIn, checkOut), opts.ExcludeHoldID)
		if err != nil {
			return nil, fmt.Errorf("failed to check active holds: %w", err)
		}
		unavailable = mergeDates(unavailable, held)
	}

	quote, err := s.pricingService.CalculateTotal(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	return &Result{
		IsAvailable:      len(unavailable) == 0,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		UnavailableDates: unavailable,
		Quote:            quote,
	}, nil
}

// GetCalendar returns the status of every day in [start, end) in
// chronological order.
func (s *service) GetCalendar(ctx context.Context, start, end dates.Date) ([]DayInfo, error) {
	if !end.After(start) {
		return nil, ErrInvalidRange
	}
	return s.repo.GetRange(ctx, start, end)
}

// SuggestAlternatives probes ranges shifted by increasing day offsets (same
// night count as requested) and returns the fully-available ones, nearest
// offset first. At equal offset the later shift is preferred.
func (s *service) SuggestAlternatives(ctx context.Context, checkIn, checkOut dates.Date, maxShiftDays int) ([]Alternative, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidRange
	}

	today := dates.Today()
	var alternatives []Alternative
	for offset := 1; offset <= maxShiftDays; offset++ {
		for _, dir := range []Direction{DirectionLater, DirectionEarlier} {
			shift := offset
			if dir == DirectionEarlier {
				shift = -offset
			}

			candIn := checkIn.AddDays(shift)
			candOut := checkOut.AddDays(shift)
			// Earlier shifts must not slide into the past.
			if dir == DirectionEarlier && candIn.Before(today) {
				continue
			}
			free, err := s.rangeFullyAvailable(ctx, candIn, candOut)
			if err != nil {
				return nil, err
			}
			if free {
				alternatives = append(alternatives, Alternative{
					CheckIn:    candIn,
					CheckOut:   candOut,
					OffsetDays: offset,
					Direction:  dir,
				})
			}
		}
	}

	return alternatives, nil
}

func (s *service) rangeFullyAvailable(ctx context.Context, checkIn, checkOut dates.Date) (bool, error) {
	unavailable, err := s.repo.UnavailableDates(ctx, checkIn, checkOut, nil)
	if err != nil {
		return false, err
	}
	if len(unavailable) > 0 {
		return false, nil
	}
	if s.holds != nil {
		held, err := s.holds.HeldDates(ctx, dates.RangeDays(checkIn, checkOut), "")
		if err != nil {
			return false, err
		}
		if len(held) > 0 {
			return false, nil
		}
	}
	return true, nil
}

// HoldRange takes a TTL'd soft lock on every night of the range.
func (s *service) HoldRange(ctx context.Context, checkIn, checkOut dates.Date, guestID, holdID string, ttl time.Duration) error {
	if s.holds == nil {
		return nil
	}
	return s.holds.HoldRange(ctx, dates.RangeDays(checkIn, checkOut), guestID, holdID, ttl)
}

// ReleaseHold frees a soft lock before its TTL expires.
func (s *service) ReleaseHold(ctx context.Context, holdID string) error {
	if s.holds == nil {
		return nil
	}
	_, err := s.holds.ReleaseHold(ctx, holdID)
	return err
}

// ClaimRange durably flips the range to BOOKED, retrying transient failures
// before surfacing the conflict.
func (s *service) ClaimRange(ctx context.Context, checkIn, checkOut dates.Date, reservationID uuid.UUID) error {
	if !checkOut.After(checkIn) {
		return ErrInvalidRange
	}

	var err error
	for attempt := 1; attempt <= claimAttempts; attempt++ {
		err = s.repo.ClaimRange(ctx, checkIn, checkOut, reservationID)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}

// ReleaseRange returns every night claimed by the reservation to AVAILABLE.
func (s *service) ReleaseRange(ctx context.Context, reservationID uuid.UUID) error {
	return s.repo.ReleaseRange(ctx, reservationID)
}

func (s *service) BlockRange(ctx context.Context, start, end dates.Date) error {
	if !end.After(start) {
		return ErrInvalidRange
	}
	return s.repo.BlockRange(ctx, start, end)
}

func (s *service) UnblockRange(ctx context.Context, start, end dates.Date) error {
	if !end.After(start) {
		return ErrInvalidRange
	}
	return s.repo.UnblockRange(ctx, start, end)
}

// mergeDates unions two date slices preserving chronological order.
func mergeDates(a, b []dates.Date) []dates.Date {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]bool, len(a)+len(b))
	var merged []dates.Date
	for _, d := range append(append([]dates.Date{}, a...), b...) {
		if !seen[d.String()] {
			seen[d.String()] = true
			merged = append(merged, d)
		}
	}
	for i := 1; i < len(merged); i++ {
		for j := i; j > 0 && merged[j].Before(merged[j-1]); j-- {
			merged[j], merged[j-1] = merged[j-1], merged[j]
		}
	}
	return merged
}
