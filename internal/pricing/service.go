package pricing

import (
	"context"
	"errors"
	"fmt"

	"driftwood/internal/shared/dates"
)

var (
	ErrNoPricingConfigured = errors.New("no seasonal rate covers the requested date")
	ErrInvalidRange        = errors.New("check-out date must be after check-in date")
)

// Service interface defines the contract for pricing business logic
type Service interface {
	RateForDate(ctx context.Context, date dates.Date) (*SeasonalRate, error)
	MinimumNightsForDate(ctx context.Context, date dates.Date) (int, error)
	CalculateTotal(ctx context.Context, checkIn, checkOut dates.Date) (*Quote, error)
	CheckMinimumStay(ctx context.Context, checkIn, checkOut dates.Date) (*MinimumStayCheck, error)
}

// service implements the Service interface
type service struct {
	repo Repository
}

// NewService creates a new pricing service instance
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// RateForDate selects the seasonal rate whose [start, end] range contains
// the date. Rate ranges are expected not to overlap; if misconfigured rates
// do overlap, the earliest-starting one wins (then earliest created), so the
// selection stays deterministic.
func (s *service) RateForDate(ctx context.Context, date dates.Date) (*SeasonalRate, error) {
	rates, err := s.repo.ListActiveRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load seasonal rates: %w", err)
	}

	var match *SeasonalRate
	for i := range rates {
		if !rates[i].Contains(date) {
			continue
		}
		if match == nil || rates[i].StartDate.Before(match.StartDate) ||
			(rates[i].StartDate.Equal(match.StartDate) && rates[i].CreatedAt.Before(match.CreatedAt)) {
			match = &rates[i]
		}
	}

	if match == nil {
		return nil, ErrNoPricingConfigured
	}

	return match, nil
}

// MinimumNightsForDate returns the minimum-stay requirement of the season
// containing the date.
func (s *service) MinimumNightsForDate(ctx context.Context, date dates.Date) (int, error) {
	rate, err := s.RateForDate(ctx, date)
	if err != nil {
		return 0, err
	}
	return rate.MinimumNights, nil
}

// CalculateTotal computes the price breakdown for a [checkIn, checkOut) stay:
// nightly rate from the check-in season times the night count, plus the
// cleaning fee.
func (s *service) CalculateTotal(ctx context.Context, checkIn, checkOut dates.Date) (*Quote, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidRange
	}

	rate, err := s.RateForDate(ctx, checkIn)
	if err != nil {
		return nil, err
	}

	nights := dates.NightsBetween(checkIn, checkOut)

	return &Quote{
		SeasonName:  rate.Name,
		NightlyRate: rate.NightlyRate,
		CleaningFee: rate.CleaningFee,
		Nights:      nights,
		TotalAmount: rate.NightlyRate*int64(nights) + rate.CleaningFee,
	}, nil
}

// CheckMinimumStay validates the requested night count against the check-in
// season's minimum-nights rule.
func (s *service) CheckMinimumStay(ctx context.Context, checkIn, checkOut dates.Date) (*MinimumStayCheck, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidRange
	}

	rate, err := s.RateForDate(ctx, checkIn)
	if err != nil {
		return nil, err
	}

	requested := dates.NightsBetween(checkIn, checkOut)
	check := &MinimumStayCheck{
		IsValid:         requested >= rate.MinimumNights,
		RequestedNights: requested,
		MinimumNights:   rate.MinimumNights,
		SeasonName:      rate.Name,
	}

	if !check.IsValid {
		check.Message = fmt.Sprintf("%s requires a minimum stay of %d nights; %d requested",
			rate.Name, rate.MinimumNights, requested)
	}

	return check, nil
}
