package refunds

import (
	"fmt"

	"driftwood/internal/shared/dates"
)

// Refund brackets by days before check-in. Both boundaries are inclusive
// on the high side: exactly 14 days out is a full refund, exactly 7 days
// out is a partial one.
const (
	fullRefundDays    = 14
	partialRefundDays = 7
)

// Service interface defines the contract for refund policy computation
type Service interface {
	CalculateRefund(paymentAmount int64, checkIn, cancelledOn dates.Date) Calculation
}

// service implements the Service interface. The policy is pure: no storage,
// no clock of its own - the cancellation instant is always supplied by the
// caller.
type service struct{}

// NewService creates a new refund policy service instance
func NewService() Service {
	return &service{}
}

// CalculateRefund applies the cancellation policy to a paid amount.
// All arithmetic is integer-only; the refund is floor(amount*pct/100) so a
// partial refund of an odd amount rounds down to whole minor units.
func (s *service) CalculateRefund(paymentAmount int64, checkIn, cancelledOn dates.Date) Calculation {
	daysUntil := cancelledOn.DaysUntil(checkIn)

	var (
		percentage  int
		tier        Tier
		description string
	)

	switch {
	case daysUntil >= fullRefundDays:
		percentage = 100
		tier = TierFull
		description = fmt.Sprintf("Cancelled %d days before check-in: full refund", daysUntil)
	case daysUntil >= partialRefundDays:
		percentage = 50
		tier = TierPartial
		description = fmt.Sprintf("Cancelled %d days before check-in: 50%% refund", daysUntil)
	case daysUntil < 0:
		percentage = 0
		tier = TierNone
		description = "Cancelled after check-in: no refund"
	default:
		percentage = 0
		tier = TierNone
		description = fmt.Sprintf("Cancelled %d days before check-in (less than %d): no refund", daysUntil, partialRefundDays)
	}

	return Calculation{
		RefundAmount:     paymentAmount * int64(percentage) / 100,
		Percentage:       percentage,
		Tier:             tier,
		DaysUntilCheckIn: daysUntil,
		CheckInDate:      checkIn,
		CancellationDate: cancelledOn,
		Description:      description,
	}
}
