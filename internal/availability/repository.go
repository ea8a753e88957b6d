package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"driftwood/internal/shared/dates"
)

var (
	// ErrRangeConflict is returned when a conditional claim finds a day
	// that is no longer AVAILABLE. The transaction is rolled back as a
	// whole, so no partial claims survive.
	ErrRangeConflict = errors.New("one or more days in the range are not available")
)

// Repository provides access to the per-day availability calendar.
type Repository interface {
	GetDay(ctx context.Context, day dates.Date) (Status, error)
	GetRange(ctx context.Context, start, end dates.Date) ([]DayInfo, error)

	// UnavailableDates returns the days in [start, end) whose status is not
	// AVAILABLE, skipping days claimed by excludeReservationID (a
	// reservation re-checking its own range during modification).
	UnavailableDates(ctx context.Context, start, end dates.Date, excludeReservationID *uuid.UUID) ([]dates.Date, error)

	// ClaimRange conditionally marks every day in [start, end) BOOKED for
	// the reservation. All-or-nothing: fails with ErrRangeConflict if any
	// day is already BOOKED or BLOCKED at claim time.
	ClaimRange(ctx context.Context, start, end dates.Date, reservationID uuid.UUID) error

	// ReleaseRange returns the reservation's claimed days to AVAILABLE.
	ReleaseRange(ctx context.Context, reservationID uuid.UUID) error

	// BlockRange marks days BLOCKED (maintenance). Fails with
	// ErrRangeConflict when a day is BOOKED.
	BlockRange(ctx context.Context, start, end dates.Date) error

	// UnblockRange clears BLOCKED days back to AVAILABLE.
	UnblockRange(ctx context.Context, start, end dates.Date) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetDay(ctx context.Context, day dates.Date) (Status, error) {
	var row DayStatus
	err := r.db.WithContext(ctx).Where("date = ?", day.Time()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusAvailable, nil
		}
		return "", err
	}
	return row.Status, nil
}

func (r *repository) GetRange(ctx context.Context, start, end dates.Date) ([]DayInfo, error) {
	var rows []DayStatus
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start.Time(), end.Time()).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]Status, len(rows))
	for _, row := range rows {
		byDate[dates.FromTime(row.Date).String()] = row.Status
	}

	days := dates.RangeDays(start, end)
	infos := make([]DayInfo, 0, len(days))
	for _, day := range days {
		status, ok := byDate[day.String()]
		if !ok {
			status = StatusAvailable
		}
		infos = append(infos, DayInfo{Date: day, Status: status})
	}

	return infos, nil
}

func (r *repository) UnavailableDates(ctx context.Context, start, end dates.Date, excludeReservationID *uuid.UUID) ([]dates.Date, error) {
	var rows []DayStatus
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start.Time(), end.Time()).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	var unavailable []dates.Date
	for _, row := range rows {
		if excludeReservationID != nil && row.ReservationID != nil && *row.ReservationID == *excludeReservationID {
			continue
		}
		unavailable = append(unavailable, dates.FromTime(row.Date))
	}

	return unavailable, nil
}

func (r *repository) ClaimRange(ctx context.Context, start, end dates.Date, reservationID uuid.UUID) error {
	days := dates.RangeDays(start, end)
	if len(days) == 0 {
		return nil
	}

	times := make([]time.Time, 0, len(days))
	for _, d := range days {
		times = append(times, d.Time())
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock any existing rows in the range so concurrent claims
		// serialize on the same days.
		var existing []DayStatus
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("date IN ?", times).
			Find(&existing).Error
		if err != nil {
			return err
		}

		if len(existing) > 0 {
			// Any row at all means the day is BOOKED or BLOCKED.
			return ErrRangeConflict
		}

		rows := make([]DayStatus, 0, len(days))
		resID := reservationID
		for _, d := range days {
			rows = append(rows, DayStatus{
				Date:          d.Time(),
				Status:        StatusBooked,
				ReservationID: &resID,
			})
		}

		// The primary-key constraint on date backstops the lock: a claim
		// that races past the read still cannot insert a duplicate day.
		if err := tx.Create(&rows).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrRangeConflict
			}
			return err
		}

		return nil
	})
}

func (r *repository) ReleaseRange(ctx context.Context, reservationID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("reservation_id = ? AND status = ?", reservationID, StatusBooked).
		Delete(&DayStatus{}).Error
}

func (r *repository) BlockRange(ctx context.Context, start, end dates.Date) error {
	days := dates.RangeDays(start, end)
	if len(days) == 0 {
		return nil
	}

	times := make([]time.Time, 0, len(days))
	for _, d := range days {
		times = append(times, d.Time())
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booked int64
		err := tx.Model(&DayStatus{}).
			Where("date IN ?", times).
			Where("status = ?", StatusBooked).
			Count(&booked).Error
		if err != nil {
			return err
		}
		if booked > 0 {
			return ErrRangeConflict
		}

		rows := make([]DayStatus, 0, len(days))
		for _, d := range days {
			rows = append(rows, DayStatus{Date: d.Time(), Status: StatusBlocked})
		}

		// Re-blocking already-blocked days is a no-op.
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	})
}

func (r *repository) UnblockRange(ctx context.Context, start, end dates.Date) error {
	return r.db.WithContext(ctx).
		Where("date >= ? AND date < ? AND status = ?", start.Time(), end.Time(), StatusBlocked).
		Delete(&DayStatus{}).Error
}
