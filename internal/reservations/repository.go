package reservations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, reservation *Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	GetByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]Reservation, int64, error)
	Update(ctx context.Context, reservation *Reservation) error
	ListDueForCompletion(ctx context.Context, today time.Time) ([]Reservation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) Create(ctx context.Context, reservation *Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) GetByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]Reservation, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Reservation{}).
		Where("guest_id = ?", guestID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reservations []Reservation
	err := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reservations).Error
	if err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

func (r *repository) Update(ctx context.Context, reservation *Reservation) error {
	result := r.db.WithContext(ctx).Save(reservation)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// ListDueForCompletion returns confirmed reservations whose checkout has
// passed, oldest first.
func (r *repository) ListDueForCompletion(ctx context.Context, today time.Time) ([]Reservation, error) {
	var reservations []Reservation
	err := r.db.WithContext(ctx).
		Where("status = ? AND check_out <= ?", StatusConfirmed, today).
		Order("check_out ASC").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}
