package auth

import (
	"context"
	"errors"

	"driftwood/internal/guests"

	"gorm.io/gorm"
)

type Repository interface {
	CreateGuest(ctx context.Context, guest *guests.Guest) error
	GetGuestByEmail(ctx context.Context, email string) (*guests.Guest, error)
	GetGuestByID(ctx context.Context, id string) (*guests.Guest, error)
	UpdateGuestPassword(ctx context.Context, guestID string, hashedPassword string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateGuest(ctx context.Context, guest *guests.Guest) error {
	if err := r.db.WithContext(ctx).Create(guest).Error; err != nil {
		return err
	}
	return nil
}

func (r *repository) GetGuestByEmail(ctx context.Context, email string) (*guests.Guest, error) {
	var guest guests.Guest
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&guest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &guest, nil
}

func (r *repository) GetGuestByID(ctx context.Context, id string) (*guests.Guest, error) {
	var guest guests.Guest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&guest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &guest, nil
}

func (r *repository) UpdateGuestPassword(ctx context.Context, guestID string, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&guests.Guest{}).
		Where("id = ?", guestID).
		Update("password", hashedPassword)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrGuestNotFound
	}

	return nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&guests.Guest{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
