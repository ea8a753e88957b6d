package database

import (
	"driftwood/internal/availability"
	"driftwood/internal/guests"
	"driftwood/internal/pricing"
	"driftwood/internal/reservations"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&guests.Guest{},
		&pricing.SeasonalRate{},
		&availability.DayStatus{},
		&reservations.Reservation{},
	)
}
