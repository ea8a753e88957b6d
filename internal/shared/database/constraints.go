package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// day_statuses is keyed by date, so a racing claim that slips past the
	// row locks still cannot insert a duplicate day. The index below keeps
	// range scans over the calendar cheap.
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_day_statuses_reservation
		ON day_statuses (reservation_id)
		WHERE reservation_id IS NOT NULL;
	`).Error
	if err != nil {
		return err
	}

	// Index for listing a guest's reservations newest-first.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_guest_created
		ON reservations (guest_id, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	// Index for the completion job's sweep over confirmed stays.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_status_checkout
		ON reservations (status, check_out);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
