package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// At most one non-failed payment per booking; keeps concurrent
	// initiations from racing past the application-level upsert.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_live_payment_per_booking
		ON payments (booking_id)
		WHERE status <> 'failed';
	`).Error
	if err != nil {
		return err
	}

	// The units_available >= 0 CHECKs on the listing tables come from
	// the gorm check tags on the models during AutoMigrate; only the
	// partial indexes gorm cannot express live here.

	// Settlement linkage lookups filter on these columns together.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_payments_settlement_eligibility
		ON payments (vendor_id, status, settlement_status)
		WHERE settlement_id IS NULL;
	`).Error
	if err != nil {
		return err
	}

	return nil
}
