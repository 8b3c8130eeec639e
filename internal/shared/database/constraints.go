package database

import (
	"gorm.io/gorm"
)

// constraintStatements are idempotent and run after AutoMigrate.
var constraintStatements = []string{
	// a seat is sold at most once per trip and travel date; released rows
	// of cancelled or edited bookings stay as history
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_booking_seats_live
		ON booking_seats (trip_id, travel_date, seat_number)
		WHERE released = false`,

	`CREATE INDEX IF NOT EXISTS idx_booking_seats_trip_date
		ON booking_seats (trip_id, travel_date)`,

	`CREATE INDEX IF NOT EXISTS idx_bookings_revenue
		ON bookings (booking_date_time)
		WHERE status = 'CONFIRMED' AND payment_status = 'PAID'`,

	`CREATE UNIQUE INDEX IF NOT EXISTS uq_user_permissions_role
		ON user_permissions (user_id, role_code)`,
}

// MigrateConstraints adds the indexes AutoMigrate cannot express.
func MigrateConstraints(db *gorm.DB) error {
	for _, stmt := range constraintStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
