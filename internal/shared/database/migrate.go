package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/bookings"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/coaches"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/discounts"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/drivers"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/provinces"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/trips"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/users"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&provinces.Province{},
		&coaches.Coach{},
		&drivers.Driver{},
		&discounts.Discount{},
		&trips.Trip{},
		&users.User{},
		&users.UserPermission{},
		&bookings.Booking{},
		&bookings.BookingSeat{},
		&bookings.Payment{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	if err := MigrateConstraints(db); err != nil {
		return fmt.Errorf("failed to add constraints: %w", err)
	}
	return nil
}
