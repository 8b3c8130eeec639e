package trips

import (
	"errors"
	"time"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/tripsearch"
)

var ErrTripNotFound = errors.New("trip not found")

// Trip runs a coach from SourceID to DestinationID. Duration is in hours.
type Trip struct {
	ID                int64     `gorm:"primaryKey"`
	DriverID          int64     `gorm:"index;not null"`
	CoachID           int64     `gorm:"index;not null"`
	SourceID          int64     `gorm:"index:idx_trips_route;not null"`
	DestinationID     int64     `gorm:"index:idx_trips_route;not null"`
	DiscountID        *int64    `gorm:"index"`
	Price             int64     `gorm:"not null"`
	DepartureDateTime time.Time `gorm:"index:idx_trips_route;not null"`
	Duration          int       `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TripDetail is a trip joined with its route, coach, discount and driver.
type TripDetail struct {
	tripsearch.TripSummary
	DriverID   int64  `json:"driverId"`
	DriverName string `json:"driverName"`
}

// ArrivalDateTime is departure plus duration.
func (t Trip) ArrivalDateTime() time.Time {
	return t.DepartureDateTime.Add(time.Duration(t.Duration) * time.Hour)
}
