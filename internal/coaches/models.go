package coaches

import (
	"errors"
	"time"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/seats"
)

var ErrCoachNotFound = errors.New("coach not found")

type Coach struct {
	ID           int64           `gorm:"primaryKey"`
	Name         string          `gorm:"size:100;not null"`
	Capacity     int             `gorm:"not null"`
	LicensePlate string          `gorm:"uniqueIndex;size:20;not null"`
	CoachType    seats.CoachType `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// duplicateColumns lists the fields accepted by checkDuplicate.
var duplicateColumns = map[string]string{
	"licensePlate": "license_plate",
}
