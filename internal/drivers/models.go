package drivers

import (
	"errors"
	"time"
)

var ErrDriverNotFound = errors.New("driver not found")

type Driver struct {
	ID            int64     `gorm:"primaryKey"`
	FirstName     string    `gorm:"size:100;not null"`
	LastName      string    `gorm:"size:100;not null"`
	LicenseNumber string    `gorm:"uniqueIndex;size:20;not null"`
	Phone         string    `gorm:"uniqueIndex;size:15;not null"`
	Email         string    `gorm:"uniqueIndex;size:100;not null"`
	Dob           time.Time `gorm:"type:date"`
	Gender        bool
	Address       string `gorm:"size:255"`
	Quit          bool   `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (d Driver) FullName() string {
	return d.FirstName + " " + d.LastName
}

var duplicateColumns = map[string]string{
	"licenseNumber": "license_number",
	"phone":         "phone",
	"email":         "email",
}
