package discounts

import (
	"errors"
	"time"
)

var ErrDiscountNotFound = errors.New("discount not found")

type Discount struct {
	ID            int64     `gorm:"primaryKey"`
	Code          string    `gorm:"uniqueIndex;size:50;not null"`
	Amount        int64     `gorm:"not null"`
	StartDateTime time.Time `gorm:"not null"`
	EndDateTime   time.Time `gorm:"not null"`
	Description   string    `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAvailable reports whether now falls inside the discount period, bounds
// included.
func (d Discount) IsAvailable(now time.Time) bool {
	return !now.Before(d.StartDateTime) && !now.After(d.EndDateTime)
}

var duplicateColumns = map[string]string{
	"code": "code",
}
