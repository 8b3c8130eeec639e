package discounts

import "time"

// DiscountRequest is the body of POST and PUT /discounts.
type DiscountRequest struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code" validate:"required,max=50"`
	Amount        int64     `json:"amount" validate:"required,gt=0"`
	StartDateTime time.Time `json:"startDateTime" validate:"required"`
	EndDateTime   time.Time `json:"endDateTime" validate:"required,gtfield=StartDateTime"`
	Description   string    `json:"description" validate:"max=255"`
}
