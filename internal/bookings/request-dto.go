package bookings

import "time"

// BookingRequest is the create/update payload, the same shape the booking
// wizard submits. ID is ignored on create.
type BookingRequest struct {
	ID              int64         `json:"id"`
	TripID          int64         `json:"tripId" validate:"required,gt=0"`
	BookingDateTime time.Time     `json:"bookingDateTime"`
	BookingType     BookingType   `json:"bookingType" validate:"omitempty,oneof=ONEWAY ROUNDTRIP"`
	SeatNumber      []int         `json:"seatNumber" validate:"required,min=1,unique,dive,gt=0"`
	PickUpAddress   string        `json:"pickUpAddress" validate:"required,max=255"`
	CustFirstName   string        `json:"custFirstName" validate:"required,max=100"`
	CustLastName    string        `json:"custLastName" validate:"required,max=100"`
	Phone           string        `json:"phone" validate:"required,vnphone"`
	Email           string        `json:"email" validate:"required,email"`
	PaymentMethod   PaymentMethod `json:"paymentMethod" validate:"required,oneof=CASH CARD"`
	PaymentStatus   PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=UNPAID PAID"`
	TotalPayment    int64         `json:"totalPayment"`

	// set by the server from the session, never read from the body
	UserID *int64 `json:"-"`
}

// ListQuery filters the ticket list.
type ListQuery struct {
	TripID int64
	Status Status
	Search string
}
