package bookings

import "time"

// BookingResponse is a booking as shown in the ticket list and detail view.
type BookingResponse struct {
	ID              int64         `json:"id"`
	BookingRef      string        `json:"bookingRef"`
	TripID          int64         `json:"tripId"`
	Trip            *TripInfo     `json:"trip,omitempty"`
	TravelDate      string        `json:"travelDate"`
	BookingDateTime time.Time     `json:"bookingDateTime"`
	BookingType     BookingType   `json:"bookingType"`
	SeatNumber      []int         `json:"seatNumber"`
	PickUpAddress   string        `json:"pickUpAddress"`
	CustFirstName   string        `json:"custFirstName"`
	CustLastName    string        `json:"custLastName"`
	Phone           string        `json:"phone"`
	Email           string        `json:"email"`
	TotalPayment    int64         `json:"totalPayment"`
	PaymentDateTime *time.Time    `json:"paymentDateTime,omitempty"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	Status          Status        `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// TripInfo is the part of a trip printed on tickets.
type TripInfo struct {
	ID                int64     `json:"id"`
	SourceName        string    `json:"sourceName"`
	DestinationName   string    `json:"destinationName"`
	DepartureDateTime time.Time `json:"departureDateTime"`
	Duration          int       `json:"duration"`
	Price             int64     `json:"price"`
	DiscountAmount    int64     `json:"discountAmount"`
	CoachName         string    `json:"coachName"`
	CoachType         string    `json:"coachType"`
	Capacity          int       `json:"capacity"`
	LicensePlate      string    `json:"licensePlate"`
	DriverName        string    `json:"driverName"`
}

// UnitPrice is the per-seat price after discount.
func (t *TripInfo) UnitPrice() int64 {
	return t.Price - t.DiscountAmount
}

func (b *Booking) ToResponse(trip *TripInfo) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		BookingRef:      b.BookingRef,
		TripID:          b.TripID,
		Trip:            trip,
		TravelDate:      b.TravelDate.Format("2006-01-02"),
		BookingDateTime: b.BookingDateTime,
		BookingType:     b.BookingType,
		SeatNumber:      b.TicketSeats(),
		PickUpAddress:   b.PickUpAddress,
		CustFirstName:   b.CustFirstName,
		CustLastName:    b.CustLastName,
		Phone:           b.Phone,
		Email:           b.Email,
		TotalPayment:    b.TotalPayment,
		PaymentDateTime: b.PaymentDateTime,
		PaymentMethod:   b.PaymentMethod,
		PaymentStatus:   b.PaymentStatus,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
	}
}
