package bookings

import (
	"time"
)

// Booking is one ticket sale covering one or more seats of a trip.
type Booking struct {
	ID              int64         `gorm:"primaryKey" json:"id"`
	BookingRef      string        `gorm:"type:varchar(32);uniqueIndex;not null" json:"bookingRef"`
	UserID          *int64        `gorm:"index" json:"userId,omitempty"`
	TripID          int64         `gorm:"index;not null" json:"tripId"`
	TravelDate      time.Time     `gorm:"type:date;not null" json:"travelDate"`
	BookingDateTime time.Time     `gorm:"not null" json:"bookingDateTime"`
	BookingType     BookingType   `gorm:"type:varchar(10);not null;default:'ONEWAY'" json:"bookingType"`
	PickUpAddress   string        `gorm:"type:varchar(255);not null" json:"pickUpAddress"`
	CustFirstName   string        `gorm:"type:varchar(100);not null" json:"custFirstName"`
	CustLastName    string        `gorm:"type:varchar(100);not null" json:"custLastName"`
	Phone           string        `gorm:"type:varchar(20);not null" json:"phone"`
	Email           string        `gorm:"type:varchar(255);not null" json:"email"`
	TotalPayment    int64         `gorm:"not null" json:"totalPayment"`
	PaymentDateTime *time.Time    `json:"paymentDateTime,omitempty"`
	PaymentMethod   PaymentMethod `gorm:"type:varchar(10);not null;check:payment_method IN ('CASH', 'CARD')" json:"paymentMethod"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(10);not null;check:payment_status IN ('UNPAID', 'PAID')" json:"paymentStatus"`
	Status          Status        `gorm:"type:varchar(20);not null;default:'CONFIRMED';check:status IN ('CONFIRMED', 'CANCELLED')" json:"status"`
	CancelledAt     *time.Time    `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`

	Seats    []BookingSeat `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;" json:"seats,omitempty"`
	Payments []Payment     `gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT;" json:"payments,omitempty"`
}

// BookingSeat is one seat of a booking. A partial unique index on
// (trip_id, travel_date, seat_number) WHERE released = false keeps a seat
// from being sold twice.
type BookingSeat struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	BookingID  int64     `gorm:"index;not null" json:"bookingId"`
	TripID     int64     `gorm:"not null" json:"tripId"`
	TravelDate time.Time `gorm:"type:date;not null" json:"travelDate"`
	SeatNumber int       `gorm:"not null" json:"seatNumber"`
	Released   bool      `gorm:"not null;default:false" json:"released"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Payment tracks the money side of a booking.
type Payment struct {
	ID            int64      `gorm:"primaryKey" json:"id"`
	BookingID     int64      `gorm:"index;not null" json:"bookingId"`
	Amount        int64      `gorm:"not null" json:"amount"`
	Currency      string     `gorm:"type:varchar(3);default:'VND'" json:"currency"`
	Method        string     `gorm:"type:varchar(10);not null" json:"method"`
	Status        string     `gorm:"type:varchar(20);check:status IN ('PENDING', 'COMPLETED', 'REFUNDED');default:'PENDING'" json:"status"`
	TransactionID string     `gorm:"type:varchar(64);uniqueIndex" json:"transactionId"`
	ProcessedAt   *time.Time `json:"processedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (BookingSeat) TableName() string {
	return "booking_seats"
}

func (Payment) TableName() string {
	return "payments"
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

func (b *Booking) SeatNumbers() []int {
	out := make([]int, 0, len(b.Seats))
	for _, s := range b.Seats {
		if !s.Released {
			out = append(out, s.SeatNumber)
		}
	}
	return out
}

// TicketSeats lists the seats printed on the ticket. A cancelled booking
// still shows the seats it held.
func (b *Booking) TicketSeats() []int {
	if b.IsConfirmed() {
		return b.SeatNumbers()
	}
	out := make([]int, 0, len(b.Seats))
	for _, s := range b.Seats {
		out = append(out, s.SeatNumber)
	}
	return out
}

func (b *Booking) Cancel(now time.Time) {
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.UpdatedAt = now
	for i := range b.Seats {
		b.Seats[i].Released = true
	}
}

func (p *Payment) MarkCompleted(now time.Time) {
	p.Status = TxCompleted
	p.ProcessedAt = &now
	p.UpdatedAt = now
}

func (p *Payment) MarkRefunded(now time.Time) {
	p.Status = TxRefunded
	p.ProcessedAt = &now
	p.UpdatedAt = now
}
