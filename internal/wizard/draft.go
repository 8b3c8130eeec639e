package wizard

import (
	"slices"
	"time"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/bookings"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/dates"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/tripsearch"
)

// Draft is the booking being assembled. Fields after TotalPayment only
// exist for the wizard and never reach the booking API.
type Draft struct {
	ID              int64                   `json:"id"`
	Trip            *tripsearch.TripSummary `json:"trip,omitempty"`
	BookingDateTime time.Time               `json:"bookingDateTime"`
	BookingType     bookings.BookingType    `json:"bookingType"`
	SeatNumber      []int                   `json:"seatNumber"`
	PickUpAddress   string                  `json:"pickUpAddress"`
	CustFirstName   string                  `json:"custFirstName"`
	CustLastName    string                  `json:"custLastName"`
	Phone           string                  `json:"phone"`
	Email           string                  `json:"email"`
	PaymentMethod   bookings.PaymentMethod  `json:"paymentMethod"`
	PaymentStatus   bookings.PaymentStatus  `json:"paymentStatus"`
	TotalPayment    int64                   `json:"totalPayment"`

	User          string `json:"user"`
	SourceID      int64  `json:"sourceId"`
	DestinationID int64  `json:"destinationId"`
	From          string `json:"from"`
	To            string `json:"to"`
	NameOnCard    string `json:"nameOnCard"`
	CardNumber    string `json:"cardNumber"`
	Expired       string `json:"expired"`
	Cvv           string `json:"cvv"`
	IsEditMode    bool   `json:"isEditMode"`
}

// NewDraft returns the defaults of a fresh booking.
func NewDraft(user string, today time.Time) Draft {
	day := dates.Format(today)
	return Draft{
		ID:            -1,
		BookingType:   bookings.BookingTypeOneWay,
		SeatNumber:    []int{},
		PaymentMethod: bookings.PaymentMethodCash,
		PaymentStatus: bookings.PaymentStatusUnpaid,
		User:          user,
		From:          day,
		To:            day,
	}
}

func (d Draft) clone() Draft {
	out := d
	out.SeatNumber = slices.Clone(d.SeatNumber)
	if d.Trip != nil {
		trip := *d.Trip
		out.Trip = &trip
	}
	return out
}

// Payload strips the wizard-only fields and returns what the booking API
// receives.
func (d Draft) Payload() bookings.BookingRequest {
	req := bookings.BookingRequest{
		ID:              d.ID,
		BookingDateTime: d.BookingDateTime,
		BookingType:     d.BookingType,
		SeatNumber:      slices.Clone(d.SeatNumber),
		PickUpAddress:   d.PickUpAddress,
		CustFirstName:   d.CustFirstName,
		CustLastName:    d.CustLastName,
		Phone:           d.Phone,
		Email:           d.Email,
		PaymentMethod:   d.PaymentMethod,
		PaymentStatus:   d.PaymentStatus,
		TotalPayment:    d.TotalPayment,
	}
	if d.Trip != nil {
		req.TripID = d.Trip.ID
	}
	if req.ID <= 0 {
		req.ID = 0
	}
	return req
}

// State is everything stored per wizard id.
type State struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Step      Step      `json:"step"`
	MaxSeats  int       `json:"maxSeats"`
	Draft     Draft     `json:"draft"`
	LastError string    `json:"lastError,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewState starts a wizard at TRIP_SELECT with a fresh draft.
func NewState(id, owner string, maxSeats int, now time.Time) State {
	return State{
		ID:        id,
		Owner:     owner,
		Step:      StepTripSelect,
		MaxSeats:  maxSeats,
		Draft:     NewDraft(owner, now),
		UpdatedAt: now,
	}
}

func (s State) clone() State {
	out := s
	out.Draft = s.Draft.clone()
	return out
}
