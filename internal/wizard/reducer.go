package wizard

import (
	"slices"
	"time"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/bookings"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/seats"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/validation"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/tripsearch"
)

var (
	ErrWrongStep     = apperror.ConflictError{Resource: "wizard", Msg: "action not allowed at the current step"}
	ErrTripRequired  = apperror.ValidationError{Field: "trip", Msg: "a trip with source and destination must be chosen"}
	ErrSeatsRequired = apperror.ValidationError{Field: "seatNumber", Msg: "at least one seat must be selected"}
	ErrSeatsChanged  = apperror.ValidationError{Field: "seatNumber", Msg: "some selected seats are no longer available"}
)

var validate = validation.New()

// Action is one typed change to a wizard.
type Action interface {
	apply(s *State) error
}

// Reduce applies a to a copy of s. On error the original state is returned
// unchanged.
func Reduce(s State, a Action) (State, error) {
	next := s.clone()
	if err := a.apply(&next); err != nil {
		return s, err
	}
	return next, nil
}

// SetSearch stores the trip search form.
type SetSearch struct {
	SourceID      int64
	DestinationID int64
	From          string
	To            string
}

func (a SetSearch) apply(s *State) error {
	if s.Step != StepTripSelect {
		return ErrWrongStep
	}
	s.Draft.SourceID = a.SourceID
	s.Draft.DestinationID = a.DestinationID
	s.Draft.From = a.From
	s.Draft.To = a.To
	return nil
}

// SwapEndpoints exchanges source and destination.
type SwapEndpoints struct{}

func (SwapEndpoints) apply(s *State) error {
	if s.Step != StepTripSelect {
		return ErrWrongStep
	}
	s.Draft.SourceID, s.Draft.DestinationID = s.Draft.DestinationID, s.Draft.SourceID
	return nil
}

// SelectTrip picks a trip. Picking a different trip clears the seats.
type SelectTrip struct {
	Trip tripsearch.TripSummary
}

func (a SelectTrip) apply(s *State) error {
	if s.Step != StepTripSelect {
		return ErrWrongStep
	}
	d := &s.Draft
	if d.Trip == nil || d.Trip.ID != a.Trip.ID {
		d.SeatNumber = []int{}
		d.TotalPayment = 0
	}
	trip := a.Trip
	d.Trip = &trip
	d.BookingDateTime = trip.DepartureDateTime
	if d.SourceID == 0 {
		d.SourceID = trip.SourceID
	}
	if d.DestinationID == 0 {
		d.DestinationID = trip.DestinationID
	}
	return nil
}

// ChooseSeat is one click on the seat map. Ordered lists the seats already
// sold for the trip's travel date.
type ChooseSeat struct {
	SeatNumber int
	Select     bool
	Ordered    []int
}

func (a ChooseSeat) apply(s *State) error {
	if s.Step != StepSeatSelect {
		return ErrWrongStep
	}
	d := &s.Draft
	if d.Trip == nil {
		return ErrTripRequired
	}

	seatMap := tripSeatMap(d.Trip, a.Ordered)
	sel, _ := keepAvailable(d, seatMap, s.MaxSeats)

	stair, ok := seatMap.Stair(a.SeatNumber)
	if !ok {
		return seats.ErrUnknownSeat
	}
	return sel.Choose(a.SeatNumber, stair, a.Select, seatMap.IsOrdered(a.SeatNumber))
}

// ReconcileSeats drops drafted seats that have been sold since they were
// picked, or that the coach does not have, and recomputes the total.
type ReconcileSeats struct {
	Ordered []int
}

func (a ReconcileSeats) apply(s *State) error {
	if s.Draft.Trip == nil || s.Step == StepSubmitted {
		return nil
	}
	keepAvailable(&s.Draft, tripSeatMap(s.Draft.Trip, a.Ordered), s.MaxSeats)
	return nil
}

func tripSeatMap(trip *tripsearch.TripSummary, ordered []int) *seats.SeatMap {
	m := seats.NewSeatMap(seats.CoachType(trip.CoachType), trip.Capacity)
	m.MarkOrdered(ordered)
	return m
}

// keepAvailable replays the drafted seats on m and keeps the ones that are
// still selectable. It returns the selection and the seats it dropped.
func keepAvailable(d *Draft, m *seats.SeatMap, maxSeats int) (*seats.Selection, []int) {
	sel := seats.NewSelection(m, maxSeats, seats.UnitPrice(d.Trip.Price, d.Trip.DiscountAmount),
		func(selected []int, total int64) {
			d.SeatNumber = selected
			d.TotalPayment = total
		})

	var dropped []int
	for _, n := range slices.Clone(d.SeatNumber) {
		if err := sel.Toggle(n, true); err != nil {
			dropped = append(dropped, n)
		}
	}
	if len(dropped) > 0 {
		d.SeatNumber = sel.Selected()
		if d.SeatNumber == nil {
			d.SeatNumber = []int{}
		}
		d.TotalPayment = sel.TotalPayment()
	}
	return sel, dropped
}

// UpdatePayment patches the customer and payment fields. Nil fields are
// left alone.
type UpdatePayment struct {
	PickUpAddress *string                 `json:"pickUpAddress"`
	CustFirstName *string                 `json:"custFirstName"`
	CustLastName  *string                 `json:"custLastName"`
	Phone         *string                 `json:"phone"`
	Email         *string                 `json:"email"`
	BookingType   *bookings.BookingType   `json:"bookingType"`
	PaymentMethod *bookings.PaymentMethod `json:"paymentMethod"`
	NameOnCard    *string                 `json:"nameOnCard"`
	CardNumber    *string                 `json:"cardNumber"`
	Expired       *string                 `json:"expired"`
	Cvv           *string                 `json:"cvv"`
}

func (a UpdatePayment) apply(s *State) error {
	if s.Step != StepPaymentInfo {
		return ErrWrongStep
	}
	d := &s.Draft
	setString(&d.PickUpAddress, a.PickUpAddress)
	setString(&d.CustFirstName, a.CustFirstName)
	setString(&d.CustLastName, a.CustLastName)
	setString(&d.Phone, a.Phone)
	setString(&d.Email, a.Email)
	setString(&d.NameOnCard, a.NameOnCard)
	setString(&d.CardNumber, a.CardNumber)
	setString(&d.Expired, a.Expired)
	setString(&d.Cvv, a.Cvv)
	if a.BookingType != nil {
		d.BookingType = *a.BookingType
	}
	if a.PaymentMethod != nil {
		d.PaymentMethod = *a.PaymentMethod
		d.PaymentStatus = bookings.StatusFor(*a.PaymentMethod)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Next moves forward one step once the current step is complete. Ordered is
// checked against the drafted seats when leaving SEAT_SELECT.
type Next struct {
	Ordered []int
}

func (a Next) apply(s *State) error {
	switch s.Step {
	case StepTripSelect:
		d := s.Draft
		if d.Trip == nil || d.SourceID <= 0 || d.DestinationID <= 0 {
			return ErrTripRequired
		}
		s.Step = StepSeatSelect
	case StepSeatSelect:
		if len(s.Draft.SeatNumber) == 0 {
			return ErrSeatsRequired
		}
		if s.Draft.Trip != nil {
			check := s.Draft
			if _, dropped := keepAvailable(&check, tripSeatMap(check.Trip, a.Ordered), s.MaxSeats); len(dropped) > 0 {
				return ErrSeatsChanged
			}
		}
		s.Step = StepPaymentInfo
	default:
		return ErrWrongStep
	}
	s.LastError = ""
	return nil
}

// Back moves one step back without touching the draft.
type Back struct{}

func (Back) apply(s *State) error {
	if s.Step == StepTripSelect || s.Step == StepSubmitted {
		return ErrWrongStep
	}
	s.Step--
	return nil
}

// Submit validates the payment step and moves to SUBMITTED.
type Submit struct{}

func (Submit) apply(s *State) error {
	if s.Step != StepPaymentInfo {
		return ErrWrongStep
	}
	if s.Draft.Trip == nil {
		return ErrTripRequired
	}
	if len(s.Draft.SeatNumber) == 0 {
		return ErrSeatsRequired
	}
	if err := ValidatePayment(s.Draft); err != nil {
		return err
	}
	s.Step = StepSubmitted
	return nil
}

// SubmitSucceeded resets the wizard for the next customer.
type SubmitSucceeded struct {
	Now time.Time
}

func (a SubmitSucceeded) apply(s *State) error {
	if s.Step != StepSubmitted {
		return ErrWrongStep
	}
	*s = NewState(s.ID, s.Owner, s.MaxSeats, a.Now)
	return nil
}

// SubmitFailed keeps the draft at PAYMENT_INFO and records the error.
type SubmitFailed struct {
	Err string
}

func (a SubmitFailed) apply(s *State) error {
	s.Step = StepPaymentInfo
	s.LastError = a.Err
	return nil
}

type paymentForm struct {
	PickUpAddress string                 `json:"pickUpAddress" validate:"required,max=255"`
	CustFirstName string                 `json:"custFirstName" validate:"required,max=100"`
	CustLastName  string                 `json:"custLastName" validate:"required,max=100"`
	Phone         string                 `json:"phone" validate:"required,vnphone"`
	Email         string                 `json:"email" validate:"required,email"`
	PaymentMethod bookings.PaymentMethod `json:"paymentMethod" validate:"required,oneof=CASH CARD"`
}

type cardForm struct {
	NameOnCard string `json:"nameOnCard" validate:"required"`
	CardNumber string `json:"cardNumber" validate:"required,visa"`
	Expired    string `json:"expired" validate:"required,cardexpiry"`
	Cvv        string `json:"cvv" validate:"required,len=3,numeric"`
}

// ValidatePayment checks the PAYMENT_INFO fields; card fields only matter
// when paying by card.
func ValidatePayment(d Draft) error {
	fields := map[string]string{}
	collect(fields, validation.Struct(validate, paymentForm{
		PickUpAddress: d.PickUpAddress,
		CustFirstName: d.CustFirstName,
		CustLastName:  d.CustLastName,
		Phone:         d.Phone,
		Email:         d.Email,
		PaymentMethod: d.PaymentMethod,
	}))
	if d.PaymentMethod == bookings.PaymentMethodCard {
		collect(fields, validation.Struct(validate, cardForm{
			NameOnCard: d.NameOnCard,
			CardNumber: d.CardNumber,
			Expired:    d.Expired,
			Cvv:        d.Cvv,
		}))
	}
	if len(fields) > 0 {
		return validation.FieldErrors{Fields: fields}
	}
	return nil
}

func collect(into map[string]string, err error) {
	if err == nil {
		return
	}
	if fe, ok := err.(validation.FieldErrors); ok {
		for k, v := range fe.Fields {
			into[k] = v
		}
		return
	}
	into["form"] = err.Error()
}
