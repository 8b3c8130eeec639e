package seats

import (
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
)

// CoachType decides which seat layout a coach uses.
type CoachType string

const (
	CoachTypeBed       CoachType = "BED"
	CoachTypeChair     CoachType = "CHAIR"
	CoachTypeLimousine CoachType = "LIMOUSINE"
)

func (t CoachType) IsValid() bool {
	switch t {
	case CoachTypeBed, CoachTypeChair, CoachTypeLimousine:
		return true
	}
	return false
}

// StairID names a floor of the coach.
type StairID string

const (
	StairDown StairID = "DOWN"
	StairUp   StairID = "UP"
	StairMain StairID = "MAIN"
)

// MaxSeatSelect is the default upper bound on seats per booking.
const MaxSeatSelect = 5

// Selection outcomes that leave the state untouched.
var (
	ErrSeatOrdered     = apperror.ValidationError{Field: "seatNumber", Msg: "seat is already ordered"}
	ErrSelectionFull   = apperror.ValidationError{Field: "seatNumber", Msg: "maximum number of seats already selected"}
	ErrSeatNotSelected = apperror.ValidationError{Field: "seatNumber", Msg: "seat is not selected"}
	ErrUnknownSeat     = apperror.ValidationError{Field: "seatNumber", Msg: "seat does not exist on this coach"}
)

// Seat is one cell of the map.
type Seat struct {
	Number  int  `json:"number"`
	Chosen  bool `json:"isChosen"`
	Ordered bool `json:"isOrdered"`
}

// Floor is the JSON view of one stair, seats in ascending order.
type Floor struct {
	Stair StairID `json:"stairId"`
	Seats []Seat  `json:"seats"`
}

// SeatMapResponse is returned by GET /seats/map.
type SeatMapResponse struct {
	TripID       int64     `json:"tripId"`
	Date         string    `json:"date"`
	CoachType    CoachType `json:"coachType"`
	Capacity     int       `json:"capacity"`
	OrderedSeats []int     `json:"orderedSeats"`
	Floors       []Floor   `json:"floors"`
}

// SeatBookingResponse mirrors the collaborator API item of /bookings/seatBooking.
type SeatBookingResponse struct {
	SeatNumber int `json:"seatNumber"`
}

// TripCoach is the slice of a trip needed to draw its seat map.
type TripCoach struct {
	TripID    int64
	CoachType CoachType
	Capacity  int
}
