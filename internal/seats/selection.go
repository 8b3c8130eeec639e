package seats

import (
	"slices"
)

// UnitPrice is the per-seat price after discount. It is not floored at zero.
func UnitPrice(price, discount int64) int64 {
	return price - discount
}

// ChangeFunc receives the selection after every accepted change.
type ChangeFunc func(selected []int, totalPayment int64)

// Selection tracks the seats picked on one SeatMap for one trip.
type Selection struct {
	seatMap   *SeatMap
	max       int
	unitPrice int64
	selected  []int
	onChange  ChangeFunc
}

// NewSelection starts an empty selection. A max <= 0 uses MaxSeatSelect.
func NewSelection(seatMap *SeatMap, max int, unitPrice int64, onChange ChangeFunc) *Selection {
	if max <= 0 {
		max = MaxSeatSelect
	}
	return &Selection{
		seatMap:   seatMap,
		max:       max,
		unitPrice: unitPrice,
		onChange:  onChange,
	}
}

// Choose applies one click. isOrdered comes from the caller's view of the
// ordered seats. Every returned error leaves the selection unchanged.
func (s *Selection) Choose(seatNumber int, stair StairID, wantSelect, isOrdered bool) error {
	if isOrdered {
		return ErrSeatOrdered
	}
	seat, ok := s.seatMap.seat(stair, seatNumber)
	if !ok {
		return ErrUnknownSeat
	}

	idx := slices.Index(s.selected, seatNumber)
	if wantSelect {
		if idx >= 0 {
			return nil
		}
		if len(s.selected) >= s.max {
			return ErrSelectionFull
		}
		s.selected = append(s.selected, seatNumber)
		seat.Chosen = true
	} else {
		if idx < 0 {
			return ErrSeatNotSelected
		}
		s.selected = slices.Delete(s.selected, idx, idx+1)
		seat.Chosen = false
	}

	s.notify()
	return nil
}

// Toggle is Choose with stair and ordered state taken from the seat map.
func (s *Selection) Toggle(seatNumber int, wantSelect bool) error {
	stair, ok := s.seatMap.Stair(seatNumber)
	if !ok {
		return ErrUnknownSeat
	}
	return s.Choose(seatNumber, stair, wantSelect, s.seatMap.IsOrdered(seatNumber))
}

// Restore replays a previously accepted list of seats, e.g. from a stored
// draft. It stops at the first seat that is no longer selectable.
func (s *Selection) Restore(seatNumbers []int) error {
	for _, n := range seatNumbers {
		if err := s.Toggle(n, true); err != nil {
			return err
		}
	}
	return nil
}

// Selected returns a copy of the selected seats in click order.
func (s *Selection) Selected() []int {
	return slices.Clone(s.selected)
}

func (s *Selection) TotalPayment() int64 {
	return s.unitPrice * int64(len(s.selected))
}

func (s *Selection) notify() {
	if s.onChange != nil {
		s.onChange(s.Selected(), s.TotalPayment())
	}
}
