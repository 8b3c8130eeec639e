package seats

import (
	"sort"
)

type floorRange struct {
	stair    StairID
	from, to int
}

var layouts = map[CoachType][]floorRange{
	CoachTypeBed:       {{StairDown, 1, 18}, {StairUp, 19, 36}},
	CoachTypeLimousine: {{StairDown, 1, 18}, {StairUp, 19, 36}},
	CoachTypeChair:     {{StairMain, 1, 45}},
}

// SeatMap is the per-session seat grid of one coach. Each call to NewSeatMap
// builds an independent copy.
type SeatMap struct {
	coachType CoachType
	order     []StairID
	stairs    map[StairID]map[int]*Seat
}

// NewSeatMap builds the empty grid for a coach type. Unknown types fall back
// to the sleeper layout. A capacity below the layout size drops the seats
// numbered above it; capacity <= 0 keeps the whole layout.
func NewSeatMap(coachType CoachType, capacity int) *SeatMap {
	layout, ok := layouts[coachType]
	if !ok {
		layout = layouts[CoachTypeBed]
	}

	m := &SeatMap{
		coachType: coachType,
		stairs:    make(map[StairID]map[int]*Seat, len(layout)),
	}
	for _, fr := range layout {
		to := fr.to
		if capacity > 0 {
			to = min(to, capacity)
		}
		if to < fr.from {
			continue
		}
		m.order = append(m.order, fr.stair)
		seats := make(map[int]*Seat, to-fr.from+1)
		for n := fr.from; n <= to; n++ {
			seats[n] = &Seat{Number: n}
		}
		m.stairs[fr.stair] = seats
	}
	return m
}

// LayoutSize is the number of seats the layout of coachType offers.
func LayoutSize(coachType CoachType) int {
	size := 0
	for _, fr := range layouts[coachType] {
		size += fr.to - fr.from + 1
	}
	return size
}

func (m *SeatMap) CoachType() CoachType {
	return m.coachType
}

// Stair resolves the floor a seat number belongs to.
func (m *SeatMap) Stair(seat int) (StairID, bool) {
	for _, id := range m.order {
		if _, ok := m.stairs[id][seat]; ok {
			return id, true
		}
	}
	return "", false
}

func (m *SeatMap) seat(stair StairID, number int) (*Seat, bool) {
	seats, ok := m.stairs[stair]
	if !ok {
		return nil, false
	}
	s, ok := seats[number]
	return s, ok
}

// MarkOrdered flags the given seats as taken. Unknown numbers are ignored.
func (m *SeatMap) MarkOrdered(ordered []int) {
	for _, n := range ordered {
		if stair, ok := m.Stair(n); ok {
			m.stairs[stair][n].Ordered = true
		}
	}
}

// IsOrdered reports whether the seat was marked as taken.
func (m *SeatMap) IsOrdered(seat int) bool {
	stair, ok := m.Stair(seat)
	if !ok {
		return false
	}
	return m.stairs[stair][seat].Ordered
}

// Floors returns a snapshot in layout order.
func (m *SeatMap) Floors() []Floor {
	floors := make([]Floor, 0, len(m.order))
	for _, id := range m.order {
		seats := make([]Seat, 0, len(m.stairs[id]))
		for _, s := range m.stairs[id] {
			seats = append(seats, *s)
		}
		sort.Slice(seats, func(i, j int) bool { return seats[i].Number < seats[j].Number })
		floors = append(floors, Floor{Stair: id, Seats: seats})
	}
	return floors
}
