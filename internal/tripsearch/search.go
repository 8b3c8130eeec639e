package tripsearch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/dates"
)

const countConcurrency = 8

// Search holds the form state of one user's trip search. A Find commits
// its result only if no newer Find, Swap or criteria change happened while
// it ran.
type Search struct {
	mu         sync.Mutex
	criteria   Criteria
	generation uint64
	result     []TripAvailability
	hasResult  bool

	finder  TripFinder
	counter SeatCounter
}

func NewSearch(finder TripFinder, counter SeatCounter) *Search {
	return &Search{finder: finder, counter: counter}
}

// SetCriteria replaces the form values and drops the previous result.
func (s *Search) SetCriteria(c Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
	s.invalidateLocked()
}

func (s *Search) Criteria() Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// Swap exchanges source and destination and drops the previous result.
func (s *Search) Swap() Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.SourceID, s.criteria.DestinationID = s.criteria.DestinationID, s.criteria.SourceID
	s.invalidateLocked()
	return s.criteria
}

// Result returns the last committed result.
func (s *Search) Result() ([]TripAvailability, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.hasResult
}

func (s *Search) invalidateLocked() {
	s.generation++
	s.result = nil
	s.hasResult = false
}

// Find runs the search for the current criteria. Seat counts of all trips
// are fetched concurrently and the result is built only after every count
// returned.
func (s *Search) Find(ctx context.Context) ([]TripAvailability, error) {
	s.mu.Lock()
	c := s.criteria
	if !c.Complete() {
		s.mu.Unlock()
		return nil, ErrIncompleteCriteria
	}
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	trips, err := s.finder.FindTrips(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("find trips: %w", err)
	}

	out := make([]TripAvailability, len(trips))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(countConcurrency)
	for i, trip := range trips {
		g.Go(func() error {
			day := dates.StartOfDay(trip.DepartureDateTime)
			n, err := s.counter.CountOrdered(gctx, trip.ID, day)
			if err != nil {
				return fmt.Errorf("count seats of trip %d: %w", trip.ID, err)
			}
			out[i] = TripAvailability{TripSummary: trip, OrderedCount: n, Left: trip.Capacity - n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return nil, ErrStaleSearch
	}
	s.result = out
	s.hasResult = true
	return out, nil
}
