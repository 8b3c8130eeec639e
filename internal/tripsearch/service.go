package tripsearch

import (
	"context"
	"errors"
	"sync"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/dates"
)

type Service interface {
	// Search updates the criteria of the search owned by key and runs it.
	Search(ctx context.Context, key string, c Criteria) (*SearchResponse, error)
	// Swap exchanges the endpoints of the search owned by key.
	Swap(ctx context.Context, key string) (*SearchResponse, error)
	// Forget drops the search owned by key, e.g. on logout.
	Forget(key string)
}

type service struct {
	mu       sync.Mutex
	searches map[string]*Search
	finder   TripFinder
	counter  SeatCounter
}

func NewService(finder TripFinder, counter SeatCounter) Service {
	return &service{
		searches: make(map[string]*Search),
		finder:   finder,
		counter:  counter,
	}
}

func (s *service) search(key string) *Search {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.searches[key]; ok {
		return existing
	}
	created := NewSearch(s.finder, s.counter)
	s.searches[key] = created
	return created
}

func (s *service) Search(ctx context.Context, key string, c Criteria) (*SearchResponse, error) {
	if !c.Complete() {
		return nil, apperror.ValidationError{Field: "sourceId", Msg: ErrIncompleteCriteria.Error(), Err: ErrIncompleteCriteria}
	}
	if c.From.After(c.To) {
		return nil, apperror.Invalid("from", "from date must not be after to date")
	}

	search := s.search(key)
	search.SetCriteria(c)
	trips, err := search.Find(ctx)
	if err != nil {
		if errors.Is(err, ErrStaleSearch) {
			return nil, apperror.ConflictError{Resource: "search", Msg: err.Error(), Err: err}
		}
		return nil, err
	}
	if trips == nil {
		trips = []TripAvailability{}
	}
	return &SearchResponse{Criteria: c, Trips: trips}, nil
}

func (s *service) Swap(ctx context.Context, key string) (*SearchResponse, error) {
	c := s.search(key).Swap()
	return &SearchResponse{Criteria: c, Trips: []TripAvailability{}}, nil
}

func (s *service) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.searches, key)
}

// ParseRequest turns the HTTP body into criteria.
func ParseRequest(req SearchRequest) (Criteria, error) {
	from, to, err := dates.ParseRange(req.From, req.To)
	if err != nil {
		return Criteria{}, err
	}
	return Criteria{
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		From:          from,
		To:            to,
	}, nil
}
