package trips

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/constants"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/response"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/validation"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/cache"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

type Service interface {
	GetAll(ctx context.Context) ([]TripDetail, error)
	GetPage(ctx context.Context, page, limit int) (*response.Page[TripDetail], error)
	GetByID(ctx context.Context, id int64) (*TripDetail, error)
	Create(ctx context.Context, req TripRequest) (*TripDetail, error)
	Update(ctx context.Context, req TripRequest) (*TripDetail, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

var validate = validation.New()

// NewService wires the trip service. c may be nil, in which case nothing
// is cached.
func NewService(repo Repository, c cache.Service) Service {
	return &service{repo: repo, cache: c}
}

func (s *service) GetAll(ctx context.Context) ([]TripDetail, error) {
	trips, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	if trips == nil {
		trips = []TripDetail{}
	}
	return trips, nil
}

func (s *service) GetPage(ctx context.Context, page, limit int) (*response.Page[TripDetail], error) {
	load := func() (interface{}, error) {
		trips, total, err := s.repo.FindPage(ctx, page, limit)
		if err != nil {
			return nil, err
		}
		if trips == nil {
			trips = []TripDetail{}
		}
		return response.NewPage(trips, total, page, limit), nil
	}

	var p response.Page[TripDetail]
	if s.cache == nil {
		v, err := load()
		if err != nil {
			return nil, fmt.Errorf("failed to list trips: %w", err)
		}
		p = v.(response.Page[TripDetail])
		return &p, nil
	}

	key := constants.BuildTripListKey(page, limit)
	if err := s.cache.GetOrSet(ctx, key, constants.TTL_TRIPS_LIST, load, &p); err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	return &p, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*TripDetail, error) {
	load := func() (interface{}, error) {
		return s.repo.FindDetail(ctx, id)
	}

	var detail TripDetail
	if s.cache == nil {
		v, err := load()
		if err != nil {
			return nil, s.notFound(err)
		}
		return v.(*TripDetail), nil
	}

	if err := s.cache.GetOrSet(ctx, constants.BuildTripDetailKey(id), constants.TTL_TRIP_DETAIL, load, &detail); err != nil {
		return nil, s.notFound(err)
	}
	return &detail, nil
}

func (s *service) notFound(err error) error {
	if errors.Is(err, ErrTripNotFound) {
		return apperror.NotFoundError{Resource: "trip", Err: err}
	}
	return fmt.Errorf("failed to get trip: %w", err)
}

// check validates req and makes sure every referenced row exists.
func (s *service) check(ctx context.Context, req TripRequest) error {
	if err := validation.Struct(validate, req); err != nil {
		return err
	}

	refs := []struct {
		field string
		table string
		id    int64
	}{
		{"driverId", "drivers", req.DriverID},
		{"coachId", "coaches", req.CoachID},
		{"sourceId", "provinces", req.SourceID},
		{"destinationId", "provinces", req.DestinationID},
	}
	if req.DiscountID != nil {
		refs = append(refs, struct {
			field string
			table string
			id    int64
		}{"discountId", "discounts", *req.DiscountID})
	}

	fields := map[string]string{}
	for _, ref := range refs {
		ok, err := s.repo.Exists(ctx, ref.table, ref.id)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", ref.field, err)
		}
		if !ok {
			fields[ref.field] = fmt.Sprintf("%s %d does not exist", ref.table, ref.id)
		}
	}
	if len(fields) > 0 {
		return validation.FieldErrors{Fields: fields}
	}
	return nil
}

func apply(trip *Trip, req TripRequest) {
	trip.DriverID = req.DriverID
	trip.CoachID = req.CoachID
	trip.SourceID = req.SourceID
	trip.DestinationID = req.DestinationID
	trip.DiscountID = req.DiscountID
	trip.Price = req.Price
	trip.DepartureDateTime = req.DepartureDateTime
	trip.Duration = req.Duration
}

func (s *service) Create(ctx context.Context, req TripRequest) (*TripDetail, error) {
	if err := s.check(ctx, req); err != nil {
		return nil, err
	}

	trip := &Trip{}
	apply(trip, req)
	if err := s.repo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}
	s.invalidate(ctx)

	return s.reload(ctx, trip.ID)
}

func (s *service) Update(ctx context.Context, req TripRequest) (*TripDetail, error) {
	trip, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, s.notFound(err)
	}
	if err := s.check(ctx, req); err != nil {
		return nil, err
	}

	apply(trip, req)
	if err := s.repo.Update(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}
	s.invalidate(ctx)

	return s.reload(ctx, trip.ID)
}

func (s *service) reload(ctx context.Context, id int64) (*TripDetail, error) {
	detail, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, s.notFound(err)
	}
	return detail, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	bookings, err := s.repo.CountBookings(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check trip bookings: %w", err)
	}
	if bookings > 0 {
		return apperror.Conflict("trip", fmt.Sprintf("trip has %d booking(s)", bookings))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.notFound(err)
	}
	s.invalidate(ctx)
	return nil
}

// invalidate drops trip listings, details and search results.
func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_TRIPS_ALL); err != nil {
		logger.GetDefault().Warn("Failed to invalidate trip cache", "error", err)
	}
}
