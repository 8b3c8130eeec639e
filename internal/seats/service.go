package seats

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/dates"
)

type Service interface {
	GetSeatMap(ctx context.Context, tripID int64, date string) (*SeatMapResponse, error)
	GetSeatBookings(ctx context.Context, tripID int64, date string) ([]SeatBookingResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetSeatMap(ctx context.Context, tripID int64, date string) (*SeatMapResponse, error) {
	day, err := dates.Parse("date", date)
	if err != nil {
		return nil, err
	}

	trip, err := s.repo.GetTripCoach(ctx, tripID)
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			return nil, apperror.NotFoundError{Resource: "trip", Err: err}
		}
		return nil, fmt.Errorf("load trip coach: %w", err)
	}

	ordered, err := s.repo.OrderedSeats(ctx, tripID, day)
	if err != nil {
		return nil, fmt.Errorf("load ordered seats: %w", err)
	}

	seatMap := NewSeatMap(trip.CoachType, trip.Capacity)
	seatMap.MarkOrdered(ordered)

	if ordered == nil {
		ordered = []int{}
	}
	return &SeatMapResponse{
		TripID:       tripID,
		Date:         dates.Format(day),
		CoachType:    seatMap.CoachType(),
		Capacity:     trip.Capacity,
		OrderedSeats: ordered,
		Floors:       seatMap.Floors(),
	}, nil
}

func (s *service) GetSeatBookings(ctx context.Context, tripID int64, date string) ([]SeatBookingResponse, error) {
	day, err := dates.Parse("date", date)
	if err != nil {
		return nil, err
	}

	ordered, err := s.repo.OrderedSeats(ctx, tripID, day)
	if err != nil {
		return nil, fmt.Errorf("load ordered seats: %w", err)
	}

	out := make([]SeatBookingResponse, 0, len(ordered))
	for _, n := range ordered {
		out = append(out, SeatBookingResponse{SeatNumber: n})
	}
	return out, nil
}
