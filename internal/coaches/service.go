package coaches

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/seats"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/constants"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/duplicate"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/response"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/validation"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/cache"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

type Service interface {
	GetAll(ctx context.Context) ([]CoachResponse, error)
	GetPage(ctx context.Context, page, limit int) (*response.Page[CoachResponse], error)
	GetByID(ctx context.Context, id int64) (*CoachResponse, error)
	Create(ctx context.Context, req CoachRequest) (*CoachResponse, error)
	Update(ctx context.Context, req CoachRequest) (*CoachResponse, error)
	Delete(ctx context.Context, id int64) error
	CheckDuplicate(ctx context.Context, chk duplicate.Check) (bool, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

var validate = validation.New()

func NewService(repo Repository, c cache.Service) Service {
	return &service{repo: repo, cache: c}
}

func toResponses(coaches []Coach) []CoachResponse {
	out := make([]CoachResponse, 0, len(coaches))
	for _, c := range coaches {
		out = append(out, c.ToResponse())
	}
	return out
}

func (s *service) GetAll(ctx context.Context) ([]CoachResponse, error) {
	coaches, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coaches: %w", err)
	}
	return toResponses(coaches), nil
}

func (s *service) GetPage(ctx context.Context, page, limit int) (*response.Page[CoachResponse], error) {
	coaches, total, err := s.repo.FindPage(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list coaches: %w", err)
	}
	p := response.NewPage(toResponses(coaches), total, page, limit)
	return &p, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*CoachResponse, error) {
	coach, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := coach.ToResponse()
	return &res, nil
}

func (s *service) find(ctx context.Context, id int64) (*Coach, error) {
	coach, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCoachNotFound) {
			return nil, apperror.NotFoundError{Resource: "coach", Err: err}
		}
		return nil, fmt.Errorf("failed to get coach: %w", err)
	}
	return coach, nil
}

func (s *service) check(ctx context.Context, req CoachRequest, chk duplicate.Check) error {
	if err := validation.Struct(validate, req); err != nil {
		return err
	}
	if max := seats.LayoutSize(req.CoachType); req.Capacity > max {
		return apperror.Invalid("capacity", fmt.Sprintf("a %s coach has at most %d seats", req.CoachType, max))
	}

	free, err := s.repo.IsFree(ctx, chk)
	if err != nil {
		return fmt.Errorf("failed to check license plate: %w", err)
	}
	if !free {
		return apperror.Conflict("coach", "license plate "+req.LicensePlate+" is already registered")
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CoachRequest) (*CoachResponse, error) {
	if err := s.check(ctx, req, duplicate.ForAdd("license_plate", req.LicensePlate)); err != nil {
		return nil, err
	}

	coach := &Coach{
		Name:         req.Name,
		Capacity:     req.Capacity,
		LicensePlate: req.LicensePlate,
		CoachType:    req.CoachType,
	}
	if err := s.repo.Create(ctx, coach); err != nil {
		return nil, fmt.Errorf("failed to create coach: %w", err)
	}

	res := coach.ToResponse()
	return &res, nil
}

func (s *service) Update(ctx context.Context, req CoachRequest) (*CoachResponse, error) {
	coach, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, req, duplicate.ForUpdate(req.ID, "license_plate", req.LicensePlate)); err != nil {
		return nil, err
	}

	coach.Name = req.Name
	coach.Capacity = req.Capacity
	coach.LicensePlate = req.LicensePlate
	coach.CoachType = req.CoachType
	if err := s.repo.Update(ctx, coach); err != nil {
		return nil, fmt.Errorf("failed to update coach: %w", err)
	}
	s.invalidateTrips(ctx)

	res := coach.ToResponse()
	return &res, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	trips, err := s.repo.CountTrips(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check coach usage: %w", err)
	}
	if trips > 0 {
		return apperror.Conflict("coach", fmt.Sprintf("coach is used by %d trip(s)", trips))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrCoachNotFound) {
			return apperror.NotFoundError{Resource: "coach", Err: err}
		}
		return fmt.Errorf("failed to delete coach: %w", err)
	}
	return nil
}

func (s *service) CheckDuplicate(ctx context.Context, chk duplicate.Check) (bool, error) {
	free, err := s.repo.IsFree(ctx, chk)
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate: %w", err)
	}
	return free, nil
}

// invalidateTrips drops cached trip listings that embed coach data.
func (s *service) invalidateTrips(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_TRIPS_ALL); err != nil {
		logger.GetDefault().Warn("Failed to invalidate trip cache", "error", err)
	}
}
