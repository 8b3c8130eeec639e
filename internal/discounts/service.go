package discounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/constants"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/duplicate"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/response"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/validation"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/cache"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

type Service interface {
	GetAll(ctx context.Context) ([]DiscountResponse, error)
	GetAvailable(ctx context.Context) ([]DiscountResponse, error)
	GetPage(ctx context.Context, page, limit int) (*response.Page[DiscountResponse], error)
	GetByID(ctx context.Context, id int64) (*DiscountResponse, error)
	Create(ctx context.Context, req DiscountRequest) (*DiscountResponse, error)
	Update(ctx context.Context, req DiscountRequest) (*DiscountResponse, error)
	Delete(ctx context.Context, id int64) error
	CheckDuplicate(ctx context.Context, chk duplicate.Check) (bool, error)
}

type service struct {
	repo  Repository
	cache cache.Service
	now   func() time.Time
}

var validate = validation.New()

func NewService(repo Repository, c cache.Service) Service {
	return &service{repo: repo, cache: c, now: time.Now}
}

func toResponses(discounts []Discount) []DiscountResponse {
	out := make([]DiscountResponse, 0, len(discounts))
	for _, d := range discounts {
		out = append(out, d.ToResponse())
	}
	return out
}

func (s *service) GetAll(ctx context.Context) ([]DiscountResponse, error) {
	discounts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}
	return toResponses(discounts), nil
}

func (s *service) loadAvailable(ctx context.Context) ([]DiscountResponse, error) {
	discounts, err := s.repo.FindAvailable(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list available discounts: %w", err)
	}
	return toResponses(discounts), nil
}

func (s *service) GetAvailable(ctx context.Context) ([]DiscountResponse, error) {
	if s.cache == nil {
		return s.loadAvailable(ctx)
	}

	var out []DiscountResponse
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_DISCOUNTS_AVAILABLE, constants.TTL_DISCOUNTS_AVAILABLE, func() (interface{}, error) {
		return s.loadAvailable(ctx)
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) GetPage(ctx context.Context, page, limit int) (*response.Page[DiscountResponse], error) {
	discounts, total, err := s.repo.FindPage(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}
	p := response.NewPage(toResponses(discounts), total, page, limit)
	return &p, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*DiscountResponse, error) {
	discount, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := discount.ToResponse()
	return &res, nil
}

func (s *service) find(ctx context.Context, id int64) (*Discount, error) {
	discount, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDiscountNotFound) {
			return nil, apperror.NotFoundError{Resource: "discount", Err: err}
		}
		return nil, fmt.Errorf("failed to get discount: %w", err)
	}
	return discount, nil
}

func (s *service) check(ctx context.Context, req *DiscountRequest, chk duplicate.Check) error {
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	chk.Value = req.Code
	if err := validation.Struct(validate, *req); err != nil {
		return err
	}

	free, err := s.repo.IsFree(ctx, chk)
	if err != nil {
		return fmt.Errorf("failed to check discount code: %w", err)
	}
	if !free {
		return apperror.Conflict("discount", "code "+req.Code+" already exists")
	}
	return nil
}

func (s *service) Create(ctx context.Context, req DiscountRequest) (*DiscountResponse, error) {
	if err := s.check(ctx, &req, duplicate.ForAdd("code", req.Code)); err != nil {
		return nil, err
	}

	discount := &Discount{
		Code:          req.Code,
		Amount:        req.Amount,
		StartDateTime: req.StartDateTime,
		EndDateTime:   req.EndDateTime,
		Description:   req.Description,
	}
	if err := s.repo.Create(ctx, discount); err != nil {
		return nil, fmt.Errorf("failed to create discount: %w", err)
	}
	s.invalidate(ctx, false)

	res := discount.ToResponse()
	return &res, nil
}

func (s *service) Update(ctx context.Context, req DiscountRequest) (*DiscountResponse, error) {
	discount, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, &req, duplicate.ForUpdate(req.ID, "code", req.Code)); err != nil {
		return nil, err
	}

	discount.Code = req.Code
	discount.Amount = req.Amount
	discount.StartDateTime = req.StartDateTime
	discount.EndDateTime = req.EndDateTime
	discount.Description = req.Description
	if err := s.repo.Update(ctx, discount); err != nil {
		return nil, fmt.Errorf("failed to update discount: %w", err)
	}
	s.invalidate(ctx, true)

	res := discount.ToResponse()
	return &res, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	trips, err := s.repo.CountTrips(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check discount usage: %w", err)
	}
	if trips > 0 {
		return apperror.Conflict("discount", fmt.Sprintf("discount is applied to %d trip(s)", trips))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrDiscountNotFound) {
			return apperror.NotFoundError{Resource: "discount", Err: err}
		}
		return fmt.Errorf("failed to delete discount: %w", err)
	}
	s.invalidate(ctx, false)
	return nil
}

func (s *service) CheckDuplicate(ctx context.Context, chk duplicate.Check) (bool, error) {
	chk.Value = strings.ToUpper(strings.TrimSpace(chk.Value))
	free, err := s.repo.IsFree(ctx, chk)
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate: %w", err)
	}
	return free, nil
}

// invalidate drops the available list; trip listings embed the discount
// amount, so they go too when an existing discount changes.
func (s *service) invalidate(ctx context.Context, trips bool) {
	if s.cache == nil {
		return
	}
	patterns := []string{constants.PATTERN_INVALIDATE_DISCOUNTS_ALL}
	if trips {
		patterns = append(patterns, constants.PATTERN_INVALIDATE_TRIPS_ALL)
	}
	if err := s.cache.DeletePattern(ctx, patterns...); err != nil {
		logger.GetDefault().Warn("Failed to invalidate cache", "patterns", patterns, "error", err)
	}
}
