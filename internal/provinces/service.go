package provinces

import (
	"context"
	"fmt"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/constants"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/cache"
)

type Service interface {
	GetAll(ctx context.Context) ([]ProvinceResponse, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService returns the province service. A nil cache reads the database
// every time.
func NewService(repo Repository, c cache.Service) Service {
	return &service{repo: repo, cache: c}
}

func (s *service) load(ctx context.Context) ([]ProvinceResponse, error) {
	provinces, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list provinces: %w", err)
	}
	out := make([]ProvinceResponse, 0, len(provinces))
	for _, p := range provinces {
		out = append(out, p.ToResponse())
	}
	return out, nil
}

func (s *service) GetAll(ctx context.Context) ([]ProvinceResponse, error) {
	if s.cache == nil {
		return s.load(ctx)
	}

	var out []ProvinceResponse
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_PROVINCES_ALL, constants.TTL_PROVINCES_ALL, func() (interface{}, error) {
		return s.load(ctx)
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
