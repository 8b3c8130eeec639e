package tripsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/constants"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/dates"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/cache"
)

// cachedFinder keeps trip lists in Redis for a short while. Seat counts are
// always read live.
type cachedFinder struct {
	next  TripFinder
	cache cache.Service
	ttl   time.Duration
}

// NewCachedFinder wraps next with the Redis cache. A nil cache disables it.
func NewCachedFinder(next TripFinder, c cache.Service) TripFinder {
	if c == nil {
		return next
	}
	return &cachedFinder{next: next, cache: c, ttl: constants.TTL_TRIPS_SEARCH}
}

func (f *cachedFinder) FindTrips(ctx context.Context, c Criteria) ([]TripSummary, error) {
	key := constants.BuildTripSearchKey(c.SourceID, c.DestinationID,
		fmt.Sprintf("%s_%s", dates.Format(c.From), dates.Format(c.To)))

	var trips []TripSummary
	err := f.cache.GetOrSet(ctx, key, f.ttl, func() (interface{}, error) {
		return f.next.FindTrips(ctx, c)
	}, &trips)
	if err != nil {
		return nil, err
	}
	return trips, nil
}
