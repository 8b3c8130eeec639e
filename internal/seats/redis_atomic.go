package seats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/constants"
)

var ErrSeatLocked = errors.New("seat is being booked by another request")

// Locks every key or none. Returns 0 and the index of the first held key on
// conflict.
var lockSeatsScript = redis.NewScript(`
local owner = ARGV[1]
local ttl = tonumber(ARGV[2])

for i = 1, #KEYS do
    local holder = redis.call("GET", KEYS[i])
    if holder and holder ~= owner then
        return {0, i}
    end
end

for i = 1, #KEYS do
    redis.call("SET", KEYS[i], owner, "PX", ttl)
end

return {1, #KEYS}
`)

// Releases only the keys still held by the owner.
var unlockSeatsScript = redis.NewScript(`
local owner = ARGV[1]
local released = 0

for i = 1, #KEYS do
    if redis.call("GET", KEYS[i]) == owner then
        redis.call("DEL", KEYS[i])
        released = released + 1
    end
end

return released
`)

// SeatLocker guards the short window between the ordered-seat check and the
// booking commit.
type SeatLocker interface {
	Lock(ctx context.Context, tripID int64, date string, seatNumbers []int, owner string) error
	Unlock(ctx context.Context, tripID int64, date string, seatNumbers []int, owner string) error
}

type AtomicRedisOperations struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewAtomicRedisOperations(redisClient *redis.Client, ttl time.Duration) *AtomicRedisOperations {
	if ttl <= 0 {
		ttl = constants.TTL_SEAT_LOCK
	}
	return &AtomicRedisOperations{
		redis: redisClient,
		ttl:   ttl,
	}
}

func seatLockKeys(tripID int64, date string, seatNumbers []int) []string {
	keys := make([]string, len(seatNumbers))
	for i, n := range seatNumbers {
		keys[i] = constants.BuildSeatLockKey(tripID, date, n)
	}
	return keys
}

func (a *AtomicRedisOperations) Lock(ctx context.Context, tripID int64, date string, seatNumbers []int, owner string) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}
	if len(seatNumbers) == 0 {
		return nil
	}

	keys := seatLockKeys(tripID, date, seatNumbers)
	values, err := lockSeatsScript.Run(ctx, a.redis, keys, owner, a.ttl.Milliseconds()).Int64Slice()
	if err != nil {
		return fmt.Errorf("failed to lock seats: %w", err)
	}
	if len(values) != 2 {
		return fmt.Errorf("unexpected result format from lock script")
	}

	if values[0] == 0 {
		idx := int(values[1]) - 1
		if idx >= 0 && idx < len(seatNumbers) {
			return fmt.Errorf("seat %d: %w", seatNumbers[idx], ErrSeatLocked)
		}
		return ErrSeatLocked
	}
	return nil
}

func (a *AtomicRedisOperations) Unlock(ctx context.Context, tripID int64, date string, seatNumbers []int, owner string) error {
	if a.redis == nil || len(seatNumbers) == 0 {
		return nil
	}

	keys := seatLockKeys(tripID, date, seatNumbers)
	if err := unlockSeatsScript.Run(ctx, a.redis, keys, owner).Err(); err != nil {
		return fmt.Errorf("failed to unlock seats: %w", err)
	}
	return nil
}
