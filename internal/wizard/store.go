package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/constants"
)

var (
	ErrWizardNotFound = errors.New("wizard not found")
	ErrWizardBusy     = errors.New("wizard is being updated by another request")
)

// Store persists wizard states between requests.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, s *State) error
	Delete(ctx context.Context, id string) error
	// Lock serialises read-modify-write cycles on one wizard.
	Lock(ctx context.Context, id string) (unlock func(), err error)
	Close() error
}

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 20
	lockBackoff  = 25 * time.Millisecond
)

var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (r *redisStore) Get(ctx context.Context, id string) (*State, error) {
	raw, err := r.client.Get(ctx, constants.BuildWizardDraftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrWizardNotFound
		}
		return nil, fmt.Errorf("get wizard: %w", err)
	}
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode wizard: %w", err)
	}
	return &s, nil
}

func (r *redisStore) Save(ctx context.Context, s *State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode wizard: %w", err)
	}
	if err := r.client.Set(ctx, constants.BuildWizardDraftKey(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save wizard: %w", err)
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, constants.BuildWizardDraftKey(id)).Err()
}

func (r *redisStore) Lock(ctx context.Context, id string) (func(), error) {
	key := constants.BuildWizardLockKey(id)
	token := uuid.NewString()

	for attempt := 0; attempt < lockAttempts; attempt++ {
		ok, err := r.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("lock wizard: %w", err)
		}
		if ok {
			return func() {
				_ = releaseLockScript.Run(context.Background(), r.client, []string{key}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockBackoff):
		}
	}
	return nil, ErrWizardBusy
}

// Close is a no-op; the Redis client is owned by the database package.
func (r *redisStore) Close() error {
	return nil
}
