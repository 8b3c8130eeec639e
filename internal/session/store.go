package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/constants"
)

var ErrSessionNotFound = errors.New("session not found")

type Store interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// IDForUser returns the current session id of username.
	IDForUser(ctx context.Context, username string) (string, error)
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (r *redisStore) Save(ctx context.Context, s *Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, constants.BuildSessionKey(s.ID), data, ttl)
	pipe.Set(ctx, constants.BuildUserSessionKey(s.Username), s.ID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *redisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := r.client.Get(ctx, constants.BuildSessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	s, err := r.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}

	keys := []string{constants.BuildSessionKey(id)}
	if s != nil {
		// only drop the user index if it still points at this session
		current, _ := r.client.Get(ctx, constants.BuildUserSessionKey(s.Username)).Result()
		if current == id {
			keys = append(keys, constants.BuildUserSessionKey(s.Username))
		}
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisStore) IDForUser(ctx context.Context, username string) (string, error) {
	id, err := r.client.Get(ctx, constants.BuildUserSessionKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return id, nil
}
