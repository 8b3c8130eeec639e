package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
)

// Manager owns the lifecycle of back-office sessions.
type Manager interface {
	Start(ctx context.Context, who Identity, perms permission.Map) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	End(ctx context.Context, id string) error
	// RefreshPermissions swaps the permission map of a live session, if any.
	RefreshPermissions(ctx context.Context, username string, perms permission.Map) error
}

type manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

func NewManager(store Store, ttl time.Duration) Manager {
	return &manager{store: store, ttl: ttl, now: time.Now}
}

func (m *manager) Start(ctx context.Context, who Identity, perms permission.Map) (*Session, error) {
	now := m.now()
	s := &Session{
		ID:          uuid.NewString(),
		UserID:      who.UserID,
		Username:    who.Username,
		Email:       who.Email,
		FullName:    who.FullName,
		Permissions: perms,
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *manager) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		_ = m.store.Delete(ctx, id)
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *manager) End(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

func (m *manager) RefreshPermissions(ctx context.Context, username string, perms permission.Map) error {
	id, err := m.store.IDForUser(ctx, username)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}
	s, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	remaining := s.ExpiresAt.Sub(m.now())
	if remaining <= 0 {
		return nil
	}
	s.Permissions = perms
	return m.store.Save(ctx, s, remaining)
}
