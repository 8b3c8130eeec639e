package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/constants"
)

// badgerStore keeps wizards in an embedded Badger database, for single
// instance deployments without Redis.
type badgerStore struct {
	db  *badger.DB
	ttl time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// OpenBadgerStore opens (or creates) the database at path. An empty path
// keeps everything in memory.
func OpenBadgerStore(path string, ttl time.Duration) (Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &badgerStore{db: db, ttl: ttl, locks: make(map[string]*sync.Mutex)}, nil
}

func (b *badgerStore) Get(_ context.Context, id string) (*State, error) {
	var s State
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(constants.BuildWizardDraftKey(id)))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &s)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrWizardNotFound
		}
		return nil, fmt.Errorf("get wizard: %w", err)
	}
	return &s, nil
}

func (b *badgerStore) Save(_ context.Context, s *State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode wizard: %w", err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(constants.BuildWizardDraftKey(s.ID)), data)
		if b.ttl > 0 {
			entry = entry.WithTTL(b.ttl)
		}
		return txn.SetEntry(entry)
	})
}

func (b *badgerStore) Delete(_ context.Context, id string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(constants.BuildWizardDraftKey(id)))
	})
}

func (b *badgerStore) Lock(ctx context.Context, id string) (func(), error) {
	b.mu.Lock()
	m, ok := b.locks[id]
	if !ok {
		m = &sync.Mutex{}
		b.locks[id] = m
	}
	b.mu.Unlock()

	for attempt := 0; attempt < lockAttempts; attempt++ {
		if m.TryLock() {
			return m.Unlock, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockBackoff):
		}
	}
	return nil, ErrWizardBusy
}

func (b *badgerStore) Close() error {
	return b.db.Close()
}
