package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/fantalega/market-backend/internal/market"
	"github.com/fantalega/market-backend/internal/store"
)

// Store keeps serialized session snapshots in memory. Used in tests and
// single-process development; it round-trips through JSON so it exercises
// the same (de)serialization path as the database store.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Save(ctx context.Context, sess *market.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[sess.ID] = raw
	s.mu.Unlock()
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (*market.Session, error) {
	s.mu.RLock()
	raw, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}
	var sess market.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}
