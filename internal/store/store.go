package store

import (
	"context"
	"errors"

	"github.com/fantalega/market-backend/internal/market"
)

var ErrNotFound = errors.New("session not found")

// Store persists full session snapshots. The engine runs load-mutate-save
// under the per-session actor, so implementations need no locking beyond
// their own connection safety.
type Store interface {
	Save(ctx context.Context, s *market.Session) error
	Load(ctx context.Context, id string) (*market.Session, error)
}
