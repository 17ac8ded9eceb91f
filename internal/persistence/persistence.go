// Package persistence defines the bridge the engine persists through. The
// aggregate is stored as one document; implementations never see partial
// state.
package persistence

import (
	"context"
	"errors"

	"github.com/example/parish-booking/internal/state"
)

var (
	// ErrNotFound is returned by Load when no snapshot has been stored yet.
	ErrNotFound = errors.New("persistence: not found")
)

// SnapshotStore durably stores the serialized aggregate and restores it at
// boot. Save replaces the previous snapshot atomically.
type SnapshotStore interface {
	Load(ctx context.Context) (state.AppState, error)
	Save(ctx context.Context, snapshot state.AppState) error
}
