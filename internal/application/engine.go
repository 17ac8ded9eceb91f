package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/example/parish-booking/internal/booking"
	"github.com/example/parish-booking/internal/persistence"
	"github.com/example/parish-booking/internal/state"
)

// Engine hosts the processor as the single authoritative state mutator. It
// serializes command application under a mutex, persists each accepted
// snapshot before committing it, and hands out the current snapshot to
// readers. The processor itself performs no locking.
type Engine struct {
	mu        sync.Mutex
	processor *Processor
	store     persistence.SnapshotStore
	current   state.AppState
	logger    *slog.Logger
	metrics   *Metrics
}

// NewEngine wires the engine. Store and metrics may be nil: a nil store keeps
// state purely in memory, a nil metrics recorder disables instrumentation.
func NewEngine(processor *Processor, store persistence.SnapshotStore, logger *slog.Logger, metrics *Metrics) *Engine {
	return &Engine{
		processor: processor,
		store:     store,
		current:   state.DefaultState(),
		logger:    defaultLogger(logger),
		metrics:   metrics,
	}
}

// Load restores the aggregate from the snapshot store. A store with no
// snapshot yet yields the default first-boot state, which is persisted so the
// next load goes through the same path.
func (e *Engine) Load(ctx context.Context) error {
	if e == nil {
		return fmt.Errorf("Engine is nil")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store == nil {
		e.current = state.DefaultState()
		return nil
	}

	loaded, err := e.store.Load(ctx)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			e.current = state.DefaultState()
			if err := e.store.Save(ctx, e.current); err != nil {
				return fmt.Errorf("persist initial snapshot: %w", err)
			}
			e.logger.InfoContext(ctx, "initialized default snapshot")
			return nil
		}
		return fmt.Errorf("load snapshot: %w", err)
	}

	e.current = loaded
	e.logger.InfoContext(ctx, "snapshot restored",
		"halls", len(loaded.Halls),
		"bookings", len(loaded.Bookings),
		"users", len(loaded.Users),
	)
	return nil
}

// Snapshot returns the current aggregate. Snapshots are immutable values;
// readers may hold them across subsequent commands.
func (e *Engine) Snapshot() state.AppState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Apply runs one command through the processor, durably stores the accepted
// snapshot, and commits it. A rejected command, or one whose snapshot cannot
// be persisted, leaves the committed state untouched.
func (e *Engine) Apply(ctx context.Context, cmd Command) (state.AppState, []booking.Notification, error) {
	if e == nil {
		return state.AppState{}, nil, fmt.Errorf("Engine is nil")
	}
	if cmd == nil {
		return e.Snapshot(), nil, fmt.Errorf("command is nil")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	next, emitted, err := e.processor.Apply(ctx, e.current, cmd)
	if err != nil {
		e.metrics.observe(cmd.Kind(), err, time.Since(start))
		return e.current, nil, err
	}

	if e.store != nil {
		if saveErr := e.store.Save(ctx, next); saveErr != nil {
			err = fmt.Errorf("persist snapshot: %w", saveErr)
			e.logger.ErrorContext(ctx, "snapshot persistence failed, command discarded",
				"command", string(cmd.Kind()), "error", saveErr)
			e.metrics.observe(cmd.Kind(), err, time.Since(start))
			return e.current, nil, err
		}
	}

	e.current = next
	e.metrics.observe(cmd.Kind(), nil, time.Since(start))
	return next, emitted, nil
}
