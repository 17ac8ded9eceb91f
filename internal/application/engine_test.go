package application

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/example/parish-booking/internal/persistence"
	"github.com/example/parish-booking/internal/state"
)

type snapshotStoreStub struct {
	stored    *state.AppState
	loadErr   error
	saveErr   error
	saveCalls int
}

func (s *snapshotStoreStub) Load(ctx context.Context) (state.AppState, error) {
	if s.loadErr != nil {
		return state.AppState{}, s.loadErr
	}
	if s.stored == nil {
		return state.AppState{}, persistence.ErrNotFound
	}
	return *s.stored, nil
}

func (s *snapshotStoreStub) Save(ctx context.Context, snapshot state.AppState) error {
	s.saveCalls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.stored = &snapshot
	return nil
}

func TestEngineLoad(t *testing.T) {
	t.Run("initializes and persists the default state", func(t *testing.T) {
		store := &snapshotStoreStub{}
		engine := NewEngine(newTestProcessor(), store, nil, nil)

		if err := engine.Load(context.Background()); err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if store.saveCalls != 1 {
			t.Fatalf("initial snapshot should be persisted, saves = %d", store.saveCalls)
		}
		if !reflect.DeepEqual(engine.Snapshot(), state.DefaultState()) {
			t.Fatal("engine should start from the default state")
		}
	})

	t.Run("restores an existing snapshot", func(t *testing.T) {
		seeded := seededState()
		store := &snapshotStoreStub{stored: &seeded}
		engine := NewEngine(newTestProcessor(), store, nil, nil)

		if err := engine.Load(context.Background()); err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if _, ok := engine.Snapshot().UserByID("user-member"); !ok {
			t.Fatal("restored snapshot should contain seeded users")
		}
	})

	t.Run("propagates load failures", func(t *testing.T) {
		store := &snapshotStoreStub{loadErr: errors.New("disk gone")}
		engine := NewEngine(newTestProcessor(), store, nil, nil)

		if err := engine.Load(context.Background()); err == nil {
			t.Fatal("expected load error")
		}
	})
}

func TestEngineApply(t *testing.T) {
	t.Run("persists before committing", func(t *testing.T) {
		seeded := seededState()
		store := &snapshotStoreStub{stored: &seeded}
		engine := NewEngine(newTestProcessor(), store, nil, NewMetrics(nil))
		if err := engine.Load(context.Background()); err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		next, emitted, err := engine.Apply(context.Background(), memberBooking("hall-1", "2025-06-01", "09:00", 2))
		if err != nil {
			t.Fatalf("Apply returned error: %v", err)
		}
		if len(emitted) != 1 {
			t.Fatalf("emitted = %d notifications, want 1", len(emitted))
		}
		if store.saveCalls != 1 {
			t.Fatalf("saves = %d, want 1", store.saveCalls)
		}
		if !reflect.DeepEqual(engine.Snapshot(), next) {
			t.Fatal("committed snapshot should match the returned one")
		}
	})

	t.Run("rejected commands are not persisted", func(t *testing.T) {
		seeded := seededState()
		store := &snapshotStoreStub{stored: &seeded}
		engine := NewEngine(newTestProcessor(), store, nil, nil)
		if err := engine.Load(context.Background()); err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		_, _, err := engine.Apply(context.Background(), DeleteHall{Actor: memberActor, HallID: "hall-1"})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
		if store.saveCalls != 0 {
			t.Fatalf("rejected command reached the store, saves = %d", store.saveCalls)
		}
	})

	t.Run("save failure discards the command", func(t *testing.T) {
		seeded := seededState()
		store := &snapshotStoreStub{stored: &seeded}
		engine := NewEngine(newTestProcessor(), store, nil, nil)
		if err := engine.Load(context.Background()); err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		store.saveErr = errors.New("disk full")
		before := engine.Snapshot()
		_, _, err := engine.Apply(context.Background(), memberBooking("hall-1", "2025-06-01", "09:00", 2))
		if err == nil {
			t.Fatal("expected persistence error")
		}
		if !reflect.DeepEqual(engine.Snapshot(), before) {
			t.Fatal("failed persistence must not commit the snapshot")
		}
	})
}
