package application

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/example/parish-booking/internal/booking"
	"github.com/example/parish-booking/internal/state"
)

var testNow = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)

// newTestProcessor returns a processor with a counting id generator, a fixed
// clock, and fast fake password hashing.
func newTestProcessor() *Processor {
	counter := 0
	p := NewProcessor(func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	}, func() time.Time { return testNow })
	p.hashPassword = func(password string) (string, error) { return "hashed:" + password, nil }
	p.verifyPassword = func(hashed, password string) error {
		if hashed == "hashed:"+password {
			return nil
		}
		return ErrInvalidCredentials
	}
	return p
}

var (
	adminActor  = Actor{UserID: "user-admin", Role: booking.RoleAdmin}
	memberActor = Actor{UserID: "user-member", Role: booking.RoleUser}
)

// seededState returns an aggregate with one hall, one admin, and one member.
func seededState() state.AppState {
	s := state.DefaultState()
	s.Halls = []booking.Hall{{
		ID: "hall-1", Name: "Gran Salón San Pedro", Capacity: 150,
		Features: []string{"Proyector"}, PhotoURL: "https://example.com/hall-1.jpg",
	}}
	s = s.AddUser(booking.User{ID: "user-admin", UID: "user-admin", Email: "admin@example.com", Name: "Ana", Role: booking.RoleAdmin, PasswordHash: "hashed:secret-admin"})
	s = s.AddUser(booking.User{ID: "user-member", UID: "user-member", Email: "member@example.com", Name: "Beto", Role: booking.RoleUser, PasswordHash: "hashed:secret-member"})
	return s
}

func mustApply(t *testing.T, p *Processor, s state.AppState, cmd Command) (state.AppState, []booking.Notification) {
	t.Helper()
	next, emitted, err := p.Apply(context.Background(), s, cmd)
	if err != nil {
		t.Fatalf("Apply(%s) returned error: %v", cmd.Kind(), err)
	}
	return next, emitted
}

// assertRejected applies a command expected to fail and verifies the snapshot
// comes back untouched.
func assertRejected(t *testing.T, p *Processor, s state.AppState, cmd Command, sentinel error) {
	t.Helper()
	next, emitted, err := p.Apply(context.Background(), s, cmd)
	if sentinel != nil {
		if !errors.Is(err, sentinel) {
			t.Fatalf("Apply(%s) error = %v, want %v", cmd.Kind(), err, sentinel)
		}
	} else {
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Apply(%s) error = %v, want ValidationError", cmd.Kind(), err)
		}
	}
	if emitted != nil {
		t.Fatalf("rejected command emitted notifications: %v", emitted)
	}
	if !reflect.DeepEqual(next, s) {
		t.Fatalf("rejected %s modified the snapshot", cmd.Kind())
	}
}

func TestCreateHall(t *testing.T) {
	t.Run("requires administrator role", func(t *testing.T) {
		assertRejected(t, newTestProcessor(), seededState(), CreateHall{
			Actor: memberActor, Name: "Anexo", Capacity: 10,
			Features: []string{"Mesa"}, PhotoURL: "https://example.com/a.jpg",
		}, ErrUnauthorized)
	})

	t.Run("validates required attributes", func(t *testing.T) {
		p := newTestProcessor()
		_, _, err := p.Apply(context.Background(), seededState(), CreateHall{
			Actor: adminActor, Name: "  ", Capacity: 0, Features: []string{" "}, PhotoURL: "",
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"name", "capacity", "features", "photoUrl"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s validation error, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("appends the hall with a generated id", func(t *testing.T) {
		p := newTestProcessor()
		next, _ := mustApply(t, p, seededState(), CreateHall{
			Actor: adminActor, Name: " Anexo ", Capacity: 10,
			Features: []string{"Mesa", " "}, PhotoURL: "https://example.com/a.jpg",
		})

		hall, ok := next.HallByID("id-1")
		if !ok {
			t.Fatal("created hall not found")
		}
		if hall.Name != "Anexo" {
			t.Fatalf("name = %q, want trimmed %q", hall.Name, "Anexo")
		}
		if len(hall.Features) != 1 {
			t.Fatalf("blank features should be dropped, got %v", hall.Features)
		}
	})
}

func TestUpdateHall(t *testing.T) {
	t.Run("unknown hall", func(t *testing.T) {
		assertRejected(t, newTestProcessor(), seededState(), UpdateHall{
			Actor: adminActor, HallID: "missing", Name: "X", Capacity: 5,
			Features: []string{"F"}, PhotoURL: "https://example.com/x.jpg",
		}, ErrNotFound)
	})

	t.Run("replaces attributes in place", func(t *testing.T) {
		p := newTestProcessor()
		next, _ := mustApply(t, p, seededState(), UpdateHall{
			Actor: adminActor, HallID: "hall-1", Name: "Salón Renovado", Capacity: 200,
			Features: []string{"Proyector", "Escenario"}, PhotoURL: "https://example.com/new.jpg",
		})

		hall, _ := next.HallByID("hall-1")
		if hall.Name != "Salón Renovado" || hall.Capacity != 200 {
			t.Fatalf("hall not updated: %+v", hall)
		}
		if len(next.Halls) != 1 {
			t.Fatalf("halls = %d, want 1", len(next.Halls))
		}
	})
}

func TestDeleteHall(t *testing.T) {
	p := newTestProcessor()
	s := seededState()
	s = s.AddBooking(booking.Booking{ID: "b-1", UserID: "user-member", HallID: "hall-1", Date: "2025-06-01", StartTime: "09:00", Duration: 2, Status: booking.StatusPending, CreatedAt: testNow})
	s = s.AddHall(booking.Hall{ID: "hall-2", Name: "Otro", Capacity: 20, Features: []string{"Mesa"}, PhotoURL: "https://example.com/o.jpg"})
	s = s.AddBooking(booking.Booking{ID: "b-2", UserID: "user-member", HallID: "hall-2", Date: "2025-06-01", StartTime: "09:00", Duration: 2, Status: booking.StatusApproved, CreatedAt: testNow})

	next, _ := mustApply(t, p, s, DeleteHall{Actor: adminActor, HallID: "hall-1"})

	if _, ok := next.HallByID("hall-1"); ok {
		t.Fatal("hall should be removed")
	}
	if _, ok := next.BookingByID("b-1"); ok {
		t.Fatal("bookings for the hall should cascade")
	}
	if _, ok := next.BookingByID("b-2"); !ok {
		t.Fatal("bookings for other halls should survive")
	}
}

func TestMarkNotificationRead(t *testing.T) {
	p := newTestProcessor()
	s := seededState().AddNotification(booking.Notification{ID: "n-1", UserID: "user-member", Message: "hello", CreatedAt: testNow})

	next, _ := mustApply(t, p, s, MarkNotificationRead{Actor: memberActor, NotificationID: "n-1"})

	note, _ := next.NotificationByID("n-1")
	if !note.IsRead {
		t.Fatal("notification should be marked read")
	}

	assertRejected(t, p, s, MarkNotificationRead{Actor: memberActor, NotificationID: "missing"}, ErrNotFound)
}

func TestUpdateSettings(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	strPtr := func(v string) *string { return &v }

	t.Run("requires administrator role", func(t *testing.T) {
		assertRejected(t, newTestProcessor(), seededState(), UpdateSettings{Actor: memberActor, MaxPendingBookings: intPtr(5)}, ErrUnauthorized)
	})

	t.Run("merges only provided fields", func(t *testing.T) {
		p := newTestProcessor()
		next, _ := mustApply(t, p, seededState(), UpdateSettings{
			Actor:              adminActor,
			AppName:            strPtr("Salones San Pedro"),
			MaxPendingBookings: intPtr(5),
		})

		if next.Settings.AppName != "Salones San Pedro" {
			t.Fatalf("appName = %q", next.Settings.AppName)
		}
		if next.Settings.MaxPendingBookings != 5 {
			t.Fatalf("maxPendingBookings = %d, want 5", next.Settings.MaxPendingBookings)
		}
		if next.Settings.BookingWindowDays != 90 {
			t.Fatal("untouched fields should keep their values")
		}
	})

	t.Run("rejects out-of-bound values", func(t *testing.T) {
		p := newTestProcessor()
		for field, cmd := range map[string]UpdateSettings{
			"maxBookingDuration": {Actor: adminActor, MaxBookingDuration: intPtr(13)},
			"bookingNoticeDays":  {Actor: adminActor, BookingNoticeDays: intPtr(-1)},
			"bookingWindowDays":  {Actor: adminActor, BookingWindowDays: intPtr(366)},
			"maxPendingBookings": {Actor: adminActor, MaxPendingBookings: intPtr(0)},
		} {
			_, _, err := p.Apply(context.Background(), seededState(), cmd)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError for %s, got %v", field, err)
			}
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s in field errors, got %v", field, vErr.FieldErrors)
			}
		}
	})
}

func TestErrorKind(t *testing.T) {
	for err, want := range map[error]string{
		ErrUnauthorized:       "unauthorized",
		ErrNotFound:           "not_found",
		ErrQuotaExceeded:      "quota_exceeded",
		ErrSlotConflict:       "slot_conflict",
		ErrDuplicateEmail:     "duplicate_email",
		ErrInvalidCredentials: "invalid_credentials",
		ErrSelfRoleChange:     "self_role_change",
		ErrSelfDeletion:       "self_deletion",
	} {
		if got := ErrorKind(err); got != want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", err, got, want)
		}
	}

	vErr := &ValidationError{}
	vErr.add("name", "name is required")
	if got := ErrorKind(vErr); got != "validation" {
		t.Fatalf("ErrorKind(ValidationError) = %q, want validation", got)
	}
	if got := ErrorKind(errors.New("boom")); got != "unexpected" {
		t.Fatalf("ErrorKind(unknown) = %q, want unexpected", got)
	}
}
