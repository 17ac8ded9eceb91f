package state

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/example/parish-booking/internal/booking"
)

func populatedState() AppState {
	created := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	s := DefaultState()
	s = s.AddUser(booking.User{ID: "user-1", UID: "user-1", Email: "ana@example.com", Name: "Ana", Role: booking.RoleAdmin, PasswordHash: "hash-1"})
	s = s.AddUser(booking.User{ID: "user-2", UID: "user-2", Email: "beto@example.com", Name: "Beto", Role: booking.RoleUser, PasswordHash: "hash-2"})
	s = s.AddBooking(booking.Booking{
		ID: "booking-1", UserID: "user-2", HallID: "hall-1",
		Date: "2025-06-01", StartTime: "09:00", Duration: 2,
		Status: booking.StatusPending, CreatedAt: created, EventDescription: "Coro",
	})
	s = s.AddNotification(booking.Notification{
		ID: "notif-1", UserID: booking.BroadcastAdmins, Message: "request", CreatedAt: created, BookingID: "booking-1",
	})
	s = s.WithCurrentUser("user-2")
	return s
}

func TestMutationsAreCopyOnWrite(t *testing.T) {
	before := populatedState()
	snapshot, err := Encode(before)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	_ = before.AddHall(booking.Hall{ID: "hall-9", Name: "Anexo", Capacity: 10, Features: []string{"Mesa"}})
	_ = before.RemoveHall("hall-1")
	_ = before.ReplaceUser(booking.User{ID: "user-2", Name: "Cambiado"})
	_ = before.RemoveBookingsByHall("hall-1")
	_ = before.RemoveBookingsAndNotificationsByUser("user-2")
	_ = before.WithoutCurrentUser()

	after, err := Encode(before)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if !bytes.Equal(snapshot, after) {
		t.Fatal("mutation helpers modified the original state")
	}
}

func TestHallCascade(t *testing.T) {
	s := populatedState()
	s = s.AddBooking(booking.Booking{ID: "booking-2", UserID: "user-2", HallID: "hall-2", Date: "2025-06-02", StartTime: "10:00", Duration: 1, Status: booking.StatusApproved})

	next := s.RemoveHall("hall-1").RemoveBookingsByHall("hall-1")

	if _, ok := next.HallByID("hall-1"); ok {
		t.Fatal("hall-1 should be removed")
	}
	if _, ok := next.BookingByID("booking-1"); ok {
		t.Fatal("booking referencing hall-1 should be removed")
	}
	if _, ok := next.BookingByID("booking-2"); !ok {
		t.Fatal("booking for another hall should survive")
	}
}

func TestUserCascade(t *testing.T) {
	s := populatedState()
	s = s.AddNotification(booking.Notification{ID: "notif-2", UserID: "user-2", Message: "approved"})
	s = s.AddNotification(booking.Notification{ID: "notif-3", UserID: "user-1", Message: "other"})

	next := s.RemoveUser("user-2").RemoveBookingsAndNotificationsByUser("user-2")

	if _, ok := next.UserByID("user-2"); ok {
		t.Fatal("user-2 should be removed")
	}
	if _, ok := next.BookingByID("booking-1"); ok {
		t.Fatal("user-2 bookings should be removed")
	}
	if _, ok := next.NotificationByID("notif-2"); ok {
		t.Fatal("user-2 notifications should be removed")
	}
	if _, ok := next.NotificationByID("notif-3"); !ok {
		t.Fatal("other users' notifications should survive")
	}
}

func TestPendingCountByUser(t *testing.T) {
	s := populatedState()
	s = s.AddBooking(booking.Booking{ID: "booking-2", UserID: "user-2", HallID: "hall-2", Date: "2025-06-02", StartTime: "10:00", Duration: 1, Status: booking.StatusApproved})

	if got := s.PendingCountByUser("user-2"); got != 1 {
		t.Fatalf("PendingCountByUser = %d, want 1", got)
	}
	if got := s.PendingCountByUser("user-1"); got != 0 {
		t.Fatalf("PendingCountByUser for admin = %d, want 0", got)
	}
}

func TestRoundTrip(t *testing.T) {
	original := populatedState()

	first, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	decoded, err := Decode(first)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Fatal("decoded state differs from original")
	}

	second, err := Encode(decoded)
	if err != nil {
		t.Fatalf("re-Encode returned error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("re-encoded snapshot differs from first encoding")
	}
}

func TestDecodeDefaultsAbsentFields(t *testing.T) {
	decoded, err := Decode([]byte(`{"settings":{"appName":"Test"}}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	if decoded.Users == nil || len(decoded.Users) != 0 {
		t.Fatalf("absent users should decode to empty slice, got %#v", decoded.Users)
	}
	if decoded.Halls == nil || decoded.Bookings == nil || decoded.Notifications == nil {
		t.Fatal("absent collections should decode to empty slices")
	}
	if decoded.CurrentUserID != nil {
		t.Fatalf("absent currentUserId should decode to nil, got %v", *decoded.CurrentUserID)
	}
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()

	if len(s.Halls) == 0 {
		t.Fatal("default state should seed the hall catalog")
	}
	if s.Settings.MaxPendingBookings != 3 || s.Settings.BookingWindowDays != 90 {
		t.Fatalf("unexpected default settings: %+v", s.Settings)
	}
	if len(s.Users) != 0 || s.CurrentUserID != nil {
		t.Fatal("default state should have no users or session")
	}
}
