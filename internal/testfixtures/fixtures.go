package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/parish-booking/internal/booking"
	"github.com/example/parish-booking/internal/state"
)

var (
	userCounter    uint64
	hallCounter    uint64
	bookingCounter uint64
)

var referenceTime = time.Date(2025, time.May, 20, 10, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// UserOption configures a generated user fixture.
type UserOption func(*booking.User)

// NewUser returns a deterministic user record with optional overrides. The
// password hash is the plaintext marked by HashPassword below.
func NewUser(opts ...UserOption) booking.User {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	user := booking.User{
		ID:           id,
		UID:          id,
		Email:        fmt.Sprintf("%s@example.com", id),
		Name:         fmt.Sprintf("User %03d", idx),
		Role:         booking.RoleUser,
		PasswordHash: HashPassword("secret"),
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithUserID overrides the generated identifier, keeping UID in sync.
func WithUserID(id string) UserOption {
	return func(u *booking.User) {
		u.ID = id
		u.UID = id
	}
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(u *booking.User) { u.Email = email }
}

// WithUserRole overrides the generated role.
func WithUserRole(role booking.Role) UserOption {
	return func(u *booking.User) { u.Role = role }
}

// WithUserPassword stores the marked hash of the given plaintext.
func WithUserPassword(password string) UserOption {
	return func(u *booking.User) { u.PasswordHash = HashPassword(password) }
}

// HallOption configures a generated hall fixture.
type HallOption func(*booking.Hall)

// NewHall returns a deterministic hall record with optional overrides.
func NewHall(opts ...HallOption) booking.Hall {
	idx := atomic.AddUint64(&hallCounter, 1)
	hall := booking.Hall{
		ID:       fmt.Sprintf("hall-%03d", idx),
		Name:     fmt.Sprintf("Hall %03d", idx),
		Capacity: 80,
		Features: []string{"Projector"},
		PhotoURL: "https://example.com/hall.jpg",
	}
	for _, opt := range opts {
		opt(&hall)
	}
	return hall
}

// WithHallID overrides the generated hall identifier.
func WithHallID(id string) HallOption {
	return func(h *booking.Hall) { h.ID = id }
}

// BookingOption configures a generated booking fixture.
type BookingOption func(*booking.Booking)

// NewBooking returns a deterministic booking record with optional overrides.
// Bookings default to a pending two-hour slot twelve days past ReferenceTime.
func NewBooking(userID, hallID string, opts ...BookingOption) booking.Booking {
	idx := atomic.AddUint64(&bookingCounter, 1)
	b := booking.Booking{
		ID:               fmt.Sprintf("booking-%03d", idx),
		UserID:           userID,
		HallID:           hallID,
		Date:             referenceTime.AddDate(0, 0, 12).Format(booking.DateLayout),
		StartTime:        "09:00",
		Duration:         2,
		Status:           booking.StatusPending,
		CreatedAt:        referenceTime,
		EventDescription: fmt.Sprintf("Event %03d", idx),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// WithBookingSlot overrides the occupied slot.
func WithBookingSlot(date, startTime string, duration int) BookingOption {
	return func(b *booking.Booking) {
		b.Date = date
		b.StartTime = startTime
		b.Duration = duration
	}
}

// WithBookingStatus overrides the lifecycle status.
func WithBookingStatus(status booking.Status) BookingOption {
	return func(b *booking.Booking) { b.Status = status }
}

// PopulatedState returns a snapshot with one administrator, one regular user,
// and one hall, ready for command tests. The administrator is "user-admin"
// with password "admin-secret"; the regular user is "user-member" with
// password "member-secret".
func PopulatedState() state.AppState {
	s := state.DefaultState()
	s.Halls = []booking.Hall{NewHall(WithHallID("hall-001"))}
	s.Users = []booking.User{
		NewUser(WithUserID("user-admin"), WithUserEmail("admin@example.com"), WithUserRole(booking.RoleAdmin), WithUserPassword("admin-secret")),
		NewUser(WithUserID("user-member"), WithUserEmail("member@example.com"), WithUserPassword("member-secret")),
	}
	return s
}
