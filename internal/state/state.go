// Package state holds the authoritative aggregate for the booking engine.
// Every mutation helper is copy-on-write: it returns a new AppState and never
// touches the receiver, so prior snapshots stay valid for rollback and audit.
package state

import (
	"github.com/example/parish-booking/internal/booking"
)

// AppState is the aggregate root serialized whole by the persistence bridge.
// CurrentUserID is the minimal persisted session pointer; the full acting
// identity travels with each command instead of living in the aggregate.
type AppState struct {
	Halls         []booking.Hall         `json:"halls"`
	Bookings      []booking.Booking      `json:"bookings"`
	Notifications []booking.Notification `json:"notifications"`
	Settings      booking.Settings       `json:"settings"`
	Users         []booking.User         `json:"users"`
	CurrentUserID *string                `json:"currentUserId"`
}

// DefaultSettings returns the documented settings defaults.
func DefaultSettings() booking.Settings {
	return booking.Settings{
		AppName:            "Reserva de Salones Parroquiales",
		AppLogo:            "Church",
		MaxBookingDuration: 6,
		BookingNoticeDays:  1,
		BookingWindowDays:  90,
		MaxPendingBookings: 3,
	}
}

// DefaultState returns the first-boot aggregate: default settings and the
// seeded hall catalog, with no users or bookings.
func DefaultState() AppState {
	return AppState{
		Halls: []booking.Hall{
			{
				ID:       "hall-1",
				Name:     "Gran Salón San Pedro",
				Capacity: 150,
				Features: []string{"Proyector", "Sistema de Sonido", "Escenario", "Acceso a Cocina"},
				PhotoURL: "https://images.unsplash.com/photo-1759477274116-e3cb02d2b9d8",
			},
			{
				ID:       "hall-2",
				Name:     "Sala de Reuniones Santa María",
				Capacity: 25,
				Features: []string{"Pizarra Blanca", "Cafetera"},
				PhotoURL: "https://images.unsplash.com/photo-1579488081757-b212dbd6ee72",
			},
			{
				ID:       "hall-3",
				Name:     "Sala de Conferencias San José",
				Capacity: 50,
				Features: []string{"Proyector", "Teléfono de Conferencia", "Pizarra Blanca"},
				PhotoURL: "https://images.unsplash.com/photo-1571624436279-b272aff752b5",
			},
			{
				ID:       "hall-4",
				Name:     "Centro Juvenil San Francisco",
				Capacity: 80,
				Features: []string{"Escenario", "Juegos", "Asientos Informales"},
				PhotoURL: "https://images.unsplash.com/photo-1600034513225-f1df31c23d9d",
			},
		},
		Bookings:      []booking.Booking{},
		Notifications: []booking.Notification{},
		Settings:      DefaultSettings(),
		Users:         []booking.User{},
	}
}

// HallByID looks up a hall.
func (s AppState) HallByID(id string) (booking.Hall, bool) {
	for _, h := range s.Halls {
		if h.ID == id {
			return h, true
		}
	}
	return booking.Hall{}, false
}

// BookingByID looks up a booking.
func (s AppState) BookingByID(id string) (booking.Booking, bool) {
	for _, b := range s.Bookings {
		if b.ID == id {
			return b, true
		}
	}
	return booking.Booking{}, false
}

// NotificationByID looks up a notification.
func (s AppState) NotificationByID(id string) (booking.Notification, bool) {
	for _, n := range s.Notifications {
		if n.ID == id {
			return n, true
		}
	}
	return booking.Notification{}, false
}

// UserByID looks up a user.
func (s AppState) UserByID(id string) (booking.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return booking.User{}, false
}

// UserByEmail looks up a user by stored email. Emails are stored normalized,
// so an exact match here is a case-insensitive match on the original input.
func (s AppState) UserByEmail(email string) (booking.User, bool) {
	for _, u := range s.Users {
		if u.Email == email {
			return u, true
		}
	}
	return booking.User{}, false
}

// PendingCountByUser counts the user's unresolved booking requests.
func (s AppState) PendingCountByUser(userID string) int {
	count := 0
	for _, b := range s.Bookings {
		if b.UserID == userID && b.Status == booking.StatusPending {
			count++
		}
	}
	return count
}

// AddHall returns a new state with the hall appended.
func (s AppState) AddHall(h booking.Hall) AppState {
	s.Halls = appended(s.Halls, h)
	return s
}

// ReplaceHall returns a new state with the matching hall replaced. Absent
// ids leave the state unchanged; existence is the caller's check.
func (s AppState) ReplaceHall(h booking.Hall) AppState {
	s.Halls = replaced(s.Halls, h, func(x booking.Hall) string { return x.ID })
	return s
}

// RemoveHall returns a new state without the hall. Dependent bookings are
// removed via RemoveBookingsByHall.
func (s AppState) RemoveHall(id string) AppState {
	s.Halls = removed(s.Halls, func(x booking.Hall) bool { return x.ID == id })
	return s
}

// AddBooking returns a new state with the booking appended.
func (s AppState) AddBooking(b booking.Booking) AppState {
	s.Bookings = appended(s.Bookings, b)
	return s
}

// ReplaceBooking returns a new state with the matching booking replaced.
func (s AppState) ReplaceBooking(b booking.Booking) AppState {
	s.Bookings = replaced(s.Bookings, b, func(x booking.Booking) string { return x.ID })
	return s
}

// RemoveBooking returns a new state without the booking.
func (s AppState) RemoveBooking(id string) AppState {
	s.Bookings = removed(s.Bookings, func(x booking.Booking) bool { return x.ID == id })
	return s
}

// RemoveBookingsByHall drops every booking referencing the hall.
func (s AppState) RemoveBookingsByHall(hallID string) AppState {
	s.Bookings = removed(s.Bookings, func(x booking.Booking) bool { return x.HallID == hallID })
	return s
}

// AddNotification returns a new state with the notification appended.
func (s AppState) AddNotification(n booking.Notification) AppState {
	s.Notifications = appended(s.Notifications, n)
	return s
}

// ReplaceNotification returns a new state with the matching notification replaced.
func (s AppState) ReplaceNotification(n booking.Notification) AppState {
	s.Notifications = replaced(s.Notifications, n, func(x booking.Notification) string { return x.ID })
	return s
}

// AddUser returns a new state with the user appended.
func (s AppState) AddUser(u booking.User) AppState {
	s.Users = appended(s.Users, u)
	return s
}

// ReplaceUser returns a new state with the matching user replaced.
func (s AppState) ReplaceUser(u booking.User) AppState {
	s.Users = replaced(s.Users, u, func(x booking.User) string { return x.ID })
	return s
}

// RemoveUser returns a new state without the user. Dependent records are
// removed via RemoveBookingsAndNotificationsByUser.
func (s AppState) RemoveUser(id string) AppState {
	s.Users = removed(s.Users, func(x booking.User) bool { return x.ID == id })
	return s
}

// RemoveBookingsAndNotificationsByUser drops every booking and notification
// referencing the user.
func (s AppState) RemoveBookingsAndNotificationsByUser(userID string) AppState {
	s.Bookings = removed(s.Bookings, func(x booking.Booking) bool { return x.UserID == userID })
	s.Notifications = removed(s.Notifications, func(x booking.Notification) bool { return x.UserID == userID })
	return s
}

// WithSettings returns a new state carrying the provided settings.
func (s AppState) WithSettings(settings booking.Settings) AppState {
	s.Settings = settings
	return s
}

// WithCurrentUser returns a new state pointing the session at the user id.
func (s AppState) WithCurrentUser(userID string) AppState {
	s.CurrentUserID = &userID
	return s
}

// WithoutCurrentUser returns a new state with no session pointer.
func (s AppState) WithoutCurrentUser() AppState {
	s.CurrentUserID = nil
	return s
}

func appended[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

func replaced[T any](items []T, item T, id func(T) string) []T {
	target := id(item)
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		if id(out[i]) == target {
			out[i] = item
		}
	}
	return out
}

func removed[T any](items []T, drop func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if drop(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}
