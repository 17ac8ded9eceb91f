package application

import "github.com/example/parish-booking/internal/booking"

// Kind tags a command for dispatch, logging, and metrics.
type Kind string

const (
	KindCreateHall           Kind = "create_hall"
	KindUpdateHall           Kind = "update_hall"
	KindDeleteHall           Kind = "delete_hall"
	KindCreateBooking        Kind = "create_booking"
	KindAdminCreateBooking   Kind = "admin_create_booking"
	KindUpdateBookingStatus  Kind = "update_booking_status"
	KindDeleteBooking        Kind = "delete_booking"
	KindMarkNotificationRead Kind = "mark_notification_read"
	KindUpdateSettings       Kind = "update_settings"
	KindRegisterUser         Kind = "register_user"
	KindLogin                Kind = "login"
	KindLogout               Kind = "logout"
	KindUpdateProfile        Kind = "update_profile"
	KindChangePassword       Kind = "change_password"
	KindAdminUpdateUserRole  Kind = "admin_update_user_role"
	KindAdminDeleteUser      Kind = "admin_delete_user"
)

// Actor identifies the already-authenticated user issuing a command. Identity
// verification happens upstream; the processor only checks the role.
type Actor struct {
	UserID string
	Role   booking.Role
}

// IsAdmin reports whether the actor carries the administrator role.
func (a Actor) IsAdmin() bool {
	return a.Role == booking.RoleAdmin
}

// Command is the tagged input applied by the processor.
type Command interface {
	Kind() Kind
}

// CreateHall adds a hall to the catalog. Admin only.
type CreateHall struct {
	Actor    Actor
	Name     string
	Capacity int
	Features []string
	PhotoURL string
}

func (CreateHall) Kind() Kind { return KindCreateHall }

// UpdateHall replaces the attributes of an existing hall. Admin only.
type UpdateHall struct {
	Actor    Actor
	HallID   string
	Name     string
	Capacity int
	Features []string
	PhotoURL string
}

func (UpdateHall) Kind() Kind { return KindUpdateHall }

// DeleteHall removes a hall and cascades to its bookings. Admin only.
type DeleteHall struct {
	Actor  Actor
	HallID string
}

func (DeleteHall) Kind() Kind { return KindDeleteHall }

// CreateBooking requests a slot on behalf of the acting user. The request
// enters Pending and notifies all administrators.
type CreateBooking struct {
	Actor            Actor
	HallID           string
	Date             string
	StartTime        string
	Duration         int
	EventDescription string
}

func (CreateBooking) Kind() Kind { return KindCreateBooking }

// AdminCreateBooking books a slot for any user, immediately Approved and
// exempt from the pending quota. Admin only.
type AdminCreateBooking struct {
	Actor            Actor
	UserID           string
	HallID           string
	Date             string
	StartTime        string
	Duration         int
	EventDescription string
}

func (AdminCreateBooking) Kind() Kind { return KindAdminCreateBooking }

// UpdateBookingStatus resolves a Pending booking to Approved or Rejected.
// The rejection reason is optional. Admin only.
type UpdateBookingStatus struct {
	Actor           Actor
	BookingID       string
	Status          booking.Status
	RejectionReason string
}

func (UpdateBookingStatus) Kind() Kind { return KindUpdateBookingStatus }

// DeleteBooking removes a booking regardless of status. Admin only.
type DeleteBooking struct {
	Actor     Actor
	BookingID string
}

func (DeleteBooking) Kind() Kind { return KindDeleteBooking }

// MarkNotificationRead flips the read flag of one notification. Inbox
// ownership is enforced by the caller, not re-checked here.
type MarkNotificationRead struct {
	Actor          Actor
	NotificationID string
}

func (MarkNotificationRead) Kind() Kind { return KindMarkNotificationRead }

// UpdateSettings merges the provided fields over the current settings. Nil
// fields stay untouched. Admin only.
type UpdateSettings struct {
	Actor              Actor
	AppName            *string
	AppLogo            *string
	MaxBookingDuration *int
	BookingNoticeDays  *int
	BookingWindowDays  *int
	MaxPendingBookings *int
}

func (UpdateSettings) Kind() Kind { return KindUpdateSettings }

// RegisterUser self-registers an account. The first user ever becomes ADMIN.
type RegisterUser struct {
	Email    string
	Name     string
	Password string
}

func (RegisterUser) Kind() Kind { return KindRegisterUser }

// Login verifies credentials and points the persisted session at the user.
type Login struct {
	Email    string
	Password string
}

func (Login) Kind() Kind { return KindLogin }

// Logout clears the persisted session pointer. Always succeeds.
type Logout struct{}

func (Logout) Kind() Kind { return KindLogout }

// UpdateProfile changes a user's display name. Users may update themselves;
// administrators may update anyone.
type UpdateProfile struct {
	Actor  Actor
	UserID string
	Name   string
}

func (UpdateProfile) Kind() Kind { return KindUpdateProfile }

// ChangePassword replaces a user's stored secret after verifying the current one.
type ChangePassword struct {
	Actor           Actor
	UserID          string
	CurrentPassword string
	NewPassword     string
}

func (ChangePassword) Kind() Kind { return KindChangePassword }

// AdminUpdateUserRole changes another user's role. Admin only; never the
// acting admin's own account.
type AdminUpdateUserRole struct {
	Actor  Actor
	UserID string
	Role   booking.Role
}

func (AdminUpdateUserRole) Kind() Kind { return KindAdminUpdateUserRole }

// AdminDeleteUser removes another user and cascades to their bookings and
// notifications. Admin only; never the acting admin's own account.
type AdminDeleteUser struct {
	Actor  Actor
	UserID string
}

func (AdminDeleteUser) Kind() Kind { return KindAdminDeleteUser }
