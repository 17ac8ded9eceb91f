package booking

import "time"

// Role identifies the permission level of a registered user.
type Role string

const (
	// RoleAdmin grants hall management, booking resolution, and user administration.
	RoleAdmin Role = "ADMIN"
	// RoleUser grants self-service booking requests only.
	RoleUser Role = "USER"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Hall is a bookable physical space managed by parish staff.
type Hall struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Capacity int      `json:"capacity"`
	Features []string `json:"features"`
	PhotoURL string   `json:"photoUrl"`
}

// User is a registered account. The UID field mirrors ID for compatibility
// with callers that distinguish the two.
type User struct {
	ID           string `json:"id"`
	UID          string `json:"uid"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Status describes the lifecycle state of a booking request.
type Status string

const (
	// StatusPending marks a request awaiting an administrator decision.
	StatusPending Status = "Pending"
	// StatusApproved marks a granted booking.
	StatusApproved Status = "Approved"
	// StatusRejected marks a declined booking. Rejected bookings do not block slots.
	StatusRejected Status = "Rejected"
)

// Booking is a request, or admin-granted grant, to occupy a hall for a slot.
type Booking struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	HallID           string    `json:"hallId"`
	Date             string    `json:"date"`      // YYYY-MM-DD
	StartTime        string    `json:"startTime"` // HH:MM, 15-minute granularity
	Duration         int       `json:"duration"`  // whole hours
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	EventDescription string    `json:"eventDescription"`
	RejectionReason  string    `json:"rejectionReason,omitempty"`
}

// Slot returns the time span the booking occupies.
func (b Booking) Slot() Slot {
	return Slot{Date: b.Date, StartTime: b.StartTime, Duration: b.Duration}
}

// BroadcastAdmins is the sentinel notification target addressing every administrator.
const BroadcastAdmins = "all-admins"

// Notification is a record produced by booking lifecycle transitions. Delivery
// is a caller concern; the engine only appends these to the snapshot.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"` // a user id or BroadcastAdmins
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	BookingID string    `json:"bookingId,omitempty"`
}

// Settings is the singleton application configuration mutated by admin command.
type Settings struct {
	AppName            string `json:"appName"`
	AppLogo            string `json:"appLogo"`
	MaxBookingDuration int    `json:"maxBookingDuration"` // hours, 1-12
	BookingNoticeDays  int    `json:"bookingNoticeDays"`  // minimum lead time, >= 0
	BookingWindowDays  int    `json:"bookingWindowDays"`  // booking horizon, 1-365
	MaxPendingBookings int    `json:"maxPendingBookings"` // per-user pending cap, 1-10
}
