package application

import "errors"

var (
	// ErrUnauthorized is returned when the acting user lacks the required role.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrNotFound is returned when a referenced hall, booking, notification, or user does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrQuotaExceeded is returned when a user already holds the maximum number of pending bookings.
	ErrQuotaExceeded = errors.New("application: pending booking quota exceeded")
	// ErrSlotConflict is returned when a requested span overlaps an existing non-rejected booking.
	ErrSlotConflict = errors.New("application: slot conflict")
	// ErrDuplicateEmail is returned when registering an email that is already taken.
	ErrDuplicateEmail = errors.New("application: email already registered")
	// ErrInvalidCredentials is returned when email and password do not match a user.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrSelfRoleChange is returned when an administrator tries to change their own role.
	ErrSelfRoleChange = errors.New("application: cannot change own role")
	// ErrSelfDeletion is returned when an administrator tries to delete their own account.
	ErrSelfDeletion = errors.New("application: cannot delete own account")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
