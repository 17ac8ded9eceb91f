package application

import (
	"strings"

	"github.com/example/parish-booking/internal/state"
)

const (
	maxBookingDurationCap = 12
	bookingWindowDaysCap  = 365
	maxPendingBookingsCap = 10
)

func (p *Processor) applyUpdateSettings(current state.AppState, cmd UpdateSettings) (state.AppState, error) {
	if !cmd.Actor.IsAdmin() {
		return current, ErrUnauthorized
	}

	merged := current.Settings
	vErr := &ValidationError{}

	if cmd.AppName != nil {
		name := strings.TrimSpace(*cmd.AppName)
		if name == "" {
			vErr.add("appName", "application name is required")
		} else {
			merged.AppName = name
		}
	}
	if cmd.AppLogo != nil {
		logo := strings.TrimSpace(*cmd.AppLogo)
		if logo == "" {
			vErr.add("appLogo", "logo reference is required")
		} else {
			merged.AppLogo = logo
		}
	}
	if cmd.MaxBookingDuration != nil {
		if *cmd.MaxBookingDuration < 1 || *cmd.MaxBookingDuration > maxBookingDurationCap {
			vErr.add("maxBookingDuration", "maximum booking duration must be between 1 and 12 hours")
		} else {
			merged.MaxBookingDuration = *cmd.MaxBookingDuration
		}
	}
	if cmd.BookingNoticeDays != nil {
		if *cmd.BookingNoticeDays < 0 {
			vErr.add("bookingNoticeDays", "notice days must not be negative")
		} else {
			merged.BookingNoticeDays = *cmd.BookingNoticeDays
		}
	}
	if cmd.BookingWindowDays != nil {
		if *cmd.BookingWindowDays < 1 || *cmd.BookingWindowDays > bookingWindowDaysCap {
			vErr.add("bookingWindowDays", "booking window must be between 1 and 365 days")
		} else {
			merged.BookingWindowDays = *cmd.BookingWindowDays
		}
	}
	if cmd.MaxPendingBookings != nil {
		if *cmd.MaxPendingBookings < 1 || *cmd.MaxPendingBookings > maxPendingBookingsCap {
			vErr.add("maxPendingBookings", "pending booking cap must be between 1 and 10")
		} else {
			merged.MaxPendingBookings = *cmd.MaxPendingBookings
		}
	}

	if vErr.HasErrors() {
		return current, vErr
	}
	return current.WithSettings(merged), nil
}
