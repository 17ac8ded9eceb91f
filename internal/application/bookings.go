package application

import (
	"fmt"
	"time"

	"github.com/example/parish-booking/internal/booking"
	"github.com/example/parish-booking/internal/state"
)

func validateSlot(slot booking.Slot, vErr *ValidationError) {
	if _, err := booking.ParseDate(slot.Date); err != nil {
		vErr.add("date", "date must be in YYYY-MM-DD format")
	}
	if _, err := booking.ParseClock(slot.StartTime); err != nil {
		vErr.add("startTime", "start time must be in HH:MM format")
	} else if !booking.OnGranularity(slot.StartTime) {
		vErr.add("startTime", "start time must fall on a 15-minute boundary")
	}
	if slot.Duration < 1 {
		vErr.add("duration", "duration must be at least 1 hour")
	} else if slot.CrossesMidnight() {
		vErr.add("duration", "booking must end on the same day")
	}
}

// validateBookingPolicy applies the settings-driven constraints on
// self-service requests: maximum duration, minimum notice, booking window.
func (p *Processor) validateBookingPolicy(settings booking.Settings, slot booking.Slot, vErr *ValidationError) {
	if slot.Duration > settings.MaxBookingDuration {
		vErr.add("duration", fmt.Sprintf("duration must not exceed %d hours", settings.MaxBookingDuration))
	}

	date, err := booking.ParseDate(slot.Date)
	if err != nil {
		return
	}
	now := p.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daysAhead := int(date.Sub(today).Hours() / 24)

	if daysAhead < settings.BookingNoticeDays {
		vErr.add("date", fmt.Sprintf("bookings require at least %d day(s) of notice", settings.BookingNoticeDays))
	}
	if daysAhead > settings.BookingWindowDays {
		vErr.add("date", fmt.Sprintf("bookings may be placed at most %d day(s) ahead", settings.BookingWindowDays))
	}
}

func (p *Processor) applyCreateBooking(current state.AppState, cmd CreateBooking) (state.AppState, []booking.Notification, error) {
	hall, ok := current.HallByID(cmd.HallID)
	if !ok {
		return current, nil, ErrNotFound
	}
	if _, ok := current.UserByID(cmd.Actor.UserID); !ok {
		return current, nil, ErrNotFound
	}

	slot := booking.Slot{Date: cmd.Date, StartTime: cmd.StartTime, Duration: cmd.Duration}
	vErr := &ValidationError{}
	validateSlot(slot, vErr)
	if !vErr.HasErrors() {
		p.validateBookingPolicy(current.Settings, slot, vErr)
	}
	if vErr.HasErrors() {
		return current, nil, vErr
	}

	if current.PendingCountByUser(cmd.Actor.UserID) >= current.Settings.MaxPendingBookings {
		return current, nil, ErrQuotaExceeded
	}
	if _, conflict := booking.FindConflict(current.Bookings, cmd.HallID, slot); conflict {
		return current, nil, ErrSlotConflict
	}

	created := booking.Booking{
		ID:               p.idGenerator(),
		UserID:           cmd.Actor.UserID,
		HallID:           cmd.HallID,
		Date:             cmd.Date,
		StartTime:        cmd.StartTime,
		Duration:         cmd.Duration,
		Status:           booking.StatusPending,
		CreatedAt:        p.now(),
		EventDescription: cmd.EventDescription,
	}

	note := p.newNotification(
		booking.BroadcastAdmins,
		fmt.Sprintf("New booking request for %s on %s.", hall.Name, displayDate(created.Date)),
		created.ID,
	)

	next := current.AddBooking(created).AddNotification(note)
	return next, []booking.Notification{note}, nil
}

func (p *Processor) applyAdminCreateBooking(current state.AppState, cmd AdminCreateBooking) (state.AppState, []booking.Notification, error) {
	if !cmd.Actor.IsAdmin() {
		return current, nil, ErrUnauthorized
	}

	hall, ok := current.HallByID(cmd.HallID)
	if !ok {
		return current, nil, ErrNotFound
	}
	if _, ok := current.UserByID(cmd.UserID); !ok {
		return current, nil, ErrNotFound
	}

	slot := booking.Slot{Date: cmd.Date, StartTime: cmd.StartTime, Duration: cmd.Duration}
	vErr := &ValidationError{}
	validateSlot(slot, vErr)
	if vErr.HasErrors() {
		return current, nil, vErr
	}

	// Admin-created bookings bypass the pending quota and booking policy.
	if _, conflict := booking.FindConflict(current.Bookings, cmd.HallID, slot); conflict {
		return current, nil, ErrSlotConflict
	}

	created := booking.Booking{
		ID:               p.idGenerator(),
		UserID:           cmd.UserID,
		HallID:           cmd.HallID,
		Date:             cmd.Date,
		StartTime:        cmd.StartTime,
		Duration:         cmd.Duration,
		Status:           booking.StatusApproved,
		CreatedAt:        p.now(),
		EventDescription: cmd.EventDescription,
	}

	note := p.newNotification(
		cmd.UserID,
		fmt.Sprintf("An administrator has created a booking for you in %s on %s.", hall.Name, displayDate(created.Date)),
		created.ID,
	)

	next := current.AddBooking(created).AddNotification(note)
	return next, []booking.Notification{note}, nil
}

func (p *Processor) applyUpdateBookingStatus(current state.AppState, cmd UpdateBookingStatus) (state.AppState, []booking.Notification, error) {
	if !cmd.Actor.IsAdmin() {
		return current, nil, ErrUnauthorized
	}

	target, ok := current.BookingByID(cmd.BookingID)
	if !ok {
		return current, nil, ErrNotFound
	}

	vErr := &ValidationError{}
	if cmd.Status != booking.StatusApproved && cmd.Status != booking.StatusRejected {
		vErr.add("status", "status must be Approved or Rejected")
	}
	if target.Status != booking.StatusPending {
		vErr.add("status", "only pending bookings can be resolved")
	}
	if vErr.HasErrors() {
		return current, nil, vErr
	}

	updated := target
	updated.Status = cmd.Status
	if cmd.Status == booking.StatusRejected {
		updated.RejectionReason = cmd.RejectionReason
	} else {
		updated.RejectionReason = ""
	}

	hallName := hallDisplayName(current, target.HallID)
	var message string
	if cmd.Status == booking.StatusApproved {
		message = fmt.Sprintf("Your booking for %s on %s has been approved.", hallName, displayDate(target.Date))
	} else {
		message = fmt.Sprintf("Your booking for %s on %s has been rejected.", hallName, displayDate(target.Date))
		if cmd.RejectionReason != "" {
			message += " Reason: " + cmd.RejectionReason
		}
	}

	note := p.newNotification(target.UserID, message, target.ID)
	next := current.ReplaceBooking(updated).AddNotification(note)
	return next, []booking.Notification{note}, nil
}

func (p *Processor) applyDeleteBooking(current state.AppState, cmd DeleteBooking) (state.AppState, []booking.Notification, error) {
	if !cmd.Actor.IsAdmin() {
		return current, nil, ErrUnauthorized
	}

	target, ok := current.BookingByID(cmd.BookingID)
	if !ok {
		return current, nil, ErrNotFound
	}

	note := p.newNotification(
		target.UserID,
		fmt.Sprintf("Your booking for %s on %s has been removed by an administrator.", hallDisplayName(current, target.HallID), displayDate(target.Date)),
		target.ID,
	)

	next := current.RemoveBooking(cmd.BookingID).AddNotification(note)
	return next, []booking.Notification{note}, nil
}

func hallDisplayName(current state.AppState, hallID string) string {
	if hall, ok := current.HallByID(hallID); ok {
		return hall.Name
	}
	return "an unknown hall"
}
