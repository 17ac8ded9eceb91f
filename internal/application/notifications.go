package application

import (
	"github.com/example/parish-booking/internal/booking"
	"github.com/example/parish-booking/internal/state"
)

func (p *Processor) newNotification(target, message, bookingID string) booking.Notification {
	return booking.Notification{
		ID:        p.idGenerator(),
		UserID:    target,
		Message:   message,
		IsRead:    false,
		CreatedAt: p.now(),
		BookingID: bookingID,
	}
}

// displayDate renders a booking date for notification messages.
func displayDate(date string) string {
	if parsed, err := booking.ParseDate(date); err == nil {
		return parsed.Format("January 2, 2006")
	}
	return date
}

func (p *Processor) applyMarkNotificationRead(current state.AppState, cmd MarkNotificationRead) (state.AppState, error) {
	target, ok := current.NotificationByID(cmd.NotificationID)
	if !ok {
		return current, ErrNotFound
	}

	updated := target
	updated.IsRead = true
	return current.ReplaceNotification(updated), nil
}
