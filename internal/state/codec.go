package state

import (
	"encoding/json"
	"fmt"

	"github.com/example/parish-booking/internal/booking"
)

// Encode serializes the aggregate for the persistence bridge.
func Encode(s AppState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode app state: %w", err)
	}
	return data, nil
}

// Decode restores an aggregate previously produced by Encode. Absent optional
// fields default: missing collections decode to empty slices and a missing
// currentUserId decodes to nil, so a first-generation snapshot loads cleanly.
func Decode(data []byte) (AppState, error) {
	var s AppState
	if err := json.Unmarshal(data, &s); err != nil {
		return AppState{}, fmt.Errorf("decode app state: %w", err)
	}
	return normalized(s), nil
}

func normalized(s AppState) AppState {
	if s.Halls == nil {
		s.Halls = []booking.Hall{}
	}
	if s.Bookings == nil {
		s.Bookings = []booking.Booking{}
	}
	if s.Notifications == nil {
		s.Notifications = []booking.Notification{}
	}
	if s.Users == nil {
		s.Users = []booking.User{}
	}
	for i := range s.Halls {
		if s.Halls[i].Features == nil {
			s.Halls[i].Features = []string{}
		}
	}
	return s
}
