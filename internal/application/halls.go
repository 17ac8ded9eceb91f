package application

import (
	"strings"

	"github.com/example/parish-booking/internal/booking"
	"github.com/example/parish-booking/internal/state"
)

func normalizeHallInput(name string, features []string, photoURL string) (string, []string, string) {
	trimmed := make([]string, 0, len(features))
	for _, f := range features {
		if f = strings.TrimSpace(f); f != "" {
			trimmed = append(trimmed, f)
		}
	}
	return strings.TrimSpace(name), trimmed, strings.TrimSpace(photoURL)
}

func validateHallInput(name string, capacity int, features []string, photoURL string) *ValidationError {
	vErr := &ValidationError{}
	if name == "" {
		vErr.add("name", "name is required")
	}
	if capacity < 1 {
		vErr.add("capacity", "capacity must be at least 1")
	}
	if len(features) == 0 {
		vErr.add("features", "at least one feature is required")
	}
	if photoURL == "" {
		vErr.add("photoUrl", "photo reference is required")
	}
	return vErr
}

func (p *Processor) applyCreateHall(current state.AppState, cmd CreateHall) (state.AppState, error) {
	if !cmd.Actor.IsAdmin() {
		return current, ErrUnauthorized
	}

	name, features, photoURL := normalizeHallInput(cmd.Name, cmd.Features, cmd.PhotoURL)
	if vErr := validateHallInput(name, cmd.Capacity, features, photoURL); vErr.HasErrors() {
		return current, vErr
	}

	hall := booking.Hall{
		ID:       p.idGenerator(),
		Name:     name,
		Capacity: cmd.Capacity,
		Features: features,
		PhotoURL: photoURL,
	}
	return current.AddHall(hall), nil
}

func (p *Processor) applyUpdateHall(current state.AppState, cmd UpdateHall) (state.AppState, error) {
	if !cmd.Actor.IsAdmin() {
		return current, ErrUnauthorized
	}

	existing, ok := current.HallByID(cmd.HallID)
	if !ok {
		return current, ErrNotFound
	}

	name, features, photoURL := normalizeHallInput(cmd.Name, cmd.Features, cmd.PhotoURL)
	if vErr := validateHallInput(name, cmd.Capacity, features, photoURL); vErr.HasErrors() {
		return current, vErr
	}

	updated := existing
	updated.Name = name
	updated.Capacity = cmd.Capacity
	updated.Features = features
	updated.PhotoURL = photoURL
	return current.ReplaceHall(updated), nil
}

func (p *Processor) applyDeleteHall(current state.AppState, cmd DeleteHall) (state.AppState, error) {
	if !cmd.Actor.IsAdmin() {
		return current, ErrUnauthorized
	}
	if _, ok := current.HallByID(cmd.HallID); !ok {
		return current, ErrNotFound
	}

	return current.RemoveHall(cmd.HallID).RemoveBookingsByHall(cmd.HallID), nil
}
