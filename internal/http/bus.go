package http

import (
	"context"

	"github.com/example/parish-booking/internal/application"
	"github.com/example/parish-booking/internal/booking"
	"github.com/example/parish-booking/internal/state"
)

// commandBus is the slice of the engine the handlers depend on. *application.Engine
// satisfies it.
type commandBus interface {
	Apply(ctx context.Context, cmd application.Command) (state.AppState, []booking.Notification, error)
	Snapshot() state.AppState
}

// userDTO is the wire shape of an account. The stored password hash never
// leaves the server.
type userDTO struct {
	ID    string `json:"id"`
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func toUserDTO(user booking.User) userDTO {
	return userDTO{
		ID:    user.ID,
		UID:   user.UID,
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	}
}

func toUserDTOs(users []booking.User) []userDTO {
	if len(users) == 0 {
		return nil
	}
	out := make([]userDTO, 0, len(users))
	for _, user := range users {
		out = append(out, toUserDTO(user))
	}
	return out
}
