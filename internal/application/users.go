package application

import (
	"net/mail"
	"strings"

	"github.com/example/parish-booking/internal/booking"
	"github.com/example/parish-booking/internal/state"
)

// normalizeEmail lower-cases and trims an address so registration uniqueness
// and login lookup are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *Processor) applyRegisterUser(current state.AppState, cmd RegisterUser) (state.AppState, error) {
	email := normalizeEmail(cmd.Email)
	name := strings.TrimSpace(cmd.Name)

	vErr := &ValidationError{}
	if email == "" {
		vErr.add("email", "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		vErr.add("email", "email is invalid")
	}
	if name == "" {
		vErr.add("name", "name is required")
	}
	if cmd.Password == "" {
		vErr.add("password", "password is required")
	}
	if vErr.HasErrors() {
		return current, vErr
	}

	if _, exists := current.UserByEmail(email); exists {
		return current, ErrDuplicateEmail
	}

	hash, err := p.hashPassword(cmd.Password)
	if err != nil {
		return current, err
	}

	role := booking.RoleUser
	if len(current.Users) == 0 {
		role = booking.RoleAdmin
	}

	id := p.idGenerator()
	user := booking.User{
		ID:           id,
		UID:          id,
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
	}
	return current.AddUser(user), nil
}

func (p *Processor) applyLogin(current state.AppState, cmd Login) (state.AppState, error) {
	user, ok := current.UserByEmail(normalizeEmail(cmd.Email))
	if !ok {
		return current, ErrInvalidCredentials
	}
	if err := p.verifyPassword(user.PasswordHash, cmd.Password); err != nil {
		return current, ErrInvalidCredentials
	}
	return current.WithCurrentUser(user.ID), nil
}

func (p *Processor) applyUpdateProfile(current state.AppState, cmd UpdateProfile) (state.AppState, error) {
	if cmd.Actor.UserID != cmd.UserID && !cmd.Actor.IsAdmin() {
		return current, ErrUnauthorized
	}

	user, ok := current.UserByID(cmd.UserID)
	if !ok {
		return current, ErrNotFound
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		vErr := &ValidationError{}
		vErr.add("name", "name is required")
		return current, vErr
	}

	updated := user
	updated.Name = name
	return current.ReplaceUser(updated), nil
}

func (p *Processor) applyChangePassword(current state.AppState, cmd ChangePassword) (state.AppState, error) {
	if cmd.Actor.UserID != cmd.UserID && !cmd.Actor.IsAdmin() {
		return current, ErrUnauthorized
	}

	user, ok := current.UserByID(cmd.UserID)
	if !ok {
		return current, ErrNotFound
	}
	if err := p.verifyPassword(user.PasswordHash, cmd.CurrentPassword); err != nil {
		return current, ErrInvalidCredentials
	}

	if cmd.NewPassword == "" {
		vErr := &ValidationError{}
		vErr.add("password", "new password is required")
		return current, vErr
	}

	hash, err := p.hashPassword(cmd.NewPassword)
	if err != nil {
		return current, err
	}

	updated := user
	updated.PasswordHash = hash
	return current.ReplaceUser(updated), nil
}

func (p *Processor) applyAdminUpdateUserRole(current state.AppState, cmd AdminUpdateUserRole) (state.AppState, error) {
	if !cmd.Actor.IsAdmin() {
		return current, ErrUnauthorized
	}
	if cmd.UserID == cmd.Actor.UserID {
		return current, ErrSelfRoleChange
	}

	user, ok := current.UserByID(cmd.UserID)
	if !ok {
		return current, ErrNotFound
	}
	if !cmd.Role.Valid() {
		vErr := &ValidationError{}
		vErr.add("role", "role must be ADMIN or USER")
		return current, vErr
	}

	updated := user
	updated.Role = cmd.Role
	return current.ReplaceUser(updated), nil
}

func (p *Processor) applyAdminDeleteUser(current state.AppState, cmd AdminDeleteUser) (state.AppState, error) {
	if !cmd.Actor.IsAdmin() {
		return current, ErrUnauthorized
	}
	if cmd.UserID == cmd.Actor.UserID {
		return current, ErrSelfDeletion
	}
	if _, ok := current.UserByID(cmd.UserID); !ok {
		return current, ErrNotFound
	}

	next := current.RemoveUser(cmd.UserID).RemoveBookingsAndNotificationsByUser(cmd.UserID)
	if next.CurrentUserID != nil && *next.CurrentUserID == cmd.UserID {
		next = next.WithoutCurrentUser()
	}
	return next, nil
}
