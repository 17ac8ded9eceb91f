// Package application implements the booking admission and conflict
// resolution engine: a single command processor that validates each command
// against the current aggregate and produces the next one.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/example/parish-booking/internal/booking"
	"github.com/example/parish-booking/internal/state"
)

// Processor is the sole mutation gateway for the aggregate. Apply is pure
// with respect to its inputs: a rejected command returns the prior snapshot
// untouched, an accepted one returns a fresh snapshot plus the notification
// records emitted by the transition.
type Processor struct {
	idGenerator    func() string
	now            func() time.Time
	hashPassword   func(password string) (string, error)
	verifyPassword func(hashedPassword, password string) error
	logger         *slog.Logger
}

// NewProcessor wires the processor with the provided id generator and clock.
// Nil arguments fall back to random UUIDs and the wall clock.
func NewProcessor(idGenerator func() string, now func() time.Time) *Processor {
	return NewProcessorWithLogger(idGenerator, now, nil)
}

// NewProcessorWithLogger constructs a Processor with a specified logger.
func NewProcessorWithLogger(idGenerator func() string, now func() time.Time, logger *slog.Logger) *Processor {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	return &Processor{
		idGenerator: idGenerator,
		now:         now,
		hashPassword: func(password string) (string, error) {
			return HashPassword(password, DefaultArgon2idParams)
		},
		verifyPassword: VerifyPassword,
		logger:         defaultLogger(logger),
	}
}

// SetPasswordFuncs swaps the password hashing scheme. Test fixtures use it to
// avoid real key derivation; nil arguments leave the current functions in place.
func (p *Processor) SetPasswordFuncs(hash func(password string) (string, error), verify func(hashedPassword, password string) error) {
	if p == nil {
		return
	}
	if hash != nil {
		p.hashPassword = hash
	}
	if verify != nil {
		p.verifyPassword = verify
	}
}

// Apply validates the command against the snapshot and returns the next
// snapshot together with any notification records the transition emitted.
// On error the returned snapshot is the unmodified input.
func (p *Processor) Apply(ctx context.Context, current state.AppState, cmd Command) (next state.AppState, emitted []booking.Notification, err error) {
	if p == nil {
		return current, nil, fmt.Errorf("Processor is nil")
	}
	if cmd == nil {
		return current, nil, fmt.Errorf("command is nil")
	}

	logger := commandLogger(ctx, p.logger, cmd.Kind())
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "command rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "command applied", "notifications", len(emitted))
	}()

	switch c := cmd.(type) {
	case CreateHall:
		next, err = p.applyCreateHall(current, c)
	case UpdateHall:
		next, err = p.applyUpdateHall(current, c)
	case DeleteHall:
		next, err = p.applyDeleteHall(current, c)
	case CreateBooking:
		next, emitted, err = p.applyCreateBooking(current, c)
	case AdminCreateBooking:
		next, emitted, err = p.applyAdminCreateBooking(current, c)
	case UpdateBookingStatus:
		next, emitted, err = p.applyUpdateBookingStatus(current, c)
	case DeleteBooking:
		next, emitted, err = p.applyDeleteBooking(current, c)
	case MarkNotificationRead:
		next, err = p.applyMarkNotificationRead(current, c)
	case UpdateSettings:
		next, err = p.applyUpdateSettings(current, c)
	case RegisterUser:
		next, err = p.applyRegisterUser(current, c)
	case Login:
		next, err = p.applyLogin(current, c)
	case Logout:
		next = current.WithoutCurrentUser()
	case UpdateProfile:
		next, err = p.applyUpdateProfile(current, c)
	case ChangePassword:
		next, err = p.applyChangePassword(current, c)
	case AdminUpdateUserRole:
		next, err = p.applyAdminUpdateUserRole(current, c)
	case AdminDeleteUser:
		next, err = p.applyAdminDeleteUser(current, c)
	default:
		err = fmt.Errorf("unknown command kind %q", cmd.Kind())
	}

	if err != nil {
		return current, nil, err
	}
	return next, emitted, nil
}
