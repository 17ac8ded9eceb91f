package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/parish-booking/internal/application"
	"github.com/example/parish-booking/internal/logging"
)

var (
	errBadRequestBody        = errors.New("the request body is not valid JSON")
	errInvalidHallID         = errors.New("a hall id is required")
	errInvalidBookingID      = errors.New("a booking id is required")
	errInvalidUserID         = errors.New("a user id is required")
	errInvalidNotificationID = errors.New("a notification id is required")
	errMissingSessionToken   = errors.New("a session token is required")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError maps processor rejections onto HTTP semantics. Conflicting
// state transitions land on 409 so clients can refresh and retry; validation
// problems yield 422 with a per-field breakdown.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	kind := application.ErrorKind(err)

	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: kind,
			Message:   "The email address or password is incorrect.",
		})
	case errors.Is(err, application.ErrUnauthorized):
		r.writeJSON(ctx, w, http.StatusForbidden, errorResponse{
			ErrorCode: kind,
			Message:   "You do not have permission to perform this action.",
		})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{
			ErrorCode: kind,
			Message:   "The requested resource was not found.",
		})
	case errors.Is(err, application.ErrSlotConflict):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: kind,
			Message:   "The hall is already booked for the requested time slot.",
		})
	case errors.Is(err, application.ErrQuotaExceeded):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: kind,
			Message:   "You have reached the limit of pending booking requests.",
		})
	case errors.Is(err, application.ErrDuplicateEmail):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: kind,
			Message:   "An account with this email address already exists.",
		})
	case errors.Is(err, application.ErrSelfRoleChange):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: kind,
			Message:   "Administrators cannot change their own role.",
		})
	case errors.Is(err, application.ErrSelfDeletion):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: kind,
			Message:   "Administrators cannot delete their own account.",
		})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				ErrorCode: kind,
				Message:   "The submitted input is invalid.",
				Errors:    vErr.FieldErrors,
			})
			return
		}

		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "An internal server error occurred."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

type errorResponse struct {
	ErrorCode string            `json:"errorCode,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}
