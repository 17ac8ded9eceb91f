package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/parish-booking/internal/application"
	"github.com/example/parish-booking/internal/booking"
)

type SettingsHandler struct {
	bus       commandBus
	responder responder
	logger    *slog.Logger
}

func NewSettingsHandler(bus commandBus, logger *slog.Logger) *SettingsHandler {
	base := defaultLogger(logger)
	return &SettingsHandler{bus: bus, responder: newResponder(base), logger: base}
}

func (h *SettingsHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "SettingsHandler", operation, attrs...)
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bus == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	actor, ok := ActorFromContext(r.Context())
	if !ok {
		h.log(r.Context(), "Get", "error_kind", "unauthorized").ErrorContext(r.Context(), "missing authenticated actor")
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	h.log(r.Context(), "Get", "actor_id", actor.UserID).InfoContext(r.Context(), "settings fetched")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, settingsResponse{Settings: h.bus.Snapshot().Settings})
}

// Update merges the provided fields over the current settings. Fields absent
// from the payload stay untouched.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bus == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	actor, _ := ActorFromContext(r.Context())

	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "actor_id", actor.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode settings update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "actor_id", actor.UserID)

	next, _, err := h.bus.Apply(r.Context(), application.UpdateSettings{
		Actor:              actor,
		AppName:            req.AppName,
		AppLogo:            req.AppLogo,
		MaxBookingDuration: req.MaxBookingDuration,
		BookingNoticeDays:  req.BookingNoticeDays,
		BookingWindowDays:  req.BookingWindowDays,
		MaxPendingBookings: req.MaxPendingBookings,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "settings update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "settings updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, settingsResponse{Settings: next.Settings})
}

type settingsRequest struct {
	AppName            *string `json:"appName"`
	AppLogo            *string `json:"appLogo"`
	MaxBookingDuration *int    `json:"maxBookingDuration"`
	BookingNoticeDays  *int    `json:"bookingNoticeDays"`
	BookingWindowDays  *int    `json:"bookingWindowDays"`
	MaxPendingBookings *int    `json:"maxPendingBookings"`
}

type settingsResponse struct {
	Settings booking.Settings `json:"settings"`
}
