package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/parish-booking/internal/application"
	"github.com/example/parish-booking/internal/booking"
)

type NotificationHandler struct {
	bus       commandBus
	responder responder
	logger    *slog.Logger
}

func NewNotificationHandler(bus commandBus, logger *slog.Logger) *NotificationHandler {
	base := defaultLogger(logger)
	return &NotificationHandler{bus: bus, responder: newResponder(base), logger: base}
}

func (h *NotificationHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "NotificationHandler", operation, attrs...)
}

// List returns the actor's notification feed. Administrators also receive the
// shared administrator broadcasts.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bus == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	actor, ok := ActorFromContext(r.Context())
	if !ok {
		h.log(r.Context(), "List", "error_kind", "unauthorized").ErrorContext(r.Context(), "missing authenticated actor")
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	var visible []booking.Notification
	for _, n := range h.bus.Snapshot().Notifications {
		if notificationVisibleTo(actor, n) {
			visible = append(visible, n)
		}
	}

	h.log(r.Context(), "List", "actor_id", actor.UserID).With("result_count", len(visible)).InfoContext(r.Context(), "notifications listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listNotificationsResponse{Notifications: visible})
}

// MarkRead flips the read flag of one notification. A notification outside the
// actor's feed reads as missing rather than forbidden.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bus == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	notificationID, ok := NotificationIDFromContext(r.Context())
	if !ok || strings.TrimSpace(notificationID) == "" {
		h.log(r.Context(), "MarkRead", "error_kind", "bad_request").ErrorContext(r.Context(), "missing notification id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidNotificationID)
		return
	}

	actor, _ := ActorFromContext(r.Context())
	logger := h.log(r.Context(), "MarkRead", "actor_id", actor.UserID, "notification_id", notificationID)

	target, found := h.bus.Snapshot().NotificationByID(notificationID)
	if !found || !notificationVisibleTo(actor, target) {
		logger.ErrorContext(r.Context(), "notification not visible to actor", "error_kind", "not_found")
		h.responder.handleServiceError(r.Context(), w, application.ErrNotFound)
		return
	}

	next, _, err := h.bus.Apply(r.Context(), application.MarkNotificationRead{
		Actor:          actor,
		NotificationID: notificationID,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "mark read failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	updated, _ := next.NotificationByID(notificationID)
	logger.InfoContext(r.Context(), "notification marked read")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, notificationResponse{Notification: updated})
}

func notificationVisibleTo(actor application.Actor, n booking.Notification) bool {
	if n.UserID == actor.UserID {
		return true
	}
	return n.UserID == booking.BroadcastAdmins && actor.IsAdmin()
}

type notificationResponse struct {
	Notification booking.Notification `json:"notification"`
}

type listNotificationsResponse struct {
	Notifications []booking.Notification `json:"notifications"`
}
