package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/parish-booking/internal/application"
	"github.com/example/parish-booking/internal/booking"
)

type BookingHandler struct {
	bus       commandBus
	responder responder
	logger    *slog.Logger
}

func NewBookingHandler(bus commandBus, logger *slog.Logger) *BookingHandler {
	base := defaultLogger(logger)
	return &BookingHandler{bus: bus, responder: newResponder(base), logger: base}
}

func (h *BookingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BookingHandler", operation, attrs...)
}

// List returns the full booking ledger. Every authenticated user sees all
// bookings so the shared calendar can render occupied slots.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
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

	bookings := h.bus.Snapshot().Bookings
	h.log(r.Context(), "List", "actor_id", actor.UserID).With("result_count", len(bookings)).InfoContext(r.Context(), "bookings listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listBookingsResponse{Bookings: bookings})
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bus == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	actor, _ := ActorFromContext(r.Context())

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "actor_id", actor.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode booking request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "actor_id", actor.UserID, "hall_id", req.HallID)

	next, _, err := h.bus.Apply(r.Context(), application.CreateBooking{
		Actor:            actor,
		HallID:           req.HallID,
		Date:             req.Date,
		StartTime:        req.StartTime,
		Duration:         req.Duration,
		EventDescription: req.EventDescription,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "booking creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	created := next.Bookings[len(next.Bookings)-1]
	logger.With("booking_id", created.ID).InfoContext(r.Context(), "booking requested")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, bookingResponse{Booking: created})
}

// AdminCreate books on behalf of another user. The booking is approved
// immediately and skips the pending quota.
func (h *BookingHandler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bus == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	actor, _ := ActorFromContext(r.Context())

	var req adminBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "AdminCreate", "actor_id", actor.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode booking request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "AdminCreate", "actor_id", actor.UserID, "target_user_id", req.UserID, "hall_id", req.HallID)

	next, _, err := h.bus.Apply(r.Context(), application.AdminCreateBooking{
		Actor:            actor,
		UserID:           req.UserID,
		HallID:           req.HallID,
		Date:             req.Date,
		StartTime:        req.StartTime,
		Duration:         req.Duration,
		EventDescription: req.EventDescription,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "administrator booking failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	created := next.Bookings[len(next.Bookings)-1]
	logger.With("booking_id", created.ID).InfoContext(r.Context(), "booking created by administrator")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, bookingResponse{Booking: created})
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bus == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	bookingID, ok := BookingIDFromContext(r.Context())
	if !ok || strings.TrimSpace(bookingID) == "" {
		h.log(r.Context(), "UpdateStatus", "error_kind", "bad_request").ErrorContext(r.Context(), "missing booking id for status update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBookingID)
		return
	}

	actor, _ := ActorFromContext(r.Context())

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateStatus", "actor_id", actor.UserID, "booking_id", bookingID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode status update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateStatus", "actor_id", actor.UserID, "booking_id", bookingID, "status", req.Status)

	next, _, err := h.bus.Apply(r.Context(), application.UpdateBookingStatus{
		Actor:           actor,
		BookingID:       bookingID,
		Status:          booking.Status(req.Status),
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "booking status update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	updated, _ := next.BookingByID(bookingID)
	logger.InfoContext(r.Context(), "booking resolved")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, bookingResponse{Booking: updated})
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bus == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	bookingID, ok := BookingIDFromContext(r.Context())
	if !ok || strings.TrimSpace(bookingID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing booking id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBookingID)
		return
	}

	actor, _ := ActorFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "actor_id", actor.UserID, "booking_id", bookingID)

	if _, _, err := h.bus.Apply(r.Context(), application.DeleteBooking{Actor: actor, BookingID: bookingID}); err != nil {
		logger.ErrorContext(r.Context(), "booking delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "booking deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type bookingRequest struct {
	HallID           string `json:"hallId"`
	Date             string `json:"date"`
	StartTime        string `json:"startTime"`
	Duration         int    `json:"duration"`
	EventDescription string `json:"eventDescription"`
}

type adminBookingRequest struct {
	UserID           string `json:"userId"`
	HallID           string `json:"hallId"`
	Date             string `json:"date"`
	StartTime        string `json:"startTime"`
	Duration         int    `json:"duration"`
	EventDescription string `json:"eventDescription"`
}

type statusRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason"`
}

type bookingResponse struct {
	Booking booking.Booking `json:"booking"`
}

type listBookingsResponse struct {
	Bookings []booking.Booking `json:"bookings"`
}
