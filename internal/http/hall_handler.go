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

type HallHandler struct {
	bus       commandBus
	responder responder
	logger    *slog.Logger
}

func NewHallHandler(bus commandBus, logger *slog.Logger) *HallHandler {
	base := defaultLogger(logger)
	return &HallHandler{bus: bus, responder: newResponder(base), logger: base}
}

func (h *HallHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "HallHandler", operation, attrs...)
}

func (h *HallHandler) List(w http.ResponseWriter, r *http.Request) {
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

	halls := h.bus.Snapshot().Halls
	h.log(r.Context(), "List", "actor_id", actor.UserID).With("result_count", len(halls)).InfoContext(r.Context(), "halls listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listHallsResponse{Halls: halls})
}

func (h *HallHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bus == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	actor, _ := ActorFromContext(r.Context())

	var req hallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "actor_id", actor.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode hall request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "actor_id", actor.UserID)

	next, _, err := h.bus.Apply(r.Context(), application.CreateHall{
		Actor:    actor,
		Name:     req.Name,
		Capacity: req.Capacity,
		Features: req.Features,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "hall creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	created := next.Halls[len(next.Halls)-1]
	logger.With("hall_id", created.ID).InfoContext(r.Context(), "hall created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, hallResponse{Hall: created})
}

func (h *HallHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bus == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	hallID, ok := HallIDFromContext(r.Context())
	if !ok || strings.TrimSpace(hallID) == "" {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing hall id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidHallID)
		return
	}

	actor, _ := ActorFromContext(r.Context())

	var req hallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "actor_id", actor.UserID, "hall_id", hallID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode hall update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "actor_id", actor.UserID, "hall_id", hallID)

	next, _, err := h.bus.Apply(r.Context(), application.UpdateHall{
		Actor:    actor,
		HallID:   hallID,
		Name:     req.Name,
		Capacity: req.Capacity,
		Features: req.Features,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "hall update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	updated, _ := next.HallByID(hallID)
	logger.InfoContext(r.Context(), "hall updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, hallResponse{Hall: updated})
}

func (h *HallHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bus == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	hallID, ok := HallIDFromContext(r.Context())
	if !ok || strings.TrimSpace(hallID) == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing hall id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidHallID)
		return
	}

	actor, _ := ActorFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "actor_id", actor.UserID, "hall_id", hallID)

	if _, _, err := h.bus.Apply(r.Context(), application.DeleteHall{Actor: actor, HallID: hallID}); err != nil {
		logger.ErrorContext(r.Context(), "hall delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "hall deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type hallRequest struct {
	Name     string   `json:"name"`
	Capacity int      `json:"capacity"`
	Features []string `json:"features"`
	PhotoURL string   `json:"photoUrl"`
}

type hallResponse struct {
	Hall booking.Hall `json:"hall"`
}

type listHallsResponse struct {
	Halls []booking.Hall `json:"halls"`
}
