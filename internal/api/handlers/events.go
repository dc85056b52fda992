package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prajayganiga-design/Mini-project/internal/api/respond"
	"github.com/prajayganiga-design/Mini-project/internal/domain/events"
	"github.com/prajayganiga-design/Mini-project/internal/metrics"
)

type EventsHandler struct {
	Service *events.Service
}

func NewEventsHandler(service *events.Service) *EventsHandler {
	return &EventsHandler{Service: service}
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.Service.Get(r.Context(), r.PathValue("eventId"))
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			respond.Error(w, r, http.StatusNotFound, "Event not found", nil)
			return
		}
		respond.Error(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}
	respond.JSON(w, http.StatusOK, event)
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input events.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		metrics.EventWritesTotal.WithLabelValues("create", "invalid").Inc()
		respond.Error(w, r, http.StatusBadRequest, "Missing required fields", err)
		return
	}

	id, err := h.Service.Create(r.Context(), input)
	if err != nil {
		h.writeEventError(w, r, "create", err)
		return
	}

	metrics.EventWritesTotal.WithLabelValues("create", "ok").Inc()
	respond.JSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"message": "Event created successfully",
	})
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input events.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		metrics.EventWritesTotal.WithLabelValues("update", "invalid").Inc()
		respond.Error(w, r, http.StatusBadRequest, "Missing required fields", err)
		return
	}

	if err := h.Service.Update(r.Context(), r.PathValue("eventId"), input); err != nil {
		h.writeEventError(w, r, "update", err)
		return
	}

	metrics.EventWritesTotal.WithLabelValues("update", "ok").Inc()
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Event updated successfully"})
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.PathValue("eventId")); err != nil {
		h.writeEventError(w, r, "delete", err)
		return
	}

	metrics.EventWritesTotal.WithLabelValues("delete", "ok").Inc()
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}

func (h *EventsHandler) writeEventError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	var verr events.ValidationError
	switch {
	case errors.As(err, &verr):
		metrics.EventWritesTotal.WithLabelValues(operation, "invalid").Inc()
		respond.Error(w, r, http.StatusBadRequest, verr.Message, nil)
	case errors.Is(err, events.ErrOverlap):
		metrics.EventWritesTotal.WithLabelValues(operation, "overlap").Inc()
		respond.Error(w, r, http.StatusBadRequest, "Event time overlaps with existing event", nil)
	case errors.Is(err, events.ErrDuplicateID):
		metrics.EventWritesTotal.WithLabelValues(operation, "duplicate").Inc()
		respond.Error(w, r, http.StatusBadRequest, "Event ID already exists", nil)
	case errors.Is(err, events.ErrNotFound):
		metrics.EventWritesTotal.WithLabelValues(operation, "not_found").Inc()
		respond.Error(w, r, http.StatusNotFound, "Event not found", nil)
	default:
		metrics.EventWritesTotal.WithLabelValues(operation, "error").Inc()
		respond.Error(w, r, http.StatusInternalServerError, err.Error(), err)
	}
}
