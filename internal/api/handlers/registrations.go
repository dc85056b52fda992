package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prajayganiga-design/Mini-project/internal/api/middleware"
	"github.com/prajayganiga-design/Mini-project/internal/api/respond"
	"github.com/prajayganiga-design/Mini-project/internal/auth"
	"github.com/prajayganiga-design/Mini-project/internal/domain/registrations"
	"github.com/prajayganiga-design/Mini-project/internal/metrics"
)

type RegistrationsHandler struct {
	Service *registrations.Service
}

func NewRegistrationsHandler(service *registrations.Service) *RegistrationsHandler {
	return &RegistrationsHandler{Service: service}
}

type registerForEventRequest struct {
	UserName  string `json:"user_name"`
	UserPhone string `json:"user_phone"`
}

// Register claims a seat. The registrant's email comes from the token,
// never from the body. The empty-name check runs before the role check
// to keep the response order clients rely on.
func (h *RegistrationsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerForEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Name is required", err)
		return
	}
	if req.UserName == "" {
		respond.Error(w, r, http.StatusBadRequest, "Name is required", nil)
		return
	}

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil || !auth.IsUser(claims.Role) {
		respond.Error(w, r, http.StatusForbidden, "Only users can register for events", nil)
		return
	}

	id, err := h.Service.Register(r.Context(), r.PathValue("eventId"), req.UserName, req.UserPhone, claims.Email)
	if err != nil {
		switch {
		case errors.Is(err, registrations.ErrNameRequired):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			respond.Error(w, r, http.StatusBadRequest, "Name is required", nil)
		case errors.Is(err, registrations.ErrEventNotFound):
			metrics.RegistrationsTotal.WithLabelValues("not_found").Inc()
			respond.Error(w, r, http.StatusNotFound, "Event not found", nil)
		case errors.Is(err, registrations.ErrAlreadyRegistered):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			respond.Error(w, r, http.StatusBadRequest, "You are already registered for this event", nil)
		case errors.Is(err, registrations.ErrEventFull):
			metrics.RegistrationsTotal.WithLabelValues("full").Inc()
			respond.Error(w, r, http.StatusBadRequest, "Event is full", nil)
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			respond.Error(w, r, http.StatusInternalServerError, err.Error(), err)
		}
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	respond.JSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"message": "Registration successful",
	})
}

func (h *RegistrationsHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListForEvent(r.Context(), r.PathValue("eventId"))
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

func (h *RegistrationsHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.CountForEvent(r.Context(), r.PathValue("eventId"))
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]int{"count": count})
}
