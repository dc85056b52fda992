package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prajayganiga-design/Mini-project/internal/api/middleware"
	"github.com/prajayganiga-design/Mini-project/internal/api/respond"
	"github.com/prajayganiga-design/Mini-project/internal/domain/accounts"
)

type AuthHandler struct {
	Accounts *accounts.Service
}

func NewAuthHandler(service *accounts.Service) *AuthHandler {
	return &AuthHandler{Accounts: service}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Email, password, and role are required", err)
		return
	}

	_, err := h.Accounts.Register(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		var verr accounts.ValidationError
		switch {
		case errors.As(err, &verr):
			respond.Error(w, r, http.StatusBadRequest, verr.Message, nil)
		case errors.Is(err, accounts.ErrEmailTaken):
			respond.Error(w, r, http.StatusBadRequest, "Email already registered", nil)
		default:
			respond.Error(w, r, http.StatusInternalServerError, err.Error(), err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Registration successful"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string                      `json:"token"`
	User  *accounts.AuthenticatedUser `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Email and password are required", err)
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.Error(w, r, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	token, user, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			respond.Error(w, r, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		respond.Error(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	respond.JSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// Me echoes the authenticated caller's identity straight from the token
// claims; no database round-trip.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		respond.Error(w, r, http.StatusUnauthorized, "Invalid or expired token", nil)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"user": map[string]any{
			"id":    claims.UserID,
			"email": claims.Email,
			"role":  claims.Role,
		},
	})
}
