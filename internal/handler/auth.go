package handler

import (
	"net/http"

	"github.com/gymlog/gymlog-go/internal/middleware"
	"github.com/gymlog/gymlog-go/internal/model"
	"github.com/gymlog/gymlog-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Register(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, msgResponse("User created"))
}

// HandleLogin handles POST /auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleMe handles GET /auth/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, msgResponse("unauthorized"))
		return
	}

	resp, err := h.service.CurrentUser(r.Context(), username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
