package handlers

import (
	"errors"
	"net/http"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/request"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/response"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/auth"
)

// AuthHandler handles login requests.
type AuthHandler struct {
	manager *auth.Manager
}

// NewAuthHandler creates a new AuthHandler with the provided session manager.
func NewAuthHandler(manager *auth.Manager) *AuthHandler {
	return &AuthHandler{manager: manager}
}

// Login handles POST requests exchanging the shared password for a session token.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest (password)
// Response: 200 OK with Session (token, expiresAt)
// Error: 400 Bad Request if the body is invalid
// Error: 401 Unauthorized if the password does not match
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	session, err := h.manager.Login(req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidPassword) {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidPassword.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create session", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, session)
}
