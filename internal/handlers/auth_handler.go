package handlers

import (
	"encoding/json"
	"net/http"

	"vocablearn/internal/models"
	"vocablearn/internal/service"
	"vocablearn/internal/validation"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// authResponse carries a user and their access token
type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req validation.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.auth.Register(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusCreated, authResponse{User: user, Token: token})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req validation.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.auth.Login(req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, authResponse{User: user, Token: token})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.GetUser(UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, user)
}

// RequestPasswordReset handles POST /api/auth/password-reset
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req validation.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.auth.RequestPasswordReset(r.Context(), req); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, map[string]string{
		"message": "if the address exists, a reset email has been sent",
	})
}

// ConfirmPasswordReset handles POST /api/auth/password-reset/confirm
func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req validation.PasswordResetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.auth.ConfirmPasswordReset(req); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, map[string]string{"message": "password updated"})
}
