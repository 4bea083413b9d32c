package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"vocablearn/internal/service"
	"vocablearn/internal/validation"
)

// errorResponse is the JSON body for failed requests
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// dataResponse wraps successful payloads
type dataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("Failed to encode response: %v", err)
		}
	}
}

func respondWithData(w http.ResponseWriter, status int, data interface{}) {
	respondWithJSON(w, status, dataResponse{Success: true, Data: data})
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, errorResponse{Error: message})
}

// respondWithServiceError maps service-layer errors onto HTTP statuses
func respondWithServiceError(w http.ResponseWriter, err error) {
	var vErr *validation.ValidationError
	if errors.As(err, &vErr) {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Message, Field: vErr.Field})
		return
	}

	var nfErr *service.NotFoundError
	if errors.As(err, &nfErr) {
		respondWithError(w, http.StatusNotFound, nfErr.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailExists):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidResetToken):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Internal error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
