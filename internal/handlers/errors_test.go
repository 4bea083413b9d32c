package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"vocablearn/internal/service"
	"vocablearn/internal/validation"
)

func TestRespondWithServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation error", validation.NewValidationError("response_time", "out of range"), 400},
		{"not found", service.NewNotFoundError("vocabulary"), 404},
		{"invalid credentials", service.ErrInvalidCredentials, 401},
		{"email exists", service.ErrEmailExists, 409},
		{"invalid reset token", service.ErrInvalidResetToken, 400},
		{"storage error", service.NewStorageError("insert", errors.New("disk full")), 500},
		{"unknown error", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			respondWithServiceError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}

			var body errorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if body.Error == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestStorageErrorHidesDetail(t *testing.T) {
	w := httptest.NewRecorder()
	respondWithServiceError(w, service.NewStorageError("insert", errors.New("password=hunter2")))

	var body errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Error != "internal server error" {
		t.Errorf("error = %q, want generic message", body.Error)
	}
}

func TestValidationErrorIncludesField(t *testing.T) {
	w := httptest.NewRecorder()
	respondWithServiceError(w, validation.NewValidationError("english_word", "too long"))

	var body errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Field != "english_word" {
		t.Errorf("field = %q, want english_word", body.Field)
	}
}
