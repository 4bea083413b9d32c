package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vocablearn/internal/security"
)

func TestRequireAuth(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	mw := NewMiddleware(tokens, security.NewRateLimiter(100, time.Minute))

	var gotUserID int64
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/api/study/stats", nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/study/stats", nil)
		r.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()
		handler(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/study/stats", nil)
		r.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		handler(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := tokens.Mint(42, "user@example.com")
		if err != nil {
			t.Fatalf("Mint() error = %v", err)
		}
		r := httptest.NewRequest("GET", "/api/study/stats", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler(w, r)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
		if gotUserID != 42 {
			t.Errorf("user ID in context = %d, want 42", gotUserID)
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	mw := NewMiddleware(tokens, security.NewRateLimiter(2, time.Minute))

	handler := mw.RateLimit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		r := httptest.NewRequest("POST", "/api/auth/login", nil)
		r.RemoteAddr = "9.9.9.9:1234"
		w := httptest.NewRecorder()
		handler(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}

	r := httptest.NewRequest("POST", "/api/auth/login", nil)
	r.RemoteAddr = "9.9.9.9:1234"
	w := httptest.NewRecorder()
	handler(w, r)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
}
