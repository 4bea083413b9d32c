package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vocablearn/internal/models"
	"vocablearn/internal/service"
)

type stubVocabStore struct {
	entries map[int64]*models.VocabularyWithMeanings
}

func (s *stubVocabStore) FindByID(id, userID int64) (*models.VocabularyWithMeanings, error) {
	v, ok := s.entries[id]
	if !ok || v.UserID != userID {
		return nil, nil
	}
	return v, nil
}

func (s *stubVocabStore) UpdateMasteryLevel(id, userID int64, level int) (bool, error) {
	if v, ok := s.entries[id]; ok {
		v.MasteryLevel = level
		return true, nil
	}
	return false, nil
}

func (s *stubVocabStore) RandomForStudy(userID int64, limit int) ([]models.VocabularyWithMeanings, error) {
	var out []models.VocabularyWithMeanings
	for _, v := range s.entries {
		if v.UserID == userID && len(out) < limit {
			out = append(out, *v)
		}
	}
	return out, nil
}

type stubSessionStore struct {
	events []models.StudySession
}

func (s *stubSessionStore) Create(userID, vocabularyID int64, isCorrect bool, responseTime *int) (*models.StudySession, error) {
	event := models.StudySession{
		ID:           int64(len(s.events) + 1),
		UserID:       userID,
		VocabularyID: vocabularyID,
		IsCorrect:    isCorrect,
		ResponseTime: responseTime,
		StudiedAt:    time.Now(),
	}
	s.events = append(s.events, event)
	return &event, nil
}

func (s *stubSessionStore) RecentByVocabulary(vocabularyID, userID int64, limit int) ([]models.StudySession, error) {
	var out []models.StudySession
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		if s.events[i].VocabularyID == vocabularyID && s.events[i].UserID == userID {
			out = append(out, s.events[i])
		}
	}
	return out, nil
}

func (s *stubSessionStore) RecentByUser(userID int64, limit int) ([]models.StudySession, error) {
	var out []models.StudySession
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		if s.events[i].UserID == userID {
			out = append(out, s.events[i])
		}
	}
	return out, nil
}

func (s *stubSessionStore) Stats(userID int64) (*models.StudyStats, error) {
	return &models.StudyStats{TotalSessions: len(s.events)}, nil
}

type stubDailyStore struct{}

func (s *stubDailyStore) Increment(userID int64, date string, words, correct, seconds int) error {
	return nil
}

func newStudyHandler() *StudyHandler {
	vocab := &stubVocabStore{
		entries: map[int64]*models.VocabularyWithMeanings{
			1: {Vocabulary: models.Vocabulary{ID: 1, UserID: 7, EnglishWord: "tenacious"}},
		},
	}
	svc := service.NewStudyService(vocab, &stubSessionStore{}, &stubDailyStore{})
	return NewStudyHandler(svc)
}

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(r.Context(), UserIDContextKey, int64(7))
	return r.WithContext(ctx)
}

func TestRecordResultEndpoint(t *testing.T) {
	h := newStudyHandler()

	w := httptest.NewRecorder()
	h.RecordResult(w, authedRequest("POST", "/api/study/result",
		`{"vocabulary_id": 1, "is_correct": true, "response_time": 2500}`))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool                `json:"success"`
		Data    models.StudySession `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.Data.VocabularyID != 1 || !resp.Data.IsCorrect {
		t.Errorf("data = %+v, want vocabulary 1, correct", resp.Data)
	}
}

func TestRecordResultEndpointRejectsBadPayload(t *testing.T) {
	h := newStudyHandler()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed json", `{`, 400},
		{"response time over cap", `{"vocabulary_id": 1, "is_correct": true, "response_time": 300001}`, 400},
		{"unknown word", `{"vocabulary_id": 42, "is_correct": true}`, 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.RecordResult(w, authedRequest("POST", "/api/study/result", tt.body))
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestStartSessionEndpoint(t *testing.T) {
	h := newStudyHandler()

	w := httptest.NewRecorder()
	h.StartSession(w, authedRequest("GET", "/api/study/session?limit=5", ""))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	h.StartSession(w, authedRequest("GET", "/api/study/session?limit=99", ""))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for limit over cap", w.Code)
	}
}

func TestHistoryEndpointLimit(t *testing.T) {
	h := newStudyHandler()

	w := httptest.NewRecorder()
	h.History(w, authedRequest("GET", "/api/study/history?limit=201", ""))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for limit over cap", w.Code)
	}
}
