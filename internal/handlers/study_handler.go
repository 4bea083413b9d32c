package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vocablearn/internal/service"
	"vocablearn/internal/validation"
)

// StudyHandler handles flashcard study endpoints
type StudyHandler struct {
	study *service.StudyService
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(study *service.StudyService) *StudyHandler {
	return &StudyHandler{study: study}
}

// queryLimit reads an integer limit parameter, zero when absent
func queryLimit(r *http.Request) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}

// StartSession handles GET /api/study/session
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	words, err := h.study.StartSession(UserIDFromContext(r.Context()), queryLimit(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, words)
}

// RecordResult handles POST /api/study/result
func (h *StudyHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var req validation.StudyResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.study.RecordResult(UserIDFromContext(r.Context()), req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusCreated, session)
}

// Stats handles GET /api/study/stats
func (h *StudyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.study.Stats(UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, stats)
}

// History handles GET /api/study/history
func (h *StudyHandler) History(w http.ResponseWriter, r *http.Request) {
	events, err := h.study.History(UserIDFromContext(r.Context()), queryLimit(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, events)
}
