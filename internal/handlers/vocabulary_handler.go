package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vocablearn/internal/repository"
	"vocablearn/internal/service"
	"vocablearn/internal/validation"
)

// VocabularyHandler handles vocabulary endpoints
type VocabularyHandler struct {
	vocabulary *service.VocabularyService
}

// NewVocabularyHandler creates a new vocabulary handler
func NewVocabularyHandler(vocabulary *service.VocabularyService) *VocabularyHandler {
	return &VocabularyHandler{vocabulary: vocabulary}
}

// pathID parses the {id} path segment
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// Create handles POST /api/vocabulary
func (h *VocabularyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req validation.VocabularyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.vocabulary.Create(UserIDFromContext(r.Context()), req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusCreated, entry)
}

// List handles GET /api/vocabulary
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := repository.SearchOptions{
		Query:     q.Get("search"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
	if v := q.Get("mastery_level"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.MasteryLevel = &n
		}
	}
	if v := q.Get("difficulty_level"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.DifficultyLevel = &n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Offset = n
		}
	}

	entries, err := h.vocabulary.List(UserIDFromContext(r.Context()), opts)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, entries)
}

// Get handles GET /api/vocabulary/{id}
func (h *VocabularyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid vocabulary id")
		return
	}

	entry, err := h.vocabulary.Get(id, UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, entry)
}

// Update handles PUT /api/vocabulary/{id}
func (h *VocabularyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid vocabulary id")
		return
	}

	var req validation.VocabularyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.vocabulary.Update(id, UserIDFromContext(r.Context()), req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, entry)
}

// SetMastery handles PUT /api/vocabulary/{id}/mastery
func (h *VocabularyHandler) SetMastery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid vocabulary id")
		return
	}

	var req validation.MasteryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.vocabulary.SetMasteryLevel(id, UserIDFromContext(r.Context()), req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, entry)
}

// Delete handles DELETE /api/vocabulary/{id}
func (h *VocabularyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "invalid vocabulary id")
		return
	}

	if err := h.vocabulary.Delete(id, UserIDFromContext(r.Context())); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, map[string]string{"message": "deleted"})
}
