package service

import (
	"vocablearn/internal/models"
	"vocablearn/internal/repository"
	"vocablearn/internal/validation"
)

// VocabularyStore is the vocabulary access the vocabulary service needs
type VocabularyStore interface {
	Create(userID int64, word, sentence string, difficulty int, meanings []models.JapaneseMeaning) (*models.VocabularyWithMeanings, error)
	FindByID(id, userID int64) (*models.VocabularyWithMeanings, error)
	FindByUserID(userID int64, opts repository.SearchOptions) ([]models.VocabularyWithMeanings, error)
	Update(id, userID int64, word, sentence string, difficulty int, meanings []models.JapaneseMeaning) (*models.VocabularyWithMeanings, error)
	UpdateMasteryLevel(id, userID int64, level int) (bool, error)
	Delete(id, userID int64) (bool, error)
}

// VocabularyService handles vocabulary registration and lookup
type VocabularyService struct {
	store VocabularyStore
}

// NewVocabularyService creates a vocabulary service
func NewVocabularyService(store VocabularyStore) *VocabularyService {
	return &VocabularyService{store: store}
}

// meaningsFromRequest converts payload meanings to model rows
func meaningsFromRequest(inputs []validation.MeaningInput) []models.JapaneseMeaning {
	meanings := make([]models.JapaneseMeaning, len(inputs))
	for i, m := range inputs {
		meanings[i] = models.JapaneseMeaning{
			Meaning:      m.Meaning,
			PartOfSpeech: m.PartOfSpeech,
			UsageNote:    m.UsageNote,
		}
	}
	return meanings
}

// Create registers a new vocabulary entry with its meanings
func (s *VocabularyService) Create(userID int64, req validation.VocabularyRequest) (*models.VocabularyWithMeanings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry, err := s.store.Create(userID, req.EnglishWord, req.ExampleSentence, req.DifficultyLevel, meaningsFromRequest(req.JapaneseMeanings))
	if err != nil {
		return nil, NewStorageError("vocabulary create", err)
	}
	return entry, nil
}

// Get retrieves one owned vocabulary entry
func (s *VocabularyService) Get(id, userID int64) (*models.VocabularyWithMeanings, error) {
	entry, err := s.store.FindByID(id, userID)
	if err != nil {
		return nil, NewStorageError("vocabulary lookup", err)
	}
	if entry == nil {
		return nil, NewNotFoundError("vocabulary")
	}
	return entry, nil
}

// List returns a user's vocabulary, filtered and sorted
func (s *VocabularyService) List(userID int64, opts repository.SearchOptions) ([]models.VocabularyWithMeanings, error) {
	entries, err := s.store.FindByUserID(userID, opts)
	if err != nil {
		return nil, NewStorageError("vocabulary list", err)
	}
	return entries, nil
}

// Update rewrites an owned entry, replacing its meanings wholesale
func (s *VocabularyService) Update(id, userID int64, req validation.VocabularyRequest) (*models.VocabularyWithMeanings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry, err := s.store.Update(id, userID, req.EnglishWord, req.ExampleSentence, req.DifficultyLevel, meaningsFromRequest(req.JapaneseMeanings))
	if err != nil {
		return nil, NewStorageError("vocabulary update", err)
	}
	if entry == nil {
		return nil, NewNotFoundError("vocabulary")
	}
	return entry, nil
}

// SetMasteryLevel applies a manual mastery override to an owned entry
func (s *VocabularyService) SetMasteryLevel(id, userID int64, req validation.MasteryRequest) (*models.VocabularyWithMeanings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateMasteryLevel(id, userID, req.MasteryLevel)
	if err != nil {
		return nil, NewStorageError("mastery level update", err)
	}
	if !updated {
		return nil, NewNotFoundError("vocabulary")
	}
	return s.Get(id, userID)
}

// Delete removes an owned entry
func (s *VocabularyService) Delete(id, userID int64) error {
	deleted, err := s.store.Delete(id, userID)
	if err != nil {
		return NewStorageError("vocabulary delete", err)
	}
	if !deleted {
		return NewNotFoundError("vocabulary")
	}
	return nil
}
