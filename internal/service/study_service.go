package service

import (
	"math"
	"time"

	"vocablearn/internal/models"
	"vocablearn/internal/validation"
)

// masteryWindow is the number of recent answer events considered when
// recalculating a word's mastery level.
const masteryWindow = 10

// StudyVocabularyStore is the vocabulary access the study service needs
type StudyVocabularyStore interface {
	FindByID(id, userID int64) (*models.VocabularyWithMeanings, error)
	UpdateMasteryLevel(id, userID int64, level int) (bool, error)
	RandomForStudy(userID int64, limit int) ([]models.VocabularyWithMeanings, error)
}

// StudySessionStore is the answer-event access the study service needs
type StudySessionStore interface {
	Create(userID, vocabularyID int64, isCorrect bool, responseTime *int) (*models.StudySession, error)
	RecentByVocabulary(vocabularyID, userID int64, limit int) ([]models.StudySession, error)
	RecentByUser(userID int64, limit int) ([]models.StudySession, error)
	Stats(userID int64) (*models.StudyStats, error)
}

// DailyStatsStore is the counter access the study service needs
type DailyStatsStore interface {
	Increment(userID int64, date string, words, correct, seconds int) error
}

// StudyService records study results and assembles study sessions
type StudyService struct {
	vocabulary StudyVocabularyStore
	sessions   StudySessionStore
	daily      DailyStatsStore

	// Now is the clock used to stamp daily counters, overridable in tests
	Now func() time.Time
}

// NewStudyService creates a study service
func NewStudyService(vocabulary StudyVocabularyStore, sessions StudySessionStore, daily DailyStatsStore) *StudyService {
	return &StudyService{
		vocabulary: vocabulary,
		sessions:   sessions,
		daily:      daily,
		Now:        time.Now,
	}
}

// today returns the current UTC calendar date
func (s *StudyService) today() string {
	return s.Now().UTC().Format("2006-01-02")
}

// RecordResult appends one answer event, bumps today's counters and
// recalculates the word's mastery level from its recent history.
func (s *StudyService) RecordResult(userID int64, req validation.StudyResultRequest) (*models.StudySession, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	vocab, err := s.vocabulary.FindByID(req.VocabularyID, userID)
	if err != nil {
		return nil, NewStorageError("vocabulary lookup", err)
	}
	if vocab == nil {
		return nil, NewNotFoundError("vocabulary")
	}

	session, err := s.sessions.Create(userID, req.VocabularyID, req.IsCorrect, req.ResponseTime)
	if err != nil {
		return nil, NewStorageError("study session insert", err)
	}

	correct := 0
	if req.IsCorrect {
		correct = 1
	}
	seconds := 0
	if req.ResponseTime != nil {
		seconds = int(math.Round(float64(*req.ResponseTime) / 1000))
	}
	if err := s.daily.Increment(userID, s.today(), 1, correct, seconds); err != nil {
		return nil, NewStorageError("daily stats increment", err)
	}

	if err := s.recalculateMastery(userID, vocab.ID, vocab.MasteryLevel); err != nil {
		return nil, err
	}

	return session, nil
}

// recalculateMastery rederives a word's mastery level from its newest answer
// events, including the one just written, and persists it only on change.
func (s *StudyService) recalculateMastery(userID, vocabularyID int64, current int) error {
	events, err := s.sessions.RecentByVocabulary(vocabularyID, userID, masteryWindow)
	if err != nil {
		return NewStorageError("study history lookup", err)
	}

	level := masteryFromHistory(events, current)
	if level == current {
		return nil
	}

	if _, err := s.vocabulary.UpdateMasteryLevel(vocabularyID, userID, level); err != nil {
		return NewStorageError("mastery level update", err)
	}
	return nil
}

// masteryFromHistory maps recent answer events to a mastery level. Fewer than
// three events leaves the level untouched. Rules apply in priority order;
// histories matching none of them keep the current level.
func masteryFromHistory(events []models.StudySession, current int) int {
	n := len(events)
	if n < 3 {
		return current
	}

	correct := 0
	for _, e := range events {
		if e.IsCorrect {
			correct++
		}
	}
	accuracy := float64(correct) / float64(n)

	switch {
	case accuracy >= 0.8 && n >= 5:
		return models.MasteryMastered
	case accuracy >= 0.5 && n >= 3:
		return models.MasteryLearning
	case accuracy < 0.3 && n >= 5:
		return models.MasteryUnlearned
	default:
		return current
	}
}

// StartSession picks words for a flashcard round, least mastered first
func (s *StudyService) StartSession(userID int64, limit int) ([]models.VocabularyWithMeanings, error) {
	limit, err := validation.SessionLimit(limit)
	if err != nil {
		return nil, err
	}

	words, err := s.vocabulary.RandomForStudy(userID, limit)
	if err != nil {
		return nil, NewStorageError("study selection", err)
	}
	return words, nil
}

// Stats aggregates the user's answer history
func (s *StudyService) Stats(userID int64) (*models.StudyStats, error) {
	stats, err := s.sessions.Stats(userID)
	if err != nil {
		return nil, NewStorageError("study stats", err)
	}
	return stats, nil
}

// History returns the user's newest answer events
func (s *StudyService) History(userID int64, limit int) ([]models.StudySession, error) {
	limit, err := validation.HistoryLimit(limit)
	if err != nil {
		return nil, err
	}

	events, err := s.sessions.RecentByUser(userID, limit)
	if err != nil {
		return nil, NewStorageError("study history", err)
	}
	return events, nil
}
