package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"vocablearn/internal/models"
	"vocablearn/internal/validation"
)

type fakeVocabStore struct {
	entries       map[int64]*models.VocabularyWithMeanings
	masteryCalls  int
	lastMastery   int
	findErr       error
	updateMastery func(id, userID int64, level int) (bool, error)
}

func (f *fakeVocabStore) FindByID(id, userID int64) (*models.VocabularyWithMeanings, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	v, ok := f.entries[id]
	if !ok || v.UserID != userID {
		return nil, nil
	}
	return v, nil
}

func (f *fakeVocabStore) UpdateMasteryLevel(id, userID int64, level int) (bool, error) {
	if f.updateMastery != nil {
		return f.updateMastery(id, userID, level)
	}
	f.masteryCalls++
	f.lastMastery = level
	if v, ok := f.entries[id]; ok {
		v.MasteryLevel = level
	}
	return true, nil
}

func (f *fakeVocabStore) RandomForStudy(userID int64, limit int) ([]models.VocabularyWithMeanings, error) {
	var out []models.VocabularyWithMeanings
	for _, v := range f.entries {
		if v.UserID == userID && len(out) < limit {
			out = append(out, *v)
		}
	}
	return out, nil
}

type fakeSessionStore struct {
	events    []models.StudySession
	nextID    int64
	createErr error
}

func (f *fakeSessionStore) Create(userID, vocabularyID int64, isCorrect bool, responseTime *int) (*models.StudySession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	s := models.StudySession{
		ID:           f.nextID,
		UserID:       userID,
		VocabularyID: vocabularyID,
		IsCorrect:    isCorrect,
		ResponseTime: responseTime,
		StudiedAt:    time.Now(),
	}
	f.events = append(f.events, s)
	return &s, nil
}

func (f *fakeSessionStore) RecentByVocabulary(vocabularyID, userID int64, limit int) ([]models.StudySession, error) {
	var out []models.StudySession
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		e := f.events[i]
		if e.VocabularyID == vocabularyID && e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) RecentByUser(userID int64, limit int) ([]models.StudySession, error) {
	var out []models.StudySession
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		if f.events[i].UserID == userID {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

func (f *fakeSessionStore) Stats(userID int64) (*models.StudyStats, error) {
	stats := &models.StudyStats{}
	sum, n := 0, 0
	for _, e := range f.events {
		if e.UserID != userID {
			continue
		}
		stats.TotalSessions++
		if e.IsCorrect {
			stats.CorrectAnswers++
		}
		if e.ResponseTime != nil {
			sum += *e.ResponseTime
			n++
		}
	}
	if n > 0 {
		stats.AverageResponseTime = float64(sum) / float64(n)
	}
	return stats, nil
}

type fakeDailyStore struct {
	rows map[string]*models.DailyStats
	err  error
}

func (f *fakeDailyStore) Increment(userID int64, date string, words, correct, seconds int) error {
	if f.err != nil {
		return f.err
	}
	if f.rows == nil {
		f.rows = make(map[string]*models.DailyStats)
	}
	key := fmt.Sprintf("%d|%s", userID, date)
	row, ok := f.rows[key]
	if !ok {
		row = &models.DailyStats{UserID: userID, StudyDate: date}
		f.rows[key] = row
	}
	row.WordsStudied += words
	row.CorrectAnswers += correct
	row.TotalStudyTime += seconds
	return nil
}

func newStudyFixture(masteryLevel int) (*StudyService, *fakeVocabStore, *fakeSessionStore, *fakeDailyStore) {
	vocab := &fakeVocabStore{
		entries: map[int64]*models.VocabularyWithMeanings{
			1: {Vocabulary: models.Vocabulary{ID: 1, UserID: 7, EnglishWord: "ephemeral", MasteryLevel: masteryLevel}},
		},
	}
	sessions := &fakeSessionStore{}
	daily := &fakeDailyStore{}
	svc := NewStudyService(vocab, sessions, daily)
	svc.Now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
	return svc, vocab, sessions, daily
}

func intPtr(n int) *int { return &n }

func TestRecordResultValidation(t *testing.T) {
	svc, _, _, _ := newStudyFixture(0)

	tests := []struct {
		name string
		req  validation.StudyResultRequest
	}{
		{"missing vocabulary id", validation.StudyResultRequest{IsCorrect: true}},
		{"negative response time", validation.StudyResultRequest{VocabularyID: 1, ResponseTime: intPtr(-1)}},
		{"response time over cap", validation.StudyResultRequest{VocabularyID: 1, ResponseTime: intPtr(300001)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordResult(7, tt.req)
			var vErr *validation.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("RecordResult() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestRecordResultUnknownWord(t *testing.T) {
	svc, _, _, _ := newStudyFixture(0)

	_, err := svc.RecordResult(7, validation.StudyResultRequest{VocabularyID: 99, IsCorrect: true})
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("RecordResult() error = %v, want NotFoundError", err)
	}
}

func TestRecordResultOtherUsersWord(t *testing.T) {
	svc, _, _, _ := newStudyFixture(0)

	// Word 1 belongs to user 7; user 8 must not see it
	_, err := svc.RecordResult(8, validation.StudyResultRequest{VocabularyID: 1, IsCorrect: true})
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("RecordResult() error = %v, want NotFoundError", err)
	}
}

func TestRecordResultAppendsEventAndCounters(t *testing.T) {
	svc, _, sessions, daily := newStudyFixture(0)

	session, err := svc.RecordResult(7, validation.StudyResultRequest{
		VocabularyID: 1,
		IsCorrect:    true,
		ResponseTime: intPtr(2500),
	})
	if err != nil {
		t.Fatalf("RecordResult() error = %v", err)
	}
	if session.VocabularyID != 1 || !session.IsCorrect {
		t.Errorf("session = %+v, want vocabulary 1, correct", session)
	}
	if len(sessions.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sessions.events))
	}

	row := daily.rows["7|2026-08-30"]
	if row == nil {
		t.Fatal("no counter row for today")
	}
	// 2500 ms rounds to 3 seconds
	if row.WordsStudied != 1 || row.CorrectAnswers != 1 || row.TotalStudyTime != 3 {
		t.Errorf("counter row = %+v, want 1 word, 1 correct, 3 seconds", row)
	}
}

func TestRecordResultIncorrectAnswerCounter(t *testing.T) {
	svc, _, _, daily := newStudyFixture(0)

	if _, err := svc.RecordResult(7, validation.StudyResultRequest{VocabularyID: 1, IsCorrect: false}); err != nil {
		t.Fatalf("RecordResult() error = %v", err)
	}

	row := daily.rows["7|2026-08-30"]
	if row.WordsStudied != 1 || row.CorrectAnswers != 0 || row.TotalStudyTime != 0 {
		t.Errorf("counter row = %+v, want 1 word, 0 correct, 0 seconds", row)
	}
}

func TestRecordResultStorageFailurePropagates(t *testing.T) {
	svc, _, sessions, _ := newStudyFixture(0)
	sessions.createErr = errors.New("disk full")

	_, err := svc.RecordResult(7, validation.StudyResultRequest{VocabularyID: 1, IsCorrect: true})
	var sErr *StorageError
	if !errors.As(err, &sErr) {
		t.Fatalf("RecordResult() error = %v, want StorageError", err)
	}
}

func TestMasteryFromHistory(t *testing.T) {
	history := func(correct, total int) []models.StudySession {
		events := make([]models.StudySession, total)
		for i := 0; i < correct; i++ {
			events[i].IsCorrect = true
		}
		return events
	}

	tests := []struct {
		name    string
		events  []models.StudySession
		current int
		want    int
	}{
		{"no events keeps level", nil, 1, 1},
		{"two events keeps level", history(2, 2), 0, 0},
		{"three of three correct promotes to learning", history(3, 3), 0, 1},
		{"five of five correct promotes to mastered", history(5, 5), 0, 2},
		{"four of four correct only learning", history(4, 4), 0, 1},
		{"four of five correct mastered", history(4, 5), 0, 2},
		{"one of five correct demotes to unlearned", history(1, 5), 2, 0},
		{"zero of five correct demotes", history(0, 5), 1, 0},
		{"one of three correct keeps level", history(1, 3), 2, 2},
		{"one of four correct keeps level", history(1, 4), 1, 1},
		{"zero of four correct keeps level", history(0, 4), 2, 2},
		{"half of ten correct learning", history(5, 10), 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := masteryFromHistory(tt.events, tt.current); got != tt.want {
				t.Errorf("masteryFromHistory() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecordResultPromotesAfterStreakOfCorrect(t *testing.T) {
	svc, vocab, _, _ := newStudyFixture(0)

	for i := 0; i < 5; i++ {
		if _, err := svc.RecordResult(7, validation.StudyResultRequest{VocabularyID: 1, IsCorrect: true}); err != nil {
			t.Fatalf("RecordResult() #%d error = %v", i+1, err)
		}
	}

	if vocab.entries[1].MasteryLevel != models.MasteryMastered {
		t.Errorf("mastery = %d, want %d", vocab.entries[1].MasteryLevel, models.MasteryMastered)
	}
}

func TestRecordResultSkipsWriteWhenLevelUnchanged(t *testing.T) {
	svc, vocab, _, _ := newStudyFixture(0)

	// First two answers leave the level alone, third promotes once
	for i := 0; i < 3; i++ {
		if _, err := svc.RecordResult(7, validation.StudyResultRequest{VocabularyID: 1, IsCorrect: true}); err != nil {
			t.Fatalf("RecordResult() error = %v", err)
		}
	}
	if vocab.masteryCalls != 1 {
		t.Errorf("mastery writes = %d, want 1", vocab.masteryCalls)
	}
	if vocab.lastMastery != models.MasteryLearning {
		t.Errorf("written level = %d, want %d", vocab.lastMastery, models.MasteryLearning)
	}
}

func TestRecordResultWindowIgnoresOldEvents(t *testing.T) {
	svc, vocab, sessions, _ := newStudyFixture(2)

	// Seed old failures beyond the 10-event window
	for i := 0; i < 8; i++ {
		sessions.Create(7, 1, false, nil)
	}
	// Ten recent correct answers push the failures out of the window
	for i := 0; i < 10; i++ {
		if _, err := svc.RecordResult(7, validation.StudyResultRequest{VocabularyID: 1, IsCorrect: true}); err != nil {
			t.Fatalf("RecordResult() error = %v", err)
		}
	}

	if vocab.entries[1].MasteryLevel != models.MasteryMastered {
		t.Errorf("mastery = %d, want %d", vocab.entries[1].MasteryLevel, models.MasteryMastered)
	}
}

func TestStartSessionLimits(t *testing.T) {
	svc, _, _, _ := newStudyFixture(0)

	if _, err := svc.StartSession(7, 51); err == nil {
		t.Error("StartSession(51) = nil error, want validation error")
	}

	words, err := svc.StartSession(7, 0)
	if err != nil {
		t.Fatalf("StartSession(0) error = %v", err)
	}
	if len(words) > validation.DefaultSessionLimit {
		t.Errorf("words = %d, want at most %d", len(words), validation.DefaultSessionLimit)
	}
}

func TestHistoryLimitValidation(t *testing.T) {
	svc, _, _, _ := newStudyFixture(0)

	if _, err := svc.History(7, 201); err == nil {
		t.Error("History(201) = nil error, want validation error")
	}
	if _, err := svc.History(7, 0); err != nil {
		t.Errorf("History(0) error = %v, want nil", err)
	}
}
