package service

import (
	"math"
	"time"

	"vocablearn/internal/models"
)

// DashboardVocabularyStore is the vocabulary access the dashboard needs
type DashboardVocabularyStore interface {
	Counts(userID int64) (total, mastered int, err error)
}

// DashboardStatsStore is the counter access the dashboard needs
type DashboardStatsStore interface {
	GetByDate(userID int64, date string) (*models.DailyStats, error)
	FindByUserID(userID int64) ([]models.DailyStats, error)
	FindByDateRange(userID int64, start, end string) ([]models.DailyStats, error)
	ActiveStudyDates(userID int64) ([]string, error)
}

// DashboardService assembles progress views from the study counters.
// All reads; any store failure aborts the whole call.
type DashboardService struct {
	vocabulary DashboardVocabularyStore
	daily      DashboardStatsStore

	// Now is the clock anchoring "today", overridable in tests
	Now func() time.Time
}

// NewDashboardService creates a dashboard service
func NewDashboardService(vocabulary DashboardVocabularyStore, daily DashboardStatsStore) *DashboardService {
	return &DashboardService{
		vocabulary: vocabulary,
		daily:      daily,
		Now:        time.Now,
	}
}

const dateLayout = "2006-01-02"

// GetDashboardStats builds the combined dashboard payload
func (s *DashboardService) GetDashboardStats(userID int64) (*models.DashboardStats, error) {
	total, mastered, err := s.vocabulary.Counts(userID)
	if err != nil {
		return nil, NewStorageError("vocabulary counts", err)
	}

	today := s.Now().UTC()
	todayKey := today.Format(dateLayout)

	todayRow, err := s.daily.GetByDate(userID, todayKey)
	if err != nil {
		return nil, NewStorageError("today's stats lookup", err)
	}
	todayStudied := 0
	if todayRow != nil {
		todayStudied = todayRow.WordsStudied
	}

	streak, err := s.currentStreak(userID, today)
	if err != nil {
		return nil, err
	}

	weekly, err := s.weeklyProgress(userID, today)
	if err != nil {
		return nil, err
	}

	totals, err := s.totalStats(userID)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		TotalVocabulary:    total,
		MasteredVocabulary: mastered,
		TodayStudied:       todayStudied,
		CurrentStreak:      streak,
		WeeklyProgress:     weekly,
		TotalStats:         *totals,
	}, nil
}

// GetWeeklyProgress returns the seven-day window ending today
func (s *DashboardService) GetWeeklyProgress(userID int64) ([]models.WeeklyProgress, error) {
	return s.weeklyProgress(userID, s.Now().UTC())
}

// currentStreak counts consecutive active study days ending today. A day is
// active when its counter row has words_studied > 0. No row for today means
// the streak is zero.
func (s *DashboardService) currentStreak(userID int64, today time.Time) (int, error) {
	dates, err := s.daily.ActiveStudyDates(userID)
	if err != nil {
		return 0, NewStorageError("study dates lookup", err)
	}

	streak := 0
	for i, d := range dates {
		expected := today.AddDate(0, 0, -i).Format(dateLayout)
		if d != expected {
			break
		}
		streak++
	}
	return streak, nil
}

// weeklyProgress builds exactly seven entries, oldest first, zero-filling
// days without a counter row
func (s *DashboardService) weeklyProgress(userID int64, today time.Time) ([]models.WeeklyProgress, error) {
	start := today.AddDate(0, 0, -6)
	rows, err := s.daily.FindByDateRange(userID, start.Format(dateLayout), today.Format(dateLayout))
	if err != nil {
		return nil, NewStorageError("weekly stats lookup", err)
	}

	byDate := make(map[string]models.DailyStats, len(rows))
	for _, r := range rows {
		byDate[r.StudyDate] = r
	}

	progress := make([]models.WeeklyProgress, 0, 7)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		entry := models.WeeklyProgress{Date: date}
		if r, ok := byDate[date]; ok {
			entry.WordsStudied = r.WordsStudied
			if r.WordsStudied > 0 {
				entry.Accuracy = round2(float64(r.CorrectAnswers) / float64(r.WordsStudied) * 100)
			}
		}
		progress = append(progress, entry)
	}
	return progress, nil
}

// totalStats sums the user's full counter history
func (s *DashboardService) totalStats(userID int64) (*models.TotalStats, error) {
	rows, err := s.daily.FindByUserID(userID)
	if err != nil {
		return nil, NewStorageError("total stats lookup", err)
	}

	totals := &models.TotalStats{StudyDays: len(rows)}
	for _, r := range rows {
		totals.TotalWordsStudied += r.WordsStudied
		totals.TotalCorrectAnswers += r.CorrectAnswers
		totals.TotalStudyTime += r.TotalStudyTime
	}
	if totals.TotalWordsStudied > 0 {
		totals.AverageAccuracy = round2(float64(totals.TotalCorrectAnswers) / float64(totals.TotalWordsStudied) * 100)
	}
	return totals, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
