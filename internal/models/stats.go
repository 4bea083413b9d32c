package models

// DailyStats is the per-user per-day study counter. One row per
// (user_id, study_date); increments are applied as an atomic upsert.
type DailyStats struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	StudyDate      string `json:"study_date"` // YYYY-MM-DD (UTC)
	WordsStudied   int    `json:"words_studied"`
	CorrectAnswers int    `json:"correct_answers"`
	TotalStudyTime int    `json:"total_study_time"` // seconds
}

// WeeklyProgress is one day's slice of the seven-day dashboard window
type WeeklyProgress struct {
	Date         string  `json:"date"`
	WordsStudied int     `json:"wordsStudied"`
	Accuracy     float64 `json:"accuracy"`
}

// TotalStats aggregates a user's lifetime study activity
type TotalStats struct {
	TotalWordsStudied   int     `json:"totalWordsStudied"`
	TotalCorrectAnswers int     `json:"totalCorrectAnswers"`
	TotalStudyTime      int     `json:"totalStudyTime"`
	StudyDays           int     `json:"studyDays"`
	AverageAccuracy     float64 `json:"averageAccuracy"`
}

// DashboardStats is the combined dashboard payload
type DashboardStats struct {
	TotalVocabulary    int              `json:"totalVocabulary"`
	MasteredVocabulary int              `json:"masteredVocabulary"`
	TodayStudied       int              `json:"todayStudied"`
	CurrentStreak      int              `json:"currentStreak"`
	WeeklyProgress     []WeeklyProgress `json:"weeklyProgress"`
	TotalStats         TotalStats       `json:"totalStats"`
}
