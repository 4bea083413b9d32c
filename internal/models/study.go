package models

import "time"

// StudySession records a single answered flashcard. Rows are append-only;
// aggregates are derived from them, never written back.
type StudySession struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	VocabularyID int64     `json:"vocabulary_id"`
	IsCorrect    bool      `json:"is_correct"`
	ResponseTime *int      `json:"response_time,omitempty"`
	StudiedAt    time.Time `json:"studied_at"`
}

// StudyStats summarises a user's answer history
type StudyStats struct {
	TotalSessions       int     `json:"total_sessions"`
	CorrectAnswers      int     `json:"correct_answers"`
	AverageResponseTime float64 `json:"average_response_time"`
}
