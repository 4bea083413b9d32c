package repository

import (
	"database/sql"
	"fmt"
	"time"

	"vocablearn/internal/database"
	"vocablearn/internal/models"
)

// StudySessionRepository handles database operations for answer events
type StudySessionRepository struct {
	db *database.DB
}

// NewStudySessionRepository creates a new study session repository
func NewStudySessionRepository(db *database.DB) *StudySessionRepository {
	return &StudySessionRepository{db: db}
}

// Create appends one answer event
func (r *StudySessionRepository) Create(userID, vocabularyID int64, isCorrect bool, responseTime *int) (*models.StudySession, error) {
	query := `
		INSERT INTO study_sessions (user_id, vocabulary_id, is_correct, response_time)
		VALUES (?, ?, ?, ?)
	`
	var rt sql.NullInt64
	if responseTime != nil {
		rt = sql.NullInt64{Int64: int64(*responseTime), Valid: true}
	}

	id, err := r.db.ExecReturningID(query, userID, vocabularyID, isCorrect, rt)
	if err != nil {
		return nil, fmt.Errorf("failed to create study session: %w", err)
	}

	return &models.StudySession{
		ID:           id,
		UserID:       userID,
		VocabularyID: vocabularyID,
		IsCorrect:    isCorrect,
		ResponseTime: responseTime,
		StudiedAt:    time.Now(),
	}, nil
}

// RecentByVocabulary returns the newest answer events for one word, newest first
func (r *StudySessionRepository) RecentByVocabulary(vocabularyID, userID int64, limit int) ([]models.StudySession, error) {
	query := `
		SELECT id, user_id, vocabulary_id, is_correct, response_time, studied_at
		FROM study_sessions
		WHERE vocabulary_id = ? AND user_id = ?
		ORDER BY studied_at DESC, id DESC
		LIMIT ?
	`
	return r.querySessions(query, vocabularyID, userID, limit)
}

// RecentByUser returns a user's newest answer events, newest first
func (r *StudySessionRepository) RecentByUser(userID int64, limit int) ([]models.StudySession, error) {
	query := `
		SELECT id, user_id, vocabulary_id, is_correct, response_time, studied_at
		FROM study_sessions
		WHERE user_id = ?
		ORDER BY studied_at DESC, id DESC
		LIMIT ?
	`
	return r.querySessions(query, userID, limit)
}

func (r *StudySessionRepository) querySessions(query string, args ...interface{}) ([]models.StudySession, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query study sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.StudySession{}
	for rows.Next() {
		var s models.StudySession
		var rt sql.NullInt64
		if err := rows.Scan(&s.ID, &s.UserID, &s.VocabularyID, &s.IsCorrect, &rt, &s.StudiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan study session: %w", err)
		}
		if rt.Valid {
			v := int(rt.Int64)
			s.ResponseTime = &v
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read study session rows: %w", err)
	}

	return sessions, nil
}

// Stats aggregates a user's answer history. Average response time is taken
// over events that recorded one.
func (r *StudySessionRepository) Stats(userID int64) (*models.StudyStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0),
		       COALESCE(AVG(response_time), 0)
		FROM study_sessions
		WHERE user_id = ?
	`
	stats := &models.StudyStats{}
	err := r.db.QueryRow(query, userID).Scan(
		&stats.TotalSessions,
		&stats.CorrectAnswers,
		&stats.AverageResponseTime,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate study stats: %w", err)
	}

	return stats, nil
}
