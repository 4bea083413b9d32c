package repository

import (
	"database/sql"
	"fmt"

	"vocablearn/internal/database"
	"vocablearn/internal/models"
)

// DailyStatsRepository handles the per-user per-day study counters
type DailyStatsRepository struct {
	db *database.DB
}

// NewDailyStatsRepository creates a new daily stats repository
func NewDailyStatsRepository(db *database.DB) *DailyStatsRepository {
	return &DailyStatsRepository{db: db}
}

// Increment adds to the counter row for (userID, date) in a single atomic
// upsert. Concurrent increments to the same row never lose updates.
func (r *DailyStatsRepository) Increment(userID int64, date string, words, correct, seconds int) error {
	query := r.db.Dialect.UpsertDailyStatsQuery()
	if _, err := r.db.Exec(query, userID, date, words, correct, seconds); err != nil {
		return fmt.Errorf("failed to increment daily stats: %w", err)
	}
	return nil
}

// GetByDate retrieves the counter row for one day, nil when absent
func (r *DailyStatsRepository) GetByDate(userID int64, date string) (*models.DailyStats, error) {
	query := `
		SELECT id, user_id, study_date, words_studied, correct_answers, total_study_time
		FROM daily_stats
		WHERE user_id = ? AND study_date = ?
	`
	s := &models.DailyStats{}
	err := r.db.QueryRow(query, userID, date).Scan(
		&s.ID,
		&s.UserID,
		&s.StudyDate,
		&s.WordsStudied,
		&s.CorrectAnswers,
		&s.TotalStudyTime,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	return s, nil
}

// FindByUserID lists all of a user's counter rows, newest date first
func (r *DailyStatsRepository) FindByUserID(userID int64) ([]models.DailyStats, error) {
	query := `
		SELECT id, user_id, study_date, words_studied, correct_answers, total_study_time
		FROM daily_stats
		WHERE user_id = ?
		ORDER BY study_date DESC
	`
	return r.queryStats(query, userID)
}

// FindByDateRange lists counter rows within [start, end], oldest first
func (r *DailyStatsRepository) FindByDateRange(userID int64, start, end string) ([]models.DailyStats, error) {
	query := `
		SELECT id, user_id, study_date, words_studied, correct_answers, total_study_time
		FROM daily_stats
		WHERE user_id = ? AND study_date >= ? AND study_date <= ?
		ORDER BY study_date ASC
	`
	return r.queryStats(query, userID, start, end)
}

// ActiveStudyDates lists dates with at least one word studied, newest first
func (r *DailyStatsRepository) ActiveStudyDates(userID int64) ([]string, error) {
	query := `
		SELECT study_date
		FROM daily_stats
		WHERE user_id = ? AND words_studied > 0
		ORDER BY study_date DESC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query study dates: %w", err)
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan study date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read study date rows: %w", err)
	}

	return dates, nil
}

func (r *DailyStatsRepository) queryStats(query string, args ...interface{}) ([]models.DailyStats, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	stats := []models.DailyStats{}
	for rows.Next() {
		var s models.DailyStats
		if err := rows.Scan(&s.ID, &s.UserID, &s.StudyDate, &s.WordsStudied, &s.CorrectAnswers, &s.TotalStudyTime); err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily stats rows: %w", err)
	}

	return stats, nil
}
