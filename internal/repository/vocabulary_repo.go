package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"vocablearn/internal/database"
	"vocablearn/internal/models"
)

// SearchOptions filters and orders a vocabulary listing
type SearchOptions struct {
	Query           string
	MasteryLevel    *int
	DifficultyLevel *int
	SortBy          string
	SortOrder       string
	Limit           int
	Offset          int
}

// sortColumns whitelists the columns a listing may be ordered by
var sortColumns = map[string]bool{
	"created_at":       true,
	"english_word":     true,
	"mastery_level":    true,
	"difficulty_level": true,
}

// VocabularyRepository handles database operations for vocabulary entries
type VocabularyRepository struct {
	db *database.DB
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(db *database.DB) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

// Create inserts a vocabulary entry with its meanings in one transaction
func (r *VocabularyRepository) Create(userID int64, word, sentence string, difficulty int, meanings []models.JapaneseMeaning) (*models.VocabularyWithMeanings, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO vocabulary (user_id, english_word, example_sentence, difficulty_level, mastery_level)
		VALUES (?, ?, ?, ?, 0)
	`
	id, err := tx.ExecReturningID(query, userID, word, sentence, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create vocabulary: %w", err)
	}

	if err := insertMeanings(tx, id, meanings); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return r.FindByID(id, userID)
}

// insertMeanings adds meanings rows for a vocabulary entry
func insertMeanings(tx *database.Tx, vocabularyID int64, meanings []models.JapaneseMeaning) error {
	query := `
		INSERT INTO japanese_meanings (vocabulary_id, meaning, part_of_speech, usage_note)
		VALUES (?, ?, ?, ?)
	`
	for _, m := range meanings {
		if _, err := tx.Exec(query, vocabularyID, m.Meaning, m.PartOfSpeech, m.UsageNote); err != nil {
			return fmt.Errorf("failed to create meaning: %w", err)
		}
	}
	return nil
}

// FindByID retrieves a vocabulary entry owned by the user, with meanings
func (r *VocabularyRepository) FindByID(id, userID int64) (*models.VocabularyWithMeanings, error) {
	query := `
		SELECT id, user_id, english_word, example_sentence, difficulty_level, mastery_level, created_at, updated_at
		FROM vocabulary
		WHERE id = ? AND user_id = ?
	`
	v := &models.VocabularyWithMeanings{}
	err := r.db.QueryRow(query, id, userID).Scan(
		&v.ID,
		&v.UserID,
		&v.EnglishWord,
		&v.ExampleSentence,
		&v.DifficultyLevel,
		&v.MasteryLevel,
		&v.CreatedAt,
		&v.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary: %w", err)
	}

	meanings, err := r.meaningsFor([]int64{id})
	if err != nil {
		return nil, err
	}
	v.JapaneseMeanings = meanings[id]
	if v.JapaneseMeanings == nil {
		v.JapaneseMeanings = []models.JapaneseMeaning{}
	}

	return v, nil
}

// FindByUserID lists a user's vocabulary, filtered and sorted
func (r *VocabularyRepository) FindByUserID(userID int64, opts SearchOptions) ([]models.VocabularyWithMeanings, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, user_id, english_word, example_sentence, difficulty_level, mastery_level, created_at, updated_at
		FROM vocabulary
		WHERE user_id = ?
	`)
	args := []interface{}{userID}

	if opts.Query != "" {
		sb.WriteString(` AND (english_word LIKE ? OR id IN (
			SELECT vocabulary_id FROM japanese_meanings WHERE meaning LIKE ?
		))`)
		like := "%" + opts.Query + "%"
		args = append(args, like, like)
	}
	if opts.MasteryLevel != nil {
		sb.WriteString(" AND mastery_level = ?")
		args = append(args, *opts.MasteryLevel)
	}
	if opts.DifficultyLevel != nil {
		sb.WriteString(" AND difficulty_level = ?")
		args = append(args, *opts.DifficultyLevel)
	}

	sortBy := opts.SortBy
	if !sortColumns[sortBy] {
		sortBy = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(opts.SortOrder, "asc") {
		order = "ASC"
	}
	sb.WriteString(fmt.Sprintf(" ORDER BY %s %s", sortBy, order))

	if opts.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			sb.WriteString(" OFFSET ?")
			args = append(args, opts.Offset)
		}
	}

	return r.queryWithMeanings(sb.String(), args...)
}

// RandomForStudy picks words for a study session, least mastered first
func (r *VocabularyRepository) RandomForStudy(userID int64, limit int) ([]models.VocabularyWithMeanings, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, english_word, example_sentence, difficulty_level, mastery_level, created_at, updated_at
		FROM vocabulary
		WHERE user_id = ?
		ORDER BY mastery_level ASC, %s
		LIMIT ?
	`, r.db.Dialect.RandomFunc())

	return r.queryWithMeanings(query, userID, limit)
}

// queryWithMeanings runs a vocabulary SELECT and attaches meanings to each row
func (r *VocabularyRepository) queryWithMeanings(query string, args ...interface{}) ([]models.VocabularyWithMeanings, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vocabulary: %w", err)
	}
	defer rows.Close()

	var entries []models.VocabularyWithMeanings
	var ids []int64
	for rows.Next() {
		var v models.VocabularyWithMeanings
		if err := rows.Scan(
			&v.ID,
			&v.UserID,
			&v.EnglishWord,
			&v.ExampleSentence,
			&v.DifficultyLevel,
			&v.MasteryLevel,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vocabulary: %w", err)
		}
		v.JapaneseMeanings = []models.JapaneseMeaning{}
		entries = append(entries, v)
		ids = append(ids, v.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocabulary rows: %w", err)
	}

	if len(ids) == 0 {
		return []models.VocabularyWithMeanings{}, nil
	}

	meanings, err := r.meaningsFor(ids)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if m, ok := meanings[entries[i].ID]; ok {
			entries[i].JapaneseMeanings = m
		}
	}

	return entries, nil
}

// meaningsFor fetches meanings for a set of vocabulary IDs
func (r *VocabularyRepository) meaningsFor(ids []int64) (map[int64][]models.JapaneseMeaning, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	query := fmt.Sprintf(`
		SELECT id, vocabulary_id, meaning, part_of_speech, usage_note, created_at
		FROM japanese_meanings
		WHERE vocabulary_id IN (%s)
		ORDER BY id
	`, placeholders)

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query meanings: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]models.JapaneseMeaning)
	for rows.Next() {
		var m models.JapaneseMeaning
		if err := rows.Scan(&m.ID, &m.VocabularyID, &m.Meaning, &m.PartOfSpeech, &m.UsageNote, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meaning: %w", err)
		}
		result[m.VocabularyID] = append(result[m.VocabularyID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read meaning rows: %w", err)
	}

	return result, nil
}

// Update rewrites a vocabulary entry and replaces its meanings wholesale
func (r *VocabularyRepository) Update(id, userID int64, word, sentence string, difficulty int, meanings []models.JapaneseMeaning) (*models.VocabularyWithMeanings, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE vocabulary
		SET english_word = ?, example_sentence = ?, difficulty_level = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	result, err := tx.Exec(query, word, sentence, difficulty, time.Now(), id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update vocabulary: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	if _, err := tx.Exec("DELETE FROM japanese_meanings WHERE vocabulary_id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to clear meanings: %w", err)
	}
	if err := insertMeanings(tx, id, meanings); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return r.FindByID(id, userID)
}

// UpdateMasteryLevel sets the mastery level of an owned entry.
// Returns false when no row matched.
func (r *VocabularyRepository) UpdateMasteryLevel(id, userID int64, level int) (bool, error) {
	query := `
		UPDATE vocabulary
		SET mastery_level = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`
	result, err := r.db.Exec(query, level, time.Now(), id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to update mastery level: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return affected > 0, nil
}

// Delete removes an owned vocabulary entry. Returns false when no row matched.
func (r *VocabularyRepository) Delete(id, userID int64) (bool, error) {
	query := "DELETE FROM vocabulary WHERE id = ? AND user_id = ?"
	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete vocabulary: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}

// Counts returns the total and mastered entry counts for a user
func (r *VocabularyRepository) Counts(userID int64) (total, mastered int, err error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN mastery_level = 2 THEN 1 ELSE 0 END), 0)
		FROM vocabulary
		WHERE user_id = ?
	`
	if err := r.db.QueryRow(query, userID).Scan(&total, &mastered); err != nil {
		return 0, 0, fmt.Errorf("failed to count vocabulary: %w", err)
	}
	return total, mastered, nil
}
