package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"vocablearn/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version       string               `json:"version"`
	ExportedAt    time.Time            `json:"exported_at"`
	Users         []UserBackup         `json:"users"`
	Vocabulary    []VocabularyBackup   `json:"vocabulary"`
	Meanings      []MeaningBackup      `json:"japanese_meanings"`
	StudySessions []StudySessionBackup `json:"study_sessions"`
	DailyStats    []DailyStatsBackup   `json:"daily_stats"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VocabularyBackup represents a vocabulary record for backup
type VocabularyBackup struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	EnglishWord     string    `json:"english_word"`
	ExampleSentence string    `json:"example_sentence"`
	DifficultyLevel int       `json:"difficulty_level"`
	MasteryLevel    int       `json:"mastery_level"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MeaningBackup represents a meaning record for backup
type MeaningBackup struct {
	ID           int64     `json:"id"`
	VocabularyID int64     `json:"vocabulary_id"`
	Meaning      string    `json:"meaning"`
	PartOfSpeech string    `json:"part_of_speech"`
	UsageNote    string    `json:"usage_note"`
	CreatedAt    time.Time `json:"created_at"`
}

// StudySessionBackup represents an answer event for backup
type StudySessionBackup struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	VocabularyID int64     `json:"vocabulary_id"`
	IsCorrect    bool      `json:"is_correct"`
	ResponseTime *int      `json:"response_time"`
	StudiedAt    time.Time `json:"studied_at"`
}

// DailyStatsBackup represents a daily counter row for backup
type DailyStatsBackup struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	StudyDate      string `json:"study_date"`
	WordsStudied   int    `json:"words_studied"`
	CorrectAnswers int    `json:"correct_answers"`
	TotalStudyTime int    `json:"total_study_time"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportVocabulary(backup); err != nil {
		return fmt.Errorf("failed to export vocabulary: %w", err)
	}
	if err := s.exportMeanings(backup); err != nil {
		return fmt.Errorf("failed to export meanings: %w", err)
	}
	if err := s.exportStudySessions(backup); err != nil {
		return fmt.Errorf("failed to export study sessions: %w", err)
	}
	if err := s.exportDailyStats(backup); err != nil {
		return fmt.Errorf("failed to export daily stats: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d users, %d vocabulary, %d meanings, %d study sessions, %d daily stats",
		len(backup.Users), len(backup.Vocabulary), len(backup.Meanings),
		len(backup.StudySessions), len(backup.DailyStats))

	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var backup BackupData
	if err := json.NewDecoder(file).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in order of dependencies
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importVocabulary(backup.Vocabulary); err != nil {
		return fmt.Errorf("failed to import vocabulary: %w", err)
	}
	if err := s.importMeanings(backup.Meanings); err != nil {
		return fmt.Errorf("failed to import meanings: %w", err)
	}
	if err := s.importStudySessions(backup.StudySessions); err != nil {
		return fmt.Errorf("failed to import study sessions: %w", err)
	}
	if err := s.importDailyStats(backup.DailyStats); err != nil {
		return fmt.Errorf("failed to import daily stats: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := "SELECT id, email, password_hash, name, created_at, updated_at FROM users ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportVocabulary(backup *BackupData) error {
	query := "SELECT id, user_id, english_word, example_sentence, difficulty_level, mastery_level, created_at, updated_at FROM vocabulary ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v VocabularyBackup
		if err := rows.Scan(&v.ID, &v.UserID, &v.EnglishWord, &v.ExampleSentence, &v.DifficultyLevel, &v.MasteryLevel, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return err
		}
		backup.Vocabulary = append(backup.Vocabulary, v)
	}
	return rows.Err()
}

func (s *BackupService) exportMeanings(backup *BackupData) error {
	query := "SELECT id, vocabulary_id, meaning, part_of_speech, usage_note, created_at FROM japanese_meanings ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var m MeaningBackup
		if err := rows.Scan(&m.ID, &m.VocabularyID, &m.Meaning, &m.PartOfSpeech, &m.UsageNote, &m.CreatedAt); err != nil {
			return err
		}
		backup.Meanings = append(backup.Meanings, m)
	}
	return rows.Err()
}

func (s *BackupService) exportStudySessions(backup *BackupData) error {
	query := "SELECT id, user_id, vocabulary_id, is_correct, response_time, studied_at FROM study_sessions ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e StudySessionBackup
		var rt sql.NullInt64
		if err := rows.Scan(&e.ID, &e.UserID, &e.VocabularyID, &e.IsCorrect, &rt, &e.StudiedAt); err != nil {
			return err
		}
		if rt.Valid {
			v := int(rt.Int64)
			e.ResponseTime = &v
		}
		backup.StudySessions = append(backup.StudySessions, e)
	}
	return rows.Err()
}

func (s *BackupService) exportDailyStats(backup *BackupData) error {
	query := "SELECT id, user_id, study_date, words_studied, correct_answers, total_study_time FROM daily_stats ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var d DailyStatsBackup
		if err := rows.Scan(&d.ID, &d.UserID, &d.StudyDate, &d.WordsStudied, &d.CorrectAnswers, &d.TotalStudyTime); err != nil {
			return err
		}
		backup.DailyStats = append(backup.DailyStats, d)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, u := range users {
		if _, err := s.db.Exec(query, u.ID, u.Email, u.PasswordHash, u.Name, u.CreatedAt, u.UpdatedAt); err != nil {
			return err
		}
	}
	log.Printf("Imported %d users", len(users))
	return nil
}

func (s *BackupService) importVocabulary(entries []VocabularyBackup) error {
	query := `
		INSERT INTO vocabulary (id, user_id, english_word, example_sentence, difficulty_level, mastery_level, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, v := range entries {
		if _, err := s.db.Exec(query, v.ID, v.UserID, v.EnglishWord, v.ExampleSentence, v.DifficultyLevel, v.MasteryLevel, v.CreatedAt, v.UpdatedAt); err != nil {
			return err
		}
	}
	log.Printf("Imported %d vocabulary entries", len(entries))
	return nil
}

func (s *BackupService) importMeanings(meanings []MeaningBackup) error {
	query := `
		INSERT INTO japanese_meanings (id, vocabulary_id, meaning, part_of_speech, usage_note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, m := range meanings {
		if _, err := s.db.Exec(query, m.ID, m.VocabularyID, m.Meaning, m.PartOfSpeech, m.UsageNote, m.CreatedAt); err != nil {
			return err
		}
	}
	log.Printf("Imported %d meanings", len(meanings))
	return nil
}

func (s *BackupService) importStudySessions(events []StudySessionBackup) error {
	query := `
		INSERT INTO study_sessions (id, user_id, vocabulary_id, is_correct, response_time, studied_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, e := range events {
		var rt sql.NullInt64
		if e.ResponseTime != nil {
			rt = sql.NullInt64{Int64: int64(*e.ResponseTime), Valid: true}
		}
		if _, err := s.db.Exec(query, e.ID, e.UserID, e.VocabularyID, e.IsCorrect, rt, e.StudiedAt); err != nil {
			return err
		}
	}
	log.Printf("Imported %d study sessions", len(events))
	return nil
}

func (s *BackupService) importDailyStats(stats []DailyStatsBackup) error {
	query := `
		INSERT INTO daily_stats (id, user_id, study_date, words_studied, correct_answers, total_study_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, d := range stats {
		if _, err := s.db.Exec(query, d.ID, d.UserID, d.StudyDate, d.WordsStudied, d.CorrectAnswers, d.TotalStudyTime); err != nil {
			return err
		}
	}
	log.Printf("Imported %d daily stats rows", len(stats))
	return nil
}
