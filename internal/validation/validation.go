package validation

import (
	"fmt"
	"regexp"
)

// ValidationError describes a rejected input field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

var (
	englishWordPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.']+$`)
	emailPattern       = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const (
	// MaxResponseTime caps a single answer's response time at five minutes (ms)
	MaxResponseTime = 300000

	DefaultSessionLimit = 10
	MaxSessionLimit     = 50
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// MeaningInput is one Japanese meaning submitted with a vocabulary entry
type MeaningInput struct {
	Meaning      string `json:"meaning"`
	PartOfSpeech string `json:"part_of_speech"`
	UsageNote    string `json:"usage_note"`
}

// VocabularyRequest is the payload for creating or updating a vocabulary entry
type VocabularyRequest struct {
	EnglishWord      string         `json:"english_word"`
	ExampleSentence  string         `json:"example_sentence"`
	DifficultyLevel  int            `json:"difficulty_level"`
	JapaneseMeanings []MeaningInput `json:"japanese_meanings"`
}

// Validate checks the payload and applies defaults
func (r *VocabularyRequest) Validate() error {
	if len(r.EnglishWord) < 1 || len(r.EnglishWord) > 255 {
		return NewValidationError("english_word", "must be between 1 and 255 characters")
	}
	if !englishWordPattern.MatchString(r.EnglishWord) {
		return NewValidationError("english_word", "contains invalid characters")
	}
	if len(r.ExampleSentence) > 1000 {
		return NewValidationError("example_sentence", "must be at most 1000 characters")
	}
	if r.DifficultyLevel == 0 {
		r.DifficultyLevel = 1
	}
	if r.DifficultyLevel < 1 || r.DifficultyLevel > 5 {
		return NewValidationError("difficulty_level", "must be between 1 and 5")
	}
	if len(r.JapaneseMeanings) < 1 || len(r.JapaneseMeanings) > 10 {
		return NewValidationError("japanese_meanings", "must contain between 1 and 10 items")
	}
	for i, m := range r.JapaneseMeanings {
		field := fmt.Sprintf("japanese_meanings[%d]", i)
		if len(m.Meaning) < 1 || len(m.Meaning) > 500 {
			return NewValidationError(field+".meaning", "must be between 1 and 500 characters")
		}
		if len(m.PartOfSpeech) > 50 {
			return NewValidationError(field+".part_of_speech", "must be at most 50 characters")
		}
		if len(m.UsageNote) > 1000 {
			return NewValidationError(field+".usage_note", "must be at most 1000 characters")
		}
	}
	return nil
}

// MasteryRequest is the payload for a manual mastery-level override
type MasteryRequest struct {
	MasteryLevel int `json:"mastery_level"`
}

func (r *MasteryRequest) Validate() error {
	if r.MasteryLevel < 0 || r.MasteryLevel > 2 {
		return NewValidationError("mastery_level", "must be 0, 1 or 2")
	}
	return nil
}

// StudyResultRequest is the payload for recording one answered flashcard
type StudyResultRequest struct {
	VocabularyID int64 `json:"vocabulary_id"`
	IsCorrect    bool  `json:"is_correct"`
	ResponseTime *int  `json:"response_time"`
}

func (r *StudyResultRequest) Validate() error {
	if r.VocabularyID <= 0 {
		return NewValidationError("vocabulary_id", "must be a positive integer")
	}
	if r.ResponseTime != nil && (*r.ResponseTime < 0 || *r.ResponseTime > MaxResponseTime) {
		return NewValidationError("response_time", "must be between 0 and 300000 milliseconds")
	}
	return nil
}

// SessionLimit validates the study-session word count, applying the default
func SessionLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultSessionLimit, nil
	}
	if limit < 1 || limit > MaxSessionLimit {
		return 0, NewValidationError("limit", "must be between 1 and 50")
	}
	return limit, nil
}

// HistoryLimit validates the study-history row count, applying the default
func HistoryLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultHistoryLimit, nil
	}
	if limit < 1 || limit > MaxHistoryLimit {
		return 0, NewValidationError("limit", "must be between 1 and 200")
	}
	return limit, nil
}

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r *RegisterRequest) Validate() error {
	if !emailPattern.MatchString(r.Email) {
		return NewValidationError("email", "must be a valid email address")
	}
	if len(r.Password) < 8 {
		return NewValidationError("password", "must be at least 8 characters")
	}
	if len(r.Name) > 255 {
		return NewValidationError("name", "must be at most 255 characters")
	}
	return nil
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if !emailPattern.MatchString(r.Email) {
		return NewValidationError("email", "must be a valid email address")
	}
	if r.Password == "" {
		return NewValidationError("password", "is required")
	}
	return nil
}

// PasswordResetRequest asks for a reset email
type PasswordResetRequest struct {
	Email string `json:"email"`
}

func (r *PasswordResetRequest) Validate() error {
	if !emailPattern.MatchString(r.Email) {
		return NewValidationError("email", "must be a valid email address")
	}
	return nil
}

// PasswordResetConfirmRequest completes a reset with a token and new password
type PasswordResetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (r *PasswordResetConfirmRequest) Validate() error {
	if r.Token == "" {
		return NewValidationError("token", "is required")
	}
	if len(r.Password) < 8 {
		return NewValidationError("password", "must be at least 8 characters")
	}
	return nil
}
