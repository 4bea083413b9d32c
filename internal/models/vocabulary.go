package models

import "time"

// Mastery levels for a vocabulary entry, derived from recent answer accuracy
const (
	MasteryUnlearned = 0
	MasteryLearning  = 1
	MasteryMastered  = 2
)

// Vocabulary represents an English word registered by a user
type Vocabulary struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	EnglishWord     string    `json:"english_word"`
	ExampleSentence string    `json:"example_sentence,omitempty"`
	DifficultyLevel int       `json:"difficulty_level"`
	MasteryLevel    int       `json:"mastery_level"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// JapaneseMeaning represents one Japanese translation of a vocabulary entry
type JapaneseMeaning struct {
	ID           int64     `json:"id"`
	VocabularyID int64     `json:"vocabulary_id"`
	Meaning      string    `json:"meaning"`
	PartOfSpeech string    `json:"part_of_speech,omitempty"`
	UsageNote    string    `json:"usage_note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// VocabularyWithMeanings bundles a vocabulary entry with its meanings
type VocabularyWithMeanings struct {
	Vocabulary
	JapaneseMeanings []JapaneseMeaning `json:"japanese_meanings"`
}
