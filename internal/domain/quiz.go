package domain

import (
	"fmt"
	"time"
)

const (
	// QuestionCount is the number of questions a generated quiz must contain.
	QuestionCount = 10
	// OptionCount is the number of options every question must carry.
	OptionCount = 4
	// MaxDescriptionLength caps the quiz description produced by the model.
	MaxDescriptionLength = 150
)

// Quiz is the aggregate root: a quiz together with its questions.
// OwnerID is set once at creation and never changes.
type Quiz struct {
	ID          string
	Title       string
	Description string
	VideoURL    string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Questions   []*Question
}

// Question belongs to exactly one quiz. Options carry the four
// candidate answers; Answer holds the correct one.
type Question struct {
	ID        string
	QuizID    string
	Title     string
	Answer    string
	Options   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GeneratedQuiz is the validated result of the language model call,
// before it has been persisted or attributed to an owner.
type GeneratedQuiz struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Questions   []GeneratedQuestion `json:"questions"`
}

type GeneratedQuestion struct {
	Title   string   `json:"question_title"`
	Options []string `json:"question_options"`
	Answer  string   `json:"answer"`
}

// Validate enforces the model output contract: exactly ten questions,
// four options each, and every answer present among its own options.
// A violation means the model response must be rejected, never persisted.
func (g *GeneratedQuiz) Validate() error {
	if g.Title == "" {
		return NewMalformedModelOutputError("model response is missing a quiz title", nil)
	}
	if len(g.Description) > MaxDescriptionLength {
		return NewMalformedModelOutputError(
			fmt.Sprintf("quiz description exceeds %d characters", MaxDescriptionLength), nil)
	}
	if len(g.Questions) != QuestionCount {
		return NewMalformedModelOutputError(
			fmt.Sprintf("expected exactly %d questions, got %d", QuestionCount, len(g.Questions)), nil)
	}
	for i, q := range g.Questions {
		if q.Title == "" {
			return NewMalformedModelOutputError(
				fmt.Sprintf("question %d is missing a title", i+1), nil)
		}
		if len(q.Options) != OptionCount {
			return NewMalformedModelOutputError(
				fmt.Sprintf("question %d has %d options, expected exactly %d", i+1, len(q.Options), OptionCount), nil)
		}
		matches := 0
		for _, opt := range q.Options {
			if opt == q.Answer {
				matches++
			}
		}
		if matches != 1 {
			return NewMalformedModelOutputError(
				fmt.Sprintf("question %d: answer must appear exactly once among its options", i+1), nil)
		}
	}
	return nil
}
