package domain_test

import (
	"fmt"
	"strings"
	"testing"

	"quizly/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGeneratedQuiz() *domain.GeneratedQuiz {
	quiz := &domain.GeneratedQuiz{
		Title:       "Go Concurrency Basics",
		Description: "A quiz about goroutines and channels.",
	}
	for i := 0; i < domain.QuestionCount; i++ {
		quiz.Questions = append(quiz.Questions, domain.GeneratedQuestion{
			Title:   fmt.Sprintf("Question %d", i+1),
			Options: []string{"A", "B", "C", "D"},
			Answer:  "B",
		})
	}
	return quiz
}

func TestGeneratedQuizValidate(t *testing.T) {
	t.Run("valid quiz passes", func(t *testing.T) {
		assert.NoError(t, validGeneratedQuiz().Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		quiz := validGeneratedQuiz()
		quiz.Title = ""
		assertMalformed(t, quiz.Validate())
	})

	t.Run("description too long", func(t *testing.T) {
		quiz := validGeneratedQuiz()
		quiz.Description = strings.Repeat("x", domain.MaxDescriptionLength+1)
		assertMalformed(t, quiz.Validate())
	})

	t.Run("description at the limit passes", func(t *testing.T) {
		quiz := validGeneratedQuiz()
		quiz.Description = strings.Repeat("x", domain.MaxDescriptionLength)
		assert.NoError(t, quiz.Validate())
	})

	t.Run("too few questions", func(t *testing.T) {
		quiz := validGeneratedQuiz()
		quiz.Questions = quiz.Questions[:domain.QuestionCount-1]
		assertMalformed(t, quiz.Validate())
	})

	t.Run("too many questions", func(t *testing.T) {
		quiz := validGeneratedQuiz()
		quiz.Questions = append(quiz.Questions, quiz.Questions[0])
		assertMalformed(t, quiz.Validate())
	})

	t.Run("wrong option count", func(t *testing.T) {
		quiz := validGeneratedQuiz()
		quiz.Questions[3].Options = []string{"A", "B", "C"}
		assertMalformed(t, quiz.Validate())
	})

	t.Run("answer not among options", func(t *testing.T) {
		quiz := validGeneratedQuiz()
		quiz.Questions[7].Answer = "E"
		assertMalformed(t, quiz.Validate())
	})

	t.Run("answer appears twice among options", func(t *testing.T) {
		quiz := validGeneratedQuiz()
		quiz.Questions[2].Options = []string{"B", "B", "C", "D"}
		assertMalformed(t, quiz.Validate())
	})

	t.Run("question missing title", func(t *testing.T) {
		quiz := validGeneratedQuiz()
		quiz.Questions[0].Title = ""
		assertMalformed(t, quiz.Validate())
	})
}

func assertMalformed(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	domainErr, ok := err.(*domain.DomainError)
	require.True(t, ok, "expected a *domain.DomainError, got %T", err)
	assert.Equal(t, domain.CodeMalformedModelOutput, domainErr.Code)
}
