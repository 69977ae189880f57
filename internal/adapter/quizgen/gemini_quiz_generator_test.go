package quizgen_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"quizly/internal/adapter/quizgen"
	"quizly/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel implements llms.Model and records the prompts it receives.
type fakeModel struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				f.prompts = append(f.prompts, text.Text)
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func validQuizJSON(t *testing.T) string {
	t.Helper()
	quiz := domain.GeneratedQuiz{
		Title:       "Go Concurrency Basics",
		Description: "Short quiz about goroutines.",
	}
	for i := 0; i < domain.QuestionCount; i++ {
		quiz.Questions = append(quiz.Questions, domain.GeneratedQuestion{
			Title:   fmt.Sprintf("Question %d", i+1),
			Options: []string{"Option A", "Option B", "Option C", "Option D"},
			Answer:  "Option C",
		})
	}
	data, err := json.Marshal(quiz)
	require.NoError(t, err)
	return string(data)
}

func TestGenerateQuiz_Success(t *testing.T) {
	model := &fakeModel{response: validQuizJSON(t)}
	generator := quizgen.NewGeminiQuizGenerator(model)

	quiz, err := generator.GenerateQuiz(context.Background(), "the transcript text")

	require.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Equal(t, "Go Concurrency Basics", quiz.Title)
	assert.Len(t, quiz.Questions, domain.QuestionCount)
	for _, q := range quiz.Questions {
		assert.Len(t, q.Options, domain.OptionCount)
		assert.Contains(t, q.Options, q.Answer)
	}
}

func TestGenerateQuiz_PromptContainsTranscriptAndContract(t *testing.T) {
	model := &fakeModel{response: validQuizJSON(t)}
	generator := quizgen.NewGeminiQuizGenerator(model)

	_, err := generator.GenerateQuiz(context.Background(), "goroutines are cheap")
	require.NoError(t, err)

	require.Len(t, model.prompts, 1)
	prompt := model.prompts[0]
	assert.Contains(t, prompt, "goroutines are cheap")
	assert.Contains(t, prompt, "EXACTLY 10 questions")
	assert.Contains(t, prompt, "exactly 4 options")
	assert.Contains(t, prompt, "question_options")
}

func TestGenerateQuiz_StripsMarkdownFences(t *testing.T) {
	fenced := "```json\n" + validQuizJSON(t) + "\n```"
	model := &fakeModel{response: fenced}
	generator := quizgen.NewGeminiQuizGenerator(model)

	quiz, err := generator.GenerateQuiz(context.Background(), "transcript")

	require.NoError(t, err)
	assert.Len(t, quiz.Questions, domain.QuestionCount)
}

func TestGenerateQuiz_ModelCallFails(t *testing.T) {
	model := &fakeModel{err: errors.New("quota exceeded")}
	generator := quizgen.NewGeminiQuizGenerator(model)

	_, err := generator.GenerateQuiz(context.Background(), "transcript")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeGenerationFailed, domainErr.Code)
}

func TestGenerateQuiz_InvalidJSON(t *testing.T) {
	model := &fakeModel{response: "I could not generate a quiz, sorry!"}
	generator := quizgen.NewGeminiQuizGenerator(model)

	_, err := generator.GenerateQuiz(context.Background(), "transcript")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeMalformedModelOutput, domainErr.Code)
}

func TestGenerateQuiz_WrongQuestionCount(t *testing.T) {
	quiz := domain.GeneratedQuiz{Title: "Too short"}
	quiz.Questions = append(quiz.Questions, domain.GeneratedQuestion{
		Title:   "Only one",
		Options: []string{"A", "B", "C", "D"},
		Answer:  "A",
	})
	data, err := json.Marshal(quiz)
	require.NoError(t, err)

	model := &fakeModel{response: string(data)}
	generator := quizgen.NewGeminiQuizGenerator(model)

	_, err = generator.GenerateQuiz(context.Background(), "transcript")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeMalformedModelOutput, domainErr.Code)
}

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, quizgen.StripMarkdownFences(tt.in))
		})
	}
}

func TestBuildPrompt_EmbedsTranscriptVerbatim(t *testing.T) {
	transcript := "line one\nline two with % signs and \"quotes\""
	prompt := quizgen.BuildPrompt(transcript)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prompt), transcript))
}
