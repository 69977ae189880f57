package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quizly/internal/config"
	"quizly/internal/domain"
	"quizly/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// GeminiQuizGenerator implements domain.QuizGenerationService using a
// langchaingo model client. All "trust but verify" parsing of the
// model output lives here so the persistence layer can assume a
// validated shape.
type GeminiQuizGenerator struct {
	llm llms.Model
}

// NewGoogleAIModel constructs the Gemini client from config. The API
// key was already checked at startup.
func NewGoogleAIModel(ctx context.Context, cfg config.LLMConfig) (llms.Model, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return llm, nil
}

// NewGeminiQuizGenerator creates a generator backed by the given model.
// Tests substitute a fake llms.Model here.
func NewGeminiQuizGenerator(llm llms.Model) domain.QuizGenerationService {
	return &GeminiQuizGenerator{llm: llm}
}

// GenerateQuiz builds the prompt, invokes the model, strips any
// markdown fencing, parses the JSON and validates the shape. A call
// error is GENERATION_FAILED; anything wrong with the response body is
// MALFORMED_MODEL_OUTPUT.
func (g *GeminiQuizGenerator) GenerateQuiz(ctx context.Context, transcript string) (*domain.GeneratedQuiz, error) {
	prompt := BuildPrompt(transcript)

	rawText, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		logger.Get().Error("LLM call failed", zap.Error(err))
		return nil, domain.NewGenerationFailedError(err)
	}

	cleaned := StripMarkdownFences(rawText)

	var quiz domain.GeneratedQuiz
	if err := json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		logger.Get().Error("Failed to parse model response as JSON",
			zap.Error(err),
			zap.String("response_snippet", snippet(cleaned, 300)),
		)
		return nil, domain.NewMalformedModelOutputError("Model response is not valid JSON", err)
	}

	if err := quiz.Validate(); err != nil {
		logger.Get().Error("Model response violates the quiz contract", zap.Error(err))
		return nil, err
	}

	return &quiz, nil
}

// StripMarkdownFences removes ```json / ``` fencing tokens and
// surrounding whitespace from a model response. Models emit fences
// despite being told not to; the contract tolerates it.
func StripMarkdownFences(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
