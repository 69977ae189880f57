package transcriber

import (
	"context"
	"fmt"

	"quizly/internal/config"
	"quizly/internal/domain"
	"quizly/internal/logger"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAITranscriber implements domain.Transcriber against the hosted
// Whisper API. The client is stateless per call and safe for
// concurrent use.
type OpenAITranscriber struct {
	client *openai.Client
	model  string
}

// NewOpenAITranscriber creates a new OpenAITranscriber instance.
func NewOpenAITranscriber(cfg config.OpenAITranscriberConfig) (*OpenAITranscriber, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}
	return &OpenAITranscriber{
		client: openai.NewClient(cfg.APIKey),
		model:  model,
	}, nil
}

// Transcribe uploads the audio file and returns the transcript text.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
	})
	if err != nil {
		logger.Get().Error("OpenAI transcription failed",
			zap.String("audio_path", audioPath),
			zap.Error(err),
		)
		return "", domain.NewTranscriptionFailedError(fmt.Errorf("openai transcription: %w", err))
	}
	if resp.Text == "" {
		return "", domain.NewTranscriptionFailedError(fmt.Errorf("empty transcript for %s", audioPath))
	}
	return resp.Text, nil
}
