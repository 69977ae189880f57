package transcriber_test

import (
	"testing"

	"quizly/internal/adapter/transcriber"
	"quizly/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAITranscriber(t *testing.T) {
	t.Run("empty api key is rejected", func(t *testing.T) {
		_, err := transcriber.NewOpenAITranscriber(config.OpenAITranscriberConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key cannot be empty")
	})

	t.Run("model defaults to whisper-1", func(t *testing.T) {
		tr, err := transcriber.NewOpenAITranscriber(config.OpenAITranscriberConfig{APIKey: "sk-test"})
		require.NoError(t, err)
		assert.NotNil(t, tr)
	})
}
