package transcriber_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"quizly/internal/adapter/transcriber"
	"quizly/internal/config"
	"quizly/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWhisperCppTranscriber(t *testing.T) {
	t.Run("missing model file fails at construction", func(t *testing.T) {
		_, err := transcriber.NewWhisperCppTranscriber(config.WhisperCppConfig{
			BinaryPath: "whisper-cli",
			ModelPath:  "/nonexistent/ggml-base.en.bin",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "whisper model not found")
	})

	t.Run("existing model file succeeds", func(t *testing.T) {
		modelPath := filepath.Join(t.TempDir(), "ggml-base.en.bin")
		require.NoError(t, os.WriteFile(modelPath, []byte("fake model"), 0o644))

		tr, err := transcriber.NewWhisperCppTranscriber(config.WhisperCppConfig{
			BinaryPath: "whisper-cli",
			ModelPath:  modelPath,
		})
		require.NoError(t, err)
		assert.NotNil(t, tr)
	})
}

func TestTranscribe_BinaryFailureIsTranscriptionError(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "model.bin")
	require.NoError(t, os.WriteFile(modelPath, []byte("fake model"), 0o644))

	tr, err := transcriber.NewWhisperCppTranscriber(config.WhisperCppConfig{
		BinaryPath: "/nonexistent/whisper-cli",
		ModelPath:  modelPath,
	})
	require.NoError(t, err)

	_, err = tr.Transcribe(context.Background(), "/tmp/audio.mp3")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeTranscriptionFailed, domainErr.Code)
}

func TestTranscribe_EmptyOutputIsTranscriptionError(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "model.bin")
	require.NoError(t, os.WriteFile(modelPath, []byte("fake model"), 0o644))

	// "true" exits 0 and prints nothing, which must be rejected.
	tr, err := transcriber.NewWhisperCppTranscriber(config.WhisperCppConfig{
		BinaryPath: "true",
		ModelPath:  modelPath,
	})
	require.NoError(t, err)

	_, err = tr.Transcribe(context.Background(), "/tmp/audio.mp3")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeTranscriptionFailed, domainErr.Code)
}
