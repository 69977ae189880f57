package transcriber

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"quizly/internal/config"
	"quizly/internal/domain"
	"quizly/internal/logger"

	"go.uber.org/zap"
)

// WhisperCppTranscriber implements domain.Transcriber by invoking a
// local whisper.cpp binary. The model file is resolved once at
// construction; the binary memory-maps it per invocation, so one
// instance serves concurrent requests without shared mutable state.
type WhisperCppTranscriber struct {
	binaryPath string
	modelPath  string
	language   string
}

// NewWhisperCppTranscriber verifies the model file exists and returns
// a ready transcriber. Failing here turns a missing model into a
// startup error instead of a per-request one.
func NewWhisperCppTranscriber(cfg config.WhisperCppConfig) (*WhisperCppTranscriber, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("whisper model not found at %s: %w", cfg.ModelPath, err)
	}
	logger.Get().Info("Whisper model resolved",
		zap.String("binary", cfg.BinaryPath),
		zap.String("model", cfg.ModelPath),
	)
	return &WhisperCppTranscriber{
		binaryPath: cfg.BinaryPath,
		modelPath:  cfg.ModelPath,
		language:   cfg.Language,
	}, nil
}

// Transcribe runs whisper.cpp over the audio file and returns the
// plain-text transcript, untruncated.
func (t *WhisperCppTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	args := []string{
		"--model", t.modelPath,
		"--file", audioPath,
		"--no-timestamps",
	}
	if t.language != "" {
		args = append(args, "--language", t.language)
	}

	cmd := exec.CommandContext(ctx, t.binaryPath, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logger.Get().Error("whisper.cpp failed",
			zap.String("audio_path", audioPath),
			zap.Error(err),
			zap.String("stderr", stderr.String()),
		)
		return "", domain.NewTranscriptionFailedError(fmt.Errorf("whisper: %w", err))
	}

	transcript := strings.TrimSpace(stdout.String())
	if transcript == "" {
		return "", domain.NewTranscriptionFailedError(fmt.Errorf("whisper produced no output for %s", audioPath))
	}
	return transcript, nil
}
