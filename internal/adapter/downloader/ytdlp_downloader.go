package downloader

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"quizly/internal/config"
	"quizly/internal/domain"
	"quizly/internal/logger"

	"go.uber.org/zap"
)

// YtdlpDownloader implements domain.AudioAcquirer by shelling out to
// yt-dlp, selecting the best audio stream and transcoding it to mp3.
type YtdlpDownloader struct {
	binaryPath string
	tempDir    string
	timeout    time.Duration
}

// NewYtdlpDownloader creates a new YtdlpDownloader from config.
func NewYtdlpDownloader(cfg config.DownloaderConfig) *YtdlpDownloader {
	return &YtdlpDownloader{
		binaryPath: cfg.BinaryPath,
		tempDir:    cfg.TempDir,
		timeout:    cfg.Timeout,
	}
}

// AcquireAudio downloads the audio track of videoURL into a uniquely
// named temp directory and returns the mp3 path. On failure the temp
// directory is removed so partial downloads are not left behind.
func (d *YtdlpDownloader) AcquireAudio(ctx context.Context, videoURL string) (string, error) {
	tmpDir, err := os.MkdirTemp(d.tempDir, "quizly-audio-*")
	if err != nil {
		return "", domain.NewAcquisitionFailedError(fmt.Errorf("failed to create temp dir: %w", err))
	}

	outputTemplate := filepath.Join(tmpDir, "audio.%(ext)s")
	audioPath := filepath.Join(tmpDir, "audio.mp3")

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	// Mirrors the yt-dlp options used for transcription sources:
	// best audio, extracted to mp3, single video only.
	cmd := exec.CommandContext(ctx, d.binaryPath,
		"--format", "bestaudio/best",
		"--extract-audio",
		"--audio-format", "mp3",
		"--no-playlist",
		"--quiet",
		"--output", outputTemplate,
		videoURL,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		logger.Get().Error("yt-dlp failed",
			zap.String("video_url", videoURL),
			zap.Error(err),
			zap.ByteString("output", output),
		)
		if removeErr := os.RemoveAll(tmpDir); removeErr != nil {
			logger.Get().Warn("failed to clean up temp dir", zap.String("dir", tmpDir), zap.Error(removeErr))
		}
		return "", domain.NewAcquisitionFailedError(fmt.Errorf("yt-dlp: %w", err))
	}

	if _, err := os.Stat(audioPath); err != nil {
		if removeErr := os.RemoveAll(tmpDir); removeErr != nil {
			logger.Get().Warn("failed to clean up temp dir", zap.String("dir", tmpDir), zap.Error(removeErr))
		}
		return "", domain.NewAcquisitionFailedError(fmt.Errorf("expected audio file missing after download: %w", err))
	}

	return audioPath, nil
}

// Cleanup removes the temp directory holding audioPath. Best effort;
// a failure is logged, not propagated.
func (d *YtdlpDownloader) Cleanup(audioPath string) {
	if audioPath == "" {
		return
	}
	if err := os.RemoveAll(filepath.Dir(audioPath)); err != nil {
		logger.Get().Warn("failed to remove audio temp dir",
			zap.String("path", audioPath),
			zap.Error(err),
		)
	}
}
