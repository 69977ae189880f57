package downloader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"quizly/internal/adapter/downloader"
	"quizly/internal/config"
	"quizly/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAudio_BinaryFailureCleansUp(t *testing.T) {
	tempDir := t.TempDir()
	d := downloader.NewYtdlpDownloader(config.DownloaderConfig{
		BinaryPath: "/nonexistent/yt-dlp",
		TempDir:    tempDir,
		Timeout:    5 * time.Second,
	})

	_, err := d.AcquireAudio(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeAcquisitionFailed, domainErr.Code)

	// The per-download temp directory must not survive the failure.
	entries, readErr := os.ReadDir(tempDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestAcquireAudio_MissingOutputIsAcquisitionError(t *testing.T) {
	tempDir := t.TempDir()
	// "true" exits 0 without producing audio.mp3.
	d := downloader.NewYtdlpDownloader(config.DownloaderConfig{
		BinaryPath: "true",
		TempDir:    tempDir,
		Timeout:    5 * time.Second,
	})

	_, err := d.AcquireAudio(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeAcquisitionFailed, domainErr.Code)
	assert.Contains(t, err.Error(), "audio file missing")
}

func TestCleanup(t *testing.T) {
	d := downloader.NewYtdlpDownloader(config.DownloaderConfig{BinaryPath: "yt-dlp"})

	t.Run("removes the directory holding the audio file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "quizly-audio-test")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		audioPath := filepath.Join(dir, "audio.mp3")
		require.NoError(t, os.WriteFile(audioPath, []byte("mp3"), 0o644))

		d.Cleanup(audioPath)

		_, err := os.Stat(dir)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		d.Cleanup("")
	})
}
