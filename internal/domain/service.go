package domain

import "context"

// AudioAcquirer downloads the audio track of a video and returns the
// path of the local artifact. Implementations wrap an external
// downloader; the caller owns cleanup of the returned file.
type AudioAcquirer interface {
	AcquireAudio(ctx context.Context, videoURL string) (string, error)
	// Cleanup releases the artifact returned by AcquireAudio. Best effort.
	Cleanup(audioPath string)
}

// Transcriber turns a local audio file into plain text. Implementations
// are constructed once at bootstrap and must be safe for concurrent use.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// QuizGenerationService asks a language model to build a quiz from a
// transcript. The returned structure has already passed shape validation.
type QuizGenerationService interface {
	GenerateQuiz(ctx context.Context, transcript string) (*GeneratedQuiz, error)
}

// TransactionManager runs fn inside a single atomic unit of work.
// Repository calls made with the ctx passed to fn join that transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenBlacklist records revoked refresh tokens until they expire.
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, ttlSeconds int64) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
