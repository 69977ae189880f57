package validation

import (
	"regexp"

	"quizly/internal/domain"
)

// videoIDPattern matches the 11-character video identifier in the two
// supported URL shapes: a v= query parameter or the youtu.be short form.
var videoIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/)([\w-]{11})`)

// NormalizeYouTubeURL extracts the video identifier from an arbitrary
// YouTube URL and returns the canonical watch URL. Normalizing an
// already-canonical URL returns the identical string.
func NormalizeYouTubeURL(rawURL string) (string, error) {
	match := videoIDPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return "", domain.NewInvalidInputError("Invalid YouTube URL")
	}
	return "https://www.youtube.com/watch?v=" + match[1], nil
}
