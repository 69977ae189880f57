package validation

import (
	"regexp"
	"strings"

	"quizly/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateRegisterRequest validates the registration payload.
func (v *Validator) ValidateRegisterRequest(username, email, password, confirmedPassword string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(username) == "" {
		errs = append(errs, domain.NewMissingFieldError("username"))
	} else if len(username) > 150 {
		errs = append(errs, domain.ValidationError{Field: "username", Message: "must be at most 150 characters"})
	}

	if strings.TrimSpace(email) == "" {
		errs = append(errs, domain.NewMissingFieldError("email"))
	} else if !emailPattern.MatchString(email) {
		errs = append(errs, domain.NewInvalidFormatError("email", email))
	}

	if password == "" {
		errs = append(errs, domain.NewMissingFieldError("password"))
	} else if len(password) < 8 {
		errs = append(errs, domain.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}

	if password != confirmedPassword {
		errs = append(errs, domain.ValidationError{Field: "confirmed_password", Message: "does not match password"})
	}

	return errs
}

// ValidateQuizUpdate validates a partial quiz update. Nil means the
// field was not supplied and stays untouched.
func (v *Validator) ValidateQuizUpdate(title, description, videoURL *string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if title == nil && description == nil && videoURL == nil {
		errs = append(errs, domain.ValidationError{Field: "body", Message: "at least one of title, description, video_url must be provided"})
		return errs
	}

	if title != nil && strings.TrimSpace(*title) == "" {
		errs = append(errs, domain.ValidationError{Field: "title", Message: "must not be empty"})
	}
	if title != nil && len(*title) > 255 {
		errs = append(errs, domain.ValidationError{Field: "title", Message: "must be at most 255 characters"})
	}
	if videoURL != nil {
		if _, err := NormalizeYouTubeURL(*videoURL); err != nil {
			errs = append(errs, domain.NewInvalidFormatError("video_url", *videoURL))
		}
	}

	return errs
}
