package dto

import (
	"time"

	"quizly/internal/domain"
)

// CreateQuizRequest is the body for POST /createQuiz/.
type CreateQuizRequest struct {
	URL string `json:"url"`
}

// UpdateQuizRequest is the partial-update body for PATCH /quizzes/{id}/.
// Nil fields are left unchanged.
type UpdateQuizRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VideoURL    *string `json:"video_url"`
}

// QuestionResponse represents a question in the API response.
type QuestionResponse struct {
	ID              string    `json:"id"`
	QuestionTitle   string    `json:"question_title"`
	QuestionOptions []string  `json:"question_options"`
	Answer          string    `json:"answer"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// QuizResponse represents a quiz with its questions in the API response.
type QuizResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	VideoURL    string             `json:"video_url"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Questions   []QuestionResponse `json:"questions"`
}

// ToQuizResponse converts the domain aggregate to its API shape.
func ToQuizResponse(quiz *domain.Quiz) *QuizResponse {
	questions := make([]QuestionResponse, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, QuestionResponse{
			ID:              q.ID,
			QuestionTitle:   q.Title,
			QuestionOptions: q.Options,
			Answer:          q.Answer,
			CreatedAt:       q.CreatedAt,
			UpdatedAt:       q.UpdatedAt,
		})
	}
	return &QuizResponse{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		VideoURL:    quiz.VideoURL,
		CreatedAt:   quiz.CreatedAt,
		UpdatedAt:   quiz.UpdatedAt,
		Questions:   questions,
	}
}

// ToQuizResponses converts a list of quizzes.
func ToQuizResponses(quizzes []*domain.Quiz) []*QuizResponse {
	responses := make([]*QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, ToQuizResponse(quiz))
	}
	return responses
}
