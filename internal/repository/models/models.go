package models

import "time"

// User row in the users table.
type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Quiz row in the quizzes table.
type Quiz struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	VideoURL    string    `db:"video_url"`
	OwnerID     string    `db:"owner_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Question row in the questions table.
type Question struct {
	ID            string    `db:"id"`
	QuizID        string    `db:"quiz_id"`
	QuestionTitle string    `db:"question_title"`
	Answer        string    `db:"answer"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// QuestionOption row in the question_options table.
type QuestionOption struct {
	ID         string `db:"id"`
	QuestionID string `db:"question_id"`
	OptionText string `db:"option_text"`
}
