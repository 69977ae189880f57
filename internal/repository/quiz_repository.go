package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizly/internal/domain"
	"quizly/internal/repository/models"
	"quizly/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuizRepository defines the data operations for the quiz aggregate.
type QuizRepository interface {
	CreateQuizGraph(ctx context.Context, quiz *domain.Quiz) error
	GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error)
	ListQuizzesByOwner(ctx context.Context, ownerID string) ([]*domain.Quiz, error)
	UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error
	DeleteQuiz(ctx context.Context, id string) error
}

// QuizDatabaseAdapter implements QuizRepository using sqlx.
type QuizDatabaseAdapter struct {
	db DBTX
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter.
func NewQuizDatabaseAdapter(db *sqlx.DB) QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// CreateQuizGraph inserts the quiz with all of its questions and
// options. It does not open a transaction itself: callers wrap it in
// TransactionManager.WithTransaction so the graph is all-or-nothing.
func (a *QuizDatabaseAdapter) CreateQuizGraph(ctx context.Context, quiz *domain.Quiz) error {
	exec := GetExecutor(ctx, a.db)
	now := time.Now()

	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	quizRow := &models.Quiz{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		VideoURL:    quiz.VideoURL,
		OwnerID:     quiz.OwnerID,
		CreatedAt:   quiz.CreatedAt,
		UpdatedAt:   quiz.UpdatedAt,
	}

	const insertQuiz = `INSERT INTO quizzes (id, title, description, video_url, owner_id, created_at, updated_at)
		VALUES (:id, :title, :description, :video_url, :owner_id, :created_at, :updated_at)`
	if _, err := exec.NamedExecContext(ctx, insertQuiz, quizRow); err != nil {
		return fmt.Errorf("failed to insert quiz: %w", err)
	}

	const insertQuestion = `INSERT INTO questions (id, quiz_id, question_title, answer, created_at, updated_at)
		VALUES (:id, :quiz_id, :question_title, :answer, :created_at, :updated_at)`
	const insertOption = `INSERT INTO question_options (id, question_id, option_text)
		VALUES (:id, :question_id, :option_text)`

	for _, question := range quiz.Questions {
		if question.ID == "" {
			question.ID = util.NewULID()
		}
		question.QuizID = quiz.ID
		question.CreatedAt = now
		question.UpdatedAt = now

		questionRow := &models.Question{
			ID:            question.ID,
			QuizID:        question.QuizID,
			QuestionTitle: question.Title,
			Answer:        question.Answer,
			CreatedAt:     question.CreatedAt,
			UpdatedAt:     question.UpdatedAt,
		}
		if _, err := exec.NamedExecContext(ctx, insertQuestion, questionRow); err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}

		for _, optionText := range question.Options {
			optionRow := &models.QuestionOption{
				ID:         util.NewULID(),
				QuestionID: question.ID,
				OptionText: optionText,
			}
			if _, err := exec.NamedExecContext(ctx, insertOption, optionRow); err != nil {
				return fmt.Errorf("failed to insert question option: %w", err)
			}
		}
	}

	return nil
}

// GetQuizByID returns the quiz aggregate with questions and options,
// or (nil, nil) when no quiz with that id exists.
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var quizRow models.Quiz
	const query = `SELECT id, title, description, video_url, owner_id, created_at, updated_at
		FROM quizzes WHERE id = ?`
	if err := exec.GetContext(ctx, &quizRow, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by id %s: %w", id, err)
	}

	quiz := toDomainQuiz(&quizRow)
	if err := a.loadQuestions(ctx, exec, []*domain.Quiz{quiz}); err != nil {
		return nil, err
	}
	return quiz, nil
}

// ListQuizzesByOwner returns all quizzes owned by ownerID, newest first.
func (a *QuizDatabaseAdapter) ListQuizzesByOwner(ctx context.Context, ownerID string) ([]*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var quizRows []models.Quiz
	const query = `SELECT id, title, description, video_url, owner_id, created_at, updated_at
		FROM quizzes WHERE owner_id = ? ORDER BY created_at DESC, id DESC`
	if err := exec.SelectContext(ctx, &quizRows, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list quizzes for owner %s: %w", ownerID, err)
	}

	quizzes := make([]*domain.Quiz, 0, len(quizRows))
	for i := range quizRows {
		quizzes = append(quizzes, toDomainQuiz(&quizRows[i]))
	}
	if err := a.loadQuestions(ctx, exec, quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// UpdateQuiz persists owner-editable fields (title, description, video
// URL). Questions are derived data and are never updated this way.
func (a *QuizDatabaseAdapter) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	exec := GetExecutor(ctx, a.db)
	quiz.UpdatedAt = time.Now()

	const query = `UPDATE quizzes SET title = ?, description = ?, video_url = ?, updated_at = ?
		WHERE id = ?`
	result, err := exec.ExecContext(ctx, query,
		quiz.Title, quiz.Description, quiz.VideoURL, quiz.UpdatedAt, quiz.ID)
	if err != nil {
		return fmt.Errorf("failed to update quiz %s: %w", quiz.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("Quiz %s not found", quiz.ID))
	}
	return nil
}

// DeleteQuiz removes the quiz; questions and options go with it via
// the ON DELETE CASCADE constraints.
func (a *QuizDatabaseAdapter) DeleteQuiz(ctx context.Context, id string) error {
	exec := GetExecutor(ctx, a.db)

	result, err := exec.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quiz %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("Quiz %s not found", id))
	}
	return nil
}

// loadQuestions attaches questions and options to the given quizzes
// with one IN query per table.
func (a *QuizDatabaseAdapter) loadQuestions(ctx context.Context, exec DBTX, quizzes []*domain.Quiz) error {
	if len(quizzes) == 0 {
		return nil
	}

	quizIDs := make([]string, len(quizzes))
	byQuizID := make(map[string]*domain.Quiz, len(quizzes))
	for i, quiz := range quizzes {
		quizIDs[i] = quiz.ID
		byQuizID[quiz.ID] = quiz
	}

	query, args, err := sqlx.In(`SELECT id, quiz_id, question_title, answer, created_at, updated_at
		FROM questions WHERE quiz_id IN (?) ORDER BY id`, quizIDs)
	if err != nil {
		return fmt.Errorf("failed to build questions query: %w", err)
	}
	var questionRows []models.Question
	if err := exec.SelectContext(ctx, &questionRows, exec.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load questions: %w", err)
	}
	if len(questionRows) == 0 {
		return nil
	}

	questionIDs := make([]string, len(questionRows))
	byQuestionID := make(map[string]*domain.Question, len(questionRows))
	for i := range questionRows {
		row := &questionRows[i]
		question := &domain.Question{
			ID:        row.ID,
			QuizID:    row.QuizID,
			Title:     row.QuestionTitle,
			Answer:    row.Answer,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
		byQuizID[row.QuizID].Questions = append(byQuizID[row.QuizID].Questions, question)
		questionIDs[i] = row.ID
		byQuestionID[row.ID] = question
	}

	query, args, err = sqlx.In(`SELECT id, question_id, option_text
		FROM question_options WHERE question_id IN (?) ORDER BY id`, questionIDs)
	if err != nil {
		return fmt.Errorf("failed to build options query: %w", err)
	}
	var optionRows []models.QuestionOption
	if err := exec.SelectContext(ctx, &optionRows, exec.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load question options: %w", err)
	}
	for i := range optionRows {
		row := &optionRows[i]
		question := byQuestionID[row.QuestionID]
		question.Options = append(question.Options, row.OptionText)
	}

	return nil
}

func toDomainQuiz(row *models.Quiz) *domain.Quiz {
	return &domain.Quiz{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		VideoURL:    row.VideoURL,
		OwnerID:     row.OwnerID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
