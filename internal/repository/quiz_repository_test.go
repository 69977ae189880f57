package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"quizly/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupQuizTestDB creates a new sqlx.DB instance and sqlmock for quiz repository testing.
func setupQuizTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func sampleQuiz(questionCount int) *domain.Quiz {
	quiz := &domain.Quiz{
		Title:       "Test Quiz",
		Description: "About testing",
		VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		OwnerID:     "owner1",
	}
	for i := 0; i < questionCount; i++ {
		quiz.Questions = append(quiz.Questions, &domain.Question{
			Title:   "Q",
			Answer:  "B",
			Options: []string{"A", "B", "C", "D"},
		})
	}
	return quiz
}

func TestCreateQuizGraph_InsertsFullGraph(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewQuizDatabaseAdapter(db)

	quiz := sampleQuiz(2)

	mock.ExpectExec("INSERT INTO quizzes").WillReturnResult(sqlmock.NewResult(0, 1))
	for range quiz.Questions {
		mock.ExpectExec("INSERT INTO questions").WillReturnResult(sqlmock.NewResult(0, 1))
		for i := 0; i < 4; i++ {
			mock.ExpectExec("INSERT INTO question_options").WillReturnResult(sqlmock.NewResult(0, 1))
		}
	}

	err := repo.CreateQuizGraph(context.Background(), quiz)

	require.NoError(t, err)
	assert.NotEmpty(t, quiz.ID)
	for _, q := range quiz.Questions {
		assert.NotEmpty(t, q.ID)
		assert.Equal(t, quiz.ID, q.QuizID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateQuizGraph_StopsOnQuestionInsertFailure(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewQuizDatabaseAdapter(db)

	quiz := sampleQuiz(2)

	mock.ExpectExec("INSERT INTO quizzes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO questions").WillReturnError(errors.New("disk I/O error"))

	err := repo.CreateQuizGraph(context.Background(), quiz)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert question")
	// No option insert may run after the failure.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuizByID_NotFound(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectQuery("SELECT (.+) FROM quizzes").WillReturnError(sql.ErrNoRows)

	quiz, err := repo.GetQuizByID(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, quiz)
}

func TestGetQuizByID_LoadsQuestionsAndOptions(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewQuizDatabaseAdapter(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM quizzes").
		WithArgs("quiz1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "video_url", "owner_id", "created_at", "updated_at"}).
			AddRow("quiz1", "Title", "Desc", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "owner1", now, now))

	mock.ExpectQuery("SELECT (.+) FROM questions").
		WillReturnRows(sqlmock.NewRows([]string{"id", "quiz_id", "question_title", "answer", "created_at", "updated_at"}).
			AddRow("q1", "quiz1", "First question", "B", now, now).
			AddRow("q2", "quiz1", "Second question", "D", now, now))

	optionRows := sqlmock.NewRows([]string{"id", "question_id", "option_text"})
	for i, opt := range []string{"A", "B", "C", "D"} {
		optionRows.AddRow(string(rune('a'+i)), "q1", opt)
	}
	for i, opt := range []string{"A", "B", "C", "D"} {
		optionRows.AddRow(string(rune('e'+i)), "q2", opt)
	}
	mock.ExpectQuery("SELECT (.+) FROM question_options").WillReturnRows(optionRows)

	quiz, err := repo.GetQuizByID(context.Background(), "quiz1")

	require.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Equal(t, "owner1", quiz.OwnerID)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, "First question", quiz.Questions[0].Title)
	assert.Equal(t, []string{"A", "B", "C", "D"}, quiz.Questions[0].Options)
	assert.Equal(t, "D", quiz.Questions[1].Answer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListQuizzesByOwner_Empty(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectQuery("SELECT (.+) FROM quizzes").
		WithArgs("owner1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "video_url", "owner_id", "created_at", "updated_at"}))

	quizzes, err := repo.ListQuizzesByOwner(context.Background(), "owner1")

	require.NoError(t, err)
	assert.Empty(t, quizzes)
	// No question query fires for an empty result.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateQuiz_NotFound(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec("UPDATE quizzes").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateQuiz(context.Background(), &domain.Quiz{ID: "missing", Title: "t"})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestUpdateQuiz_Success(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec("UPDATE quizzes").WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateQuiz(context.Background(), &domain.Quiz{ID: "quiz1", Title: "New title"})
	assert.NoError(t, err)
}

func TestDeleteQuiz(t *testing.T) {
	t.Run("deletes existing quiz", func(t *testing.T) {
		db, mock := setupQuizTestDB(t)
		defer db.Close()
		repo := NewQuizDatabaseAdapter(db)

		mock.ExpectExec("DELETE FROM quizzes").WithArgs("quiz1").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteQuiz(context.Background(), "quiz1"))
	})

	t.Run("missing quiz is NOT_FOUND", func(t *testing.T) {
		db, mock := setupQuizTestDB(t)
		defer db.Close()
		repo := NewQuizDatabaseAdapter(db)

		mock.ExpectExec("DELETE FROM quizzes").WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteQuiz(context.Background(), "missing")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeNotFound, domainErr.Code)
	})
}
