package service

import (
	"context"
	"fmt"

	"quizly/internal/domain"
	"quizly/internal/dto"
	"quizly/internal/logger"
	"quizly/internal/repository"
	"quizly/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizService exposes the generation pipeline and the ownership-scoped
// CRUD operations over the quiz aggregate.
type QuizService interface {
	CreateQuizFromVideo(ctx context.Context, ownerID, rawURL string) (*dto.QuizResponse, error)
	ListQuizzes(ctx context.Context, ownerID string) ([]*dto.QuizResponse, error)
	GetQuiz(ctx context.Context, ownerID, quizID string) (*dto.QuizResponse, error)
	UpdateQuiz(ctx context.Context, ownerID, quizID string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error)
	DeleteQuiz(ctx context.Context, ownerID, quizID string) error
}

type quizServiceImpl struct {
	quizRepo    repository.QuizRepository
	txManager   domain.TransactionManager
	acquirer    domain.AudioAcquirer
	transcriber domain.Transcriber
	generator   domain.QuizGenerationService
	validator   *validation.Validator

	// transcripts collapses concurrent acquire+transcribe work for the
	// same normalized URL into a single download.
	transcripts singleflight.Group
}

// NewQuizService creates a new QuizService with its collaborators.
func NewQuizService(
	quizRepo repository.QuizRepository,
	txManager domain.TransactionManager,
	acquirer domain.AudioAcquirer,
	transcriber domain.Transcriber,
	generator domain.QuizGenerationService,
) QuizService {
	return &quizServiceImpl{
		quizRepo:    quizRepo,
		txManager:   txManager,
		acquirer:    acquirer,
		transcriber: transcriber,
		generator:   generator,
		validator:   validation.NewValidator(),
	}
}

// CreateQuizFromVideo runs the pipeline: normalize the URL, download
// the audio, transcribe it, generate and validate the quiz, then
// persist the whole aggregate in one transaction. Stages run strictly
// in order; every failure carries its stage-specific error code and
// aborts before the transaction opens.
func (s *quizServiceImpl) CreateQuizFromVideo(ctx context.Context, ownerID, rawURL string) (*dto.QuizResponse, error) {
	appLogger := logger.Get()

	// Normalization is the cheap gate: nothing downstream runs, and no
	// paid API is touched, until the URL has a valid video id.
	videoURL, err := validation.NormalizeYouTubeURL(rawURL)
	if err != nil {
		return nil, err
	}

	transcript, err := s.transcribeVideo(ctx, videoURL)
	if err != nil {
		return nil, err
	}
	appLogger.Info("Transcript ready",
		zap.String("video_url", videoURL),
		zap.Int("transcript_length", len(transcript)),
	)

	generated, err := s.generator.GenerateQuiz(ctx, transcript)
	if err != nil {
		return nil, err
	}

	quiz := &domain.Quiz{
		Title:       generated.Title,
		Description: generated.Description,
		VideoURL:    videoURL,
		OwnerID:     ownerID,
	}
	for _, gq := range generated.Questions {
		quiz.Questions = append(quiz.Questions, &domain.Question{
			Title:   gq.Title,
			Answer:  gq.Answer,
			Options: gq.Options,
		})
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.quizRepo.CreateQuizGraph(txCtx, quiz)
	})
	if err != nil {
		appLogger.Error("Failed to persist quiz", zap.Error(err), zap.String("video_url", videoURL))
		return nil, domain.NewInternalError("Failed to save generated quiz", err)
	}

	appLogger.Info("Quiz created",
		zap.String("quiz_id", quiz.ID),
		zap.String("owner_id", ownerID),
		zap.String("video_url", videoURL),
	)
	return dto.ToQuizResponse(quiz), nil
}

// transcribeVideo downloads and transcribes the video, deduplicating
// identical in-flight URLs. The shared work runs detached from the
// first caller's cancellation so one disconnecting client does not
// fail the others.
func (s *quizServiceImpl) transcribeVideo(ctx context.Context, videoURL string) (string, error) {
	result, err, _ := s.transcripts.Do(videoURL, func() (interface{}, error) {
		workCtx := context.WithoutCancel(ctx)

		audioPath, err := s.acquirer.AcquireAudio(workCtx, videoURL)
		if err != nil {
			return nil, err
		}
		defer s.acquirer.Cleanup(audioPath)

		return s.transcriber.Transcribe(workCtx, audioPath)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// ListQuizzes returns all quizzes owned by the caller.
func (s *quizServiceImpl) ListQuizzes(ctx context.Context, ownerID string) ([]*dto.QuizResponse, error) {
	quizzes, err := s.quizRepo.ListQuizzesByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}
	return dto.ToQuizResponses(quizzes), nil
}

// GetQuiz returns a single quiz after the ownership check.
func (s *quizServiceImpl) GetQuiz(ctx context.Context, ownerID, quizID string) (*dto.QuizResponse, error) {
	quiz, err := s.getOwnedQuiz(ctx, ownerID, quizID)
	if err != nil {
		return nil, err
	}
	return dto.ToQuizResponse(quiz), nil
}

// UpdateQuiz applies a partial update to the owner-editable fields.
// A supplied video_url is re-normalized before it is stored; questions
// are derived data and cannot be edited here.
func (s *quizServiceImpl) UpdateQuiz(ctx context.Context, ownerID, quizID string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
	if errs := s.validator.ValidateQuizUpdate(req.Title, req.Description, req.VideoURL); len(errs) > 0 {
		return nil, errs
	}

	quiz, err := s.getOwnedQuiz(ctx, ownerID, quizID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.VideoURL != nil {
		normalized, err := validation.NormalizeYouTubeURL(*req.VideoURL)
		if err != nil {
			return nil, err
		}
		quiz.VideoURL = normalized
	}

	if err := s.quizRepo.UpdateQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("Failed to update quiz", err)
	}
	return dto.ToQuizResponse(quiz), nil
}

// DeleteQuiz permanently removes an owned quiz; the cascade takes the
// questions and options with it.
func (s *quizServiceImpl) DeleteQuiz(ctx context.Context, ownerID, quizID string) error {
	if _, err := s.getOwnedQuiz(ctx, ownerID, quizID); err != nil {
		return err
	}
	if err := s.quizRepo.DeleteQuiz(ctx, quizID); err != nil {
		return domain.NewInternalError("Failed to delete quiz", err)
	}
	logger.Get().Info("Quiz deleted", zap.String("quiz_id", quizID), zap.String("owner_id", ownerID))
	return nil
}

// getOwnedQuiz loads the quiz and distinguishes "does not exist" (404)
// from "exists but belongs to someone else" (403).
func (s *quizServiceImpl) getOwnedQuiz(ctx context.Context, ownerID, quizID string) (*domain.Quiz, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Quiz %s not found", quizID))
	}
	if quiz.OwnerID != ownerID {
		return nil, domain.NewAccessDeniedError("Quiz does not belong to the authenticated user")
	}
	return quiz, nil
}
