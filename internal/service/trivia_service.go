package service

import (
	"context"
	"errors"
	"math/rand/v2"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/util"
	"trivia-api/internal/validation"

	"go.uber.org/zap"
)

// TriviaService defines the operations behind the trivia HTTP API
type TriviaService interface {
	ListCategories(ctx context.Context) (*dto.CategoriesResponse, error)
	ListQuestions(ctx context.Context, page int) (*dto.QuestionPageResponse, error)
	DeleteQuestion(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error)
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error)
	SearchQuestions(ctx context.Context, req *dto.SearchQuestionsRequest) (*dto.SearchQuestionsResponse, error)
	QuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error)
	PlayQuiz(ctx context.Context, req *dto.PlayQuizRequest) (*dto.QuizResponse, error)
}

// PickFunc returns an index in [0, n). n is always positive.
type PickFunc func(n int) int

type triviaService struct {
	categories domain.CategoryRepository
	questions  domain.QuestionRepository
	tx         domain.TransactionManager
	validator  *validation.Validator
	pick       PickFunc
}

// Option configures a TriviaService
type Option func(*triviaService)

// WithPicker replaces the uniform random choice used by PlayQuiz.
func WithPicker(pick PickFunc) Option {
	return func(s *triviaService) {
		s.pick = pick
	}
}

// NewTriviaService creates a new instance of the trivia service
func NewTriviaService(
	categories domain.CategoryRepository,
	questions domain.QuestionRepository,
	tx domain.TransactionManager,
	opts ...Option,
) TriviaService {
	s := &triviaService{
		categories: categories,
		questions:  questions,
		tx:         tx,
		validator:  validation.NewValidator(),
		pick:       rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCategories implements TriviaService
func (s *triviaService) ListCategories(ctx context.Context) (*dto.CategoriesResponse, error) {
	categories, err := s.categories.ListCategories(ctx, domain.CategoryOrderByID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list categories", err)
	}
	if len(categories) == 0 {
		return nil, domain.NewNotFoundError("no categories found")
	}

	return &dto.CategoriesResponse{
		Success:         true,
		Categories:      domain.CategoryTypes(categories),
		TotalCategories: len(categories),
	}, nil
}

// ListQuestions implements TriviaService
func (s *triviaService) ListQuestions(ctx context.Context, page int) (*dto.QuestionPageResponse, error) {
	questions, err := s.questions.ListQuestions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list questions", err)
	}

	current := util.Paginate(questions, page)
	if len(current) == 0 {
		return nil, domain.NewNotFoundError("no questions on this page")
	}

	categories, err := s.categories.ListCategories(ctx, domain.CategoryOrderByID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list categories", err)
	}

	return &dto.QuestionPageResponse{
		Success:         true,
		Questions:       dto.ToQuestionResponses(current),
		TotalQuestions:  len(questions),
		CurrentCategory: nil,
		Categories:      domain.CategoryTypes(categories),
	}, nil
}

// DeleteQuestion implements TriviaService. A missing id is unprocessable, not not-found.
func (s *triviaService) DeleteQuestion(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error) {
	var total int
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		question, err := s.questions.FindQuestion(ctx, id)
		if err != nil {
			return err
		}
		if question == nil {
			return domain.NewQuestionNotFoundError(id)
		}
		if err := s.questions.DeleteQuestion(ctx, id); err != nil {
			return err
		}
		total, err = s.questions.CountQuestions(ctx)
		return err
	})
	if err != nil {
		return nil, asDomainError(err, "failed to delete question")
	}

	logger.Get().Info("Question deleted", zap.Int64("id", id), zap.Int("total_questions", total))
	return &dto.DeleteQuestionResponse{
		Success:        true,
		Deleted:        id,
		TotalQuestions: total,
	}, nil
}

// CreateQuestion implements TriviaService
func (s *triviaService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error) {
	question, err := s.validator.ValidateCreateQuestion(req)
	if err != nil {
		return nil, err
	}

	var total int
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.questions.CreateQuestion(ctx, question); err != nil {
			return err
		}
		var err error
		total, err = s.questions.CountQuestions(ctx)
		return err
	})
	if err != nil {
		return nil, asDomainError(err, "failed to create question")
	}

	logger.Get().Info("Question created",
		zap.Int64("id", question.ID),
		zap.Int64("category", question.Category),
		zap.Int("total_questions", total))
	return &dto.CreateQuestionResponse{
		Success:        true,
		Created:        question.ID,
		TotalQuestions: total,
	}, nil
}

// SearchQuestions implements TriviaService. Storage faults surface as unprocessable.
func (s *triviaService) SearchQuestions(ctx context.Context, req *dto.SearchQuestionsRequest) (*dto.SearchQuestionsResponse, error) {
	term, err := s.validator.ValidateSearch(req)
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.SearchQuestions(ctx, term)
	if err != nil {
		return nil, domain.NewUnprocessableError("failed to search questions", err)
	}

	return &dto.SearchQuestionsResponse{
		Success:        true,
		Questions:      dto.ToQuestionResponses(questions),
		TotalQuestions: len(questions),
	}, nil
}

// QuestionsByCategory implements TriviaService.
// total_questions counts every stored question, not only the category's.
func (s *triviaService) QuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error) {
	questions, err := s.questions.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list questions by category", err)
	}

	current := util.Paginate(questions, page)
	if len(current) == 0 {
		return nil, domain.NewNotFoundError("no questions for this category page")
	}

	categories, err := s.categories.ListCategories(ctx, domain.CategoryOrderByType)
	if err != nil {
		return nil, domain.NewInternalError("failed to list categories", err)
	}

	total, err := s.questions.CountQuestions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to count questions", err)
	}

	return &dto.CategoryQuestionsResponse{
		Success:         true,
		Questions:       dto.ToQuestionResponses(current),
		TotalQuestions:  total,
		CurrentCategory: categoryID,
		Categories:      dto.ToCategoryResponses(categories),
	}, nil
}

// PlayQuiz implements TriviaService
func (s *triviaService) PlayQuiz(ctx context.Context, req *dto.PlayQuizRequest) (*dto.QuizResponse, error) {
	categoryID, previous, err := s.validator.ValidatePlayQuiz(req)
	if err != nil {
		return nil, err
	}

	candidates, err := s.questions.ListQuizCandidates(ctx, categoryID, previous)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quiz candidates", err)
	}

	resp := &dto.QuizResponse{Success: true}
	if len(candidates) > 0 {
		q := dto.ToQuestionResponse(candidates[s.pick(len(candidates))])
		resp.Question = &q
	}
	return resp, nil
}

func asDomainError(err error, message string) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return domain.NewInternalError(message, err)
}
