package validation

import (
	"fmt"
	"strings"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
)

// Validator checks request bodies and turns them into domain values.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreateQuestion requires every field to be present and non-null.
// Violations are unprocessable, not bad requests.
func (v *Validator) ValidateCreateQuestion(req *dto.CreateQuestionRequest) (*domain.Question, error) {
	if req == nil {
		return nil, domain.NewUnprocessableError("request body is required", nil)
	}

	var missing, invalid []string
	if req.Question == nil {
		missing = append(missing, "question")
	}
	if req.Answer == nil {
		missing = append(missing, "answer")
	}
	if req.Category == nil {
		missing = append(missing, "category")
	} else if !req.Category.Valid {
		invalid = append(invalid, "category")
	}
	if req.Difficulty == nil {
		missing = append(missing, "difficulty")
	} else if !req.Difficulty.Valid {
		invalid = append(invalid, "difficulty")
	}

	if len(missing) > 0 {
		return nil, domain.NewUnprocessableError(fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")), nil)
	}
	if len(invalid) > 0 {
		return nil, domain.NewUnprocessableError(fmt.Sprintf("fields must be integers: %s", strings.Join(invalid, ", ")), nil)
	}

	return domain.NewQuestion(*req.Question, *req.Answer, req.Category.Value, int(req.Difficulty.Value)), nil
}

// ValidateSearch returns the search term, which must be non-empty.
func (v *Validator) ValidateSearch(req *dto.SearchQuestionsRequest) (string, error) {
	if req == nil || req.SearchTerm == "" {
		return "", domain.NewBadRequestError("search_term is required")
	}
	return req.SearchTerm, nil
}

// ValidatePlayQuiz returns the quiz category id and the ids already played.
func (v *Validator) ValidatePlayQuiz(req *dto.PlayQuizRequest) (int64, []int64, error) {
	if req == nil || req.QuizCategory == nil {
		return 0, nil, domain.NewBadRequestError("quiz_category is required")
	}
	if req.PreviousQuestions == nil {
		return 0, nil, domain.NewBadRequestError("previous_questions is required")
	}
	if req.QuizCategory.ID == nil || !req.QuizCategory.ID.Valid {
		return 0, nil, domain.NewBadRequestError("quiz_category.id must be an integer")
	}
	return req.QuizCategory.ID.Value, req.PreviousQuestions, nil
}
