package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"trivia-api/internal/domain"
)

// FlexInt decodes a JSON number or a numeric string such as "3".
// Valid is false when the value was present but not an integer.
type FlexInt struct {
	Value int64
	Valid bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	f.Value, f.Valid = v, err == nil
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// CreateQuestionRequest is the body of POST /questions
// @Description New question. category and difficulty may be numbers or numeric strings.
type CreateQuestionRequest struct {
	Question   *string  `json:"question" swaggertype:"string"`
	Answer     *string  `json:"answer" swaggertype:"string"`
	Category   *FlexInt `json:"category" swaggertype:"integer"`
	Difficulty *FlexInt `json:"difficulty" swaggertype:"integer"`
}

// SearchQuestionsRequest is the body of POST /questions/search
type SearchQuestionsRequest struct {
	SearchTerm string `json:"search_term"`
}

// QuizCategoryRequest identifies the quiz category; id 0 selects every category.
type QuizCategoryRequest struct {
	ID   *FlexInt `json:"id" swaggertype:"integer"`
	Type string   `json:"type,omitempty"`
}

// PlayQuizRequest is the body of POST /quizzes
// @Description Next quiz question request
type PlayQuizRequest struct {
	QuizCategory      *QuizCategoryRequest `json:"quiz_category"`
	PreviousQuestions []int64              `json:"previous_questions"`
}

// QuestionResponse is the formatted question
type QuestionResponse struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// CategoryResponse is the list form of a category
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// CategoriesResponse is returned by GET /categories
type CategoriesResponse struct {
	Success         bool             `json:"success"`
	Categories      map[int64]string `json:"categories"`
	TotalCategories int              `json:"total_categories"`
}

// QuestionPageResponse is returned by GET /questions
type QuestionPageResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	CurrentCategory *int64             `json:"current_category"`
	Categories      map[int64]string   `json:"categories"`
}

// CategoryQuestionsResponse is returned by GET /categories/{id}/questions
type CategoryQuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	CurrentCategory int64              `json:"current_category"`
	Categories      []CategoryResponse `json:"categories"`
}

// DeleteQuestionResponse is returned by DELETE /questions/{id}
type DeleteQuestionResponse struct {
	Success        bool  `json:"success"`
	Deleted        int64 `json:"deleted"`
	TotalQuestions int   `json:"total_questions"`
}

// CreateQuestionResponse is returned by POST /questions
type CreateQuestionResponse struct {
	Success        bool  `json:"success"`
	Created        int64 `json:"created"`
	TotalQuestions int   `json:"total_questions"`
}

// SearchQuestionsResponse is returned by POST /questions/search
type SearchQuestionsResponse struct {
	Success        bool               `json:"success"`
	Questions      []QuestionResponse `json:"questions"`
	TotalQuestions int                `json:"total_questions"`
}

// QuizResponse is returned by POST /quizzes. Question is null once the pool is exhausted.
type QuizResponse struct {
	Success  bool              `json:"success"`
	Question *QuestionResponse `json:"question"`
}

// ErrorResponse is the uniform error body
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

func ToQuestionResponse(q *domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

// ToQuestionResponses never returns nil so empty results encode as [].
func ToQuestionResponses(questions []*domain.Question) []QuestionResponse {
	out := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		out[i] = ToQuestionResponse(q)
	}
	return out
}

func ToCategoryResponses(categories []*domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = CategoryResponse{ID: c.ID, Type: c.Type}
	}
	return out
}
