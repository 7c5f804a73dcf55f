package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/handler"
	"trivia-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTriviaService is a mock implementation of service.TriviaService
type MockTriviaService struct {
	ListCategoriesFunc      func(ctx context.Context) (*dto.CategoriesResponse, error)
	ListQuestionsFunc       func(ctx context.Context, page int) (*dto.QuestionPageResponse, error)
	DeleteQuestionFunc      func(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error)
	CreateQuestionFunc      func(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error)
	SearchQuestionsFunc     func(ctx context.Context, req *dto.SearchQuestionsRequest) (*dto.SearchQuestionsResponse, error)
	QuestionsByCategoryFunc func(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error)
	PlayQuizFunc            func(ctx context.Context, req *dto.PlayQuizRequest) (*dto.QuizResponse, error)
}

func (m *MockTriviaService) ListCategories(ctx context.Context) (*dto.CategoriesResponse, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	return nil, errors.New("ListCategoriesFunc not implemented")
}

func (m *MockTriviaService) ListQuestions(ctx context.Context, page int) (*dto.QuestionPageResponse, error) {
	if m.ListQuestionsFunc != nil {
		return m.ListQuestionsFunc(ctx, page)
	}
	return nil, errors.New("ListQuestionsFunc not implemented")
}

func (m *MockTriviaService) DeleteQuestion(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error) {
	if m.DeleteQuestionFunc != nil {
		return m.DeleteQuestionFunc(ctx, id)
	}
	return nil, errors.New("DeleteQuestionFunc not implemented")
}

func (m *MockTriviaService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error) {
	if m.CreateQuestionFunc != nil {
		return m.CreateQuestionFunc(ctx, req)
	}
	return nil, errors.New("CreateQuestionFunc not implemented")
}

func (m *MockTriviaService) SearchQuestions(ctx context.Context, req *dto.SearchQuestionsRequest) (*dto.SearchQuestionsResponse, error) {
	if m.SearchQuestionsFunc != nil {
		return m.SearchQuestionsFunc(ctx, req)
	}
	return nil, errors.New("SearchQuestionsFunc not implemented")
}

func (m *MockTriviaService) QuestionsByCategory(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error) {
	if m.QuestionsByCategoryFunc != nil {
		return m.QuestionsByCategoryFunc(ctx, categoryID, page)
	}
	return nil, errors.New("QuestionsByCategoryFunc not implemented")
}

func (m *MockTriviaService) PlayQuiz(ctx context.Context, req *dto.PlayQuizRequest) (*dto.QuizResponse, error) {
	if m.PlayQuizFunc != nil {
		return m.PlayQuizFunc(ctx, req)
	}
	return nil, errors.New("PlayQuizFunc not implemented")
}

func setupApp(svc *MockTriviaService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewTriviaHandler(svc)
	app.Get("/categories", h.GetCategories)
	app.Get("/categories/:id<int>/questions", h.GetCategoryQuestions)
	app.Get("/questions", h.GetQuestions)
	app.Post("/questions", h.CreateQuestion)
	app.Delete("/questions/:id<int>", h.DeleteQuestion)
	app.Post("/questions/search", h.SearchQuestions)
	app.Post("/quizzes", h.PlayQuiz)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func assertError(t *testing.T, raw []byte, status int) {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	assert.False(t, out.Success)
	assert.Equal(t, status, out.Error)
	assert.NotEmpty(t, out.Message)
}

func TestGetCategories(t *testing.T) {
	svc := &MockTriviaService{
		ListCategoriesFunc: func(ctx context.Context) (*dto.CategoriesResponse, error) {
			return &dto.CategoriesResponse{
				Success:         true,
				Categories:      map[int64]string{1: "Science", 2: "Art"},
				TotalCategories: 2,
			}, nil
		},
	}

	resp, raw := doRequest(t, setupApp(svc), http.MethodGet, "/categories", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true,"categories":{"1":"Science","2":"Art"},"total_categories":2}`, string(raw))
}

func TestGetCategories_Empty(t *testing.T) {
	svc := &MockTriviaService{
		ListCategoriesFunc: func(ctx context.Context) (*dto.CategoriesResponse, error) {
			return nil, domain.NewNotFoundError("no categories found")
		},
	}

	resp, raw := doRequest(t, setupApp(svc), http.MethodGet, "/categories", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assertError(t, raw, http.StatusNotFound)
}

func TestGetQuestions_PageParsing(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantPage int
	}{
		{name: "default page", target: "/questions", wantPage: 1},
		{name: "explicit page", target: "/questions?page=3", wantPage: 3},
		{name: "non-numeric page falls back", target: "/questions?page=abc", wantPage: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPage int
			svc := &MockTriviaService{
				ListQuestionsFunc: func(ctx context.Context, page int) (*dto.QuestionPageResponse, error) {
					gotPage = page
					return &dto.QuestionPageResponse{
						Success:    true,
						Questions:  []dto.QuestionResponse{{ID: 5, Question: "Q", Answer: "A", Category: 1, Difficulty: 2}},
						Categories: map[int64]string{1: "Science"},
					}, nil
				},
			}

			resp, raw := doRequest(t, setupApp(svc), http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.wantPage, gotPage)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Contains(t, body, "current_category")
			assert.Nil(t, body["current_category"])
		})
	}
}

func TestDeleteQuestion(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &MockTriviaService{
			DeleteQuestionFunc: func(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error) {
				assert.Equal(t, int64(9), id)
				return &dto.DeleteQuestionResponse{Success: true, Deleted: 9, TotalQuestions: 18}, nil
			},
		}
		resp, raw := doRequest(t, setupApp(svc), http.MethodDelete, "/questions/9", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true,"deleted":9,"total_questions":18}`, string(raw))
	})

	t.Run("missing question is unprocessable", func(t *testing.T) {
		svc := &MockTriviaService{
			DeleteQuestionFunc: func(ctx context.Context, id int64) (*dto.DeleteQuestionResponse, error) {
				return nil, domain.NewQuestionNotFoundError(id)
			},
		}
		resp, raw := doRequest(t, setupApp(svc), http.MethodDelete, "/questions/1000", "")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assertError(t, raw, http.StatusUnprocessableEntity)
	})

	t.Run("non-integer id does not match", func(t *testing.T) {
		resp, raw := doRequest(t, setupApp(&MockTriviaService{}), http.MethodDelete, "/questions/abc", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assertError(t, raw, http.StatusNotFound)
	})
}

func TestCreateQuestion(t *testing.T) {
	t.Run("decodes flexible integers", func(t *testing.T) {
		svc := &MockTriviaService{
			CreateQuestionFunc: func(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error) {
				require.NotNil(t, req.Question)
				assert.Equal(t, "Who?", *req.Question)
				require.NotNil(t, req.Category)
				assert.Equal(t, dto.FlexInt{Value: 3, Valid: true}, *req.Category)
				require.NotNil(t, req.Difficulty)
				assert.Equal(t, dto.FlexInt{Value: 2, Valid: true}, *req.Difficulty)
				return &dto.CreateQuestionResponse{Success: true, Created: 24, TotalQuestions: 20}, nil
			},
		}
		body := `{"question":"Who?","answer":"Me","category":"3","difficulty":2}`
		resp, raw := doRequest(t, setupApp(svc), http.MethodPost, "/questions", body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true,"created":24,"total_questions":20}`, string(raw))
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, raw := doRequest(t, setupApp(&MockTriviaService{}), http.MethodPost, "/questions", `{"question":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assertError(t, raw, http.StatusBadRequest)
	})

	t.Run("empty body", func(t *testing.T) {
		resp, raw := doRequest(t, setupApp(&MockTriviaService{}), http.MethodPost, "/questions", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assertError(t, raw, http.StatusBadRequest)
	})

	t.Run("validation failure", func(t *testing.T) {
		svc := &MockTriviaService{
			CreateQuestionFunc: func(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error) {
				return nil, domain.NewUnprocessableError("answer is required", nil)
			},
		}
		resp, raw := doRequest(t, setupApp(svc), http.MethodPost, "/questions", `{"question":"Q"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assertError(t, raw, http.StatusUnprocessableEntity)
	})
}

func TestSearchQuestions(t *testing.T) {
	svc := &MockTriviaService{
		SearchQuestionsFunc: func(ctx context.Context, req *dto.SearchQuestionsRequest) (*dto.SearchQuestionsResponse, error) {
			assert.Equal(t, "title", req.SearchTerm)
			return &dto.SearchQuestionsResponse{
				Success:        true,
				Questions:      []dto.QuestionResponse{{ID: 5, Question: "Whose autobiography is entitled?", Answer: "Maya Angelou", Category: 4, Difficulty: 2}},
				TotalQuestions: 1,
			}, nil
		},
	}

	resp, raw := doRequest(t, setupApp(svc), http.MethodPost, "/questions/search", `{"search_term":"title"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.SearchQuestionsResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.Success)
	assert.Equal(t, 1, out.TotalQuestions)
	assert.Len(t, out.Questions, 1)
}

func TestSearchQuestions_AcceptsBodyWithoutContentType(t *testing.T) {
	svc := &MockTriviaService{
		SearchQuestionsFunc: func(ctx context.Context, req *dto.SearchQuestionsRequest) (*dto.SearchQuestionsResponse, error) {
			return &dto.SearchQuestionsResponse{Success: true, Questions: []dto.QuestionResponse{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/questions/search", strings.NewReader(`{"search_term":"x"}`))
	resp, err := setupApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetCategoryQuestions(t *testing.T) {
	svc := &MockTriviaService{
		QuestionsByCategoryFunc: func(ctx context.Context, categoryID int64, page int) (*dto.CategoryQuestionsResponse, error) {
			assert.Equal(t, int64(2), categoryID)
			assert.Equal(t, 2, page)
			return &dto.CategoryQuestionsResponse{
				Success:         true,
				Questions:       []dto.QuestionResponse{},
				TotalQuestions:  19,
				CurrentCategory: 2,
				Categories:      []dto.CategoryResponse{{ID: 2, Type: "Art"}},
			}, nil
		},
	}

	resp, raw := doRequest(t, setupApp(svc), http.MethodGet, "/categories/2/questions?page=2", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t,
		`{"success":true,"questions":[],"total_questions":19,"current_category":2,"categories":[{"id":2,"type":"Art"}]}`,
		string(raw))
}

func TestPlayQuiz(t *testing.T) {
	t.Run("returns a question", func(t *testing.T) {
		svc := &MockTriviaService{
			PlayQuizFunc: func(ctx context.Context, req *dto.PlayQuizRequest) (*dto.QuizResponse, error) {
				require.NotNil(t, req.QuizCategory)
				assert.Equal(t, []int64{1, 4}, req.PreviousQuestions)
				return &dto.QuizResponse{
					Success:  true,
					Question: &dto.QuestionResponse{ID: 7, Question: "Q", Answer: "A", Category: 1, Difficulty: 1},
				}, nil
			},
		}
		body := `{"quiz_category":{"id":1,"type":"Science"},"previous_questions":[1,4]}`
		resp, raw := doRequest(t, setupApp(svc), http.MethodPost, "/quizzes", body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t,
			`{"success":true,"question":{"id":7,"question":"Q","answer":"A","category":1,"difficulty":1}}`,
			string(raw))
	})

	t.Run("exhausted quiz serialises null", func(t *testing.T) {
		svc := &MockTriviaService{
			PlayQuizFunc: func(ctx context.Context, req *dto.PlayQuizRequest) (*dto.QuizResponse, error) {
				return &dto.QuizResponse{Success: true}, nil
			},
		}
		resp, raw := doRequest(t, setupApp(svc), http.MethodPost, "/quizzes", `{"quiz_category":{"id":0},"previous_questions":[]}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true,"question":null}`, string(raw))
	})

	t.Run("bad request from service", func(t *testing.T) {
		svc := &MockTriviaService{
			PlayQuizFunc: func(ctx context.Context, req *dto.PlayQuizRequest) (*dto.QuizResponse, error) {
				return nil, domain.NewBadRequestError("quiz_category is required")
			},
		}
		resp, raw := doRequest(t, setupApp(svc), http.MethodPost, "/quizzes", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assertError(t, raw, http.StatusBadRequest)
	})
}

func TestHandler_InternalError(t *testing.T) {
	svc := &MockTriviaService{
		ListQuestionsFunc: func(ctx context.Context, page int) (*dto.QuestionPageResponse, error) {
			return nil, domain.NewInternalError("failed to list questions", errors.New("connection reset"))
		},
	}

	resp, raw := doRequest(t, setupApp(svc), http.MethodGet, "/questions", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assertError(t, raw, http.StatusInternalServerError)
	assert.NotContains(t, string(raw), "connection reset")
}
