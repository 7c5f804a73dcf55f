package domain

import "context"

// CategoryOrder selects the ordering of a category listing.
type CategoryOrder string

const (
	CategoryOrderByID   CategoryOrder = "id"
	CategoryOrderByType CategoryOrder = "type"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// ListCategories returns every category in the requested order.
	ListCategories(ctx context.Context, order CategoryOrder) ([]*Category, error)

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}

// QuestionRepository defines the interface for question persistence.
// Lookups of a single row return (nil, nil) when the row does not exist.
type QuestionRepository interface {
	// ListQuestions returns all questions ordered by id.
	ListQuestions(ctx context.Context) ([]*Question, error)

	// ListQuestionsByCategory returns the questions of one category ordered by id.
	ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]*Question, error)

	// FindQuestion retrieves a question by its ID.
	FindQuestion(ctx context.Context, id int64) (*Question, error)

	// CreateQuestion persists a new question and sets its ID.
	CreateQuestion(ctx context.Context, question *Question) error

	// DeleteQuestion removes a question by its ID.
	DeleteQuestion(ctx context.Context, id int64) error

	// CountQuestions returns the number of stored questions.
	CountQuestions(ctx context.Context) (int, error)

	// SearchQuestions returns questions whose text contains term, ignoring case.
	SearchQuestions(ctx context.Context, term string) ([]*Question, error)

	// ListQuizCandidates returns the questions of categoryID (or of every category for
	// AllCategories) whose id is not in exclude.
	ListQuizCandidates(ctx context.Context, categoryID int64, exclude []int64) ([]*Question, error)
}

// TransactionManager runs fn in a single database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
