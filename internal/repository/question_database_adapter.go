package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trivia-api/internal/database"
	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const questionColumns = `id "id", question "question", answer "answer", category "category", difficulty "difficulty"`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db      *sqlx.DB
	dialect database.Dialect
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB, dialect database.Dialect) *QuestionDatabaseAdapter {
	return &QuestionDatabaseAdapter{db: db, dialect: dialect}
}

func (a *QuestionDatabaseAdapter) selectQuestions(ctx context.Context, query string, args ...interface{}) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)

	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, err
	}

	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i])
	}
	return questions, nil
}

// ListQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	questions, err := a.selectQuestions(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// ListQuestionsByCategory implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE category = ? ORDER BY id`
	questions, err := a.selectQuestions(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions of category %d: %w", categoryID, err)
	}
	return questions, nil
}

// FindQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) FindQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = ?`

	var row models.Question
	if err := exec.GetContext(ctx, &row, exec.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %d: %w", id, err)
	}
	return toDomainQuestion(&row), nil
}

// CreateQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CreateQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return errors.New("cannot save nil question")
	}
	exec := GetExecutor(ctx, a.db)
	m := toModelQuestion(question)

	var id int64
	if a.dialect == database.DialectOracle {
		query := `INSERT INTO questions (question, answer, category, difficulty)
	VALUES (?, ?, ?, ?) RETURNING id INTO ?`
		_, err := exec.ExecContext(ctx, exec.Rebind(query),
			m.Question, m.Answer, m.Category, m.Difficulty, sql.Out{Dest: &id})
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}
	} else {
		query := `INSERT INTO questions (question, answer, category, difficulty)
	VALUES (?, ?, ?, ?) RETURNING id`
		err := exec.GetContext(ctx, &id, exec.Rebind(query),
			m.Question, m.Answer, m.Category, m.Difficulty)
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}
	}

	question.ID = id
	return nil
}

// DeleteQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id int64) error {
	exec := GetExecutor(ctx, a.db)
	if _, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM questions WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	return nil
}

// CountQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CountQuestions(ctx context.Context) (int, error) {
	var count int
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &count, `SELECT COUNT(*) FROM questions`); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// SearchQuestions implements domain.QuestionRepository.
// LIKE wildcards in term match literally. Case folding happens in the database
// on both sides of the comparison.
func (a *QuestionDatabaseAdapter) SearchQuestions(ctx context.Context, term string) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE question ILIKE ? ESCAPE '\' ORDER BY id`
	if a.dialect == database.DialectOracle {
		query = `SELECT ` + questionColumns + ` FROM questions WHERE LOWER(question) LIKE LOWER(?) ESCAPE '\' ORDER BY id`
	}
	pattern := "%" + likeEscaper.Replace(term) + "%"

	questions, err := a.selectQuestions(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	return questions, nil
}

// ListQuizCandidates implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListQuizCandidates(ctx context.Context, categoryID int64, exclude []int64) ([]*domain.Question, error) {
	var (
		conds []string
		args  []interface{}
	)
	if categoryID != domain.AllCategories {
		conds = append(conds, "category = ?")
		args = append(args, categoryID)
	}
	if len(exclude) > 0 {
		conds = append(conds, "id NOT IN (?)")
		args = append(args, exclude)
	}

	query := `SELECT ` + questionColumns + ` FROM questions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	if len(exclude) > 0 {
		expanded, expandedArgs, err := sqlx.In(query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to build quiz candidate query: %w", err)
		}
		query, args = expanded, expandedArgs
	}

	questions, err := a.selectQuestions(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz candidates: %w", err)
	}
	return questions, nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:         m.ID,
		Question:   m.Question,
		Answer:     m.Answer,
		Category:   m.Category,
		Difficulty: m.Difficulty,
	}
}

func toModelQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}
