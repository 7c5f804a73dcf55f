package repository

import (
	"context"
	"fmt"

	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

var categoryOrderClauses = map[domain.CategoryOrder]string{
	domain.CategoryOrderByID:   "id",
	domain.CategoryOrderByType: "type",
}

// CategoryDatabaseAdapter implements domain.CategoryRepository using sqlx.DB
type CategoryDatabaseAdapter struct {
	db *sqlx.DB
}

// NewCategoryDatabaseAdapter creates a new instance of CategoryDatabaseAdapter
func NewCategoryDatabaseAdapter(db *sqlx.DB) *CategoryDatabaseAdapter {
	return &CategoryDatabaseAdapter{db: db}
}

// ListCategories implements domain.CategoryRepository
func (a *CategoryDatabaseAdapter) ListCategories(ctx context.Context, order domain.CategoryOrder) ([]*domain.Category, error) {
	orderBy, ok := categoryOrderClauses[order]
	if !ok {
		return nil, fmt.Errorf("unsupported category order %q", order)
	}

	query := `SELECT id "id", type "type" FROM categories ORDER BY ` + orderBy

	var rows []models.Category
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*domain.Category, len(rows))
	for i := range rows {
		categories[i] = toDomainCategory(&rows[i])
	}
	return categories, nil
}

// Ping implements domain.CategoryRepository
func (a *CategoryDatabaseAdapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func toDomainCategory(m *models.Category) *domain.Category {
	return &domain.Category{ID: m.ID, Type: m.Type}
}
