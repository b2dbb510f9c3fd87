package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finledger/internal/domain"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// GetAll retrieves every category.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT id, name, is_system, created_at, updated_at FROM categories ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var (
			category  domain.Category
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)

		if err := rows.Scan(&category.ID, &category.Name, &category.IsSystem, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		category.CreatedAt = createdAt.Time
		category.UpdatedAt = updatedAt.Time
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}
