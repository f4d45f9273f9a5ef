package repositories

import (
	"context"
	"errors"

	"blogicum/app/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCategoryRepository implements CategoryRepository on Postgres.
type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCategoryRepository creates a new PgxCategoryRepository.
func NewPgxCategoryRepository(pool *pgxpool.Pool) *PgxCategoryRepository {
	return &PgxCategoryRepository{pool: pool}
}

// Create inserts a new category.
func (r *PgxCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `INSERT INTO categories (title, slug, description, is_published)
              VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		category.Title, category.Slug, category.Description, category.IsPublished,
	).Scan(&category.ID, &category.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetBySlug retrieves a category by its slug regardless of publish state.
// Callers hide unpublished categories from non-moderation surfaces.
func (r *PgxCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	query := `SELECT id, title, slug, description, is_published, created_at FROM categories WHERE slug = $1`
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&c.ID, &c.Title, &c.Slug, &c.Description, &c.IsPublished, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListPublished retrieves all published categories, for form selects.
func (r *PgxCategoryRepository) ListPublished(ctx context.Context) ([]*models.Category, error) {
	query := `SELECT id, title, slug, description, is_published, created_at
              FROM categories WHERE is_published ORDER BY title`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.IsPublished, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}
