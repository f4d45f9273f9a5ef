package repositories

import (
	"context"

	"blogicum/app/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLocationRepository implements LocationRepository on Postgres.
type PgxLocationRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLocationRepository creates a new PgxLocationRepository.
func NewPgxLocationRepository(pool *pgxpool.Pool) *PgxLocationRepository {
	return &PgxLocationRepository{pool: pool}
}

// Create inserts a new location.
func (r *PgxLocationRepository) Create(ctx context.Context, location *models.Location) error {
	query := `INSERT INTO locations (name, is_published) VALUES ($1, $2) RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, location.Name, location.IsPublished).
		Scan(&location.ID, &location.CreatedAt)
}

// ListPublished retrieves all published locations, for form selects.
func (r *PgxLocationRepository) ListPublished(ctx context.Context) ([]*models.Location, error) {
	query := `SELECT id, name, is_published, created_at FROM locations WHERE is_published ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.IsPublished, &l.CreatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, &l)
	}
	return locations, rows.Err()
}
