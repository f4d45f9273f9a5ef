package repositories

import (
	"context"
	"errors"

	"blogicum/app/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUserRepository implements UserRepository on Postgres.
type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxUserRepository creates a new PgxUserRepository.
func NewPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{pool: pool}
}

// Create inserts a new user. A username collision yields ErrDuplicate.
func (r *PgxUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (username, first_name, last_name, email, password_hash)
              VALUES ($1, $2, $3, $4, $5) RETURNING id, joined_at`
	err := r.pool.QueryRow(ctx, query,
		user.Username, user.FirstName, user.LastName, user.Email, user.PasswordHash,
	).Scan(&user.ID, &user.JoinedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

const userColumns = `id, username, first_name, last_name, email, password_hash, joined_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user by ID.
func (r *PgxUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByUsername retrieves a user by username.
func (r *PgxUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// Update rewrites the profile fields of an existing user.
func (r *PgxUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET username = $1, first_name = $2, last_name = $3, email = $4 WHERE id = $5`
	tag, err := r.pool.Exec(ctx, query,
		user.Username, user.FirstName, user.LastName, user.Email, user.ID,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
