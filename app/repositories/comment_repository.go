package repositories

import (
	"context"
	"errors"

	"blogicum/app/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCommentRepository implements CommentRepository on Postgres.
type PgxCommentRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCommentRepository creates a new PgxCommentRepository.
func NewPgxCommentRepository(pool *pgxpool.Pool) *PgxCommentRepository {
	return &PgxCommentRepository{pool: pool}
}

// Create inserts a new comment and fills in its generated fields.
func (r *PgxCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (text, post_id, author_id) VALUES ($1, $2, $3) RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, comment.Text, comment.PostID, comment.AuthorID).
		Scan(&comment.ID, &comment.CreatedAt)
}

// GetByPost retrieves a comment by ID, scoped to the given post so a
// comment ID from another post's URL cannot be addressed.
func (r *PgxCommentRepository) GetByPost(ctx context.Context, id, postID int) (*models.Comment, error) {
	var (
		c      models.Comment
		author models.User
	)
	query := `SELECT cm.id, cm.text, cm.post_id, cm.author_id, cm.created_at, u.username, u.first_name, u.last_name
              FROM comments cm JOIN users u ON u.id = cm.author_id
              WHERE cm.id = $1 AND cm.post_id = $2`
	err := r.pool.QueryRow(ctx, query, id, postID).Scan(
		&c.ID, &c.Text, &c.PostID, &c.AuthorID, &c.CreatedAt,
		&author.Username, &author.FirstName, &author.LastName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	author.ID = c.AuthorID
	c.Author = &author
	return &c, nil
}

// ListByPost retrieves all comments on a post in creation order.
func (r *PgxCommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	query := `SELECT cm.id, cm.text, cm.post_id, cm.author_id, cm.created_at, u.username, u.first_name, u.last_name
              FROM comments cm JOIN users u ON u.id = cm.author_id
              WHERE cm.post_id = $1 ORDER BY cm.created_at, cm.id`
	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var (
			c      models.Comment
			author models.User
		)
		if err := rows.Scan(
			&c.ID, &c.Text, &c.PostID, &c.AuthorID, &c.CreatedAt,
			&author.Username, &author.FirstName, &author.LastName,
		); err != nil {
			return nil, err
		}
		author.ID = c.AuthorID
		c.Author = &author
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// Update rewrites the comment text.
func (r *PgxCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	tag, err := r.pool.Exec(ctx, `UPDATE comments SET text = $1 WHERE id = $2`, comment.Text, comment.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a comment.
func (r *PgxCommentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
