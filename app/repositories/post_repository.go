package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blogicum/app/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPostRepository implements PostRepository on Postgres.
type PgxPostRepository struct {
	pool *pgxpool.Pool
}

// NewPgxPostRepository creates a new PgxPostRepository.
func NewPgxPostRepository(pool *pgxpool.Pool) *PgxPostRepository {
	return &PgxPostRepository{pool: pool}
}

const postColumns = `
    p.id, p.title, p.text, p.pub_date, p.is_published, p.image,
    p.author_id, p.category_id, p.location_id, p.created_at,
    u.username, u.first_name, u.last_name, u.email,
    c.title, c.slug, c.description, c.is_published,
    l.name, l.is_published,
    COUNT(cm.id) AS comment_count`

const postJoins = `
    FROM posts p
    JOIN users u ON u.id = p.author_id
    JOIN categories c ON c.id = p.category_id
    LEFT JOIN locations l ON l.id = p.location_id
    LEFT JOIN comments cm ON cm.post_id = p.id`

const postGroupBy = ` GROUP BY p.id, u.id, c.id, l.id`

// visibleClause restricts a query to posts a non-author may see.
const visibleClause = `p.is_published AND c.is_published AND p.pub_date <= NOW()`

// buildPostWhere assembles a WHERE clause for the filter. Placeholders are
// numbered after any already-collected args.
func buildPostWhere(filter PostFilter, args []any) (string, []any) {
	var clauses []string
	if filter.AuthorID != 0 {
		args = append(args, filter.AuthorID)
		clauses = append(clauses, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if filter.CategoryID != 0 {
		args = append(args, filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filter.OnlyVisible {
		clauses = append(clauses, visibleClause)
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var (
		p       models.Post
		author  models.User
		cat     models.Category
		locName *string
		locPub  *bool
		locID   *int
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Text, &p.PubDate, &p.IsPublished, &p.Image,
		&p.AuthorID, &p.CategoryID, &locID, &p.CreatedAt,
		&author.Username, &author.FirstName, &author.LastName, &author.Email,
		&cat.Title, &cat.Slug, &cat.Description, &cat.IsPublished,
		&locName, &locPub,
		&p.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	author.ID = p.AuthorID
	cat.ID = p.CategoryID
	p.Author = &author
	p.Category = &cat
	if locID != nil {
		p.LocationID = *locID
		loc := models.Location{ID: *locID}
		if locName != nil {
			loc.Name = *locName
		}
		if locPub != nil {
			loc.IsPublished = *locPub
		}
		p.Location = &loc
	}
	return &p, nil
}

// Create inserts a new post and fills in its generated fields.
func (r *PgxPostRepository) Create(ctx context.Context, post *models.Post) error {
	query := `INSERT INTO posts (title, text, pub_date, is_published, image, author_id, category_id, location_id)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		post.Title, post.Text, post.PubDate, post.IsPublished, post.Image,
		post.AuthorID, post.CategoryID, nullableID(post.LocationID),
	).Scan(&post.ID, &post.CreatedAt)
}

// GetByID retrieves a post by ID with its author, category, location and
// comment count attached. No visibility filtering is applied here: the
// caller decides whether the viewer may see the post.
func (r *PgxPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	query := `SELECT` + postColumns + postJoins + ` WHERE p.id = $1` + postGroupBy
	post, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// List retrieves a page of posts matching the filter, newest first.
func (r *PgxPostRepository) List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error) {
	where, args := buildPostWhere(filter, nil)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT`+postColumns+postJoins+where+postGroupBy+`
        ORDER BY p.pub_date DESC, p.id LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Count returns the number of posts matching the filter.
func (r *PgxPostRepository) Count(ctx context.Context, filter PostFilter) (int, error) {
	where, args := buildPostWhere(filter, nil)
	query := `SELECT COUNT(*) FROM posts p JOIN categories c ON c.id = p.category_id` + where
	var count int
	err := r.pool.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

// Update rewrites the editable fields of an existing post. Author and
// creation time are never touched.
func (r *PgxPostRepository) Update(ctx context.Context, post *models.Post) error {
	query := `UPDATE posts SET title = $1, text = $2, pub_date = $3, is_published = $4,
              image = $5, category_id = $6, location_id = $7 WHERE id = $8`
	tag, err := r.pool.Exec(ctx, query,
		post.Title, post.Text, post.PubDate, post.IsPublished, post.Image,
		post.CategoryID, nullableID(post.LocationID), post.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a post. Its comments go with it via the FK cascade.
func (r *PgxPostRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// nullableID maps the zero ID to SQL NULL.
func nullableID(id int) any {
	if id == 0 {
		return nil
	}
	return id
}
