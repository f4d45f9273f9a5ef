package repositories

import (
	"context"

	"blogicum/app/models"
)

// PostFilter narrows post listings. Zero-valued fields are ignored.
// OnlyVisible applies the publication rules for non-author viewers:
// published post, published category, pub date not in the future.
type PostFilter struct {
	AuthorID    int
	CategoryID  int
	OnlyVisible bool
}

// PostRepository defines the interface for post data access. Listings are
// annotated with the comment count of each post and ordered by pub date
// descending, primary key ascending on ties.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int) error
}

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByPost(ctx context.Context, id, postID int) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int) error
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListPublished(ctx context.Context) ([]*models.Category, error)
}

// LocationRepository defines the interface for location data access.
type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	ListPublished(ctx context.Context) ([]*models.Location, error)
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}
