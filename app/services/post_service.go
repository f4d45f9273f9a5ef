package services

import (
	"context"
	"fmt"
	"time"

	"blogicum/app/models"
	"blogicum/app/repositories"
)

// PostService handles business logic for blog posts and their listings.
type PostService struct {
	postRepo     repositories.PostRepository
	commentRepo  repositories.CommentRepository
	categoryRepo repositories.CategoryRepository
	locationRepo repositories.LocationRepository
	userRepo     repositories.UserRepository
}

// NewPostService creates a new PostService.
func NewPostService(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	categoryRepo repositories.CategoryRepository,
	locationRepo repositories.LocationRepository,
	userRepo repositories.UserRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
	}
}

// PostPage bundles one page of posts with its pagination state.
type PostPage struct {
	Posts []*models.Post
	Page  Page
}

func (s *PostService) listPage(ctx context.Context, filter repositories.PostFilter, rawPage string) (*PostPage, error) {
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}
	page := ResolvePage(rawPage, total, DefaultPageSize)
	posts, err := s.postRepo.List(ctx, filter, DefaultPageSize, page.Offset(DefaultPageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return &PostPage{Posts: posts, Page: page}, nil
}

// ListPublished returns a page of posts every visitor may see.
func (s *PostService) ListPublished(ctx context.Context, rawPage string) (*PostPage, error) {
	return s.listPage(ctx, repositories.PostFilter{OnlyVisible: true}, rawPage)
}

// ListByCategory returns a published category and a page of its visible
// posts. A missing or unpublished category yields ErrNotFound.
func (s *PostService) ListByCategory(ctx context.Context, slug, rawPage string) (*models.Category, *PostPage, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if !category.IsPublished {
		return nil, nil, repositories.ErrNotFound
	}
	page, err := s.listPage(ctx, repositories.PostFilter{CategoryID: category.ID, OnlyVisible: true}, rawPage)
	if err != nil {
		return nil, nil, err
	}
	return category, page, nil
}

// ListByAuthor returns a user's profile and a page of their posts. The
// profile owner sees every post, drafts and future-dated ones included;
// other viewers get the published-only view.
func (s *PostService) ListByAuthor(ctx context.Context, username string, viewerID int, rawPage string) (*models.User, *PostPage, error) {
	owner, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	filter := repositories.PostFilter{
		AuthorID:    owner.ID,
		OnlyVisible: viewerID != owner.ID,
	}
	page, err := s.listPage(ctx, filter, rawPage)
	if err != nil {
		return nil, nil, err
	}
	return owner, page, nil
}

// GetPost retrieves a post by ID without any visibility filtering.
func (s *PostService) GetPost(ctx context.Context, id int) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// GetVisiblePost retrieves a post with its comments attached, applying the
// visibility rules for the viewer. The post is fetched unfiltered and
// re-checked here so authors can always preview their own unpublished or
// future-dated posts; everyone else gets ErrNotFound for hidden content.
func (s *PostService) GetVisiblePost(ctx context.Context, id, viewerID int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(viewerID, time.Now()) {
		return nil, repositories.ErrNotFound
	}
	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	post.Comments = comments
	return post, nil
}

// CreatePost validates and stores a new post. The author is always the
// given requester, regardless of anything the submission carried.
func (s *PostService) CreatePost(ctx context.Context, post *models.Post, authorID int) error {
	post.AuthorID = authorID
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	return s.postRepo.Create(ctx, post)
}

// UpdatePost validates and stores changes to an existing post.
func (s *PostService) UpdatePost(ctx context.Context, post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	return s.postRepo.Update(ctx, post)
}

// DeletePost removes a post together with its comments.
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	return s.postRepo.Delete(ctx, id)
}

// FormChoices returns the published categories and locations offered by
// the post form selects.
func (s *PostService) FormChoices(ctx context.Context) ([]*models.Category, []*models.Location, error) {
	categories, err := s.categoryRepo.ListPublished(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list categories: %w", err)
	}
	locations, err := s.locationRepo.ListPublished(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return categories, locations, nil
}
