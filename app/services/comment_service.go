package services

import (
	"context"
	"fmt"

	"blogicum/app/models"
	"blogicum/app/repositories"
)

// CommentService handles business logic for comments.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment stores a new comment on a post. The author is always the
// given requester. ErrNotFound is returned when the post does not exist.
func (s *CommentService) AddComment(ctx context.Context, postID, authorID int, text string) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comment := &models.Comment{
		Text:     text,
		PostID:   postID,
		AuthorID: authorID,
	}
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComment retrieves a comment scoped to its post.
func (s *CommentService) GetComment(ctx context.Context, id, postID int) (*models.Comment, error) {
	return s.commentRepo.GetByPost(ctx, id, postID)
}

// ListPostComments retrieves all comments on a post in creation order.
func (s *CommentService) ListPostComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

// UpdateComment validates and stores a text change.
func (s *CommentService) UpdateComment(ctx context.Context, comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}
	return s.commentRepo.Update(ctx, comment)
}

// DeleteComment removes a comment.
func (s *CommentService) DeleteComment(ctx context.Context, id int) error {
	return s.commentRepo.Delete(ctx, id)
}
