package models

import "time"

// Category groups posts under a moderated topic. An unpublished category
// hides every post it contains from everyone but the post's author.
type Category struct {
	ID          int       `validate:"-"`
	Title       string    `validate:"required,max=256"`
	Slug        string    `validate:"required,max=64"`
	Description string    `validate:"-"`
	IsPublished bool      `validate:"-"`
	CreatedAt   time.Time `validate:"-"`
}

// Location is an optional place tag on a post.
type Location struct {
	ID          int       `validate:"-"`
	Name        string    `validate:"required,max=256"`
	IsPublished bool      `validate:"-"`
	CreatedAt   time.Time `validate:"-"`
}

// User is a registered author of posts and comments.
type User struct {
	ID           int       `validate:"-"`
	Username     string    `validate:"required,max=150"`
	FirstName    string    `validate:"max=150"`
	LastName     string    `validate:"max=150"`
	Email        string    `validate:"omitempty,email"`
	PasswordHash []byte    `validate:"-"`
	JoinedAt     time.Time `validate:"-"`
}

// Post is a dated blog entry. PubDate may lie in the future: such posts
// stay hidden from everyone but the author until the date elapses.
type Post struct {
	ID          int       `validate:"-"`
	Title       string    `validate:"required,max=256"`
	Text        string    `validate:"required"`
	PubDate     time.Time `validate:"required"`
	IsPublished bool      `validate:"-"`
	Image       string    `validate:"-"`
	AuthorID    int       `validate:"required,gt=0"`
	CategoryID  int       `validate:"required,gt=0"`
	LocationID  int       `validate:"-"` // zero means no location
	CreatedAt   time.Time `validate:"-"`

	// Populated by list and detail queries.
	Author       *User      `validate:"-"`
	Category     *Category  `validate:"-"`
	Location     *Location  `validate:"-"`
	Comments     []*Comment `validate:"-"`
	CommentCount int        `validate:"-"`
}

// Comment is a reply on a post, mutable only by its author.
type Comment struct {
	ID        int       `validate:"-"`
	Text      string    `validate:"required,max=2000"`
	PostID    int       `validate:"required,gt=0"`
	AuthorID  int       `validate:"required,gt=0"`
	CreatedAt time.Time `validate:"-"`

	Author *User `validate:"-"`
}
