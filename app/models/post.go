package models

import "time"

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
}

// VisibleTo reports whether the post may be shown to the given viewer.
// Authors always see their own posts, including drafts and future-dated
// ones; everyone else only sees posts that are published, belong to a
// published category and whose pub date has elapsed.
func (p *Post) VisibleTo(viewerID int, now time.Time) bool {
	if viewerID != 0 && viewerID == p.AuthorID {
		return true
	}
	if !p.IsPublished {
		return false
	}
	if p.Category != nil && !p.Category.IsPublished {
		return false
	}
	return !p.PubDate.After(now)
}
