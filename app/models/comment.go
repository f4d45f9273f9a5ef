package models

import "time"

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	return validate.Struct(c)
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
}

// IsOwnedBy reports whether the given user may edit or delete the comment.
func (c *Comment) IsOwnedBy(userID int) bool {
	return userID != 0 && c.AuthorID == userID
}
