package forms

import "net/url"

// CommentForm carries the single editable field of a comment.
type CommentForm struct {
	Text string `form:"text" validate:"required,max=2000"`

	Errors Errors `form:"-" validate:"-"`
}

// Bind populates the form from submitted values.
func (f *CommentForm) Bind(values url.Values) {
	f.Text = trimmed(values, "text")
}

// Valid runs validation and stores any field errors on the form.
func (f *CommentForm) Valid() bool {
	f.Errors = collect(validate.Struct(f))
	return len(f.Errors) == 0
}
