package forms

import (
	"net/url"
	"strconv"
	"time"

	"blogicum/app/models"
)

// PubDateLayout is the format emitted by datetime-local inputs.
const PubDateLayout = "2006-01-02T15:04"

// PostForm carries the user-editable fields of a post. The author is never
// part of the form: it is assigned server-side from the session.
type PostForm struct {
	Title       string    `form:"title" validate:"required,max=256"`
	Text        string    `form:"text" validate:"required"`
	PubDate     time.Time `form:"pub_date" validate:"required"`
	CategoryID  int       `form:"category" validate:"required,gt=0"`
	LocationID  int       `form:"location" validate:"-"`
	Image       string    `form:"image" validate:"-"`
	IsPublished bool      `form:"is_published" validate:"-"`

	Errors Errors `form:"-" validate:"-"`
}

// Bind populates the form from submitted values. An unparseable pub date is
// left as the zero time so validation reports it as missing.
func (f *PostForm) Bind(values url.Values) {
	f.Title = trimmed(values, "title")
	f.Text = trimmed(values, "text")
	f.CategoryID, _ = strconv.Atoi(values.Get("category"))
	f.LocationID, _ = strconv.Atoi(values.Get("location"))
	f.IsPublished = values.Get("is_published") != ""
	f.PubDate = time.Time{}
	if raw := values.Get("pub_date"); raw != "" {
		if t, err := time.Parse(PubDateLayout, raw); err == nil {
			f.PubDate = t.UTC()
		}
	}
}

// Valid runs validation and stores any field errors on the form.
func (f *PostForm) Valid() bool {
	f.Errors = collect(validate.Struct(f))
	return len(f.Errors) == 0
}

// FillFrom pre-populates the form from an existing post for editing.
func (f *PostForm) FillFrom(post *models.Post) {
	f.Title = post.Title
	f.Text = post.Text
	f.PubDate = post.PubDate
	f.CategoryID = post.CategoryID
	f.LocationID = post.LocationID
	f.Image = post.Image
	f.IsPublished = post.IsPublished
}

// Apply copies the validated form fields onto a post. Author and creation
// time are deliberately untouched.
func (f *PostForm) Apply(post *models.Post) {
	post.Title = f.Title
	post.Text = f.Text
	post.PubDate = f.PubDate
	post.CategoryID = f.CategoryID
	post.LocationID = f.LocationID
	if f.Image != "" {
		post.Image = f.Image
	}
	post.IsPublished = f.IsPublished
}

// PubDateValue formats the pub date for a datetime-local input.
func (f *PostForm) PubDateValue() string {
	if f.PubDate.IsZero() {
		return ""
	}
	return f.PubDate.Format(PubDateLayout)
}
