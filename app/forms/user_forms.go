package forms

import (
	"net/url"

	"blogicum/app/models"
)

// ProfileForm edits the profile of the authenticated user.
type ProfileForm struct {
	Username  string `form:"username" validate:"required,max=150"`
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Email     string `form:"email" validate:"omitempty,email"`

	Errors Errors `form:"-" validate:"-"`
}

func (f *ProfileForm) Bind(values url.Values) {
	f.Username = trimmed(values, "username")
	f.FirstName = trimmed(values, "first_name")
	f.LastName = trimmed(values, "last_name")
	f.Email = trimmed(values, "email")
}

func (f *ProfileForm) Valid() bool {
	f.Errors = collect(validate.Struct(f))
	return len(f.Errors) == 0
}

// FillFrom pre-populates the form from the current user record.
func (f *ProfileForm) FillFrom(user *models.User) {
	f.Username = user.Username
	f.FirstName = user.FirstName
	f.LastName = user.LastName
	f.Email = user.Email
}

// LoginForm authenticates an existing user.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`

	Errors Errors `form:"-" validate:"-"`
}

func (f *LoginForm) Bind(values url.Values) {
	f.Username = trimmed(values, "username")
	f.Password = values.Get("password")
}

func (f *LoginForm) Valid() bool {
	f.Errors = collect(validate.Struct(f))
	return len(f.Errors) == 0
}

// RegisterForm creates a new account.
type RegisterForm struct {
	Username  string `form:"username" validate:"required,max=150"`
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Email     string `form:"email" validate:"omitempty,email"`
	Password  string `form:"password" validate:"required,min=8"`

	Errors Errors `form:"-" validate:"-"`
}

func (f *RegisterForm) Bind(values url.Values) {
	f.Username = trimmed(values, "username")
	f.FirstName = trimmed(values, "first_name")
	f.LastName = trimmed(values, "last_name")
	f.Email = trimmed(values, "email")
	f.Password = values.Get("password")
}

func (f *RegisterForm) Valid() bool {
	f.Errors = collect(validate.Struct(f))
	return len(f.Errors) == 0
}
