package controllers

import (
	"errors"
	"html/template"
	"net/http"

	"blogicum/app/forms"
	"blogicum/app/middleware"
	"blogicum/app/repositories"
	"blogicum/app/services"

	"github.com/alexedwards/scs/v2"
)

// UserController handles registration, login, logout and profile edits.
type UserController struct {
	users     *services.UserService
	sessions  *scs.SessionManager
	templates map[string]*template.Template
}

// NewUserController creates a new UserController.
func NewUserController(users *services.UserService, sessions *scs.SessionManager, templates map[string]*template.Template) *UserController {
	return &UserController{
		users:     users,
		sessions:  sessions,
		templates: templates,
	}
}

// EditProfile handles the profile form of the authenticated user.
func (uc *UserController) EditProfile(w http.ResponseWriter, r *http.Request) {
	v := viewer(uc.sessions, r)
	user, err := uc.users.GetByID(r.Context(), v.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	form := &forms.ProfileForm{}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		form.Bind(r.PostForm)
		if form.Valid() {
			updated, err := uc.users.UpdateProfile(r.Context(), v.ID, form.Username, form.FirstName, form.LastName, form.Email)
			if errors.Is(err, repositories.ErrDuplicate) {
				form.Errors = forms.Errors{"username": "This username is already taken."}
			} else if err != nil {
				serverError(w, err)
				return
			} else {
				// The username may have changed; keep the session current.
				uc.sessions.Put(r.Context(), middleware.SessionUsernameKey, updated.Username)
				http.Redirect(w, r, profileURL(updated.Username), http.StatusSeeOther)
				return
			}
		}
	} else {
		form.FillFrom(user)
	}

	data := struct {
		Form   *forms.ProfileForm
		Viewer viewerInfo
	}{
		Form:   form,
		Viewer: v,
	}
	render(w, uc.templates["profile_form"], data)
}

// Login handles the login form and opens a session on success.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	form := &forms.LoginForm{}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		form.Bind(r.PostForm)
		if form.Valid() {
			user, err := uc.users.Authenticate(r.Context(), form.Username, form.Password)
			if errors.Is(err, services.ErrInvalidCredentials) {
				form.Errors = forms.Errors{"__all__": "Invalid username or password."}
			} else if err != nil {
				serverError(w, err)
				return
			} else {
				if err := uc.sessions.RenewToken(r.Context()); err != nil {
					serverError(w, err)
					return
				}
				uc.sessions.Put(r.Context(), middleware.SessionUserKey, user.ID)
				uc.sessions.Put(r.Context(), middleware.SessionUsernameKey, user.Username)
				http.Redirect(w, r, profileURL(user.Username), http.StatusSeeOther)
				return
			}
		}
	}

	data := struct {
		Form   *forms.LoginForm
		Viewer viewerInfo
	}{
		Form:   form,
		Viewer: viewer(uc.sessions, r),
	}
	render(w, uc.templates["login"], data)
}

// Logout destroys the session and returns to the home page.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := uc.sessions.Destroy(r.Context()); err != nil {
		serverError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Register handles account creation, then sends the new user to login.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	form := &forms.RegisterForm{}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		form.Bind(r.PostForm)
		if form.Valid() {
			_, err := uc.users.Register(r.Context(), form.Username, form.FirstName, form.LastName, form.Email, form.Password)
			if errors.Is(err, repositories.ErrDuplicate) {
				form.Errors = forms.Errors{"username": "This username is already taken."}
			} else if err != nil {
				serverError(w, err)
				return
			} else {
				http.Redirect(w, r, middleware.LoginURL, http.StatusSeeOther)
				return
			}
		}
	}

	data := struct {
		Form   *forms.RegisterForm
		Viewer viewerInfo
	}{
		Form:   form,
		Viewer: viewer(uc.sessions, r),
	}
	render(w, uc.templates["registration"], data)
}
