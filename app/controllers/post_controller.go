package controllers

import (
	"errors"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"blogicum/app/forms"
	"blogicum/app/models"
	"blogicum/app/repositories"
	"blogicum/app/services"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts and listings.
type PostController struct {
	posts     *services.PostService
	sessions  *scs.SessionManager
	templates map[string]*template.Template
	mediaDir  string
}

// NewPostController creates a new PostController.
func NewPostController(posts *services.PostService, sessions *scs.SessionManager, templates map[string]*template.Template, mediaDir string) *PostController {
	return &PostController{
		posts:     posts,
		sessions:  sessions,
		templates: templates,
		mediaDir:  mediaDir,
	}
}

// Index handles the home page: all visible posts, newest first, paginated.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := pc.posts.ListPublished(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		serverError(w, err)
		return
	}

	data := struct {
		PostPage *services.PostPage
		Viewer   viewerInfo
	}{
		PostPage: page,
		Viewer:   viewer(pc.sessions, r),
	}
	render(w, pc.templates["index"], data)
}

// Category handles listing the visible posts of a published category.
// Missing and unpublished categories are indistinguishable: both 404.
func (pc *PostController) Category(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	category, page, err := pc.posts.ListByCategory(r.Context(), slug, r.URL.Query().Get("page"))
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	data := struct {
		Category *models.Category
		PostPage *services.PostPage
		Viewer   viewerInfo
	}{
		Category: category,
		PostPage: page,
		Viewer:   viewer(pc.sessions, r),
	}
	render(w, pc.templates["category"], data)
}

// Profile handles a user's post listing. The owner sees all of their
// posts, drafts and future-dated ones included.
func (pc *PostController) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	v := viewer(pc.sessions, r)

	owner, page, err := pc.posts.ListByAuthor(r.Context(), username, v.ID, r.URL.Query().Get("page"))
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	data := struct {
		Owner    *models.User
		IsOwner  bool
		PostPage *services.PostPage
		Viewer   viewerInfo
	}{
		Owner:    owner,
		IsOwner:  v.ID == owner.ID,
		PostPage: page,
		Viewer:   v,
	}
	render(w, pc.templates["profile"], data)
}

// Show handles displaying a single post with its comments. Hidden posts
// 404 for everyone but their author.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.NotFound(w, r)
		return
	}
	v := viewer(pc.sessions, r)

	post, err := pc.posts.GetVisiblePost(r.Context(), id, v.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	data := struct {
		Post   *models.Post
		Form   *forms.CommentForm
		Viewer viewerInfo
	}{
		Post:   post,
		Form:   &forms.CommentForm{},
		Viewer: v,
	}
	render(w, pc.templates["detail"], data)
}

// Create handles the post creation form. On a valid submission the post is
// stored with the requester as author and the response redirects to the
// requester's profile; an invalid one re-renders the form with errors.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	v := viewer(pc.sessions, r)
	form := &forms.PostForm{}

	if r.Method == http.MethodPost {
		values, err := parseSubmission(r)
		if err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		form.Bind(values)
		if name, err := pc.saveUpload(r); err != nil {
			serverError(w, err)
			return
		} else if name != "" {
			form.Image = name
		}

		if form.Valid() {
			post := &models.Post{}
			form.Apply(post)
			if err := pc.posts.CreatePost(r.Context(), post, v.ID); err != nil {
				serverError(w, err)
				return
			}
			http.Redirect(w, r, profileURL(v.Username), http.StatusSeeOther)
			return
		}
	}

	pc.renderPostForm(w, r, form, nil, false)
}

// Edit handles editing an existing post. Only the author may edit; anyone
// else is silently sent back to the post's detail page.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.NotFound(w, r)
		return
	}
	v := viewer(pc.sessions, r)

	post, err := pc.posts.GetPost(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	if post.AuthorID != v.ID {
		http.Redirect(w, r, postURL(id), http.StatusSeeOther)
		return
	}

	form := &forms.PostForm{}
	if r.Method == http.MethodPost {
		values, err := parseSubmission(r)
		if err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		form.Bind(values)
		if name, err := pc.saveUpload(r); err != nil {
			serverError(w, err)
			return
		} else if name != "" {
			form.Image = name
		}

		if form.Valid() {
			form.Apply(post)
			if err := pc.posts.UpdatePost(r.Context(), post); err != nil {
				serverError(w, err)
				return
			}
			http.Redirect(w, r, postURL(id), http.StatusSeeOther)
			return
		}
	} else {
		form.FillFrom(post)
	}

	pc.renderPostForm(w, r, form, post, false)
}

// Delete handles post deletion. GET shows a confirmation pre-filled with
// the post's current data; POST deletes irreversibly and redirects to the
// author's profile. Only the author may delete.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.NotFound(w, r)
		return
	}
	v := viewer(pc.sessions, r)

	post, err := pc.posts.GetPost(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	if post.AuthorID != v.ID {
		http.Redirect(w, r, postURL(id), http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodPost {
		if err := pc.posts.DeletePost(r.Context(), id); err != nil {
			serverError(w, err)
			return
		}
		http.Redirect(w, r, profileURL(v.Username), http.StatusSeeOther)
		return
	}

	form := &forms.PostForm{}
	form.FillFrom(post)
	pc.renderPostForm(w, r, form, post, true)
}

func (pc *PostController) renderPostForm(w http.ResponseWriter, r *http.Request, form *forms.PostForm, post *models.Post, confirmDelete bool) {
	categories, locations, err := pc.posts.FormChoices(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}

	data := struct {
		Form          *forms.PostForm
		Post          *models.Post
		Categories    []*models.Category
		Locations     []*models.Location
		ConfirmDelete bool
		Viewer        viewerInfo
	}{
		Form:          form,
		Post:          post,
		Categories:    categories,
		Locations:     locations,
		ConfirmDelete: confirmDelete,
		Viewer:        viewer(pc.sessions, r),
	}
	render(w, pc.templates["post_form"], data)
}

// saveUpload stores an uploaded post image under a generated name and
// returns it. It returns "" when the submission carried no file.
func (pc *PostController) saveUpload(r *http.Request) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll(pc.mediaDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.New().String() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(pc.mediaDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return name, nil
}
