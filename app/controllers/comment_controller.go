package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"blogicum/app/forms"
	"blogicum/app/models"
	"blogicum/app/repositories"
	"blogicum/app/services"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments.
type CommentController struct {
	comments  *services.CommentService
	sessions  *scs.SessionManager
	templates map[string]*template.Template
}

// NewCommentController creates a new CommentController.
func NewCommentController(comments *services.CommentService, sessions *scs.SessionManager, templates map[string]*template.Template) *CommentController {
	return &CommentController{
		comments:  comments,
		sessions:  sessions,
		templates: templates,
	}
}

// Add handles posting a new comment. The detail page carries the form, so
// an invalid submission simply redirects back there; a valid one stores
// the comment with the requester as author.
func (cc *CommentController) Add(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.NotFound(w, r)
		return
	}
	v := viewer(cc.sessions, r)

	// The detail page is the form; a GET has nothing to submit.
	if r.Method != http.MethodPost {
		http.Redirect(w, r, postURL(postID), http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	form := &forms.CommentForm{}
	form.Bind(r.PostForm)
	if form.Valid() {
		if _, err := cc.comments.AddComment(r.Context(), postID, v.ID, form.Text); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			serverError(w, err)
			return
		}
	}
	http.Redirect(w, r, postURL(postID), http.StatusSeeOther)
}

// Edit handles editing a comment. Only the author may edit; anyone else is
// silently sent back to the post's detail page.
func (cc *CommentController) Edit(w http.ResponseWriter, r *http.Request) {
	comment, postID, ok := cc.fetchOwned(w, r)
	if !ok {
		return
	}

	form := &forms.CommentForm{}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		form.Bind(r.PostForm)
		if form.Valid() {
			comment.Text = form.Text
			if err := cc.comments.UpdateComment(r.Context(), comment); err != nil {
				serverError(w, err)
				return
			}
			http.Redirect(w, r, postURL(postID), http.StatusSeeOther)
			return
		}
	} else {
		form.Text = comment.Text
	}

	cc.renderCommentForm(w, r, form, comment, false)
}

// Delete handles comment deletion. GET shows a confirmation with the
// current text; POST deletes and redirects to the post. Only the author
// may delete.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	comment, postID, ok := cc.fetchOwned(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodPost {
		if err := cc.comments.DeleteComment(r.Context(), comment.ID); err != nil {
			serverError(w, err)
			return
		}
		http.Redirect(w, r, postURL(postID), http.StatusSeeOther)
		return
	}

	cc.renderCommentForm(w, r, nil, comment, true)
}

// fetchOwned loads the comment addressed by the route and enforces the
// ownership gate, writing the 404 or redirect itself when the caller
// should not proceed.
func (cc *CommentController) fetchOwned(w http.ResponseWriter, r *http.Request) (*models.Comment, int, bool) {
	vars := mux.Vars(r)
	postID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.NotFound(w, r)
		return nil, 0, false
	}
	commentID, err := strconv.Atoi(vars["cid"])
	if err != nil {
		http.NotFound(w, r)
		return nil, 0, false
	}

	comment, err := cc.comments.GetComment(r.Context(), commentID, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		http.NotFound(w, r)
		return nil, 0, false
	}
	if err != nil {
		serverError(w, err)
		return nil, 0, false
	}

	v := viewer(cc.sessions, r)
	if !comment.IsOwnedBy(v.ID) {
		http.Redirect(w, r, postURL(postID), http.StatusSeeOther)
		return nil, 0, false
	}
	return comment, postID, true
}

func (cc *CommentController) renderCommentForm(w http.ResponseWriter, r *http.Request, form *forms.CommentForm, comment *models.Comment, confirmDelete bool) {
	data := struct {
		Form          *forms.CommentForm
		Comment       *models.Comment
		ConfirmDelete bool
		Viewer        viewerInfo
	}{
		Form:          form,
		Comment:       comment,
		ConfirmDelete: confirmDelete,
		Viewer:        viewer(cc.sessions, r),
	}
	render(w, cc.templates["comment_form"], data)
}
