package controllers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"blogicum/app/middleware"

	"github.com/alexedwards/scs/v2"
)

const maxUploadSize = 32 << 20

// viewerInfo identifies the requester for ownership checks and templates.
type viewerInfo struct {
	ID       int
	Username string
}

func (v viewerInfo) Authenticated() bool { return v.ID != 0 }

func viewer(sessions *scs.SessionManager, r *http.Request) viewerInfo {
	return viewerInfo{
		ID:       sessions.GetInt(r.Context(), middleware.SessionUserKey),
		Username: sessions.GetString(r.Context(), middleware.SessionUsernameKey),
	}
}

func postURL(id int) string {
	return "/posts/" + strconv.Itoa(id) + "/"
}

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

// parseSubmission parses a form body, accepting both urlencoded and
// multipart submissions (the post form may carry an image upload).
func parseSubmission(r *http.Request) (url.Values, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return nil, err
		}
		return url.Values(r.MultipartForm.Value), nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

func serverError(w http.ResponseWriter, err error) {
	log.Printf("server error: %v", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
