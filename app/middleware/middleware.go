package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

// Session keys for the authenticated requester.
const (
	SessionUserKey     = "authUserID"
	SessionUsernameKey = "authUsername"
)

// LoginURL is where unauthenticated requests to gated routes are sent.
const LoginURL = "/auth/login/"

// Logger logs information about each request
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s took %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// Recoverer recovers from panics and logs the error
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RequireAuth wraps a handler so that unauthenticated requests are
// redirected to the login page instead of reaching it.
func RequireAuth(sessions *scs.SessionManager) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if sessions.GetInt(r.Context(), SessionUserKey) == 0 {
				http.Redirect(w, r, LoginURL, http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}
