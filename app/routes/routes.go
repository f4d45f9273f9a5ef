package routes

import (
	"net/http"

	"blogicum/app/controllers"
	"blogicum/app/middleware"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
)

// Setup defines the application's routes and returns the router. The
// caller wraps it with the session manager's LoadAndSave middleware.
func Setup(
	postController *controllers.PostController,
	commentController *controllers.CommentController,
	userController *controllers.UserController,
	sessions *scs.SessionManager,
	mediaDir string,
) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	auth := middleware.RequireAuth(sessions)

	// Uploaded post images
	router.PathPrefix("/media/").Handler(http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir))))

	// Listings
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/category/{slug}/", postController.Category).Methods("GET")

	// /profile/edit/ must be registered before the username route or
	// "edit" would be captured as a username.
	router.HandleFunc("/profile/edit/", auth(userController.EditProfile)).Methods("GET", "POST")
	router.HandleFunc("/profile/{username}/", postController.Profile).Methods("GET")

	// Posts
	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("/create/", auth(postController.Create)).Methods("GET", "POST")
	posts.HandleFunc("/{id:[0-9]+}/", postController.Show).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/edit/", auth(postController.Edit)).Methods("GET", "POST")
	posts.HandleFunc("/{id:[0-9]+}/delete/", auth(postController.Delete)).Methods("GET", "POST")

	// Comments
	posts.HandleFunc("/{id:[0-9]+}/comment/", auth(commentController.Add)).Methods("GET", "POST")
	posts.HandleFunc("/{id:[0-9]+}/comment/{cid:[0-9]+}/edit/", auth(commentController.Edit)).Methods("GET", "POST")
	posts.HandleFunc("/{id:[0-9]+}/comment/{cid:[0-9]+}/delete/", auth(commentController.Delete)).Methods("GET", "POST")

	// Auth
	authRoutes := router.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/registration/", userController.Register).Methods("GET", "POST")
	authRoutes.HandleFunc("/login/", userController.Login).Methods("GET", "POST")
	authRoutes.HandleFunc("/logout/", userController.Logout).Methods("GET", "POST")

	return router
}
