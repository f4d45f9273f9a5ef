package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"blogicum/app/config"
	"blogicum/app/controllers"
	"blogicum/app/repositories"
	"blogicum/app/routes"
	"blogicum/app/services"

	"github.com/alexedwards/scs/badgerstore"
	"github.com/alexedwards/scs/v2"
	"github.com/dgraph-io/badger"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := repositories.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("could not initialize database: %v", err)
	}
	defer db.Close()
	if err := db.CreateTables(ctx); err != nil {
		log.Fatalf("could not create tables: %v", err)
	}
	log.Println("successfully connected to the database")

	// Sessions live in an embedded Badger store so they survive restarts.
	sessionDB, err := badger.Open(badger.DefaultOptions(cfg.SessionDBPath).WithLogger(nil))
	if err != nil {
		log.Fatalf("could not open session store: %v", err)
	}
	defer sessionDB.Close()

	sessions := scs.New()
	sessions.Store = badgerstore.New(sessionDB)
	sessions.Lifetime = 7 * 24 * time.Hour

	postRepo := repositories.NewPgxPostRepository(db.Pool)
	commentRepo := repositories.NewPgxCommentRepository(db.Pool)
	categoryRepo := repositories.NewPgxCategoryRepository(db.Pool)
	locationRepo := repositories.NewPgxLocationRepository(db.Pool)
	userRepo := repositories.NewPgxUserRepository(db.Pool)

	postService := services.NewPostService(postRepo, commentRepo, categoryRepo, locationRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	userService := services.NewUserService(userRepo)

	templates := controllers.LoadTemplates("")
	postController := controllers.NewPostController(postService, sessions, templates, cfg.MediaDir)
	commentController := controllers.NewCommentController(commentService, sessions, templates)
	userController := controllers.NewUserController(userService, sessions, templates)

	router := routes.Setup(postController, commentController, userController, sessions, cfg.MediaDir)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      sessions.LoadAndSave(router),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("starting blogicum on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
