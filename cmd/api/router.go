package main

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/awessel/todo-api/docs"
	"github.com/awessel/todo-api/internal/auth"
	"github.com/awessel/todo-api/internal/cache"
	"github.com/awessel/todo-api/internal/config"
	"github.com/awessel/todo-api/internal/handlers"
	"github.com/awessel/todo-api/internal/middleware"
	"github.com/awessel/todo-api/internal/repo"
)

// newRouter builds the full API handler chain. Kept separate from main
// so integration tests can run the real router against a test DB.
func newRouter(db *sql.DB, todoCache *cache.TodoCache, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(false))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
	r.Use(chimw.StripSlashes)
	r.Use(chimw.Timeout(60 * time.Second))

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	tokenService := auth.NewTokenService([]byte(cfg.JWTSecret))
	authHandler := &handlers.AuthHandler{
		Users:  repo.NewUserRepo(db),
		Tokens: tokenService,
	}
	todoHandler := &handlers.TodoHandler{
		Repo:  repo.NewTodoRepo(db),
		Cache: todoCache,
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public auth routes
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	// Protected todo routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWT(tokenService))
		r.Get("/todo", todoHandler.List)
		r.Post("/todo", todoHandler.Create)
		r.Get("/todo/{id}", todoHandler.Get)
		r.Put("/todo/{id}", todoHandler.Update)
		r.Patch("/todo/{id}/done", todoHandler.MarkDone)
		r.Delete("/todo/{id}", todoHandler.Delete)
	})

	// Swagger UI
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusMovedPermanently)
	})
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}
