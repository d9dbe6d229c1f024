// Package api exposes the question, submission, and result boundaries
// over HTTP, plus the client the TUI uses in remote mode.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/prasetya/ujian/internal/pack"
	"github.com/prasetya/ujian/internal/store"
)

// NewServer assembles the HTTP API over the given boundaries.
func NewServer(src pack.Source, st store.ResultStore, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/questions", GetQuestionsHandler(src))
		ar.Post("/submit-test", SubmitTestHandler(st))
		ar.Get("/results", GetResultHandler(st))
	})

	return r
}
