package api

import (
	"net/http"
	"time"

	"github.com/delphi-research/survey-backend/internal/api/docs"
	interviewapi "github.com/delphi-research/survey-backend/internal/api/interview"
	"github.com/delphi-research/survey-backend/internal/api/middleware"
	surveyapi "github.com/delphi-research/survey-backend/internal/api/survey"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(surveyHandler *surveyapi.Handler, interviewHandler *interviewapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	surveyapi.RegisterRoutes(r, surveyHandler)
	interviewapi.RegisterRoutes(r, interviewHandler)

	return r
}
