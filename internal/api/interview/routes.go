package interview

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers interview routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/interviews", func(r chi.Router) {
		r.Post("/", h.StartInterview)

		r.Route("/{interview_id}", func(r chi.Router) {
			r.Get("/", h.GetInterview)
			r.Delete("/", h.DeleteInterview)
			r.Post("/answers", h.SubmitAnswer)
			r.Get("/export", h.ExportInterview)
		})
	})
}
