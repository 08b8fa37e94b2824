package survey

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers survey routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/templates", h.ListTemplates)

	r.Route("/surveys", func(r chi.Router) {
		r.Post("/generate", h.GenerateSurvey)
		r.Get("/", h.ListSurveys)

		r.Route("/{survey_id}", func(r chi.Router) {
			r.Get("/", h.GetSurvey)
			r.Patch("/", h.UpdateSurvey)
			r.Delete("/", h.DeleteSurvey)
			r.Get("/export", h.ExportSurvey)

			r.Route("/questions/{question_id}", func(r chi.Router) {
				r.Patch("/", h.UpdateQuestion)
				r.Delete("/", h.DeleteQuestion)
			})
		})
	})
}
