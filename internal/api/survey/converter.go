package survey

import "github.com/delphi-research/survey-backend/internal/entity"

// toSurveyDTO converts a Survey entity to its API representation
func toSurveyDTO(s *entity.Survey) *entity.SurveyDTO {
	questions := make([]entity.QuestionDTO, 0, len(s.Questions))
	for _, q := range s.Questions {
		questions = append(questions, entity.QuestionDTO{
			ID:       q.ID,
			Text:     q.Text,
			Type:     q.Type,
			Options:  q.Options,
			Rows:     q.Rows,
			MinLabel: q.MinLabel,
			MaxLabel: q.MaxLabel,
		})
	}

	return &entity.SurveyDTO{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Questions:   questions,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// toSurveySummaryDTO converts a Survey entity to a dashboard list entry
func toSurveySummaryDTO(s *entity.Survey) *entity.SurveySummaryDTO {
	return &entity.SurveySummaryDTO{
		ID:            s.ID,
		Title:         s.Title,
		Description:   s.Description,
		QuestionCount: len(s.Questions),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
