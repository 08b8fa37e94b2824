package survey

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/google/uuid"
)

// buildSurvey decodes the generated document and realizes it as a survey
// entity. Backend-supplied identifiers, if any, are discarded: every survey
// and question gets a fresh uuid here, which is what makes question ids
// collision-free across the whole store.
//
// The parse is best-effort: only JSON decoding can fail. Enum membership,
// question-list emptiness and cross-field consistency (a matrix without
// rows) are NOT re-validated — a weak question is kept, and the interview
// layer degrades its widget instead.
func buildSurvey(raw string) (*entity.Survey, error) {
	var generated entity.GeneratedSurvey
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &generated); err != nil {
		return nil, fmt.Errorf("decode generated survey: %w", err)
	}

	survey := &entity.Survey{
		ID:          uuid.New().String(),
		Title:       generated.Title,
		Description: generated.Description,
		Questions:   make([]entity.Question, 0, len(generated.Questions)),
	}

	for _, gq := range generated.Questions {
		survey.Questions = append(survey.Questions, entity.Question{
			ID:       uuid.New().String(),
			Text:     gq.Text,
			Type:     entity.QuestionType(gq.Type),
			Options:  gq.Options,
			Rows:     gq.Rows,
			MinLabel: gq.MinLabel,
			MaxLabel: gq.MaxLabel,
		})
	}

	return survey, nil
}

// stripCodeFence unwraps a ```json fenced block, which some backends emit
// even when asked for bare JSON.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}

// applyQuestionUpdate copies the non-nil request fields onto the question.
func applyQuestionUpdate(q *entity.Question, req *entity.UpdateQuestionRequest) {
	if req.Text != nil {
		q.Text = *req.Text
	}
	if req.Type != nil {
		q.Type = *req.Type
	}
	if req.Options != nil {
		q.Options = *req.Options
	}
	if req.Rows != nil {
		q.Rows = *req.Rows
	}
	if req.MinLabel != nil {
		q.MinLabel = *req.MinLabel
	}
	if req.MaxLabel != nil {
		q.MaxLabel = *req.MaxLabel
	}
}
