package validator

import (
	"fmt"
	"strings"

	"github.com/delphi-research/survey-backend/internal/entity"
)

// ValidateGenerateSurvey validates a generation request. The goal must carry
// visible characters; whitespace-only input never reaches the backend.
func (v *Validator) ValidateGenerateSurvey(req *entity.GenerateSurveyRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: goal", entity.ErrMissingField)
	}

	if strings.TrimSpace(req.Goal) == "" {
		return entity.ErrEmptyGoal
	}

	return nil
}

// ValidateUpdateSurvey validates a survey header update
func (v *Validator) ValidateUpdateSurvey(req *entity.UpdateSurveyRequest) error {
	if req.Title == nil && req.Description == nil {
		return fmt.Errorf("%w: at least one of title, description", entity.ErrMissingField)
	}

	return nil
}

// ValidateUpdateQuestion validates a partial question update
func (v *Validator) ValidateUpdateQuestion(req *entity.UpdateQuestionRequest) error {
	if req.Type != nil {
		if err := req.Type.Validate(); err != nil {
			return fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
		}
	}

	if req.Text != nil && strings.TrimSpace(*req.Text) == "" {
		return fmt.Errorf("%w: text must not be blank", entity.ErrInvalidParameter)
	}

	return nil
}

// ValidateExportFormat validates the export format query parameter
func (v *Validator) ValidateExportFormat(format entity.ResultFormat) error {
	if err := format.Validate(); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	return nil
}
