package validator

import (
	"fmt"
	"strings"

	"github.com/delphi-research/survey-backend/internal/entity"
)

// ValidateStartInterview validates an interview start request
func (v *Validator) ValidateStartInterview(req *entity.StartInterviewRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: survey_id", entity.ErrMissingField)
	}

	return nil
}

// ValidateSubmitAnswer validates one answer submission. Value checks that
// depend on the active question (matrix completeness against declared rows)
// are enforced by the interview use case, not here.
func (v *Validator) ValidateSubmitAnswer(req *entity.SubmitAnswerRequest) error {
	switch req.Kind {
	case entity.AnswerKindText:
		if strings.TrimSpace(req.Text) == "" {
			return entity.ErrEmptyAnswer
		}
	case entity.AnswerKindScale:
		if req.Scale < 1 || req.Scale > 5 {
			return entity.ErrInvalidScaleValue
		}
	case entity.AnswerKindChoice:
		if req.Choice == "" {
			return entity.ErrEmptyAnswer
		}
	case entity.AnswerKindMatrix:
		if len(req.Matrix) == 0 {
			return entity.ErrEmptyAnswer
		}
		for _, sel := range req.Matrix {
			if sel.Row == "" || sel.Option == "" {
				return fmt.Errorf("%w: matrix selections need row and option", entity.ErrInvalidParameter)
			}
		}
	default:
		return entity.ErrUnknownAnswerKind
	}

	return nil
}
