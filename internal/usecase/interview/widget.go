package interview

import (
	"github.com/delphi-research/survey-backend/internal/entity"
)

const (
	scaleMin = 1
	scaleMax = 5
)

var yesNoChoices = []string{"Yes", "No"}

// BuildWidget derives the input affordance for the session's active
// question. The widget comes from the snapshot's question type, never from
// model output: an unresolvable tag yields no widget at all, and a question
// missing the fields its type needs degrades to free text rather than
// rendering an unusable control.
func BuildWidget(interview *entity.Interview) *entity.WidgetDTO {
	question := activeQuestion(interview)
	if question == nil {
		return nil
	}

	widget := &entity.WidgetDTO{QuestionID: question.ID}

	switch question.Type {
	case entity.QuestionTypeMultipleChoice:
		if len(question.Options) == 0 {
			widget.Kind = entity.WidgetKindText
			break
		}
		widget.Kind = entity.WidgetKindChoice
		widget.Choices = question.Options

	case entity.QuestionTypeYesNo:
		widget.Kind = entity.WidgetKindChoice
		widget.Choices = yesNoChoices

	case entity.QuestionTypeScale:
		widget.Kind = entity.WidgetKindScale
		widget.ScaleMin = scaleMin
		widget.ScaleMax = scaleMax
		widget.MinLabel = question.MinLabel
		widget.MaxLabel = question.MaxLabel

	case entity.QuestionTypeMatrix:
		if len(question.Rows) == 0 || len(question.Options) == 0 {
			widget.Kind = entity.WidgetKindText
			break
		}
		widget.Kind = entity.WidgetKindMatrix
		widget.Rows = question.Rows
		widget.Options = question.Options

	default:
		widget.Kind = entity.WidgetKindText
	}

	return widget
}
