package formatter

import (
	"fmt"
	"strings"

	"github.com/delphi-research/survey-backend/internal/entity"
)

// SurveyBody renders a survey definition as plain text suitable for any of
// the formatters.
func SurveyBody(survey *entity.Survey) string {
	var b strings.Builder

	if survey.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", survey.Description)
	}

	for i, q := range survey.Questions {
		fmt.Fprintf(&b, "%d. %s [%s]\n", i+1, q.Text, q.Type)

		switch q.Type {
		case entity.QuestionTypeScale:
			minLabel := q.MinLabel
			if minLabel == "" {
				minLabel = "Low"
			}
			maxLabel := q.MaxLabel
			if maxLabel == "" {
				maxLabel = "High"
			}
			fmt.Fprintf(&b, "   1 = %s ... 5 = %s\n", minLabel, maxLabel)
		case entity.QuestionTypeMatrix:
			if len(q.Rows) > 0 {
				fmt.Fprintf(&b, "   Rows: %s\n", strings.Join(q.Rows, ", "))
			}
			if len(q.Options) > 0 {
				fmt.Fprintf(&b, "   Columns: %s\n", strings.Join(q.Options, ", "))
			}
		default:
			for _, opt := range q.Options {
				fmt.Fprintf(&b, "   - %s\n", opt)
			}
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// TranscriptBody renders an interview transcript as plain text. System
// entries are kept so exported transcripts show what the respondent saw.
func TranscriptBody(interview *entity.Interview) string {
	var b strings.Builder

	for _, msg := range interview.Messages {
		var label string
		switch msg.Role {
		case entity.MessageRoleUser:
			label = "Respondent"
		case entity.MessageRoleModel:
			label = "Interviewer"
		default:
			label = "System"
		}
		fmt.Fprintf(&b, "%s: %s\n\n", label, msg.Content)
	}

	return strings.TrimRight(b.String(), "\n")
}
