// Package prompt builds the instruction strings and the response schema sent
// to the generative backend.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/pkg/protocol"
)

// GeneratorPersona is the system instruction for survey drafting.
const GeneratorPersona = "You are an expert survey methodologist named Delphi."

const generationTemplate = `Create a comprehensive survey based on this research goal: "%s".
Ensure the questions are unbiased, clear, and follow best practices for survey design.

- Use "MATRIX" type when grouping similar questions with the same answer options.
- Use "SCALE" for linear ratings (1-5).
- Use "MULTIPLE_CHOICE" for selecting from a list.

Mix qualitative (text) and quantitative (scale/choice/matrix) questions appropriately.`

// Generation builds the survey drafting prompt from the goal plus optional
// context fields, which are appended as plain instruction lines.
func Generation(req *entity.GenerateSurveyRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, generationTemplate, req.Goal)

	if req.Domain != "" {
		fmt.Fprintf(&b, "\n\nThe survey belongs to the %q domain.", req.Domain)
	}
	if req.Audience != "" {
		fmt.Fprintf(&b, "\nThe target audience is: %s.", req.Audience)
	}
	if req.Tone != "" {
		fmt.Fprintf(&b, "\nWrite all questions in a %s tone.", req.Tone)
	}

	return b.String()
}

// SurveySchema declares the expected shape of a generated survey: title,
// description and an ordered question list restricted to the six-type enum.
func SurveySchema() *entity.SchemaDescriptor {
	return &entity.SchemaDescriptor{
		Type: "object",
		Properties: map[string]entity.SchemaDescriptor{
			"title":       {Type: "string", Description: "A creative, engaging title for the survey."},
			"description": {Type: "string", Description: "A brief, welcoming description of what the survey is about."},
			"questions": {
				Type: "array",
				Items: &entity.SchemaDescriptor{
					Type: "object",
					Properties: map[string]entity.SchemaDescriptor{
						"text": {Type: "string", Description: "The question text. For Matrix, this is the main prompt."},
						"type": {Type: "string", Enum: []string{
							string(entity.QuestionTypeMultipleChoice),
							string(entity.QuestionTypeScale),
							string(entity.QuestionTypeShortText),
							string(entity.QuestionTypeLongText),
							string(entity.QuestionTypeYesNo),
							string(entity.QuestionTypeMatrix),
						}},
						"options": {
							Type:        "array",
							Items:       &entity.SchemaDescriptor{Type: "string"},
							Description: "Options for MultipleChoice, or the column headers for a Matrix.",
						},
						"rows": {
							Type:        "array",
							Items:       &entity.SchemaDescriptor{Type: "string"},
							Description: "Only for Matrix type. The rows/items to be rated using the options.",
						},
						"minLabel": {Type: "string", Description: "Label for the lowest value in a scale."},
						"maxLabel": {Type: "string", Description: "Label for the highest value in a scale."},
					},
					Required: []string{"text", "type"},
				},
			},
		},
		Required: []string{"title", "description", "questions"},
	}
}

// interviewQuestion is the trimmed question view serialized into the
// interviewer system instruction.
type interviewQuestion struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
	Rows    []string `json:"rows,omitempty"`
}

// Interviewer builds the system instruction seeding an interview session:
// the full serialized question list plus the tag protocol rules.
func Interviewer(survey *entity.Survey) (string, error) {
	questions := make([]interviewQuestion, 0, len(survey.Questions))
	for _, q := range survey.Questions {
		questions = append(questions, interviewQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Type:    string(q.Type),
			Options: q.Options,
			Rows:    q.Rows,
		})
	}

	serialized, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize questions: %w", err)
	}

	exampleTag := protocol.QuestionTag("<question-id>")
	if len(survey.Questions) > 0 {
		exampleTag = protocol.QuestionTag(survey.Questions[0].ID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are Delphi, an intelligent and empathetic interviewer.
Your goal is to conduct this survey: "%s"
Description: "%s"

Here are the specific questions you need to get answers for:
%s

RULES:
1. Ask questions one by one.
2. CRITICAL: When you ask a question from the survey, you MUST append "%s" (replace ID with actual question ID) at the very end of your message.
3. This tag [[QID:...]] tells the interface to show the user the buttons, sliders, or matrix grid to answer.
4. For ShortText or LongText questions, still append the tag so the UI knows which question is active.
5. Maintain a conversational tone. Acknowledge answers briefly before asking the next one.
6. If the user answers via the UI, their message will come back as the selected value.
7. When all questions are answered, thank the user and type "%s".
`, survey.Title, survey.Description, serialized, exampleTag, protocol.EndSentinel)

	return b.String(), nil
}

// OpeningTurn is the synthetic user message priming the first question.
const OpeningTurn = "Start the interview now."
