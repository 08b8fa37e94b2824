package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delphi-research/survey-backend/internal/entity"
)

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory()

	for _, format := range []entity.ResultFormat{
		entity.FormatMarkdown,
		entity.FormatPDF,
		entity.FormatDOCX,
	} {
		f, err := factory.Create(format)
		require.NoError(t, err, format)
		require.NotNil(t, f, format)
	}

	_, err := factory.Create(entity.ResultFormat("xlsx"))
	assert.Error(t, err)
}

func TestMarkdownFormatter(t *testing.T) {
	f := NewMarkdownFormatter()

	data, err := f.Format("Customer Feedback", "1. How did you hear about us?")
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "# Customer Feedback"))
	assert.Contains(t, text, "How did you hear about us?")
	assert.Equal(t, "text/markdown", f.ContentType())
	assert.Equal(t, ".md", f.FileExtension())
}

func TestNewFileMeta(t *testing.T) {
	meta := NewFileMeta("Coffee Habits", NewMarkdownFormatter())
	assert.Equal(t, "Coffee_Habits.md", meta.Filename)
	assert.Equal(t, "text/markdown", meta.ContentType)

	meta = NewFileMeta("Опрос", NewPDFFormatter())
	assert.Equal(t, "export.pdf", meta.Filename)
}

func TestSurveyBody(t *testing.T) {
	survey := &entity.Survey{
		Title:       "Product Feedback",
		Description: "Tell us what you think.",
		Questions: []entity.Question{
			{Text: "What do you like most?", Type: entity.QuestionTypeShortText},
			{Text: "Rate the product", Type: entity.QuestionTypeScale, MinLabel: "Poor", MaxLabel: "Great"},
			{Text: "Pick a plan", Type: entity.QuestionTypeMultipleChoice, Options: []string{"Basic", "Pro"}},
			{
				Text:    "Rate aspects",
				Type:    entity.QuestionTypeMatrix,
				Rows:    []string{"Speed", "Price"},
				Options: []string{"Good", "Bad"},
			},
		},
	}

	body := SurveyBody(survey)

	assert.Contains(t, body, "Tell us what you think.")
	assert.Contains(t, body, "1. What do you like most?")
	assert.Contains(t, body, "1 = Poor ... 5 = Great")
	assert.Contains(t, body, "- Basic")
	assert.Contains(t, body, "Rows: Speed, Price")
	assert.Contains(t, body, "Columns: Good, Bad")
}

func TestTranscriptBody(t *testing.T) {
	interview := &entity.Interview{
		Messages: []entity.Message{
			{Role: entity.MessageRoleModel, Content: "What is your name?"},
			{Role: entity.MessageRoleUser, Content: "Alex"},
			{Role: entity.MessageRoleSystem, Content: "An error occurred. Please try again."},
		},
	}

	body := TranscriptBody(interview)

	assert.Contains(t, body, "Interviewer: What is your name?")
	assert.Contains(t, body, "Respondent: Alex")
	assert.Contains(t, body, "System: An error occurred.")
}
