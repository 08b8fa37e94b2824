package prompt

import (
	"testing"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneration(t *testing.T) {
	base := Generation(&entity.GenerateSurveyRequest{Goal: "coffee preferences"})
	assert.Contains(t, base, `"coffee preferences"`)
	assert.NotContains(t, base, "domain")

	full := Generation(&entity.GenerateSurveyRequest{
		Goal:     "coffee preferences",
		Domain:   "consumer research",
		Audience: "office workers",
		Tone:     "casual",
	})
	assert.Contains(t, full, `"consumer research" domain`)
	assert.Contains(t, full, "office workers")
	assert.Contains(t, full, "casual tone")
}

func TestSurveySchema(t *testing.T) {
	schema := SurveySchema()

	require.Contains(t, schema.Properties, "questions")
	items := schema.Properties["questions"].Items
	require.NotNil(t, items)

	typeProp, ok := items.Properties["type"]
	require.True(t, ok)
	assert.Len(t, typeProp.Enum, 6)
	assert.Contains(t, typeProp.Enum, "MATRIX")
	assert.Equal(t, []string{"text", "type"}, items.Required)
}

func TestInterviewer(t *testing.T) {
	survey := &entity.Survey{
		ID:          "s1",
		Title:       "Coffee Habits",
		Description: "Tell us how you drink coffee.",
		Questions: []entity.Question{
			{ID: "q-1", Text: "How many cups per day?", Type: entity.QuestionTypeScale},
			{ID: "q-2", Text: "Favorite brew?", Type: entity.QuestionTypeMultipleChoice, Options: []string{"Espresso", "Filter"}},
		},
	}

	instruction, err := Interviewer(survey)
	require.NoError(t, err)

	assert.Contains(t, instruction, "Coffee Habits")
	assert.Contains(t, instruction, `"q-1"`)
	assert.Contains(t, instruction, `"q-2"`)
	assert.Contains(t, instruction, "[[QID:q-1]]")
	assert.Contains(t, instruction, "[[END_OF_SURVEY]]")
	assert.Contains(t, instruction, "Espresso")
}
