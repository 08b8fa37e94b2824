package validator

import (
	"testing"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestValidateGenerateSurvey(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateGenerateSurvey(&entity.GenerateSurveyRequest{Goal: "coffee habits"}))
	assert.Error(t, v.ValidateGenerateSurvey(&entity.GenerateSurveyRequest{}))
	assert.ErrorIs(t, v.ValidateGenerateSurvey(&entity.GenerateSurveyRequest{Goal: "   \t\n"}), entity.ErrEmptyGoal)
}

func TestValidateUpdateQuestion(t *testing.T) {
	v := New()

	text := "How often?"
	blank := "  "
	bad := entity.QuestionType("SLIDER")
	good := entity.QuestionTypeScale

	assert.NoError(t, v.ValidateUpdateQuestion(&entity.UpdateQuestionRequest{Text: &text}))
	assert.NoError(t, v.ValidateUpdateQuestion(&entity.UpdateQuestionRequest{Type: &good}))
	assert.Error(t, v.ValidateUpdateQuestion(&entity.UpdateQuestionRequest{Text: &blank}))
	assert.ErrorIs(t, v.ValidateUpdateQuestion(&entity.UpdateQuestionRequest{Type: &bad}), entity.ErrInvalidParameter)
}

func TestValidateSubmitAnswer(t *testing.T) {
	v := New()

	cases := []struct {
		name    string
		req     entity.SubmitAnswerRequest
		wantErr error
	}{
		{"text ok", entity.SubmitAnswerRequest{Kind: entity.AnswerKindText, Text: "great"}, nil},
		{"blank text", entity.SubmitAnswerRequest{Kind: entity.AnswerKindText, Text: " "}, entity.ErrEmptyAnswer},
		{"scale ok", entity.SubmitAnswerRequest{Kind: entity.AnswerKindScale, Scale: 4}, nil},
		{"scale low", entity.SubmitAnswerRequest{Kind: entity.AnswerKindScale, Scale: 0}, entity.ErrInvalidScaleValue},
		{"scale high", entity.SubmitAnswerRequest{Kind: entity.AnswerKindScale, Scale: 6}, entity.ErrInvalidScaleValue},
		{"choice ok", entity.SubmitAnswerRequest{Kind: entity.AnswerKindChoice, Choice: "Yes"}, nil},
		{"empty matrix", entity.SubmitAnswerRequest{Kind: entity.AnswerKindMatrix}, entity.ErrEmptyAnswer},
		{"matrix ok", entity.SubmitAnswerRequest{Kind: entity.AnswerKindMatrix, Matrix: []entity.MatrixSelection{{Row: "Speed", Option: "Good"}}}, nil},
		{"unknown kind", entity.SubmitAnswerRequest{Kind: "voice"}, entity.ErrUnknownAnswerKind},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateSubmitAnswer(&tc.req)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
