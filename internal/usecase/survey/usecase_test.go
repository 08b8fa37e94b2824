package survey

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/pkg/formatter"
	"github.com/delphi-research/survey-backend/internal/pkg/validator"
)

type fakeSurveyRepo struct {
	surveys     map[string]entity.Survey
	updateCalls int
}

func newFakeSurveyRepo() *fakeSurveyRepo {
	return &fakeSurveyRepo{surveys: make(map[string]entity.Survey)}
}

func (r *fakeSurveyRepo) Create(_ context.Context, survey entity.Survey) (*entity.Survey, error) {
	r.surveys[survey.ID] = survey
	return &survey, nil
}

func (r *fakeSurveyRepo) Get(_ context.Context, id string) (*entity.Survey, error) {
	survey, ok := r.surveys[id]
	if !ok {
		return nil, entity.ErrSurveyNotFound
	}
	return &survey, nil
}

func (r *fakeSurveyRepo) List(_ context.Context, _, _ int) ([]*entity.Survey, error) {
	out := make([]*entity.Survey, 0, len(r.surveys))
	for id := range r.surveys {
		survey := r.surveys[id]
		out = append(out, &survey)
	}
	return out, nil
}

func (r *fakeSurveyRepo) Update(_ context.Context, survey entity.Survey) (*entity.Survey, error) {
	if _, ok := r.surveys[survey.ID]; !ok {
		return nil, entity.ErrSurveyNotFound
	}
	r.updateCalls++
	r.surveys[survey.ID] = survey
	return &survey, nil
}

func (r *fakeSurveyRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.surveys[id]; !ok {
		return entity.ErrSurveyNotFound
	}
	delete(r.surveys, id)
	return nil
}

type fakeLLM struct {
	text string
	err  error
}

func (f *fakeLLM) Generate(_ context.Context, _ *entity.LLMGenerateRequest) (*entity.LLMGenerateResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.LLMGenerateResponse{Text: f.text}, nil
}

const generatedJSON = `{
	"title": "Coffee Habits",
	"description": "How people drink coffee.",
	"questions": [
		{"text": "How many cups per day?", "type": "MULTIPLE_CHOICE", "options": ["1", "2", "3+"]},
		{"text": "Rate your favorite brew", "type": "SCALE", "minLabel": "Awful", "maxLabel": "Perfect"}
	]
}`

func newTestUsecase(repo *fakeSurveyRepo, llm *fakeLLM) *SurveyUsecase {
	return NewUsecase(
		repo,
		llm,
		validator.New(),
		formatter.NewFactory(),
		[]entity.Template{{Label: "Feedback Form", Prompt: "Create a feedback survey."}},
		zap.NewNop(),
	)
}

func TestGenerateSurvey(t *testing.T) {
	repo := newFakeSurveyRepo()
	uc := newTestUsecase(repo, &fakeLLM{text: generatedJSON})

	survey, err := uc.GenerateSurvey(context.Background(), &entity.GenerateSurveyRequest{Goal: "coffee habits"})
	require.NoError(t, err)

	assert.Equal(t, "Coffee Habits", survey.Title)
	require.Len(t, survey.Questions, 2)

	assert.NotEmpty(t, survey.ID)
	seen := map[string]bool{}
	for _, q := range survey.Questions {
		assert.NotEmpty(t, q.ID)
		assert.False(t, seen[q.ID], "question ids must be unique")
		seen[q.ID] = true
	}

	assert.Equal(t, entity.QuestionTypeScale, survey.Questions[1].Type)
	assert.Equal(t, "Awful", survey.Questions[1].MinLabel)

	_, ok := repo.surveys[survey.ID]
	assert.True(t, ok, "survey must be persisted")
}

func TestGenerateSurveyFencedJSON(t *testing.T) {
	uc := newTestUsecase(newFakeSurveyRepo(), &fakeLLM{text: "```json\n" + generatedJSON + "\n```"})

	survey, err := uc.GenerateSurvey(context.Background(), &entity.GenerateSurveyRequest{Goal: "coffee"})
	require.NoError(t, err)
	assert.Equal(t, "Coffee Habits", survey.Title)
}

func TestGenerateSurveyEmptyGoal(t *testing.T) {
	uc := newTestUsecase(newFakeSurveyRepo(), &fakeLLM{text: generatedJSON})

	_, err := uc.GenerateSurvey(context.Background(), &entity.GenerateSurveyRequest{Goal: "   "})
	assert.ErrorIs(t, err, entity.ErrEmptyGoal)

	_, err = uc.GenerateSurvey(context.Background(), &entity.GenerateSurveyRequest{})
	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestGenerateSurveyBackendFailure(t *testing.T) {
	uc := newTestUsecase(newFakeSurveyRepo(), &fakeLLM{err: errors.New("service unavailable")})

	_, err := uc.GenerateSurvey(context.Background(), &entity.GenerateSurveyRequest{Goal: "coffee"})
	assert.ErrorIs(t, err, entity.ErrGeneration)
}

func TestGenerateSurveyMalformedOutput(t *testing.T) {
	uc := newTestUsecase(newFakeSurveyRepo(), &fakeLLM{text: "Sorry, I cannot help with that."})

	_, err := uc.GenerateSurvey(context.Background(), &entity.GenerateSurveyRequest{Goal: "coffee"})
	assert.ErrorIs(t, err, entity.ErrGeneration)
}

// Decodable output is kept as-is even when it is weak: the parse does not
// re-check enum membership or that the question list is non-empty.
func TestGenerateSurveyKeepsWeakOutput(t *testing.T) {
	t.Run("no questions", func(t *testing.T) {
		uc := newTestUsecase(newFakeSurveyRepo(),
			&fakeLLM{text: `{"title": "Empty", "description": "", "questions": []}`})

		survey, err := uc.GenerateSurvey(context.Background(), &entity.GenerateSurveyRequest{Goal: "coffee"})
		require.NoError(t, err)
		assert.Equal(t, "Empty", survey.Title)
		assert.Empty(t, survey.Questions)
	})

	t.Run("unknown question type", func(t *testing.T) {
		uc := newTestUsecase(newFakeSurveyRepo(),
			&fakeLLM{text: `{"title": "T", "description": "", "questions": [{"text": "Q", "type": "RANKING"}]}`})

		survey, err := uc.GenerateSurvey(context.Background(), &entity.GenerateSurveyRequest{Goal: "coffee"})
		require.NoError(t, err)
		require.Len(t, survey.Questions, 1)
		assert.Equal(t, entity.QuestionType("RANKING"), survey.Questions[0].Type)
	})
}

func TestUpdateSurvey(t *testing.T) {
	repo := newFakeSurveyRepo()
	uc := newTestUsecase(repo, &fakeLLM{text: generatedJSON})

	survey, err := uc.GenerateSurvey(context.Background(), &entity.GenerateSurveyRequest{Goal: "coffee"})
	require.NoError(t, err)

	title := "Renamed"
	updated, err := uc.UpdateSurvey(context.Background(), survey.ID, &entity.UpdateSurveyRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, survey.Description, updated.Description)

	_, err = uc.UpdateSurvey(context.Background(), survey.ID, &entity.UpdateSurveyRequest{})
	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestUpdateQuestion(t *testing.T) {
	repo := newFakeSurveyRepo()
	uc := newTestUsecase(repo, &fakeLLM{text: generatedJSON})

	survey, err := uc.GenerateSurvey(context.Background(), &entity.GenerateSurveyRequest{Goal: "coffee"})
	require.NoError(t, err)

	text := "How many espressos per day?"
	updated, err := uc.UpdateQuestion(context.Background(), survey.ID, survey.Questions[0].ID,
		&entity.UpdateQuestionRequest{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, text, updated.Questions[0].Text)
}

func TestUpdateQuestionUnknownIDIsNoop(t *testing.T) {
	repo := newFakeSurveyRepo()
	uc := newTestUsecase(repo, &fakeLLM{text: generatedJSON})

	survey, err := uc.GenerateSurvey(context.Background(), &entity.GenerateSurveyRequest{Goal: "coffee"})
	require.NoError(t, err)

	text := "ignored"
	updated, err := uc.UpdateQuestion(context.Background(), survey.ID, "no-such-question",
		&entity.UpdateQuestionRequest{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, survey.Questions, updated.Questions)
	assert.Zero(t, repo.updateCalls)
}

func TestDeleteQuestion(t *testing.T) {
	repo := newFakeSurveyRepo()
	uc := newTestUsecase(repo, &fakeLLM{text: generatedJSON})

	survey, err := uc.GenerateSurvey(context.Background(), &entity.GenerateSurveyRequest{Goal: "coffee"})
	require.NoError(t, err)

	updated, err := uc.DeleteQuestion(context.Background(), survey.ID, survey.Questions[0].ID)
	require.NoError(t, err)
	require.Len(t, updated.Questions, 1)
	assert.Equal(t, survey.Questions[1].ID, updated.Questions[0].ID)

	// the caller's snapshot must keep its own backing array
	require.Len(t, survey.Questions, 2)
	assert.NotEqual(t, survey.Questions[0].ID, survey.Questions[1].ID)

	// deleting again is a silent no-op
	again, err := uc.DeleteQuestion(context.Background(), survey.ID, survey.Questions[0].ID)
	require.NoError(t, err)
	assert.Len(t, again.Questions, 1)
}

func TestExportSurvey(t *testing.T) {
	repo := newFakeSurveyRepo()
	uc := newTestUsecase(repo, &fakeLLM{text: generatedJSON})

	survey, err := uc.GenerateSurvey(context.Background(), &entity.GenerateSurveyRequest{Goal: "coffee"})
	require.NoError(t, err)

	data, meta, err := uc.ExportSurvey(context.Background(), survey.ID, entity.FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Coffee Habits")
	assert.Equal(t, "Coffee_Habits.md", meta.Filename)

	_, _, err = uc.ExportSurvey(context.Background(), survey.ID, entity.ResultFormat("csv"))
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}
