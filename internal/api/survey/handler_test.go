package survey

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/pkg/formatter"
)

type stubUsecase struct {
	survey *entity.Survey
	err    error
}

func (s *stubUsecase) GenerateSurvey(_ context.Context, req *entity.GenerateSurveyRequest) (*entity.Survey, error) {
	if strings.TrimSpace(req.Goal) == "" {
		return nil, entity.ErrEmptyGoal
	}
	return s.survey, s.err
}

func (s *stubUsecase) ListSurveys(_ context.Context, _, _ int) ([]*entity.Survey, error) {
	return []*entity.Survey{s.survey}, s.err
}

func (s *stubUsecase) GetSurvey(_ context.Context, id string) (*entity.Survey, error) {
	if s.survey == nil || s.survey.ID != id {
		return nil, entity.ErrSurveyNotFound
	}
	return s.survey, nil
}

func (s *stubUsecase) UpdateSurvey(_ context.Context, _ string, _ *entity.UpdateSurveyRequest) (*entity.Survey, error) {
	return s.survey, s.err
}

func (s *stubUsecase) DeleteSurvey(_ context.Context, _ string) error {
	return s.err
}

func (s *stubUsecase) UpdateQuestion(_ context.Context, _, _ string, _ *entity.UpdateQuestionRequest) (*entity.Survey, error) {
	return s.survey, s.err
}

func (s *stubUsecase) DeleteQuestion(_ context.Context, _, _ string) (*entity.Survey, error) {
	return s.survey, s.err
}

func (s *stubUsecase) ExportSurvey(_ context.Context, _ string, format entity.ResultFormat) ([]byte, *formatter.FileMeta, error) {
	if err := format.Validate(); err != nil {
		return nil, nil, entity.ErrInvalidParameter
	}
	return []byte("# Export"), &formatter.FileMeta{Filename: "Export.md", ContentType: "text/markdown"}, nil
}

func (s *stubUsecase) Templates() []entity.Template {
	return []entity.Template{{Label: "Feedback Form", Prompt: "Create a feedback survey."}}
}

func newTestRouter(stub *stubUsecase) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(stub))
	return r
}

func fixtureSurvey() *entity.Survey {
	return &entity.Survey{
		ID:          "s1",
		Title:       "Onboarding Feedback",
		Description: "First-week impressions.",
		Questions: []entity.Question{
			{ID: "q1", Text: "How was setup?", Type: entity.QuestionTypeShortText},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestGenerateSurveyHandler(t *testing.T) {
	router := newTestRouter(&stubUsecase{survey: fixtureSurvey()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/surveys/generate",
		strings.NewReader(`{"goal": "onboarding feedback"}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var dto entity.SurveyDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "Onboarding Feedback", dto.Title)
	require.Len(t, dto.Questions, 1)
	assert.Equal(t, entity.QuestionTypeShortText, dto.Questions[0].Type)
}

func TestGenerateSurveyHandlerEmptyGoal(t *testing.T) {
	router := newTestRouter(&stubUsecase{survey: fixtureSurvey()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/surveys/generate", strings.NewReader(`{"goal": "  "}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateSurveyHandlerBadBody(t *testing.T) {
	router := newTestRouter(&stubUsecase{survey: fixtureSurvey()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/surveys/generate", strings.NewReader(`{not json`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateSurveyHandlerBackendDown(t *testing.T) {
	router := newTestRouter(&stubUsecase{err: entity.ErrGeneration})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/surveys/generate", strings.NewReader(`{"goal": "x"}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetSurveyHandlerNotFound(t *testing.T) {
	router := newTestRouter(&stubUsecase{survey: fixtureSurvey()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/surveys/unknown", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportSurveyHandler(t *testing.T) {
	router := newTestRouter(&stubUsecase{survey: fixtureSurvey()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/surveys/s1/export?format=md", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Export.md")

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/surveys/s1/export?format=csv", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTemplatesHandler(t *testing.T) {
	router := newTestRouter(&stubUsecase{survey: fixtureSurvey()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Feedback Form")
}
