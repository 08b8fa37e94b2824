package survey

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/pkg/logger"
	"github.com/delphi-research/survey-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Handler struct {
	usecase SurveyUsecase
}

func NewHandler(usecase SurveyUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// GenerateSurvey handles POST /surveys/generate
func (h *Handler) GenerateSurvey(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateSurvey")

	var req entity.GenerateSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, err := h.usecase.GenerateSurvey(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "survey generated successfully", zap.String("survey_id", survey.ID))
	response.Created(w, toSurveyDTO(survey))
}

// ListSurveys handles GET /surveys
func (h *Handler) ListSurveys(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListSurveys")

	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	surveys, err := h.usecase.ListSurveys(ctx, skip, limit)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	summaries := make([]*entity.SurveySummaryDTO, 0, len(surveys))
	for _, s := range surveys {
		summaries = append(summaries, toSurveySummaryDTO(s))
	}

	ctxzap.Info(ctx, "surveys listed successfully", zap.Int("count", len(summaries)))
	response.Success(w, map[string]any{"surveys": summaries})
}

// GetSurvey handles GET /surveys/{survey_id}
func (h *Handler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	ctx := logger.AddFields(r.Context(),
		zap.String("survey_id", chi.URLParam(r, "survey_id")),
		zap.String("action", "GetSurvey"),
	)

	survey, err := h.usecase.GetSurvey(ctx, chi.URLParam(r, "survey_id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSurveyDTO(survey))
}

// UpdateSurvey handles PATCH /surveys/{survey_id}
func (h *Handler) UpdateSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "survey_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("survey_id", surveyID),
		zap.String("action", "UpdateSurvey"),
	)

	var req entity.UpdateSurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, err := h.usecase.UpdateSurvey(ctx, surveyID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "survey updated successfully")
	response.Success(w, toSurveyDTO(survey))
}

// DeleteSurvey handles DELETE /surveys/{survey_id}
func (h *Handler) DeleteSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "survey_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("survey_id", surveyID),
		zap.String("action", "DeleteSurvey"),
	)

	if err := h.usecase.DeleteSurvey(ctx, surveyID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "survey deleted successfully")
	response.NoContent(w)
}

// UpdateQuestion handles PATCH /surveys/{survey_id}/questions/{question_id}
func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "survey_id")
	questionID := chi.URLParam(r, "question_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("survey_id", surveyID),
		zap.String("question_id", questionID),
		zap.String("action", "UpdateQuestion"),
	)

	var req entity.UpdateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey, err := h.usecase.UpdateQuestion(ctx, surveyID, questionID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSurveyDTO(survey))
}

// DeleteQuestion handles DELETE /surveys/{survey_id}/questions/{question_id}
func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "survey_id")
	questionID := chi.URLParam(r, "question_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("survey_id", surveyID),
		zap.String("question_id", questionID),
		zap.String("action", "DeleteQuestion"),
	)

	survey, err := h.usecase.DeleteQuestion(ctx, surveyID, questionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSurveyDTO(survey))
}

// ExportSurvey handles GET /surveys/{survey_id}/export
func (h *Handler) ExportSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "survey_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("survey_id", surveyID),
		zap.String("action", "ExportSurvey"),
	)

	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatMarkdown
	}

	data, meta, err := h.usecase.ExportSurvey(ctx, surveyID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.File(w, meta.ContentType, meta.Filename, data)
}

// ListTemplates handles GET /templates
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]any{"templates": h.usecase.Templates()})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrSurveyNotFound):
		response.Error(w, http.StatusNotFound, "survey not found")
	case errors.Is(err, entity.ErrEmptyGoal),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrGeneration):
		response.Error(w, http.StatusBadGateway, "survey generation failed")
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
