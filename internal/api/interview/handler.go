package interview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/pkg/logger"
	"github.com/delphi-research/survey-backend/internal/pkg/response"
	interviewuc "github.com/delphi-research/survey-backend/internal/usecase/interview"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase InterviewUsecase
}

func NewHandler(usecase InterviewUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// StartInterview handles POST /interviews
func (h *Handler) StartInterview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartInterview")

	var req entity.StartInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	iv, err := h.usecase.StartInterview(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "interview started successfully", zap.String("interview_id", iv.ID))
	response.Created(w, interviewuc.ToInterviewDTO(iv))
}

// GetInterview handles GET /interviews/{interview_id}
func (h *Handler) GetInterview(w http.ResponseWriter, r *http.Request) {
	interviewID := chi.URLParam(r, "interview_id")
	ctx := logger.WithInterview(r.Context(), interviewID, "GetInterview")

	iv, err := h.usecase.GetInterview(ctx, interviewID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, interviewuc.ToInterviewDTO(iv))
}

// SubmitAnswer handles POST /interviews/{interview_id}/answers
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	interviewID := chi.URLParam(r, "interview_id")
	ctx := logger.WithInterview(r.Context(), interviewID, "SubmitAnswer")

	var req entity.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	iv, err := h.usecase.SubmitAnswer(ctx, interviewID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, interviewuc.ToInterviewDTO(iv))
}

// ExportInterview handles GET /interviews/{interview_id}/export
func (h *Handler) ExportInterview(w http.ResponseWriter, r *http.Request) {
	interviewID := chi.URLParam(r, "interview_id")
	ctx := logger.WithInterview(r.Context(), interviewID, "ExportInterview")

	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatMarkdown
	}

	data, meta, err := h.usecase.ExportInterview(ctx, interviewID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.File(w, meta.ContentType, meta.Filename, data)
}

// DeleteInterview handles DELETE /interviews/{interview_id}
func (h *Handler) DeleteInterview(w http.ResponseWriter, r *http.Request) {
	interviewID := chi.URLParam(r, "interview_id")
	ctx := logger.WithInterview(r.Context(), interviewID, "DeleteInterview")

	if err := h.usecase.DeleteInterview(ctx, interviewID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "interview deleted successfully")
	response.NoContent(w)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrInterviewNotFound),
		errors.Is(err, entity.ErrSurveyNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrTurnInProgress),
		errors.Is(err, entity.ErrInterviewFinished):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrIncompleteMatrix),
		errors.Is(err, entity.ErrInvalidScaleValue),
		errors.Is(err, entity.ErrEmptyAnswer),
		errors.Is(err, entity.ErrUnknownAnswerKind),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
