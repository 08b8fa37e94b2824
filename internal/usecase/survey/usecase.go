package survey

import (
	"context"
	"fmt"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/pkg/formatter"
	"github.com/delphi-research/survey-backend/internal/pkg/prompt"
	"github.com/delphi-research/survey-backend/internal/pkg/validator"
	"github.com/delphi-research/survey-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// SurveyUsecase implements survey drafting and editing business logic
type SurveyUsecase struct {
	surveyRepo       repository.SurveyRepository
	llmConnector     LLMConnector
	validator        *validator.Validator
	formatterFactory *formatter.Factory
	templates        []entity.Template
	logger           *zap.Logger
}

// NewUsecase creates a new survey use case
func NewUsecase(
	surveyRepo repository.SurveyRepository,
	llmConnector LLMConnector,
	validator *validator.Validator,
	formatterFactory *formatter.Factory,
	templates []entity.Template,
	logger *zap.Logger,
) *SurveyUsecase {
	return &SurveyUsecase{
		surveyRepo:       surveyRepo,
		llmConnector:     llmConnector,
		validator:        validator,
		formatterFactory: formatterFactory,
		templates:        templates,
		logger:           logger,
	}
}

// GenerateSurvey drafts a survey from a research goal. A single generation
// attempt is made: any backend or parse failure surfaces to the caller, and
// trying again is always an explicit user action.
func (uc *SurveyUsecase) GenerateSurvey(
	ctx context.Context,
	req *entity.GenerateSurveyRequest,
) (*entity.Survey, error) {
	if err := uc.validator.ValidateGenerateSurvey(req); err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "generating survey", zap.Int("goal_length", len(req.Goal)))

	resp, err := uc.llmConnector.Generate(ctx, &entity.LLMGenerateRequest{
		Prompt:            prompt.Generation(req),
		SystemInstruction: prompt.GeneratorPersona,
		ResponseSchema:    prompt.SurveySchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrGeneration, err)
	}

	survey, err := buildSurvey(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrGeneration, err)
	}

	saved, err := uc.surveyRepo.Create(ctx, *survey)
	if err != nil {
		return nil, fmt.Errorf("save survey: %w", err)
	}

	ctxzap.Info(ctx, "survey generated",
		zap.String("survey_id", saved.ID),
		zap.Int("question_count", len(saved.Questions)),
	)

	return saved, nil
}

// ListSurveys retrieves surveys with pagination, newest first
func (uc *SurveyUsecase) ListSurveys(ctx context.Context, skip, limit int) ([]*entity.Survey, error) {
	surveys, err := uc.surveyRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}

	return surveys, nil
}

// GetSurvey retrieves a survey by ID
func (uc *SurveyUsecase) GetSurvey(ctx context.Context, id string) (*entity.Survey, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: invalid survey ID format", entity.ErrInvalidParameter)
	}

	survey, err := uc.surveyRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}

	return survey, nil
}

// UpdateSurvey applies a partial update to the survey header
func (uc *SurveyUsecase) UpdateSurvey(
	ctx context.Context,
	id string,
	req *entity.UpdateSurveyRequest,
) (*entity.Survey, error) {
	if err := uc.validator.ValidateUpdateSurvey(req); err != nil {
		return nil, err
	}

	survey, err := uc.GetSurvey(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		survey.Title = *req.Title
	}
	if req.Description != nil {
		survey.Description = *req.Description
	}

	updated, err := uc.surveyRepo.Update(ctx, *survey)
	if err != nil {
		return nil, fmt.Errorf("update survey: %w", err)
	}

	ctxzap.Info(ctx, "survey updated", zap.String("survey_id", updated.ID))

	return updated, nil
}

// DeleteSurvey deletes a survey
func (uc *SurveyUsecase) DeleteSurvey(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: invalid survey ID format", entity.ErrInvalidParameter)
	}

	if err := uc.surveyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete survey: %w", err)
	}

	ctxzap.Info(ctx, "survey deleted", zap.String("survey_id", id))
	return nil
}

// UpdateQuestion applies a partial update to one question. An unknown
// question id is a silent no-op over the unchanged survey, matching the
// editor contract: a stale edit never fails, it just does nothing.
func (uc *SurveyUsecase) UpdateQuestion(
	ctx context.Context,
	surveyID, questionID string,
	req *entity.UpdateQuestionRequest,
) (*entity.Survey, error) {
	if err := uc.validator.ValidateUpdateQuestion(req); err != nil {
		return nil, err
	}

	survey, err := uc.GetSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	question := survey.QuestionByID(questionID)
	if question == nil {
		ctxzap.Info(ctx, "question not found, skipping update", zap.String("question_id", questionID))
		return survey, nil
	}

	applyQuestionUpdate(question, req)

	updated, err := uc.surveyRepo.Update(ctx, *survey)
	if err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}

	ctxzap.Info(ctx, "question updated",
		zap.String("survey_id", surveyID),
		zap.String("question_id", questionID),
	)

	return updated, nil
}

// DeleteQuestion removes one question. An unknown question id is a silent
// no-op, same as UpdateQuestion.
func (uc *SurveyUsecase) DeleteQuestion(
	ctx context.Context,
	surveyID, questionID string,
) (*entity.Survey, error) {
	survey, err := uc.GetSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	// A fresh slice, not an in-place filter: survey.Questions may share its
	// backing array with the repository's stored copy.
	kept := make([]entity.Question, 0, len(survey.Questions))
	removed := false
	for _, q := range survey.Questions {
		if q.ID == questionID {
			removed = true
			continue
		}
		kept = append(kept, q)
	}

	if !removed {
		ctxzap.Info(ctx, "question not found, skipping delete", zap.String("question_id", questionID))
		return survey, nil
	}

	survey.Questions = kept

	updated, err := uc.surveyRepo.Update(ctx, *survey)
	if err != nil {
		return nil, fmt.Errorf("delete question: %w", err)
	}

	ctxzap.Info(ctx, "question deleted",
		zap.String("survey_id", surveyID),
		zap.String("question_id", questionID),
	)

	return updated, nil
}

// ExportSurvey renders the survey definition in the requested format
func (uc *SurveyUsecase) ExportSurvey(
	ctx context.Context,
	id string,
	format entity.ResultFormat,
) ([]byte, *formatter.FileMeta, error) {
	if err := uc.validator.ValidateExportFormat(format); err != nil {
		return nil, nil, err
	}

	survey, err := uc.GetSurvey(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	f, err := uc.formatterFactory.Create(format)
	if err != nil {
		return nil, nil, fmt.Errorf("create formatter: %w", err)
	}

	data, err := f.Format(survey.Title, formatter.SurveyBody(survey))
	if err != nil {
		return nil, nil, fmt.Errorf("format survey: %w", err)
	}

	ctxzap.Info(ctx, "survey exported",
		zap.String("survey_id", id),
		zap.String("format", string(format)),
	)

	return data, formatter.NewFileMeta(survey.Title, f), nil
}

// Templates returns the quick-start goal templates
func (uc *SurveyUsecase) Templates() []entity.Template {
	return uc.templates
}
