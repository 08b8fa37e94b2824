package handlers

import (
	"context"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/pkg/formatter"
)

// SurveyUsecase defines the subset of survey operations needed by Telegram handlers
type SurveyUsecase interface {
	GenerateSurvey(ctx context.Context, req *entity.GenerateSurveyRequest) (*entity.Survey, error)
	ListSurveys(ctx context.Context, skip, limit int) ([]*entity.Survey, error)
	GetSurvey(ctx context.Context, id string) (*entity.Survey, error)
	ExportSurvey(ctx context.Context, id string, format entity.ResultFormat) ([]byte, *formatter.FileMeta, error)
	Templates() []entity.Template
}

// InterviewUsecase defines the subset of interview operations needed by Telegram handlers
type InterviewUsecase interface {
	StartInterview(ctx context.Context, req *entity.StartInterviewRequest) (*entity.Interview, error)
	GetInterview(ctx context.Context, id string) (*entity.Interview, error)
	SubmitAnswer(ctx context.Context, id string, req *entity.SubmitAnswerRequest) (*entity.Interview, error)
	ExportInterview(ctx context.Context, id string, format entity.ResultFormat) ([]byte, *formatter.FileMeta, error)
}
