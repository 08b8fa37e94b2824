package survey

import (
	"context"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/pkg/formatter"
)

type SurveyUsecase interface {
	GenerateSurvey(ctx context.Context, req *entity.GenerateSurveyRequest) (*entity.Survey, error)
	ListSurveys(ctx context.Context, skip, limit int) ([]*entity.Survey, error)
	GetSurvey(ctx context.Context, id string) (*entity.Survey, error)
	UpdateSurvey(ctx context.Context, id string, req *entity.UpdateSurveyRequest) (*entity.Survey, error)
	DeleteSurvey(ctx context.Context, id string) error
	UpdateQuestion(ctx context.Context, surveyID, questionID string, req *entity.UpdateQuestionRequest) (*entity.Survey, error)
	DeleteQuestion(ctx context.Context, surveyID, questionID string) (*entity.Survey, error)
	ExportSurvey(ctx context.Context, id string, format entity.ResultFormat) ([]byte, *formatter.FileMeta, error)
	Templates() []entity.Template
}
