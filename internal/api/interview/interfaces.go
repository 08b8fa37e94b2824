package interview

import (
	"context"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/pkg/formatter"
)

type InterviewUsecase interface {
	StartInterview(ctx context.Context, req *entity.StartInterviewRequest) (*entity.Interview, error)
	GetInterview(ctx context.Context, id string) (*entity.Interview, error)
	SubmitAnswer(ctx context.Context, id string, req *entity.SubmitAnswerRequest) (*entity.Interview, error)
	ExportInterview(ctx context.Context, id string, format entity.ResultFormat) ([]byte, *formatter.FileMeta, error)
	DeleteInterview(ctx context.Context, id string) error
}
