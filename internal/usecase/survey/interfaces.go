package survey

import (
	"context"

	"github.com/delphi-research/survey-backend/internal/entity"
)

type LLMConnector interface {
	Generate(ctx context.Context, req *entity.LLMGenerateRequest) (*entity.LLMGenerateResponse, error)
}
