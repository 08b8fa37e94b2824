package interview

import (
	"context"

	"github.com/delphi-research/survey-backend/internal/entity"
)

type ChatConnector interface {
	Chat(ctx context.Context, req *entity.LLMChatRequest) (string, error)
}
