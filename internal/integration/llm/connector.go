package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/delphi-research/survey-backend/internal/config"
	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/integration/common"
	pkghttp "github.com/delphi-research/survey-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Generate performs a structured generation call. A single attempt is made:
// generation failures surface to the caller as-is.
func (c *Connector) Generate(ctx context.Context, req *entity.LLMGenerateRequest) (
	*entity.LLMGenerateResponse, error,
) {
	ctxzap.Info(ctx, "generating structured output via LLM service")

	var resp entity.LLMGenerateResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.GenerateEndpoint, req, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Text == "" {
		return nil, fmt.Errorf("invalid generation response: empty text field")
	}

	ctxzap.Info(ctx, "structured output generated", zap.Int("text_length", len(resp.Text)))

	return &resp, nil
}

// Chat performs a chat-completion call with the full turn list.
func (c *Connector) Chat(ctx context.Context, req *entity.LLMChatRequest) (string, error) {
	ctxzap.Info(ctx, "requesting chat completion via LLM service", zap.Int("turn_count", len(req.Turns)))

	var resp entity.LLMChatResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ChatEndpoint, req, &resp)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if resp.Text == "" {
		return "", fmt.Errorf("invalid chat response: empty text field")
	}

	ctxzap.Info(ctx, "chat completion received", zap.Int("result_length", len(resp.Text)))

	return resp.Text, nil
}
