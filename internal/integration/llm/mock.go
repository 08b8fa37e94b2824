package llm

import (
	"context"
	"fmt"
	"regexp"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/pkg/protocol"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a scripted LLM connector for local runs without a model
// backend. Chat walks the questions embedded in the system instruction in
// order and closes with the end-of-survey sentinel.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

const mockSurveyJSON = `{
  "title": "Customer Satisfaction Survey",
  "description": "A short survey to understand how customers feel about our product and service.",
  "questions": [
    {
      "text": "How did you first hear about our product?",
      "type": "MULTIPLE_CHOICE",
      "options": ["Search engine", "Social media", "Friend or colleague", "Advertisement", "Other"]
    },
    {
      "text": "How satisfied are you with the product overall?",
      "type": "SCALE",
      "minLabel": "Very dissatisfied",
      "maxLabel": "Very satisfied"
    },
    {
      "text": "Would you recommend us to a friend?",
      "type": "YES_NO"
    },
    {
      "text": "Please rate the following aspects of your experience.",
      "type": "MATRIX",
      "rows": ["Ease of use", "Customer support", "Value for money"],
      "options": ["Poor", "Fair", "Good", "Excellent"]
    },
    {
      "text": "What is one thing we could improve?",
      "type": "LONG_TEXT"
    }
  ]
}`

// Generate returns a fixed survey document regardless of the prompt.
func (m *MockConnector) Generate(ctx context.Context, req *entity.LLMGenerateRequest) (
	*entity.LLMGenerateResponse, error,
) {
	ctxzap.Info(ctx, "[MOCK] generating structured output")

	resp := &entity.LLMGenerateResponse{Text: mockSurveyJSON}

	ctxzap.Info(ctx, "[MOCK] structured output generated", zap.Int("text_length", len(resp.Text)))
	return resp, nil
}

var questionIDPattern = regexp.MustCompile(`"id":\s*"([^"]+)"`)

// Chat scripts one interview turn. The next question is chosen by counting
// user turns: the opening turn asks for the first question, every answer
// advances to the next one, and the sentinel closes the interview once all
// question ids found in the system instruction are exhausted.
func (m *MockConnector) Chat(ctx context.Context, req *entity.LLMChatRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] chat completion", zap.Int("turn_count", len(req.Turns)))

	var ids []string
	for _, match := range questionIDPattern.FindAllStringSubmatch(req.SystemInstruction, -1) {
		ids = append(ids, match[1])
	}

	userTurns := 0
	for _, turn := range req.Turns {
		if turn.Role == entity.ChatRoleUser {
			userTurns++
		}
	}

	next := userTurns - 1
	if next < 0 {
		next = 0
	}

	if next >= len(ids) {
		ctxzap.Info(ctx, "[MOCK] all questions asked, finishing interview")
		return "Thank you for your time, that was the last question. " + protocol.EndSentinel, nil
	}

	text := fmt.Sprintf("Thanks! Here is the next question. %s", protocol.QuestionTag(ids[next]))
	if next == 0 {
		text = fmt.Sprintf("Hello! Thank you for taking part in this survey. Let's begin. %s",
			protocol.QuestionTag(ids[next]))
	}

	ctxzap.Info(ctx, "[MOCK] question emitted", zap.String("question_id", ids[next]))
	return text, nil
}
