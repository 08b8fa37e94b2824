package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/telegram/render"
	"github.com/delphi-research/survey-backend/internal/telegram/state"
)

// InterviewHandler handles INTERVIEWING state: typed messages are free-text
// answers to the active question. Buttoned questions reject typed input.
type InterviewHandler struct {
	BaseHandler
	bot          *tgbotapi.BotAPI
	stateManager *state.Manager
	interviewUC  InterviewUsecase
	flow         *Flow
	logger       *zap.Logger
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(
	bot *tgbotapi.BotAPI,
	stateManager *state.Manager,
	interviewUC InterviewUsecase,
	flow *Flow,
	logger *zap.Logger,
) *InterviewHandler {
	return &InterviewHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateInterviewing,
			messageSender: NewMessageSender(bot, logger),
		},
		bot:          bot,
		stateManager: stateManager,
		interviewUC:  interviewUC,
		flow:         flow,
		logger:       logger,
	}
}

// Handle submits a typed answer for the active question
func (h *InterviewHandler) Handle(ctx context.Context, msg *Message) error {
	session, err := h.stateManager.GetSession(ctx, msg.UserID)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	if session.InterviewID == "" {
		h.sendMessage(msg.ChatID, render.ErrNoSession, nil)
		return nil
	}

	if msg.Text == "" {
		h.sendMessage(msg.ChatID, render.MsgTypeAnswer, nil)
		return nil
	}

	// Typed input only answers text questions; everything else has buttons
	if session.Widget != nil && session.Widget.Kind != entity.WidgetKindText {
		h.sendMessage(msg.ChatID, render.MsgUseButtons, nil)
		return nil
	}

	typing := NewTypingNotifier(h.bot, msg.ChatID, h.logger)
	typing.Start(ctx)
	defer typing.Stop()

	interview, err := h.interviewUC.SubmitAnswer(ctx, session.InterviewID, &entity.SubmitAnswerRequest{
		Kind: entity.AnswerKindText,
		Text: msg.Text,
	})
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	if err := h.flow.RenderTurn(ctx, session, msg.ChatID, interview); err != nil {
		return fmt.Errorf("render interview turn: %w", err)
	}

	return nil
}
