package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/telegram/render"
	"github.com/delphi-research/survey-backend/internal/telegram/state"
)

// GoalHandler handles ASK_GOAL state: any typed text is treated as a
// research goal and turned into a survey draft.
type GoalHandler struct {
	BaseHandler
	bot          *tgbotapi.BotAPI
	stateManager *state.Manager
	surveyUC     SurveyUsecase
	flow         *Flow
	logger       *zap.Logger
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(
	bot *tgbotapi.BotAPI,
	stateManager *state.Manager,
	surveyUC SurveyUsecase,
	flow *Flow,
	logger *zap.Logger,
) *GoalHandler {
	return &GoalHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateAskGoal,
			messageSender: NewMessageSender(bot, logger),
		},
		bot:          bot,
		stateManager: stateManager,
		surveyUC:     surveyUC,
		flow:         flow,
		logger:       logger,
	}
}

// Handle drafts a survey from the typed research goal
func (h *GoalHandler) Handle(ctx context.Context, msg *Message) error {
	if msg.Text == "" {
		h.sendMessage(msg.ChatID, render.MsgAskGoal, nil)
		return nil
	}

	session, err := h.stateManager.GetSession(ctx, msg.UserID)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	ctxzap.Info(ctx, "drafting survey from chat goal",
		zap.Int64("user_id", msg.UserID),
		zap.Int("goal_length", len(msg.Text)),
	)

	h.sendMessage(msg.ChatID, render.MsgGenerating, nil)

	typing := NewTypingNotifier(h.bot, msg.ChatID, h.logger)
	typing.Start(ctx)
	defer typing.Stop()

	survey, err := h.surveyUC.GenerateSurvey(ctx, &entity.GenerateSurveyRequest{Goal: msg.Text})
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	if err := h.flow.SendSurveyPreview(ctx, session, msg.ChatID, survey); err != nil {
		return fmt.Errorf("send survey preview: %w", err)
	}

	return nil
}
