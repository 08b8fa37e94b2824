package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/delphi-research/survey-backend/internal/config"
	"github.com/delphi-research/survey-backend/internal/telegram/bot"
	"github.com/delphi-research/survey-backend/internal/telegram/handlers"
	"github.com/delphi-research/survey-backend/internal/telegram/state"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	storage state.Storage,
	surveyUC handlers.SurveyUsecase,
	interviewUC handlers.InterviewUsecase,
	logger *zap.Logger,
) (Bot, error) {
	stateManager := state.NewManager(storage)

	b, err := bot.New(cfg, stateManager, surveyUC, interviewUC, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	registerHandlers(b, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all stage handlers with the bot
func registerHandlers(b *bot.Bot, logger *zap.Logger) {
	api := b.GetAPI()
	stateManager := b.GetStateManager()
	surveyUC := b.GetSurveyUsecase()
	interviewUC := b.GetInterviewUsecase()
	kb := b.GetKeyboard()

	flow := handlers.NewFlow(handlers.NewMessageSender(api, logger), kb, stateManager)

	// All button presses
	b.RegisterHandler(handlers.NewCallbackHandler(api, stateManager, surveyUC, interviewUC, kb, flow, logger))

	// Typed research goals (ASK_GOAL stage)
	b.RegisterHandler(handlers.NewGoalHandler(api, stateManager, surveyUC, flow, logger))

	// Typed answers during an interview (INTERVIEWING stage)
	b.RegisterHandler(handlers.NewInterviewHandler(api, stateManager, interviewUC, flow, logger))

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 3),
	)
}
