package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/delphi-research/survey-backend/internal/api"
	interviewapi "github.com/delphi-research/survey-backend/internal/api/interview"
	surveyapi "github.com/delphi-research/survey-backend/internal/api/survey"
	"github.com/delphi-research/survey-backend/internal/config"
	"github.com/delphi-research/survey-backend/internal/integration/llm"
	"github.com/delphi-research/survey-backend/internal/pkg/formatter"
	"github.com/delphi-research/survey-backend/internal/pkg/validator"
	"github.com/delphi-research/survey-backend/internal/repository"
	"github.com/delphi-research/survey-backend/internal/telegram"
	"github.com/delphi-research/survey-backend/internal/telegram/state"
	interviewuc "github.com/delphi-research/survey-backend/internal/usecase/interview"
	surveyuc "github.com/delphi-research/survey-backend/internal/usecase/survey"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	surveyUC, interviewUC := setupUsecases(cfg, db, logger)
	logger.Info("Use cases initialized")

	surveyHandler := surveyapi.NewHandler(surveyUC)
	interviewHandler := interviewapi.NewHandler(interviewUC)
	logger.Info("API handlers initialized")

	router := api.SetupRouter(surveyHandler, interviewHandler, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	surveyUC, interviewUC := setupUsecases(cfg, db, logger)
	logger.Info("Use cases initialized")

	// Chat state lives as long as interview sessions do
	stateStorage := state.NewCacheStorage(cfg.InterviewCfg.SessionTTL, cfg.InterviewCfg.CleanupInterval)

	bot, err := telegram.NewBot(&cfg.TelegramCfg, stateStorage, surveyUC, interviewUC, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

// setupUsecases wires repositories, connectors and business logic shared by
// the HTTP API and the Telegram bot
func setupUsecases(
	cfg *config.Config,
	db *pgxpool.Pool,
	logger *zap.Logger,
) (*surveyuc.SurveyUsecase, *interviewuc.InterviewUsecase) {
	surveyRepo := repository.NewSurveyPostgres(db)
	interviewStore := repository.NewInterviewMemory(cfg.InterviewCfg)
	logger.Info("Repositories initialized")

	var generateConn surveyuc.LLMConnector
	var chatConn interviewuc.ChatConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connector for the generative backend")
		mock := llm.NewMockConnector(logger)
		generateConn, chatConn = mock, mock
	} else {
		logger.Info("Using real connector for the generative backend")
		conn := llm.NewConnector(cfg.LLMConnectorCfg, logger)
		generateConn, chatConn = conn, conn
	}

	v := validator.New()
	formatterFactory := formatter.NewFactory()

	surveyUC := surveyuc.NewUsecase(surveyRepo, generateConn, v, formatterFactory, cfg.Templates, logger)
	interviewUC := interviewuc.NewUsecase(surveyRepo, interviewStore, chatConn, v, formatterFactory, logger)

	return surveyUC, interviewUC
}
