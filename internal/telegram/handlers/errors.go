package handlers

import (
	"context"
	"errors"
	"net"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/telegram/render"
	"github.com/delphi-research/survey-backend/internal/telegram/state"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
)

// HandlerError represents a structured error with user message and logging info
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Severity    ErrorSeverity
}

// classifyHandlerError analyzes an error and returns a HandlerError with
// appropriate severity and messages
func classifyHandlerError(err error) *HandlerError {
	if err == nil {
		return &HandlerError{
			UserMessage: render.ErrGeneric,
			LogMessage:  "unknown error",
			Severity:    SeverityWarning,
		}
	}

	// Domain errors are expected and non-critical
	switch {
	case errors.Is(err, state.ErrSessionNotFound):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrNoSession,
			LogMessage:  "telegram session not found",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrSurveyNotFound):
		return &HandlerError{
			Err:         err,
			UserMessage: "❌ Survey not found. Send /start to begin again.",
			LogMessage:  "survey not found",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrInterviewNotFound):
		return &HandlerError{
			Err:         err,
			UserMessage: "❌ Interview not found. Send /start to begin again.",
			LogMessage:  "interview not found",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrInterviewFinished):
		return &HandlerError{
			Err:         err,
			UserMessage: render.MsgInterviewFinished,
			LogMessage:  "interview already finished",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrTurnInProgress):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrTurnBusy,
			LogMessage:  "turn already in progress",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrGeneration):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrGeneration,
			LogMessage:  "survey generation failed",
			Severity:    SeverityError,
		}
	case errors.Is(err, entity.ErrEmptyGoal):
		return &HandlerError{
			Err:         err,
			UserMessage: render.MsgAskGoal,
			LogMessage:  "empty goal submitted",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrIncompleteMatrix):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrInvalidState,
			LogMessage:  "incomplete matrix answer",
			Severity:    SeverityWarning,
		}
	}

	// Timeouts
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrGeneric,
			LogMessage:  "operation timed out",
			Severity:    SeverityError,
		}
	}

	// Network errors
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrGeneric,
			LogMessage:  "network error",
			Severity:    SeverityError,
		}
	}

	return &HandlerError{
		Err:         err,
		UserMessage: render.ErrGeneric,
		LogMessage:  "handler error",
		Severity:    SeverityError,
	}
}

// HandleError provides centralized error handling for all handlers.
// It logs the error with appropriate severity and sends a user-friendly message.
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err)

	switch handlerErr.Severity {
	case SeverityError:
		ctxzap.Error(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	default:
		ctxzap.Warn(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	}

	if h.messageSender != nil {
		h.messageSender.Send(chatID, handlerErr.UserMessage, nil)
	}
}
