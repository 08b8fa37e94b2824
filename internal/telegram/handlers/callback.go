package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/telegram/keyboard"
	"github.com/delphi-research/survey-backend/internal/telegram/render"
	"github.com/delphi-research/survey-backend/internal/telegram/state"
)

// CallbackHandler handles all inline keyboard button presses
type CallbackHandler struct {
	BaseHandler
	bot          *tgbotapi.BotAPI
	stateManager *state.Manager
	surveyUC     SurveyUsecase
	interviewUC  InterviewUsecase
	keyboard     *keyboard.Builder
	flow         *Flow
	logger       *zap.Logger
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(
	bot *tgbotapi.BotAPI,
	stateManager *state.Manager,
	surveyUC SurveyUsecase,
	interviewUC InterviewUsecase,
	kb *keyboard.Builder,
	flow *Flow,
	logger *zap.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateCallback,
			messageSender: NewMessageSender(bot, logger),
		},
		bot:          bot,
		stateManager: stateManager,
		surveyUC:     surveyUC,
		interviewUC:  interviewUC,
		keyboard:     kb,
		flow:         flow,
		logger:       logger,
	}
}

// Handle routes a button press to its action
func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		ctxzap.Warn(ctx, "malformed callback data",
			zap.String("data", msg.CallbackData),
			zap.Int64("user_id", msg.UserID),
		)
		h.sendMessage(msg.ChatID, render.ErrUnknownButton, nil)
		return nil
	}

	session, err := h.stateManager.GetSession(ctx, msg.UserID)
	if errors.Is(err, state.ErrSessionNotFound) {
		// Buttons may outlive the session cache entry; begin a fresh one
		session, err = h.stateManager.ResetSession(ctx, msg.UserID, HandlerStateAskGoal)
	}
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	switch data.Action {
	case keyboard.ActionTemplate:
		return h.handleTemplate(ctx, session, msg, data.Value)
	case keyboard.ActionSurvey:
		return h.handleSurveySelect(ctx, session, msg, data.Value)
	case keyboard.ActionScale:
		return h.handleScale(ctx, session, msg, data.Value)
	case keyboard.ActionChoice:
		return h.handleChoice(ctx, session, msg, data.Value)
	case keyboard.ActionMatrix:
		return h.handleMatrix(ctx, session, msg, data.Value)
	case keyboard.ActionDownload:
		return h.handleSurveyDownload(ctx, session, msg, data.Value)
	case keyboard.ActionTranscript:
		return h.handleTranscriptDownload(ctx, session, msg, data.Value)
	case keyboard.ActionGeneric:
		return h.handleGeneric(ctx, session, msg, data.Value)
	default:
		h.sendMessage(msg.ChatID, render.ErrUnknownButton, nil)
		return nil
	}
}

// handleTemplate drafts a survey from a quick-start template
func (h *CallbackHandler) handleTemplate(
	ctx context.Context,
	session *state.Session,
	msg *Message,
	value string,
) error {
	templates := h.surveyUC.Templates()

	idx, err := strconv.Atoi(value)
	if err != nil || idx < 0 || idx >= len(templates) {
		h.sendMessage(msg.ChatID, render.ErrUnknownButton, nil)
		return nil
	}

	ctxzap.Info(ctx, "drafting survey from template",
		zap.Int64("user_id", msg.UserID),
		zap.String("template", templates[idx].Label),
	)

	h.sendMessage(msg.ChatID, render.MsgGenerating, nil)

	typing := NewTypingNotifier(h.bot, msg.ChatID, h.logger)
	typing.Start(ctx)
	defer typing.Stop()

	survey, err := h.surveyUC.GenerateSurvey(ctx, &entity.GenerateSurveyRequest{
		Goal: templates[idx].Prompt,
	})
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	return h.flow.SendSurveyPreview(ctx, session, msg.ChatID, survey)
}

// handleSurveySelect previews an existing survey
func (h *CallbackHandler) handleSurveySelect(
	ctx context.Context,
	session *state.Session,
	msg *Message,
	surveyID string,
) error {
	survey, err := h.surveyUC.GetSurvey(ctx, surveyID)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	return h.flow.SendSurveyPreview(ctx, session, msg.ChatID, survey)
}

// handleScale submits a scale button press as the answer
func (h *CallbackHandler) handleScale(
	ctx context.Context,
	session *state.Session,
	msg *Message,
	value string,
) error {
	if session.InterviewID == "" || session.Widget == nil || session.Widget.Kind != entity.WidgetKindScale {
		h.sendMessage(msg.ChatID, render.ErrInvalidState, nil)
		return nil
	}

	v, err := keyboard.ScaleValue(value)
	if err != nil {
		h.sendMessage(msg.ChatID, render.ErrUnknownButton, nil)
		return nil
	}

	return h.submitAnswer(ctx, session, msg, &entity.SubmitAnswerRequest{
		Kind:  entity.AnswerKindScale,
		Scale: v,
	})
}

// handleChoice resolves an option index against the widget and submits it
func (h *CallbackHandler) handleChoice(
	ctx context.Context,
	session *state.Session,
	msg *Message,
	value string,
) error {
	if session.InterviewID == "" || session.Widget == nil || session.Widget.Kind != entity.WidgetKindChoice {
		h.sendMessage(msg.ChatID, render.ErrInvalidState, nil)
		return nil
	}

	idx, err := keyboard.OptionIndex(value, len(session.Widget.Choices))
	if err != nil {
		h.sendMessage(msg.ChatID, render.ErrUnknownButton, nil)
		return nil
	}

	return h.submitAnswer(ctx, session, msg, &entity.SubmitAnswerRequest{
		Kind:   entity.AnswerKindChoice,
		Choice: session.Widget.Choices[idx],
	})
}

// handleMatrix collects one row selection, advancing row by row until the
// whole grid is rated, then submits the complete matrix answer
func (h *CallbackHandler) handleMatrix(
	ctx context.Context,
	session *state.Session,
	msg *Message,
	value string,
) error {
	widget := session.Widget
	if session.InterviewID == "" || widget == nil || widget.Kind != entity.WidgetKindMatrix {
		h.sendMessage(msg.ChatID, render.ErrInvalidState, nil)
		return nil
	}
	if session.MatrixRow >= len(widget.Rows) {
		h.sendMessage(msg.ChatID, render.ErrInvalidState, nil)
		return nil
	}

	idx, err := keyboard.OptionIndex(value, len(widget.Options))
	if err != nil {
		h.sendMessage(msg.ChatID, render.ErrUnknownButton, nil)
		return nil
	}

	session.MatrixSelections = append(session.MatrixSelections, entity.MatrixSelection{
		Row:    widget.Rows[session.MatrixRow],
		Option: widget.Options[idx],
	})
	session.MatrixRow++

	if session.MatrixRow < len(widget.Rows) {
		if err := h.stateManager.SetSession(ctx, session); err != nil {
			return fmt.Errorf("save telegram session: %w", err)
		}

		prompt := render.MatrixRowPrompt(widget.Rows[session.MatrixRow], session.MatrixRow, len(widget.Rows))
		h.sendMessage(msg.ChatID, prompt, h.keyboard.MatrixRowKeyboard(widget))
		return nil
	}

	return h.submitAnswer(ctx, session, msg, &entity.SubmitAnswerRequest{
		Kind:   entity.AnswerKindMatrix,
		Matrix: session.MatrixSelections,
	})
}

// handleSurveyDownload exports the current survey as a document
func (h *CallbackHandler) handleSurveyDownload(
	ctx context.Context,
	session *state.Session,
	msg *Message,
	format string,
) error {
	if session.SurveyID == "" {
		h.sendMessage(msg.ChatID, render.ErrNoSession, nil)
		return nil
	}

	data, meta, err := h.surveyUC.ExportSurvey(ctx, session.SurveyID, entity.ResultFormat(format))
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	return h.messageSender.SendDocument(msg.ChatID, data, meta)
}

// handleTranscriptDownload exports the interview transcript as a document
func (h *CallbackHandler) handleTranscriptDownload(
	ctx context.Context,
	session *state.Session,
	msg *Message,
	format string,
) error {
	if session.InterviewID == "" {
		h.sendMessage(msg.ChatID, render.ErrNoSession, nil)
		return nil
	}

	data, meta, err := h.interviewUC.ExportInterview(ctx, session.InterviewID, entity.ResultFormat(format))
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	return h.messageSender.SendDocument(msg.ChatID, data, meta)
}

// handleGeneric handles the named one-shot actions
func (h *CallbackHandler) handleGeneric(
	ctx context.Context,
	session *state.Session,
	msg *Message,
	value string,
) error {
	switch value {
	case "start_interview":
		return h.startInterview(ctx, session, msg)

	case "list_surveys":
		return h.listSurveys(ctx, msg)

	case "new":
		if _, err := h.stateManager.ResetSession(ctx, msg.UserID, HandlerStateAskGoal); err != nil {
			h.HandleError(ctx, msg.ChatID, err)
			return nil
		}
		h.sendMessage(msg.ChatID, render.MsgAskGoal, nil)
		return nil

	case "finish":
		if err := h.stateManager.DeleteSession(ctx, msg.UserID); err != nil {
			h.HandleError(ctx, msg.ChatID, err)
			return nil
		}
		h.sendMessage(msg.ChatID, render.MsgSessionFinished, nil)
		return nil

	case "keep":
		h.sendMessage(msg.ChatID, render.MsgKeepSession, nil)
		return nil

	default:
		h.sendMessage(msg.ChatID, render.ErrUnknownButton, nil)
		return nil
	}
}

// startInterview begins an interview over the previewed survey
func (h *CallbackHandler) startInterview(ctx context.Context, session *state.Session, msg *Message) error {
	if session.SurveyID == "" {
		h.sendMessage(msg.ChatID, render.ErrNoSession, nil)
		return nil
	}

	ctxzap.Info(ctx, "starting chat interview",
		zap.Int64("user_id", msg.UserID),
		zap.String("survey_id", session.SurveyID),
	)

	typing := NewTypingNotifier(h.bot, msg.ChatID, h.logger)
	typing.Start(ctx)
	defer typing.Stop()

	interview, err := h.interviewUC.StartInterview(ctx, &entity.StartInterviewRequest{
		SurveyID: session.SurveyID,
	})
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	return h.flow.RenderTurn(ctx, session, msg.ChatID, interview)
}

// listSurveys shows the survey selection keyboard
func (h *CallbackHandler) listSurveys(ctx context.Context, msg *Message) error {
	surveys, err := h.surveyUC.ListSurveys(ctx, 0, 10)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	if len(surveys) == 0 {
		h.sendMessage(msg.ChatID, render.MsgNoSurveys, nil)
		return nil
	}

	h.sendMessage(msg.ChatID, render.MsgSelectSurvey, h.keyboard.SurveySelectionKeyboard(toSurveySummaries(surveys)))
	return nil
}

// submitAnswer sends one buttoned answer and renders the next turn
func (h *CallbackHandler) submitAnswer(
	ctx context.Context,
	session *state.Session,
	msg *Message,
	req *entity.SubmitAnswerRequest,
) error {
	typing := NewTypingNotifier(h.bot, msg.ChatID, h.logger)
	typing.Start(ctx)
	defer typing.Stop()

	interview, err := h.interviewUC.SubmitAnswer(ctx, session.InterviewID, req)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	return h.flow.RenderTurn(ctx, session, msg.ChatID, interview)
}
