package handlers

import (
	"context"
	"fmt"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/telegram/keyboard"
	"github.com/delphi-research/survey-backend/internal/telegram/render"
	"github.com/delphi-research/survey-backend/internal/telegram/state"
	interviewuc "github.com/delphi-research/survey-backend/internal/usecase/interview"
)

// Flow renders the conversation steps shared between the text and callback
// handlers: the survey preview after generation and each interview turn.
type Flow struct {
	sender       *MessageSender
	keyboard     *keyboard.Builder
	stateManager *state.Manager
}

// NewFlow creates the shared conversation renderer
func NewFlow(sender *MessageSender, kb *keyboard.Builder, stateManager *state.Manager) *Flow {
	return &Flow{
		sender:       sender,
		keyboard:     kb,
		stateManager: stateManager,
	}
}

// SendSurveyPreview shows the drafted survey and the run/download actions
func (f *Flow) SendSurveyPreview(
	ctx context.Context,
	session *state.Session,
	chatID int64,
	survey *entity.Survey,
) error {
	session.SurveyID = survey.ID
	session.InterviewID = ""
	session.Stage = HandlerStateAskGoal
	session.SetWidget(nil)

	if err := f.stateManager.SetSession(ctx, session); err != nil {
		return fmt.Errorf("save telegram session: %w", err)
	}

	return f.sender.Send(chatID, render.SurveyReady(toSurveyDTO(survey)), f.keyboard.SurveyReadyKeyboard())
}

// RenderTurn sends the latest interviewer reply plus the input affordance
// for the next question, and records the active widget in the chat session.
func (f *Flow) RenderTurn(
	ctx context.Context,
	session *state.Session,
	chatID int64,
	interview *entity.Interview,
) error {
	session.InterviewID = interview.ID

	reply := lastReply(interview)

	if interview.Status == entity.InterviewStatusFinished {
		if reply != "" {
			f.sender.Send(chatID, reply, nil)
		}

		session.Stage = HandlerStateAskGoal
		session.SetWidget(nil)
		if err := f.stateManager.SetSession(ctx, session); err != nil {
			return fmt.Errorf("save telegram session: %w", err)
		}

		return f.sender.Send(chatID, render.MsgInterviewFinished, f.keyboard.FinishedKeyboard())
	}

	widget := interviewuc.BuildWidget(interview)

	session.Stage = HandlerStateInterviewing
	session.SetWidget(widget)
	if err := f.stateManager.SetSession(ctx, session); err != nil {
		return fmt.Errorf("save telegram session: %w", err)
	}

	if widget == nil {
		return f.sender.Send(chatID, reply, nil)
	}

	switch widget.Kind {
	case entity.WidgetKindScale:
		text := reply
		if labels := render.ScaleLabels(widget); labels != "" {
			text += "\n\n" + labels
		}
		return f.sender.Send(chatID, text, f.keyboard.WidgetKeyboard(widget))

	case entity.WidgetKindChoice:
		return f.sender.Send(chatID, reply, f.keyboard.WidgetKeyboard(widget))

	case entity.WidgetKindMatrix:
		if err := f.sender.Send(chatID, reply, nil); err != nil {
			return err
		}
		prompt := render.MatrixRowPrompt(widget.Rows[0], 0, len(widget.Rows))
		return f.sender.Send(chatID, prompt, f.keyboard.MatrixRowKeyboard(widget))

	default:
		return f.sender.Send(chatID, reply, nil)
	}
}

// lastReply returns the content of the newest model or system message
func lastReply(interview *entity.Interview) string {
	for i := len(interview.Messages) - 1; i >= 0; i-- {
		msg := interview.Messages[i]
		if msg.Role == entity.MessageRoleModel || msg.Role == entity.MessageRoleSystem {
			return msg.Content
		}
	}
	return ""
}
