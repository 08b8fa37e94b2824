package render

import (
	"fmt"
	"strings"

	"github.com/delphi-research/survey-backend/internal/entity"
)

// User-facing messages
const (
	MsgWelcome = `👋 Hi! I'm Delphi, an AI survey assistant.

Describe a research goal and I'll draft a survey for it, then interview respondents right here in the chat.

Pick a quick-start template below, choose an existing survey, or just type your goal.`

	MsgAskGoal = "✍️ Describe your research goal in one or two sentences."

	MsgGenerating = "🧠 Drafting your survey, this takes a few seconds..."

	MsgSelectSurvey = "📋 Choose a survey to run:"

	MsgNoSurveys = "There are no surveys yet. Describe a research goal and I'll draft one."

	MsgInterviewFinished = "🎉 The interview is complete. You can download the transcript below."

	MsgSessionFinished = "Session closed. Send /start whenever you want to begin again."

	MsgKeepSession = "👍 Okay, carrying on."

	MsgConfirmCancel = "Close the current session? Your interview progress will be lost."

	MsgTypeAnswer = "✏️ Type your answer as a message."

	MsgUseButtons = "Please answer using the buttons above."

	MsgHelp = `🤖 Bot commands:

/start - Begin a new session
/help - Show this help
/cancel - Close the current session

How it works:
1. Describe a research goal or pick a template
2. Review the drafted survey
3. Start the interview and answer the questions
4. Download the survey or the transcript as a document`
)

// Error messages
const (
	ErrGeneric       = "❌ Something went wrong. Please try again or send /start"
	ErrInvalidState  = "❌ I didn't expect that here. Send /start to begin again."
	ErrNoSession     = "No active session. Send /start to begin."
	ErrGeneration    = "❌ I couldn't draft a survey for that goal. Please try rephrasing it."
	ErrTurnBusy      = "⏳ I'm still processing your previous answer, one moment..."
	ErrUnknownButton = "❌ Unknown action"
)

// SurveyReady renders the drafted survey preview
func SurveyReady(survey *entity.SurveyDTO) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 %s\n\n%s\n\n", survey.Title, survey.Description)
	for i, q := range survey.Questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Text)
	}
	b.WriteString("\nReady to run it?")

	return b.String()
}

// MatrixRowPrompt asks for one row of a matrix question
func MatrixRowPrompt(row string, index, total int) string {
	return fmt.Sprintf("▦ (%d/%d) %s", index+1, total, row)
}

// ScaleLabels renders the scale endpoints hint, or empty when unlabeled
func ScaleLabels(widget *entity.WidgetDTO) string {
	if widget.MinLabel == "" && widget.MaxLabel == "" {
		return ""
	}
	return fmt.Sprintf("1 = %s, %d = %s", widget.MinLabel, widget.ScaleMax, widget.MaxLabel)
}
