package keyboard

import (
	"fmt"
	"strconv"

	"github.com/delphi-research/survey-backend/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// StartKeyboard shows quick-start templates plus access to saved surveys
func (b *Builder) StartKeyboard(templates []entity.Template) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}

	for i, tpl := range templates {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"✨ "+tpl.Label,
				EncodeCallback(ActionTemplate, strconv.Itoa(i)),
			),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📋 My surveys", EncodeCallback(ActionGeneric, "list_surveys")),
	))

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// SurveySelectionKeyboard lists saved surveys, one per row
func (b *Builder) SurveySelectionKeyboard(surveys []*entity.SurveySummaryDTO) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}

	for _, s := range surveys {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.Title, EncodeCallback(ActionSurvey, s.ID)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✍️ New survey", EncodeCallback(ActionGeneric, "new")),
	))

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// SurveyReadyKeyboard offers actions on a drafted survey
func (b *Builder) SurveyReadyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Start interview", EncodeCallback(ActionGeneric, "start_interview")),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Download .md", EncodeCallback(ActionDownload, "md")),
			tgbotapi.NewInlineKeyboardButtonData("📕 Download .pdf", EncodeCallback(ActionDownload, "pdf")),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 New survey", EncodeCallback(ActionGeneric, "new")),
		),
	)
}

// WidgetKeyboard renders the input affordance for the active question. Text
// widgets return no keyboard: the respondent just types.
func (b *Builder) WidgetKeyboard(widget *entity.WidgetDTO) *tgbotapi.InlineKeyboardMarkup {
	if widget == nil {
		return nil
	}

	switch widget.Kind {
	case entity.WidgetKindScale:
		row := make([]tgbotapi.InlineKeyboardButton, 0, widget.ScaleMax)
		for v := widget.ScaleMin; v <= widget.ScaleMax; v++ {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				strconv.Itoa(v),
				EncodeCallback(ActionScale, strconv.Itoa(v)),
			))
		}
		markup := tgbotapi.NewInlineKeyboardMarkup(row)
		return &markup

	case entity.WidgetKindChoice:
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(widget.Choices))
		for i, choice := range widget.Choices {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(choice, EncodeCallback(ActionChoice, strconv.Itoa(i))),
			))
		}
		markup := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
		return &markup

	case entity.WidgetKindMatrix:
		return b.MatrixRowKeyboard(widget)

	default:
		return nil
	}
}

// MatrixRowKeyboard renders the option buttons for the current matrix row
func (b *Builder) MatrixRowKeyboard(widget *entity.WidgetDTO) *tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(widget.Options))
	for i, option := range widget.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option, EncodeCallback(ActionMatrix, strconv.Itoa(i))),
		))
	}

	markup := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
	return &markup
}

// FinishedKeyboard offers transcript downloads after interview completion
func (b *Builder) FinishedKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Transcript .md", EncodeCallback(ActionTranscript, "md")),
			tgbotapi.NewInlineKeyboardButtonData("📕 Transcript .pdf", EncodeCallback(ActionTranscript, "pdf")),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 New survey", EncodeCallback(ActionGeneric, "new")),
		),
	)
}

// ConfirmCancelKeyboard asks to confirm closing the session
func (b *Builder) ConfirmCancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, close it", EncodeCallback(ActionGeneric, "finish")),
			tgbotapi.NewInlineKeyboardButtonData("❌ Keep going", EncodeCallback(ActionGeneric, "keep")),
		),
	)
}

// ScaleValue parses a scale callback value
func ScaleValue(value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid scale value: %s", value)
	}
	return v, nil
}

// OptionIndex parses an option-index callback value against bounds
func OptionIndex(value string, size int) (int, error) {
	i, err := strconv.Atoi(value)
	if err != nil || i < 0 || i >= size {
		return 0, fmt.Errorf("option index out of range: %s", value)
	}
	return i, nil
}
