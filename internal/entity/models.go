package entity

import (
	"fmt"
	"time"
)

type QuestionType string

// Question types supported by the survey schema and the interview widgets
const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeScale          QuestionType = "SCALE"
	QuestionTypeShortText      QuestionType = "SHORT_TEXT"
	QuestionTypeLongText       QuestionType = "LONG_TEXT"
	QuestionTypeYesNo          QuestionType = "YES_NO"
	QuestionTypeMatrix         QuestionType = "MATRIX"
)

func (qt QuestionType) Validate() error {
	switch qt {
	case QuestionTypeMultipleChoice, QuestionTypeScale, QuestionTypeShortText,
		QuestionTypeLongText, QuestionTypeYesNo, QuestionTypeMatrix:
		return nil
	default:
		return fmt.Errorf("unknown question type: %s", qt)
	}
}

// Question is a single survey item. Options are required semantically for
// MULTIPLE_CHOICE and MATRIX (column headers), Rows only for MATRIX,
// MinLabel/MaxLabel only meaningful for SCALE. The gateway does not enforce
// these cross-field rules, so consumers must tolerate incomplete questions.
type Question struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Type     QuestionType `json:"type"`
	Options  []string     `json:"options,omitempty"`
	Rows     []string     `json:"rows,omitempty"`
	MinLabel string       `json:"min_label,omitempty"`
	MaxLabel string       `json:"max_label,omitempty"`
}

// Survey is the editable survey document. Question IDs are unique within the
// survey and stable across edits; they are the correlation key the interview
// tag protocol depends on.
type Survey struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// QuestionByID returns the question with the given id, or nil when absent.
func (s *Survey) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

type MessageRole string

const (
	MessageRoleUser   MessageRole = "user"
	MessageRoleModel  MessageRole = "model"
	MessageRoleSystem MessageRole = "system"
)

// Message is one transcript entry. QuestionID is set only on model messages
// that carry a question tag; only the last model message's QuestionID is ever
// treated as active.
type Message struct {
	ID         string      `json:"id"`
	Role       MessageRole `json:"role"`
	Content    string      `json:"content"`
	QuestionID string      `json:"question_id,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

type InterviewStatus string

const (
	InterviewStatusActive   InterviewStatus = "ACTIVE"
	InterviewStatusFinished InterviewStatus = "FINISHED"
)

// Interview is an ephemeral conversational session over a survey snapshot.
// The snapshot is taken at start so later survey edits cannot desync the
// question-id coupling. Transcript is append-only; Busy guards against
// overlapping turns.
type Interview struct {
	ID        string          `json:"id"`
	SurveyID  string          `json:"survey_id"`
	Survey    Survey          `json:"survey"`
	Status    InterviewStatus `json:"status"`
	Messages  []Message       `json:"messages"`
	Busy      bool            `json:"busy"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LastModelMessage returns the most recent transcript entry, or nil when the
// transcript is empty or the last entry is not a model message.
func (iv *Interview) LastModelMessage() *Message {
	if len(iv.Messages) == 0 {
		return nil
	}
	last := &iv.Messages[len(iv.Messages)-1]
	if last.Role != MessageRoleModel {
		return nil
	}
	return last
}

// Template is a quick-start prompt shortcut shown on the goal capture screen.
type Template struct {
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "md"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
)

func (f ResultFormat) Validate() error {
	switch f {
	case FormatMarkdown, FormatPDF, FormatDOCX:
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", f)
	}
}
