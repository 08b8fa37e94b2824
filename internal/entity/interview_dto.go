package entity

import "time"

type StartInterviewRequest struct {
	SurveyID string `json:"survey_id" validate:"required"`
}

type AnswerKind string

const (
	AnswerKindText   AnswerKind = "text"
	AnswerKindScale  AnswerKind = "scale"
	AnswerKindChoice AnswerKind = "choice"
	AnswerKindMatrix AnswerKind = "matrix"
)

// MatrixSelection is one rated row of a matrix answer.
type MatrixSelection struct {
	Row    string `json:"row"`
	Option string `json:"option"`
}

// SubmitAnswerRequest carries one user turn. Exactly one of the value fields
// is used, selected by Kind: free text, a 1-5 scale value, an option text
// (sent verbatim), or per-row matrix selections.
type SubmitAnswerRequest struct {
	Kind   AnswerKind        `json:"kind" validate:"required"`
	Text   string            `json:"text,omitempty"`
	Scale  int               `json:"scale,omitempty"`
	Choice string            `json:"choice,omitempty"`
	Matrix []MatrixSelection `json:"matrix,omitempty"`
}

type WidgetKind string

const (
	WidgetKindText   WidgetKind = "text"
	WidgetKindScale  WidgetKind = "scale"
	WidgetKindChoice WidgetKind = "choice"
	WidgetKindMatrix WidgetKind = "matrix"
)

// WidgetDTO describes the input affordance for the active question. It is
// derived from the question type in the survey snapshot, never from model
// output, and is present only while an answer is awaited.
type WidgetDTO struct {
	QuestionID string     `json:"question_id"`
	Kind       WidgetKind `json:"kind"`
	// Choices is set for choice widgets (declared options, or Yes/No).
	Choices []string `json:"choices,omitempty"`
	// Scale bounds and labels, set for scale widgets.
	ScaleMin int    `json:"scale_min,omitempty"`
	ScaleMax int    `json:"scale_max,omitempty"`
	MinLabel string `json:"min_label,omitempty"`
	MaxLabel string `json:"max_label,omitempty"`
	// Matrix grid, set for matrix widgets.
	Rows    []string `json:"rows,omitempty"`
	Options []string `json:"options,omitempty"`
}

type MessageDTO struct {
	ID         string      `json:"id"`
	Role       MessageRole `json:"role"`
	Content    string      `json:"content"`
	QuestionID string      `json:"question_id,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

type InterviewDTO struct {
	ID        string          `json:"id"`
	SurveyID  string          `json:"survey_id"`
	Title     string          `json:"title"`
	Status    InterviewStatus `json:"status"`
	Messages  []MessageDTO    `json:"messages"`
	Widget    *WidgetDTO      `json:"widget,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
