package entity

import "time"

// GenerateSurveyRequest captures the research goal plus optional context
// fields that are folded into the generation instruction.
type GenerateSurveyRequest struct {
	Goal     string `json:"goal" validate:"required"`
	Domain   string `json:"domain,omitempty"`
	Audience string `json:"audience,omitempty"`
	Tone     string `json:"tone,omitempty"`
}

// UpdateSurveyRequest is a partial update of the survey header. Nil fields
// are left untouched.
type UpdateSurveyRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateQuestionRequest is a partial question update. Nil fields are left
// untouched; options and rows are replaced wholesale when present (the
// editor addresses them by index, never by id).
type UpdateQuestionRequest struct {
	Text     *string       `json:"text,omitempty"`
	Type     *QuestionType `json:"type,omitempty"`
	Options  *[]string     `json:"options,omitempty"`
	Rows     *[]string     `json:"rows,omitempty"`
	MinLabel *string       `json:"min_label,omitempty"`
	MaxLabel *string       `json:"max_label,omitempty"`
}

type SurveyDTO struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Questions   []QuestionDTO `json:"questions"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type QuestionDTO struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Type     QuestionType `json:"type"`
	Options  []string     `json:"options,omitempty"`
	Rows     []string     `json:"rows,omitempty"`
	MinLabel string       `json:"min_label,omitempty"`
	MaxLabel string       `json:"max_label,omitempty"`
}

// SurveySummaryDTO is the dashboard list entry.
type SurveySummaryDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
