package state

import (
	"context"
	"errors"
	"time"

	"github.com/delphi-research/survey-backend/internal/entity"
)

// ErrSessionNotFound is returned when a user has no chat session
var ErrSessionNotFound = errors.New("telegram session not found")

// Session is the per-user chat state. It tracks which stage the
// conversation is in and, while an interview runs, the active widget plus
// row-by-row matrix progress.
type Session struct {
	UserID      int64  `json:"user_id"`
	Stage       string `json:"stage"`
	SurveyID    string `json:"survey_id,omitempty"`
	InterviewID string `json:"interview_id,omitempty"`

	// Active widget snapshot, needed to resolve option indexes carried in
	// callback data.
	Widget *entity.WidgetDTO `json:"widget,omitempty"`

	// Matrix answers are collected one row at a time.
	MatrixRow        int                      `json:"matrix_row,omitempty"`
	MatrixSelections []entity.MatrixSelection `json:"matrix_selections,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Storage defines the interface for telegram chat state persistence
type Storage interface {
	Get(ctx context.Context, userID int64) (*Session, error)
	Set(ctx context.Context, session *Session) error
	Delete(ctx context.Context, userID int64) error
}
