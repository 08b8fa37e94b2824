package state

import (
	"context"
	"fmt"
	"time"

	"github.com/delphi-research/survey-backend/internal/entity"
)

// Manager manages telegram chat sessions
type Manager struct {
	storage Storage
}

// NewManager creates a new state manager
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
	}
}

// GetSession retrieves the chat session for a user
func (m *Manager) GetSession(ctx context.Context, userID int64) (*Session, error) {
	session, err := m.storage.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get telegram session from storage: %w", err)
	}

	return session, nil
}

// SetSession saves the chat session
func (m *Manager) SetSession(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now()

	if err := m.storage.Set(ctx, session); err != nil {
		return fmt.Errorf("save telegram session to storage: %w", err)
	}

	return nil
}

// ResetSession replaces whatever session the user had with a fresh one in
// the given stage.
func (m *Manager) ResetSession(ctx context.Context, userID int64, stage string) (*Session, error) {
	now := time.Now()
	session := &Session{
		UserID:    userID,
		Stage:     stage,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.storage.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("save telegram session to storage: %w", err)
	}

	return session, nil
}

// DeleteSession removes the chat session
func (m *Manager) DeleteSession(ctx context.Context, userID int64) error {
	if err := m.storage.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete telegram session from storage: %w", err)
	}

	return nil
}

// SetWidget records the active widget and resets matrix progress
func (s *Session) SetWidget(widget *entity.WidgetDTO) {
	s.Widget = widget
	s.MatrixRow = 0
	s.MatrixSelections = nil
}
