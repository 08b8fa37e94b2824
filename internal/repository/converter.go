package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// scanSurvey reads one surveys row and unmarshals the jsonb question list.
func scanSurvey(row pgx.Row) (*entity.Survey, error) {
	var (
		id           pgtype.UUID
		title        string
		description  string
		questionsRaw []byte
		createdAt    time.Time
		updatedAt    time.Time
	)

	if err := row.Scan(&id, &title, &description, &questionsRaw, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var questions []entity.Question
	if err := json.Unmarshal(questionsRaw, &questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}

	return &entity.Survey{
		ID:          uuid.UUID(id.Bytes).String(),
		Title:       title,
		Description: description,
		Questions:   questions,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
