package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SurveyRepository defines the interface for survey persistence
type SurveyRepository interface {
	Create(ctx context.Context, survey entity.Survey) (*entity.Survey, error)
	Get(ctx context.Context, id string) (*entity.Survey, error)
	List(ctx context.Context, skip, limit int) ([]*entity.Survey, error)
	Update(ctx context.Context, survey entity.Survey) (*entity.Survey, error)
	Delete(ctx context.Context, id string) error
}

var _ SurveyRepository = &SurveyPostgres{}

// SurveyPostgres implements SurveyRepository on PostgreSQL. Questions are
// stored as a jsonb document: the question list is always read and written
// as a whole, so per-question rows would buy nothing.
type SurveyPostgres struct {
	db *pgxpool.Pool
}

func NewSurveyPostgres(db *pgxpool.Pool) *SurveyPostgres {
	return &SurveyPostgres{db: db}
}

func (r *SurveyPostgres) Create(ctx context.Context, survey entity.Survey) (*entity.Survey, error) {
	surveyID, err := parseUUID(survey.ID, "survey")
	if err != nil {
		return nil, err
	}

	questions, err := json.Marshal(survey.Questions)
	if err != nil {
		return nil, fmt.Errorf("marshal questions: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO surveys (id, title, description, questions)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, description, questions, created_at, updated_at`,
		surveyID, survey.Title, survey.Description, questions,
	)

	return scanSurvey(row)
}

func (r *SurveyPostgres) Get(ctx context.Context, id string) (*entity.Survey, error) {
	surveyID, err := parseUUID(id, "survey")
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, `
		SELECT id, title, description, questions, created_at, updated_at
		FROM surveys WHERE id = $1`,
		surveyID,
	)

	survey, err := scanSurvey(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSurveyNotFound
		}
		return nil, fmt.Errorf("get survey: %w", err)
	}

	return survey, nil
}

func (r *SurveyPostgres) List(ctx context.Context, skip, limit int) ([]*entity.Survey, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, description, questions, created_at, updated_at
		FROM surveys
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	defer rows.Close()

	surveys := make([]*entity.Survey, 0)
	for rows.Next() {
		survey, err := scanSurvey(rows)
		if err != nil {
			return nil, fmt.Errorf("scan survey: %w", err)
		}
		surveys = append(surveys, survey)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}

	return surveys, nil
}

func (r *SurveyPostgres) Update(ctx context.Context, survey entity.Survey) (*entity.Survey, error) {
	surveyID, err := parseUUID(survey.ID, "survey")
	if err != nil {
		return nil, err
	}

	questions, err := json.Marshal(survey.Questions)
	if err != nil {
		return nil, fmt.Errorf("marshal questions: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		UPDATE surveys
		SET title = $2, description = $3, questions = $4, updated_at = now()
		WHERE id = $1
		RETURNING id, title, description, questions, created_at, updated_at`,
		surveyID, survey.Title, survey.Description, questions,
	)

	updated, err := scanSurvey(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSurveyNotFound
		}
		return nil, fmt.Errorf("update survey: %w", err)
	}

	return updated, nil
}

func (r *SurveyPostgres) Delete(ctx context.Context, id string) error {
	surveyID, err := parseUUID(id, "survey")
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM surveys WHERE id = $1`, surveyID)
	if err != nil {
		return fmt.Errorf("delete survey: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrSurveyNotFound
	}

	return nil
}

func parseUUID(id, kind string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("parse %s ID: %w", kind, err)
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}
