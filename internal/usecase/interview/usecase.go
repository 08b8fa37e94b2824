package interview

import (
	"context"
	"fmt"
	"time"

	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/pkg/formatter"
	"github.com/delphi-research/survey-backend/internal/pkg/prompt"
	"github.com/delphi-research/survey-backend/internal/pkg/protocol"
	"github.com/delphi-research/survey-backend/internal/pkg/validator"
	"github.com/delphi-research/survey-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// The respondent-facing fallback when a model turn fails. The session stays
// open: the respondent simply answers again and a fresh turn is attempted.
const turnFailureNotice = "Sorry, something went wrong while processing your answer. Please try again."

// InterviewUsecase drives interview sessions: one outstanding turn per
// session, model output parsed through the question-tag protocol, widgets
// derived from the survey snapshot taken at start.
type InterviewUsecase struct {
	surveyRepo   repository.SurveyRepository
	store        repository.InterviewStore
	chatConn     ChatConnector
	validator    *validator.Validator
	formatterFac *formatter.Factory
	logger       *zap.Logger
}

// NewUsecase creates a new interview use case
func NewUsecase(
	surveyRepo repository.SurveyRepository,
	store repository.InterviewStore,
	chatConn ChatConnector,
	validator *validator.Validator,
	formatterFac *formatter.Factory,
	logger *zap.Logger,
) *InterviewUsecase {
	return &InterviewUsecase{
		surveyRepo:   surveyRepo,
		store:        store,
		chatConn:     chatConn,
		validator:    validator,
		formatterFac: formatterFac,
		logger:       logger,
	}
}

// StartInterview snapshots the survey, creates the session and runs the
// opening model turn. The snapshot is what decouples a running interview
// from concurrent survey edits: question ids resolve against it, never
// against the live survey.
func (uc *InterviewUsecase) StartInterview(
	ctx context.Context,
	req *entity.StartInterviewRequest,
) (*entity.Interview, error) {
	if err := uc.validator.ValidateStartInterview(req); err != nil {
		return nil, err
	}

	survey, err := uc.surveyRepo.Get(ctx, req.SurveyID)
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}

	now := time.Now()
	interview := entity.Interview{
		ID:        uuid.New().String(),
		SurveyID:  survey.ID,
		Survey:    *survey,
		Status:    entity.InterviewStatusActive,
		Busy:      true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := uc.store.Create(interview)
	if err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}

	ctxzap.Info(ctx, "interview started",
		zap.String("interview_id", created.ID),
		zap.String("survey_id", survey.ID),
	)

	uc.runModelTurn(ctx, created)
	uc.store.EndTurn(created)

	return created, nil
}

// GetInterview retrieves an interview session by ID
func (uc *InterviewUsecase) GetInterview(ctx context.Context, id string) (*entity.Interview, error) {
	interview, err := uc.store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get interview: %w", err)
	}

	return interview, nil
}

// SubmitAnswer records one respondent answer and runs the next model turn.
// Overlapping submissions lose to the busy flag; a submission against a
// finished session is rejected outright.
func (uc *InterviewUsecase) SubmitAnswer(
	ctx context.Context,
	id string,
	req *entity.SubmitAnswerRequest,
) (*entity.Interview, error) {
	if err := uc.validator.ValidateSubmitAnswer(req); err != nil {
		return nil, err
	}

	interview, err := uc.store.BeginTurn(id)
	if err != nil {
		return nil, err
	}

	active := activeQuestion(interview)
	if err := uc.checkMatrixComplete(active, req); err != nil {
		uc.store.EndTurn(interview)
		return nil, err
	}

	answer := serializeAnswer(req)
	interview.Messages = append(interview.Messages, entity.Message{
		ID:        uuid.New().String(),
		Role:      entity.MessageRoleUser,
		Content:   answer,
		CreatedAt: time.Now(),
	})

	ctxzap.Info(ctx, "answer submitted",
		zap.String("interview_id", id),
		zap.String("kind", string(req.Kind)),
	)

	uc.runModelTurn(ctx, interview)
	uc.store.EndTurn(interview)

	return interview, nil
}

// ExportInterview renders the transcript in the requested format
func (uc *InterviewUsecase) ExportInterview(
	ctx context.Context,
	id string,
	format entity.ResultFormat,
) ([]byte, *formatter.FileMeta, error) {
	if err := uc.validator.ValidateExportFormat(format); err != nil {
		return nil, nil, err
	}

	interview, err := uc.GetInterview(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	f, err := uc.formatterFac.Create(format)
	if err != nil {
		return nil, nil, fmt.Errorf("create formatter: %w", err)
	}

	title := fmt.Sprintf("Interview: %s", interview.Survey.Title)
	data, err := f.Format(title, formatter.TranscriptBody(interview))
	if err != nil {
		return nil, nil, fmt.Errorf("format transcript: %w", err)
	}

	ctxzap.Info(ctx, "interview exported",
		zap.String("interview_id", id),
		zap.String("format", string(format)),
	)

	return data, formatter.NewFileMeta(title, f), nil
}

// DeleteInterview discards an interview session
func (uc *InterviewUsecase) DeleteInterview(ctx context.Context, id string) error {
	if _, err := uc.store.Get(id); err != nil {
		return err
	}

	uc.store.Delete(id)

	ctxzap.Info(ctx, "interview deleted", zap.String("interview_id", id))
	return nil
}

// runModelTurn sends the full turn list to the model and appends the result
// to the transcript. The end sentinel wins over any question tag in the same
// reply. A failed turn appends a system notice instead and leaves the
// session open, so the caller always gets a coherent transcript back.
func (uc *InterviewUsecase) runModelTurn(ctx context.Context, interview *entity.Interview) {
	systemInstruction, err := prompt.Interviewer(&interview.Survey)
	if err != nil {
		uc.appendFailure(ctx, interview, err)
		return
	}

	reply, err := uc.chatConn.Chat(ctx, &entity.LLMChatRequest{
		SystemInstruction: systemInstruction,
		Turns:             chatTurns(interview),
	})
	if err != nil {
		uc.appendFailure(ctx, interview, err)
		return
	}

	msg := entity.Message{
		ID:        uuid.New().String(),
		Role:      entity.MessageRoleModel,
		CreatedAt: time.Now(),
	}

	if protocol.HasEndSentinel(reply) {
		interview.Status = entity.InterviewStatusFinished
		msg.Content = protocol.StripEndSentinel(reply)
		ctxzap.Info(ctx, "interview finished", zap.String("interview_id", interview.ID))
	} else {
		msg.Content, msg.QuestionID = protocol.ExtractQuestionTag(reply)
	}

	interview.Messages = append(interview.Messages, msg)
}

func (uc *InterviewUsecase) appendFailure(ctx context.Context, interview *entity.Interview, err error) {
	ctxzap.Error(ctx, "model turn failed",
		zap.String("interview_id", interview.ID),
		zap.Error(err),
	)

	interview.Messages = append(interview.Messages, entity.Message{
		ID:        uuid.New().String(),
		Role:      entity.MessageRoleSystem,
		Content:   turnFailureNotice,
		CreatedAt: time.Now(),
	})
}

// checkMatrixComplete enforces the matrix completion gate: when the active
// question is a matrix with declared rows, every row needs a selection.
func (uc *InterviewUsecase) checkMatrixComplete(active *entity.Question, req *entity.SubmitAnswerRequest) error {
	if active == nil || active.Type != entity.QuestionTypeMatrix || req.Kind != entity.AnswerKindMatrix {
		return nil
	}

	answered := make(map[string]bool, len(req.Matrix))
	for _, sel := range req.Matrix {
		answered[sel.Row] = true
	}

	for _, row := range active.Rows {
		if !answered[row] {
			return fmt.Errorf("%w: %q", entity.ErrIncompleteMatrix, row)
		}
	}

	return nil
}

// activeQuestion resolves the question awaiting an answer: the tag on the
// last model message, looked up in the snapshot. Nil when the transcript
// ends on anything else or the tag does not resolve.
func activeQuestion(interview *entity.Interview) *entity.Question {
	if interview.Status != entity.InterviewStatusActive {
		return nil
	}

	last := interview.LastModelMessage()
	if last == nil || last.QuestionID == "" {
		return nil
	}

	return interview.Survey.QuestionByID(last.QuestionID)
}
