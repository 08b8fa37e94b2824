package interview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/delphi-research/survey-backend/internal/config"
	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/delphi-research/survey-backend/internal/pkg/formatter"
	"github.com/delphi-research/survey-backend/internal/pkg/validator"
	"github.com/delphi-research/survey-backend/internal/repository"
)

type fakeSurveyRepo struct {
	survey *entity.Survey
}

func (r *fakeSurveyRepo) Create(_ context.Context, s entity.Survey) (*entity.Survey, error) {
	return &s, nil
}

func (r *fakeSurveyRepo) Get(_ context.Context, id string) (*entity.Survey, error) {
	if r.survey == nil || r.survey.ID != id {
		return nil, entity.ErrSurveyNotFound
	}
	return r.survey, nil
}

func (r *fakeSurveyRepo) List(_ context.Context, _, _ int) ([]*entity.Survey, error) {
	return nil, nil
}

func (r *fakeSurveyRepo) Update(_ context.Context, s entity.Survey) (*entity.Survey, error) {
	return &s, nil
}

func (r *fakeSurveyRepo) Delete(_ context.Context, _ string) error {
	return nil
}

// scriptedChat replays canned replies in order and records every request.
type scriptedChat struct {
	replies  []string
	err      error
	requests []*entity.LLMChatRequest
}

func (c *scriptedChat) Chat(_ context.Context, req *entity.LLMChatRequest) (string, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return "", c.err
	}
	if len(c.replies) == 0 {
		return "", errors.New("script exhausted")
	}
	reply := c.replies[0]
	c.replies = c.replies[1:]
	return reply, nil
}

func testSurvey() *entity.Survey {
	return &entity.Survey{
		ID:          "2b7e1f60-0000-4000-8000-000000000001",
		Title:       "Product Feedback",
		Description: "How is it going?",
		Questions: []entity.Question{
			{ID: "q1", Text: "What do you like?", Type: entity.QuestionTypeShortText},
			{ID: "q2", Text: "Rate us", Type: entity.QuestionTypeScale, MinLabel: "Bad", MaxLabel: "Great"},
			{
				ID: "q3", Text: "Rate aspects", Type: entity.QuestionTypeMatrix,
				Rows: []string{"Speed", "Price"}, Options: []string{"Good", "Bad"},
			},
		},
	}
}

func newTestUsecase(chat *scriptedChat) (*InterviewUsecase, *fakeSurveyRepo) {
	repo := &fakeSurveyRepo{survey: testSurvey()}
	store := repository.NewInterviewMemory(config.InterviewConfig{
		SessionTTL:      time.Hour,
		CleanupInterval: time.Hour,
	})

	uc := NewUsecase(repo, store, chat, validator.New(), formatter.NewFactory(), zap.NewNop())
	return uc, repo
}

func start(t *testing.T, uc *InterviewUsecase) *entity.Interview {
	t.Helper()
	iv, err := uc.StartInterview(context.Background(), &entity.StartInterviewRequest{
		SurveyID: "2b7e1f60-0000-4000-8000-000000000001",
	})
	require.NoError(t, err)
	return iv
}

func TestStartInterview(t *testing.T) {
	chat := &scriptedChat{replies: []string{"Welcome! Let's begin. [[QID:q1]]"}}
	uc, _ := newTestUsecase(chat)

	iv := start(t, uc)

	assert.Equal(t, entity.InterviewStatusActive, iv.Status)
	require.Len(t, iv.Messages, 1)
	assert.Equal(t, entity.MessageRoleModel, iv.Messages[0].Role)
	assert.Equal(t, "Welcome! Let's begin.", iv.Messages[0].Content)
	assert.Equal(t, "q1", iv.Messages[0].QuestionID)

	// the opening turn primes the model but never shows in the transcript
	require.Len(t, chat.requests, 1)
	require.NotEmpty(t, chat.requests[0].Turns)
	assert.Equal(t, entity.ChatRoleUser, chat.requests[0].Turns[0].Role)
	assert.Equal(t, "Start the interview now.", chat.requests[0].Turns[0].Content)

	// snapshot questions travel in the system instruction
	assert.Contains(t, chat.requests[0].SystemInstruction, "q3")

	widget := BuildWidget(iv)
	require.NotNil(t, widget)
	assert.Equal(t, entity.WidgetKindText, widget.Kind)
	assert.Equal(t, "q1", widget.QuestionID)
}

func TestStartInterviewUnknownSurvey(t *testing.T) {
	uc, _ := newTestUsecase(&scriptedChat{})

	_, err := uc.StartInterview(context.Background(), &entity.StartInterviewRequest{SurveyID: "missing"})
	assert.ErrorIs(t, err, entity.ErrSurveyNotFound)
}

func TestStartInterviewModelFailure(t *testing.T) {
	chat := &scriptedChat{err: errors.New("backend down")}
	uc, _ := newTestUsecase(chat)

	iv := start(t, uc)

	assert.Equal(t, entity.InterviewStatusActive, iv.Status)
	require.Len(t, iv.Messages, 1)
	assert.Equal(t, entity.MessageRoleSystem, iv.Messages[0].Role)
	assert.Nil(t, BuildWidget(iv))
}

func TestSubmitAnswerAdvances(t *testing.T) {
	chat := &scriptedChat{replies: []string{
		"Hi! [[QID:q1]]",
		"Thanks! Next one. [[QID:q2]]",
	}}
	uc, _ := newTestUsecase(chat)

	iv := start(t, uc)

	iv, err := uc.SubmitAnswer(context.Background(), iv.ID, &entity.SubmitAnswerRequest{
		Kind: entity.AnswerKindText,
		Text: "The speed.",
	})
	require.NoError(t, err)

	require.Len(t, iv.Messages, 3)
	assert.Equal(t, "The speed.", iv.Messages[1].Content)
	assert.Equal(t, "q2", iv.Messages[2].QuestionID)

	widget := BuildWidget(iv)
	require.NotNil(t, widget)
	assert.Equal(t, entity.WidgetKindScale, widget.Kind)
	assert.Equal(t, 1, widget.ScaleMin)
	assert.Equal(t, 5, widget.ScaleMax)
	assert.Equal(t, "Bad", widget.MinLabel)

	// the second call carries the whole prior conversation
	last := chat.requests[1]
	require.Len(t, last.Turns, 3)
	assert.Equal(t, "Hi!", last.Turns[1].Content)
	assert.Equal(t, "The speed.", last.Turns[2].Content)
}

func TestSubmitScaleAnswerSerialization(t *testing.T) {
	chat := &scriptedChat{replies: []string{
		"Hi! [[QID:q2]]",
		"Noted. [[QID:q1]]",
	}}
	uc, _ := newTestUsecase(chat)

	iv := start(t, uc)

	iv, err := uc.SubmitAnswer(context.Background(), iv.ID, &entity.SubmitAnswerRequest{
		Kind:  entity.AnswerKindScale,
		Scale: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "4", iv.Messages[1].Content)
}

func TestSubmitMatrixAnswerSerialization(t *testing.T) {
	chat := &scriptedChat{replies: []string{
		"Hi! [[QID:q3]]",
		"Got it. [[QID:q1]]",
	}}
	uc, _ := newTestUsecase(chat)

	iv := start(t, uc)

	iv, err := uc.SubmitAnswer(context.Background(), iv.ID, &entity.SubmitAnswerRequest{
		Kind: entity.AnswerKindMatrix,
		Matrix: []entity.MatrixSelection{
			{Row: "Speed", Option: "Good"},
			{Row: "Price", Option: "Bad"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Speed: Good; Price: Bad", iv.Messages[1].Content)
}

func TestSubmitMatrixIncomplete(t *testing.T) {
	chat := &scriptedChat{replies: []string{
		"Hi! [[QID:q3]]",
		"Got it. [[QID:q1]]",
	}}
	uc, _ := newTestUsecase(chat)

	iv := start(t, uc)

	_, err := uc.SubmitAnswer(context.Background(), iv.ID, &entity.SubmitAnswerRequest{
		Kind:   entity.AnswerKindMatrix,
		Matrix: []entity.MatrixSelection{{Row: "Speed", Option: "Good"}},
	})
	assert.ErrorIs(t, err, entity.ErrIncompleteMatrix)

	// rejected submission leaves no trace and releases the session
	current, err := uc.GetInterview(context.Background(), iv.ID)
	require.NoError(t, err)
	assert.Len(t, current.Messages, 1)
	assert.False(t, current.Busy)

	_, err = uc.SubmitAnswer(context.Background(), iv.ID, &entity.SubmitAnswerRequest{
		Kind: entity.AnswerKindMatrix,
		Matrix: []entity.MatrixSelection{
			{Row: "Speed", Option: "Good"},
			{Row: "Price", Option: "Bad"},
		},
	})
	assert.NoError(t, err)
}

func TestEndSentinelFinishesInterview(t *testing.T) {
	chat := &scriptedChat{replies: []string{
		"Hi! [[QID:q1]]",
		"Thank you for your time! [[END_OF_SURVEY]]",
	}}
	uc, _ := newTestUsecase(chat)

	iv := start(t, uc)

	iv, err := uc.SubmitAnswer(context.Background(), iv.ID, &entity.SubmitAnswerRequest{
		Kind: entity.AnswerKindText,
		Text: "Everything.",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InterviewStatusFinished, iv.Status)
	assert.Equal(t, "Thank you for your time!", iv.Messages[2].Content)
	assert.Nil(t, BuildWidget(iv))

	_, err = uc.SubmitAnswer(context.Background(), iv.ID, &entity.SubmitAnswerRequest{
		Kind: entity.AnswerKindText,
		Text: "one more",
	})
	assert.ErrorIs(t, err, entity.ErrInterviewFinished)
}

func TestEndSentinelWinsOverQuestionTag(t *testing.T) {
	chat := &scriptedChat{replies: []string{
		"Hi! [[QID:q1]]",
		"Last thing... [[QID:q2]] [[END_OF_SURVEY]]",
	}}
	uc, _ := newTestUsecase(chat)

	iv := start(t, uc)

	iv, err := uc.SubmitAnswer(context.Background(), iv.ID, &entity.SubmitAnswerRequest{
		Kind: entity.AnswerKindText,
		Text: "ok",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InterviewStatusFinished, iv.Status)
	assert.Nil(t, BuildWidget(iv))
}

func TestUnknownQuestionTagYieldsNoWidget(t *testing.T) {
	chat := &scriptedChat{replies: []string{"Hi! [[QID:made-up]]"}}
	uc, _ := newTestUsecase(chat)

	iv := start(t, uc)

	assert.Equal(t, "made-up", iv.Messages[0].QuestionID)
	assert.Nil(t, BuildWidget(iv))
}

func TestModelFailureKeepsSessionOpen(t *testing.T) {
	chat := &scriptedChat{replies: []string{"Hi! [[QID:q1]]"}}
	uc, _ := newTestUsecase(chat)

	iv := start(t, uc)

	chat.err = errors.New("timeout")
	iv, err := uc.SubmitAnswer(context.Background(), iv.ID, &entity.SubmitAnswerRequest{
		Kind: entity.AnswerKindText,
		Text: "answer",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InterviewStatusActive, iv.Status)
	require.Len(t, iv.Messages, 3)
	assert.Equal(t, entity.MessageRoleSystem, iv.Messages[2].Role)

	// system notices stay out of the model turn list
	chat.err = nil
	chat.replies = []string{"Again: [[QID:q1]]"}
	_, err = uc.SubmitAnswer(context.Background(), iv.ID, &entity.SubmitAnswerRequest{
		Kind: entity.AnswerKindText,
		Text: "answer again",
	})
	require.NoError(t, err)

	last := chat.requests[len(chat.requests)-1]
	for _, turn := range last.Turns {
		assert.NotEqual(t, turnFailureNotice, turn.Content)
	}
}

func TestMatrixWithoutRowsDegradesToText(t *testing.T) {
	chat := &scriptedChat{replies: []string{"Hi! [[QID:q3]]"}}
	uc, repo := newTestUsecase(chat)
	repo.survey.Questions[2].Rows = nil

	iv := start(t, uc)

	widget := BuildWidget(iv)
	require.NotNil(t, widget)
	assert.Equal(t, entity.WidgetKindText, widget.Kind)
}

func TestYesNoWidget(t *testing.T) {
	chat := &scriptedChat{replies: []string{"Hi! [[QID:q1]]"}}
	uc, repo := newTestUsecase(chat)
	repo.survey.Questions[0].Type = entity.QuestionTypeYesNo

	iv := start(t, uc)

	widget := BuildWidget(iv)
	require.NotNil(t, widget)
	assert.Equal(t, entity.WidgetKindChoice, widget.Kind)
	assert.Equal(t, []string{"Yes", "No"}, widget.Choices)
}

func TestExportInterview(t *testing.T) {
	chat := &scriptedChat{replies: []string{"Hi there! [[QID:q1]]"}}
	uc, _ := newTestUsecase(chat)

	iv := start(t, uc)

	data, meta, err := uc.ExportInterview(context.Background(), iv.ID, entity.FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hi there!")
	assert.Equal(t, "text/markdown", meta.ContentType)
}

func TestDeleteInterview(t *testing.T) {
	chat := &scriptedChat{replies: []string{"Hi! [[QID:q1]]"}}
	uc, _ := newTestUsecase(chat)

	iv := start(t, uc)

	require.NoError(t, uc.DeleteInterview(context.Background(), iv.ID))

	_, err := uc.GetInterview(context.Background(), iv.ID)
	assert.ErrorIs(t, err, entity.ErrInterviewNotFound)
}
