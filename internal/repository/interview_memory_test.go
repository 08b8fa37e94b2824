package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delphi-research/survey-backend/internal/config"
	"github.com/delphi-research/survey-backend/internal/entity"
)

func newTestStore() *InterviewMemory {
	return NewInterviewMemory(config.InterviewConfig{
		SessionTTL:      time.Hour,
		CleanupInterval: time.Hour,
	})
}

func testInterview(id string) entity.Interview {
	return entity.Interview{
		ID:       id,
		SurveyID: "survey-1",
		Status:   entity.InterviewStatusActive,
		Survey: entity.Survey{
			ID:        "survey-1",
			Questions: []entity.Question{{ID: "q1", Text: "Q?", Type: entity.QuestionTypeShortText}},
		},
	}
}

func TestInterviewMemoryCreateGet(t *testing.T) {
	store := newTestStore()

	created, err := store.Create(testInterview("iv-1"))
	require.NoError(t, err)
	assert.Equal(t, "iv-1", created.ID)

	got, err := store.Get("iv-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InterviewStatusActive, got.Status)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, entity.ErrInterviewNotFound)
}

func TestInterviewMemoryGetReturnsCopy(t *testing.T) {
	store := newTestStore()

	_, err := store.Create(testInterview("iv-1"))
	require.NoError(t, err)

	got, err := store.Get("iv-1")
	require.NoError(t, err)
	got.Messages = append(got.Messages, entity.Message{Role: entity.MessageRoleUser, Content: "mutated"})
	got.Survey.Questions[0].Text = "mutated"

	fresh, err := store.Get("iv-1")
	require.NoError(t, err)
	assert.Empty(t, fresh.Messages)
	assert.Equal(t, "Q?", fresh.Survey.Questions[0].Text)
}

func TestInterviewMemoryBeginTurnExclusive(t *testing.T) {
	store := newTestStore()

	_, err := store.Create(testInterview("iv-1"))
	require.NoError(t, err)

	first, err := store.BeginTurn("iv-1")
	require.NoError(t, err)

	_, err = store.BeginTurn("iv-1")
	assert.ErrorIs(t, err, entity.ErrTurnInProgress)

	first.Messages = append(first.Messages, entity.Message{Role: entity.MessageRoleUser, Content: "hi"})
	store.EndTurn(first)

	got, err := store.Get("iv-1")
	require.NoError(t, err)
	assert.False(t, got.Busy)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hi", got.Messages[0].Content)

	_, err = store.BeginTurn("iv-1")
	assert.NoError(t, err)
}

func TestInterviewMemoryBeginTurnFinished(t *testing.T) {
	store := newTestStore()

	iv := testInterview("iv-1")
	iv.Status = entity.InterviewStatusFinished
	_, err := store.Create(iv)
	require.NoError(t, err)

	_, err = store.BeginTurn("iv-1")
	assert.ErrorIs(t, err, entity.ErrInterviewFinished)
}

func TestInterviewMemoryBeginTurnConcurrent(t *testing.T) {
	store := newTestStore()

	_, err := store.Create(testInterview("iv-1"))
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	wins := make(chan *entity.Interview, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if iv, err := store.BeginTurn("iv-1"); err == nil {
				wins <- iv
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Len(t, wins, 1)
}

func TestInterviewMemoryDelete(t *testing.T) {
	store := newTestStore()

	_, err := store.Create(testInterview("iv-1"))
	require.NoError(t, err)

	store.Delete("iv-1")

	_, err = store.Get("iv-1")
	assert.ErrorIs(t, err, entity.ErrInterviewNotFound)
}
