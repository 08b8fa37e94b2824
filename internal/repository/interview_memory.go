package repository

import (
	"sync"
	"time"

	"github.com/delphi-research/survey-backend/internal/config"
	"github.com/delphi-research/survey-backend/internal/entity"
	"github.com/patrickmn/go-cache"
)

// InterviewStore defines the interface for interview session storage
type InterviewStore interface {
	Create(interview entity.Interview) (*entity.Interview, error)
	Get(id string) (*entity.Interview, error)
	BeginTurn(id string) (*entity.Interview, error)
	EndTurn(interview *entity.Interview)
	Delete(id string)
}

var _ InterviewStore = &InterviewMemory{}

// InterviewMemory keeps interview sessions in an expiring in-memory cache.
// Sessions are ephemeral on purpose: a completed or abandoned interview
// simply ages out, nothing is written to the database.
//
// All mutations go through the store mutex, and reads hand out copies, so
// a turn in flight never races a concurrent GET of the same session.
type InterviewMemory struct {
	mu    sync.Mutex
	cache *cache.Cache
	ttl   time.Duration
}

func NewInterviewMemory(cfg config.InterviewConfig) *InterviewMemory {
	return &InterviewMemory{
		cache: cache.New(cfg.SessionTTL, cfg.CleanupInterval),
		ttl:   cfg.SessionTTL,
	}
}

func (s *InterviewMemory) Create(interview entity.Interview) (*entity.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Set(interview.ID, &interview, s.ttl)

	return copyInterview(&interview), nil
}

func (s *InterviewMemory) Get(id string) (*entity.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.get(id)
	if err != nil {
		return nil, err
	}

	return copyInterview(stored), nil
}

// BeginTurn marks the session busy and returns a working copy. Exactly one
// caller wins when turns overlap; the losers get ErrTurnInProgress and the
// session is left untouched.
func (s *InterviewMemory) BeginTurn(id string) (*entity.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if stored.Status == entity.InterviewStatusFinished {
		return nil, entity.ErrInterviewFinished
	}
	if stored.Busy {
		return nil, entity.ErrTurnInProgress
	}

	stored.Busy = true

	return copyInterview(stored), nil
}

// EndTurn publishes the turn result and clears the busy flag. The session
// TTL is refreshed so an active interview never expires mid-conversation.
func (s *InterviewMemory) EndTurn(interview *entity.Interview) {
	s.mu.Lock()
	defer s.mu.Unlock()

	interview.Busy = false
	interview.UpdatedAt = time.Now()

	s.cache.Set(interview.ID, copyInterview(interview), s.ttl)
}

func (s *InterviewMemory) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Delete(id)
}

func (s *InterviewMemory) get(id string) (*entity.Interview, error) {
	raw, found := s.cache.Get(id)
	if !found {
		return nil, entity.ErrInterviewNotFound
	}
	return raw.(*entity.Interview), nil
}

func copyInterview(src *entity.Interview) *entity.Interview {
	dst := *src
	dst.Messages = make([]entity.Message, len(src.Messages))
	copy(dst.Messages, src.Messages)
	dst.Survey.Questions = make([]entity.Question, len(src.Survey.Questions))
	copy(dst.Survey.Questions, src.Survey.Questions)
	return &dst
}
