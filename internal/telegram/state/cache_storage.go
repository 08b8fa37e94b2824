package state

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

var _ Storage = &CacheStorage{}

// CacheStorage keeps chat sessions in an expiring in-memory cache, matching
// the interview store: an abandoned chat simply ages out.
type CacheStorage struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewCacheStorage(ttl, cleanupInterval time.Duration) *CacheStorage {
	return &CacheStorage{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func (s *CacheStorage) Get(_ context.Context, userID int64) (*Session, error) {
	raw, found := s.cache.Get(key(userID))
	if !found {
		return nil, ErrSessionNotFound
	}

	stored := raw.(Session)
	return &stored, nil
}

func (s *CacheStorage) Set(_ context.Context, session *Session) error {
	s.cache.Set(key(session.UserID), *session, s.ttl)
	return nil
}

func (s *CacheStorage) Delete(_ context.Context, userID int64) error {
	s.cache.Delete(key(userID))
	return nil
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
