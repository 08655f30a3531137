package api

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"research-rag/internal/models"
)

// SessionStore holds per-session chat transcripts. Sessions are isolated
// from each other and expire after the configured TTL of inactivity; nothing
// is persisted across restarts.
type SessionStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{cache: cache.New(ttl, 2*ttl)}
}

// Append records one conversation turn, resetting the session's expiration.
func (s *SessionStore) Append(sessionID string, turn models.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var turns []models.Turn
	if v, ok := s.cache.Get(sessionID); ok {
		turns = v.([]models.Turn)
	}
	turns = append(turns, turn)
	s.cache.Set(sessionID, turns, cache.DefaultExpiration)
}

// Get returns the session's transcript, oldest turn first.
func (s *SessionStore) Get(sessionID string) ([]models.Turn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache.Get(sessionID)
	if !ok {
		return nil, false
	}
	return v.([]models.Turn), true
}
