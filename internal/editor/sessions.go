package editor

import (
	"sync"
	"time"
)

// Sessions keeps one editor per admin user.
type Sessions[R any, F any] struct {
	factory func() *Editor[R, F]
	now     func() time.Time

	mu      sync.Mutex
	editors map[string]*sessionEntry[R, F]
}

type sessionEntry[R any, F any] struct {
	editor   *Editor[R, F]
	lastUsed time.Time
}

func NewSessions[R any, F any](factory func() *Editor[R, F]) *Sessions[R, F] {
	return &Sessions[R, F]{factory: factory, now: time.Now, editors: make(map[string]*sessionEntry[R, F])}
}

// For returns the editor of userID, creating it on first use.
func (s *Sessions[R, F]) For(userID string) *Editor[R, F] {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.editors[userID]
	if !ok {
		entry = &sessionEntry[R, F]{editor: s.factory()}
		s.editors[userID] = entry
	}
	entry.lastUsed = s.now()
	return entry.editor
}

// Drop forgets the editor of userID, e.g. on logout.
func (s *Sessions[R, F]) Drop(userID string) {
	s.mu.Lock()
	delete(s.editors, userID)
	s.mu.Unlock()
}

// Prune removes editors idle for longer than maxIdle and returns how many were removed.
func (s *Sessions[R, F]) Prune(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, entry := range s.editors {
		if entry.lastUsed.Before(cutoff) {
			delete(s.editors, id)
			removed++
		}
	}
	return removed
}
