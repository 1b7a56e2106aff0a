package web

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/spotlight/internal/console"
	"github.com/Zachkp/spotlight/internal/logging"
)

const sessionCookie = "console_session"

// session is one visitor's console. mu serializes every operation on it so key
// events are applied one at a time, in the order their requests acquire it.
type session struct {
	mu       sync.Mutex
	id       string
	console  *console.Console
	lastSeen time.Time
}

type sessionStore struct {
	mu         sync.Mutex
	sessions   map[string]*session
	ttl        time.Duration
	newConsole func(id string) *console.Console
	now        func() time.Time
}

func newSessionStore(ttl time.Duration, newConsole func(id string) *console.Console) *sessionStore {
	return &sessionStore{
		sessions:   make(map[string]*session),
		ttl:        ttl,
		newConsole: newConsole,
		now:        time.Now,
	}
}

// acquire returns the session for id, creating one when id is unknown.
// created reports whether the caller must set the cookie.
func (s *sessionStore) acquire(id string) (sess *session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = s.now()
		return sess, false
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	sess = &session{id: id, console: s.newConsole(id), lastSeen: s.now()}
	s.sessions[id] = sess
	metricSessions.Set(float64(len(s.sessions)))
	return sess, true
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// sweep drops sessions idle for longer than the ttl.
func (s *sessionStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	metricSessions.Set(float64(len(s.sessions)))
	return removed
}

func (s *sessionStore) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sweep(); n > 0 {
				logging.L().Debugw("evicted idle console sessions", "count", n)
			}
		}
	}
}
