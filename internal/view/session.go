package view

import (
	"context"
	"sync"
	"time"

	"github.com/op/go-logging"

	"distviz/domain/core"
)

// Session pairs a view State with the lock serializing its requests
type Session struct {
	ID core.SessionID

	mu       sync.Mutex
	state    *State
	lastSeen time.Time
}

// With runs fn while holding the session lock
func (s *Session) With(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Store keeps sessions in memory and evicts those idle longer than the TTL
type Store struct {
	mu       sync.Mutex
	sessions map[core.SessionID]*Session
	ttl      time.Duration
	now      func() time.Time
	log      *logging.Logger
}

// NewStore creates an empty store; log may be nil
func NewStore(ttl time.Duration, log *logging.Logger) *Store {
	if log == nil {
		log = logging.MustGetLogger("Session")
	}
	return &Store{
		sessions: make(map[core.SessionID]*Session),
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

// Get returns the session for id, creating a fresh placeholder session when id is
// empty or unknown. created reports whether a new session was made.
func (st *Store) Get(id core.SessionID) (sess *Session, created bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if sess, ok := st.sessions[id]; ok && !id.IsEmpty() {
		sess.lastSeen = now
		return sess, false
	}

	sess = &Session{ID: core.NewSessionID(), state: NewState(), lastSeen: now}
	st.sessions[sess.ID] = sess
	st.log.Debugf("[Session] created %s", sess.ID)
	return sess, true
}

// Len is the number of live sessions
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Evict drops sessions idle longer than the TTL and returns how many were removed
func (st *Store) Evict() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := st.now().Add(-st.ttl)
	removed := 0
	for id, sess := range st.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		st.log.Infof("[Session] evicted %d idle sessions, %d remain", removed, len(st.sessions))
	}
	return removed
}

// Run evicts idle sessions every interval until ctx is done
func (st *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			st.Evict()
		}
	}
}
