package server

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/athleteunknown/internal/athlete"
)

var errNoSession = errors.New("no valid session")

const (
	// sessionIdleTTL is how long a session may go unused before the
	// registry drops it. The rotation and the day's draw live in the KV
	// store, so a dropped client resumes on the same player.
	sessionIdleTTL = 24 * time.Hour

	sessionSweepInterval = 10 * time.Minute
)

// Session is one player's state container: a round per sport. All events
// for a session run under its mutex.
type Session struct {
	Token string

	lastSeen atomic.Int64 // unix nanoseconds

	mu     sync.Mutex
	rounds map[athlete.Sport]*athlete.Round
}

func newSession(token string) *Session {
	return &Session{Token: token, rounds: make(map[athlete.Sport]*athlete.Round)}
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) idleSince(cutoff time.Time) bool {
	return s.lastSeen.Load() < cutoff.UnixNano()
}

// Sessions is the in-memory registry of player sessions, keyed by token.
// Sessions idle for longer than sessionIdleTTL are evicted while new ones
// are being added.
type Sessions struct {
	now func() time.Time

	mu        sync.RWMutex
	sessions  map[string]*Session
	lastSweep time.Time
}

func NewSessions(now func() time.Time) *Sessions {
	if now == nil {
		now = time.Now
	}
	return &Sessions{now: now, sessions: make(map[string]*Session), lastSweep: now()}
}

// Create issues a fresh session with a random token.
func (s *Sessions) Create() *Session {
	sess := newSession(uuid.NewString())
	now := s.now()
	sess.touch(now)

	s.mu.Lock()
	s.sweepLocked(now)
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess
}

// Resume returns the session for token. Well-formed tokens the registry
// has not seen (for example after a restart or an eviction) get an empty
// session, so a client keeps its rotation position stored in the KV store.
func (s *Sessions) Resume(token string) (*Session, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, errNoSession
	}
	now := s.now()

	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if ok {
		sess.touch(now)
		return sess, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock.
	if sess, ok := s.sessions[token]; ok {
		sess.touch(now)
		return sess, nil
	}
	s.sweepLocked(now)
	sess = newSession(token)
	sess.touch(now)
	s.sessions[token] = sess
	return sess, nil
}

// Sweep drops every session idle for longer than sessionIdleTTL and
// reports how many went.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictLocked(s.now())
}

func (s *Sessions) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < sessionSweepInterval {
		return
	}
	s.evictLocked(now)
}

func (s *Sessions) evictLocked(now time.Time) int {
	s.lastSweep = now
	cutoff := now.Add(-sessionIdleTTL)
	n := 0
	for token, sess := range s.sessions {
		if sess.idleSince(cutoff) {
			delete(s.sessions, token)
			n++
		}
	}
	return n
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
