package cart

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Session is the per-visitor state: one cart and one wishlist
type Session struct {
	ID       string
	Cart     *Ledger
	Wishlist *Wishlist

	mu       sync.Mutex
	lastSeen time.Time
}

// Sessions owns every live session. Each session is handed to one caller at
// a time, so the ledgers inside need no locking of their own.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
	pricing  Pricing
	ttl      time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// NewSessions creates a registry whose sessions expire after ttl of
// inactivity. A ttl of zero keeps sessions forever.
func NewSessions(pricing Pricing, ttl time.Duration, logger zerolog.Logger) *Sessions {
	return &Sessions{
		sessions: make(map[string]*Session),
		pricing:  pricing,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Do runs fn with the session identified by id, creating it on first use.
// Calls for the same id are serialised.
func (s *Sessions) Do(id string, fn func(*Session) error) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{
			ID:       id,
			Cart:     NewLedger(s.pricing),
			Wishlist: NewWishlist(),
		}
		s.sessions[id] = sess
		s.logger.Debug().Str("session_id", id).Msg("session created")
	}
	sess.lastSeen = s.now()
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the ttl and returns how many
// were dropped
func (s *Sessions) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

// StartSweeper sweeps expired sessions every interval until ctx is done
func (s *Sessions) StartSweeper(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := s.Sweep(now); n > 0 {
					s.logger.Info().Int("expired", n).Msg("expired idle sessions")
				}
			}
		}
	}()
}
