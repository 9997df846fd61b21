package allocation

import (
	"errors"
	"sync"

	"github.com/akulinich/ballast/internal/domain"
)

// ErrStaleResult rejects an async result whose generation token is no
// longer current. The caller discards the result; the store is untouched.
var ErrStaleResult = errors.New("stale result discarded")

// Token tags one in-flight async request (optimizer run, server save).
type Token uint64

// Session owns the store for one open board or meter view and serializes
// access to it. Every accepted mutation advances the generation, so an
// async result computed against an older generation is discarded on
// arrival: a slow optimizer call can never clobber a newer manual edit,
// and an abandoned call never applies. Last accepted mutation wins.
type Session struct {
	mu    sync.Mutex
	store *Store
	gen   Token
}

// NewSession starts at generation 1 so the zero Token never validates.
func NewSession(store *Store) *Session {
	return &Session{store: store, gen: 1}
}

// Begin marks the start of an async request and returns its token. The
// token stays valid until any other mutation or a newer Begin supersedes
// it.
func (s *Session) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// Move applies a single-item command. On success the generation advances,
// invalidating any in-flight async request. A rejected or no-op command
// leaves the generation alone.
func (s *Session) Move(cmd MoveCommand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.store.Version()
	if err := s.store.Apply(cmd); err != nil {
		return err
	}
	if s.store.Version() != before {
		s.gen++
	}
	return nil
}

// Accept applies an async candidate if its token is still current,
// otherwise returns ErrStaleResult without touching the store.
func (s *Session) Accept(tok Token, candidate domain.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok != s.gen {
		return ErrStaleResult
	}
	if err := s.store.ReplaceAssignment(candidate); err != nil {
		return err
	}
	s.gen++
	return nil
}

// Snapshot returns an immutable copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot()
}
