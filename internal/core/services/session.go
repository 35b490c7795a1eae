package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/ports"
)

// IdentityKey is the fixed key the identity blob is persisted under.
const IdentityKey = "intelicop_user"

// Session is the single source of truth for who is logged in. One Session
// is built at start-up and handed to every consumer.
//
// Persistence policy: the identity survives restarts of the console until
// an explicit logout clears it.
type Session struct {
	store ports.KeyValueStore
	codec ports.IdentityCodec

	mu       sync.RWMutex
	identity *domain.Identity
	loading  bool

	ready     chan struct{}
	readyOnce sync.Once
}

func NewSession(store ports.KeyValueStore, codec ports.IdentityCodec) *Session {
	return &Session{
		store:   store,
		codec:   codec,
		loading: true,
		ready:   make(chan struct{}),
	}
}

// Restore loads a persisted identity, if any, and ends the loading phase
// whatever the outcome. A missing or unreadable blob leaves the session
// empty; nothing is returned to the caller.
func (s *Session) Restore(ctx context.Context) {
	defer s.finishLoading()

	blob, found, err := s.store.Get(ctx, IdentityKey)
	if err != nil {
		log.Printf("session: could not read persisted identity: %v", err)
		return
	}
	if !found {
		return
	}

	id, err := s.codec.Decode(blob)
	if err != nil {
		log.Printf("session: ignoring unreadable identity: %v", err)
		return
	}

	s.mu.Lock()
	s.identity = &id
	s.mu.Unlock()
	log.Printf("session: restored identity for %s (%s)", id.Username, id.Role)
}

func (s *Session) finishLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })
}

// SetIdentity replaces the current identity in memory and in the store.
// The in-memory value is kept even if persisting fails.
func (s *Session) SetIdentity(ctx context.Context, id domain.Identity) error {
	s.mu.Lock()
	s.identity = &id
	s.mu.Unlock()

	blob, err := s.codec.Encode(id)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := s.store.Set(ctx, IdentityKey, blob); err != nil {
		return fmt.Errorf("persist identity: %w", err)
	}
	return nil
}

// Clear forgets the identity. Calling it on an empty session is a no-op.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, IdentityKey); err != nil {
		return fmt.Errorf("remove persisted identity: %w", err)
	}
	return nil
}

// Identity returns a copy of the current identity.
func (s *Session) Identity() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Ready is closed once the loading phase has ended.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// Wait blocks until loading has ended or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", domain.ErrSessionLoading, ctx.Err())
	}
}
