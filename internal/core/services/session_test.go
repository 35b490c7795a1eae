package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/intelicop/console/internal/adapters/storage"
	"github.com/intelicop/console/internal/core/domain"
	"github.com/intelicop/console/internal/core/services"
	"github.com/intelicop/console/internal/mocks"
)

const testSecret = "test-session-secret"

func newTestSession(store *mocks.MockKeyValueStore) *services.Session {
	return services.NewSession(store, storage.NewJWTCodec(testSecret))
}

func TestSession_StartsLoading(t *testing.T) {
	s := newTestSession(mocks.NewMockKeyValueStore())
	if !s.Loading() {
		t.Error("expected a new session to be loading")
	}
	if _, ok := s.Identity(); ok {
		t.Error("expected no identity before restore")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := s.Wait(ctx); !errors.Is(err, domain.ErrSessionLoading) {
		t.Errorf("expected ErrSessionLoading, got %v", err)
	}
}

func TestSession_RestoreEmptyStore(t *testing.T) {
	s := newTestSession(mocks.NewMockKeyValueStore())
	s.Restore(context.Background())

	if s.Loading() {
		t.Error("expected loading to end")
	}
	if _, ok := s.Identity(); ok {
		t.Error("expected empty session")
	}
	select {
	case <-s.Ready():
	default:
		t.Error("expected Ready to be closed")
	}
}

func TestSession_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockKeyValueStore()

	first := newTestSession(store)
	first.Restore(ctx)
	if err := first.SetIdentity(ctx, domain.Identity{Username: "k.singh", Role: domain.RoleDesk}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.Has(services.IdentityKey) {
		t.Fatalf("expected identity under %s", services.IdentityKey)
	}

	second := newTestSession(store)
	second.Restore(ctx)
	id, ok := second.Identity()
	if !ok {
		t.Fatal("expected restored identity")
	}
	if id.Username != "k.singh" || id.Role != domain.RoleDesk {
		t.Errorf("unexpected identity %+v", id)
	}
}

func TestSession_RestoreIgnoresCorruptBlob(t *testing.T) {
	store := mocks.NewMockKeyValueStore()
	store.Values[services.IdentityKey] = "{not a token"

	s := newTestSession(store)
	s.Restore(context.Background())

	if s.Loading() {
		t.Error("expected loading to end")
	}
	if _, ok := s.Identity(); ok {
		t.Error("expected corrupt blob to leave the session empty")
	}
}

func TestSession_RestoreIgnoresForeignSecret(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockKeyValueStore()
	other := services.NewSession(store, storage.NewJWTCodec("another-secret"))
	other.Restore(ctx)
	_ = other.SetIdentity(ctx, domain.Identity{Username: "x", Role: domain.RoleAdmin})

	s := newTestSession(store)
	s.Restore(ctx)
	if _, ok := s.Identity(); ok {
		t.Error("expected identity signed with another secret to be ignored")
	}
}

func TestSession_RestoreStoreError(t *testing.T) {
	store := mocks.NewMockKeyValueStore()
	store.GetError = errors.New("connection refused")

	s := newTestSession(store)
	s.Restore(context.Background())

	if s.Loading() {
		t.Error("expected loading to end even when the store fails")
	}
	if err := s.Wait(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSession_SetIdentityKeepsMemoryOnStoreFailure(t *testing.T) {
	store := mocks.NewMockKeyValueStore()
	store.SetError = errors.New("disk full")

	s := newTestSession(store)
	s.Restore(context.Background())
	err := s.SetIdentity(context.Background(), domain.Identity{Username: "a", Role: domain.RolePatrol})
	if err == nil {
		t.Fatal("expected persist error")
	}
	if id, ok := s.Identity(); !ok || id.Role != domain.RolePatrol {
		t.Errorf("expected in-memory identity to be kept, got %+v %t", id, ok)
	}
}

func TestSession_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockKeyValueStore()
	s := newTestSession(store)
	s.Restore(ctx)
	_ = s.SetIdentity(ctx, domain.Identity{Username: "a", Role: domain.RoleField})

	for i := 0; i < 2; i++ {
		if err := s.Clear(ctx); err != nil {
			t.Fatalf("clear %d: unexpected error: %v", i, err)
		}
	}
	if _, ok := s.Identity(); ok {
		t.Error("expected empty session")
	}
	if store.Has(services.IdentityKey) {
		t.Error("expected persisted identity to be removed")
	}
}

func TestSession_IdentityReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(mocks.NewMockKeyValueStore())
	s.Restore(ctx)
	_ = s.SetIdentity(ctx, domain.Identity{Username: "a", Role: domain.RoleAdmin})

	id, _ := s.Identity()
	id.Role = domain.RolePatrol

	again, _ := s.Identity()
	if again.Role != domain.RoleAdmin {
		t.Error("mutating the returned identity must not change the session")
	}
}
