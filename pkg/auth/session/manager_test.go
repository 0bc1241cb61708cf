package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/mvaldez/beautyshelf-backend/pkg/config"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (s *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.values[key] = value.(string)
	return nil
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (s *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

type prefixKeyer struct{}

func (prefixKeyer) SessionKey(id string) string { return "bs:session:" + id }

func testManager(t *testing.T) (*Manager, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	mgr := &Manager{
		store: store,
		keyer: prefixKeyer{},
		cfg: config.SessionConfig{
			Secret:     "test-secret",
			Issuer:     "beautyshelf",
			CookieName: "bs_session",
			TTLMinutes: 60,
		},
	}
	return mgr, store
}

func TestIssueThenResolve(t *testing.T) {
	mgr, _ := testManager(t)
	userID := uuid.New()

	cookie, err := mgr.Issue(context.Background(), userID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if cookie.Name != "bs_session" || cookie.Value == "" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}

	got, err := mgr.Resolve(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != userID {
		t.Fatalf("expected %s got %s", userID, got)
	}
}

func TestResolveRejectsMissingOrGarbageCookie(t *testing.T) {
	mgr, _ := testManager(t)

	if _, err := mgr.Resolve(context.Background(), ""); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession for empty cookie, got %v", err)
	}
	if _, err := mgr.Resolve(context.Background(), "garbage"); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession for garbage cookie, got %v", err)
	}
}

func TestRevokeInvalidatesSession(t *testing.T) {
	mgr, store := testManager(t)
	userID := uuid.New()

	cookie, err := mgr.Issue(context.Background(), userID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cleared, err := mgr.Revoke(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if cleared.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got MaxAge=%d", cleared.MaxAge)
	}
	if len(store.values) != 0 {
		t.Fatalf("expected session entry removed, have %v", store.values)
	}

	if _, err := mgr.Resolve(context.Background(), cookie.Value); err != ErrNoSession {
		t.Fatalf("expected revoked session to be anonymous, got %v", err)
	}
}

func TestRevokeIsIdempotentWithoutSession(t *testing.T) {
	mgr, _ := testManager(t)
	if _, err := mgr.Revoke(context.Background(), ""); err != nil {
		t.Fatalf("revoke empty: %v", err)
	}
	if _, err := mgr.Revoke(context.Background(), "not-a-jwt"); err != nil {
		t.Fatalf("revoke garbage: %v", err)
	}
}
