package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	pkgAuth "github.com/mvaldez/beautyshelf-backend/pkg/auth"
	"github.com/mvaldez/beautyshelf-backend/pkg/config"
	redisclient "github.com/mvaldez/beautyshelf-backend/pkg/redis"
)

// ErrNoSession is returned when a cookie is absent, invalid, or revoked.
var ErrNoSession = errors.New("no active session")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// Manager issues, resolves, and revokes cookie-carried sessions. A session is
// live only while its jti is present in Redis, so logout revokes server-side.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	cfg   config.SessionConfig
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL() <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{
		store: client,
		keyer: client,
		cfg:   cfg,
	}, nil
}

// Issue creates a session for the user and returns the cookie to set.
func (m *Manager) Issue(ctx context.Context, userID uuid.UUID) (*http.Cookie, error) {
	jti := uuid.NewString()
	if err := m.store.Set(ctx, m.keyer.SessionKey(jti), userID.String(), m.cfg.TTL()); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	token, err := pkgAuth.MintSessionToken(m.cfg, time.Now().UTC(), userID, jti)
	if err != nil {
		return nil, err
	}

	return m.cookie(token, m.cfg.TTL()), nil
}

// Resolve validates the cookie value and returns the user id it names.
// Any failure collapses to ErrNoSession; the caller treats it as anonymous.
func (m *Manager) Resolve(ctx context.Context, cookieValue string) (uuid.UUID, error) {
	if strings.TrimSpace(cookieValue) == "" {
		return uuid.Nil, ErrNoSession
	}

	claims, err := pkgAuth.ParseSessionToken(m.cfg, cookieValue)
	if err != nil {
		return uuid.Nil, ErrNoSession
	}
	if claims.ID == "" || claims.UserID == uuid.Nil {
		return uuid.Nil, ErrNoSession
	}

	stored, err := m.store.Get(ctx, m.keyer.SessionKey(claims.ID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return uuid.Nil, ErrNoSession
		}
		return uuid.Nil, err
	}
	if stored != claims.UserID.String() {
		return uuid.Nil, ErrNoSession
	}

	return claims.UserID, nil
}

// Revoke deletes the session named by the cookie and returns an expired
// cookie to clear it client-side. Idempotent for stale or garbage cookies.
func (m *Manager) Revoke(ctx context.Context, cookieValue string) (*http.Cookie, error) {
	cleared := m.cookie("", -time.Hour)

	if strings.TrimSpace(cookieValue) == "" {
		return cleared, nil
	}
	claims, err := pkgAuth.ParseSessionTokenAllowExpired(m.cfg, cookieValue)
	if err != nil || claims.ID == "" {
		return cleared, nil
	}
	if err := m.store.Del(ctx, m.keyer.SessionKey(claims.ID)); err != nil {
		return cleared, err
	}
	return cleared, nil
}

// CookieName exposes the configured cookie name for request parsing.
func (m *Manager) CookieName() string {
	return m.cfg.CookieName
}

func (m *Manager) cookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
