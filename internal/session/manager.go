package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"comunidade-inteligente/internal/cache"
	"comunidade-inteligente/internal/model"
	"comunidade-inteligente/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	cookieName   = "session"
	revokedKeyNS = "session:revoked:"
)

var ErrRevoked = errors.New("session revoked")

// Options configures a Manager.
type Options struct {
	Secret       []byte
	TTL          time.Duration
	RememberTTL  time.Duration
	CookieSecure bool
}

// Manager issues, resolves and revokes session cookies.
type Manager struct {
	opts  Options
	cache cache.Cache
	now   func() time.Time
}

func NewManager(opts Options, c cache.Cache) *Manager {
	return &Manager{opts: opts, cache: c, now: time.Now}
}

// Login issues a token for user and writes the session cookie. Without
// remember the cookie lasts for the browser session.
func (m *Manager) Login(c echo.Context, user *model.User, remember bool) (*Session, error) {
	ttl := m.opts.TTL
	if remember {
		ttl = m.opts.RememberTTL
	}
	token, claims, err := service.IssueSessionToken(m.opts.Secret, user.ID, ttl)
	if err != nil {
		return nil, fmt.Errorf("session: issue: %w", err)
	}

	cookie := m.cookie(token)
	if remember {
		cookie.MaxAge = int(ttl.Seconds())
		cookie.Expires = claims.ExpiresAt.Time
	}
	c.SetCookie(cookie)

	s := &Session{User: user, TokenID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}
	Set(c, s)
	return s, nil
}

// Logout revokes the token of s until it would expire and clears the cookie.
func (m *Manager) Logout(c echo.Context, s *Session) error {
	m.ClearCookie(c)
	Set(c, &Session{})
	if s == nil || s.TokenID == "" {
		return nil
	}
	ttl := s.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	if err := m.cache.Set(c.Request().Context(), revokedKeyNS+s.TokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("session: revoke: %w", err)
	}
	return nil
}

// Claims verifies the session cookie of the request. It returns nil claims
// and nil error when there is no cookie.
func (m *Manager) Claims(c echo.Context) (*service.SessionClaims, error) {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	claims, err := service.VerifySessionToken(m.opts.Secret, cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("session: verify: %w", err)
	}
	revoked, err := m.revoked(c.Request().Context(), claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrRevoked
	}
	return claims, nil
}

func (m *Manager) revoked(ctx context.Context, tokenID string) (bool, error) {
	err := m.cache.Get(ctx, revokedKeyNS+tokenID).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("session: revocation lookup: %w", err)
	}
}

// ClearCookie expires the session cookie on the client.
func (m *Manager) ClearCookie(c echo.Context) {
	cookie := m.cookie("")
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	c.SetCookie(cookie)
}

func (m *Manager) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
