// Package session carries the per-request login state and the one-shot flash
// messages.
package session

import (
	"time"

	"comunidade-inteligente/internal/model"

	"github.com/labstack/echo/v4"
)

const contextKey = "session"

// Session is the resolved identity of a request. User is nil when anonymous.
type Session struct {
	User      *model.User
	TokenID   string
	ExpiresAt time.Time
}

func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil
}

// Set binds s to the request.
func Set(c echo.Context, s *Session) {
	c.Set(contextKey, s)
}

// From returns the session bound to the request, or an anonymous one.
func From(c echo.Context) *Session {
	if s, ok := c.Get(contextKey).(*Session); ok && s != nil {
		return s
	}
	return &Session{}
}
