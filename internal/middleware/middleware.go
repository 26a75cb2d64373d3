package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"comunidade-inteligente/internal/database"
	"comunidade-inteligente/internal/session"
	"comunidade-inteligente/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// HandlerFunc is a handler that runs only for an authenticated session.
type HandlerFunc func(c echo.Context, s *session.Session) error

// LoginPath is where anonymous visitors of protected routes are sent.
const LoginPath = "/login"

var getUserByID = store.GetUserByID

// skipSession 靜態檔與 API 文件不需要解析 session
func skipSession(c echo.Context) bool {
	p := c.Request().URL.Path
	return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/swagger/")
}

// LoadSession resolves the session cookie into a *session.Session bound to
// the request. Invalid, revoked or orphaned cookies fall back to anonymous.
func LoadSession(m *session.Manager, db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipSession(c) {
				return next(c)
			}
			anonymous := &session.Session{}

			claims, err := m.Claims(c)
			if err != nil {
				log.Debug().Err(err).Msg("discarding session cookie")
				m.ClearCookie(c)
				session.Set(c, anonymous)
				return next(c)
			}
			if claims == nil {
				session.Set(c, anonymous)
				return next(c)
			}

			user, err := getUserByID(c.Request().Context(), db, claims.UserID)
			if errors.Is(err, store.ErrNotFound) {
				m.ClearCookie(c)
				session.Set(c, anonymous)
				return next(c)
			}
			if err != nil {
				return err
			}

			session.Set(c, &session.Session{
				User:      user,
				TokenID:   claims.ID,
				ExpiresAt: claims.ExpiresAt.Time,
			})
			return next(c)
		}
	}
}

// RequireLogin runs h with the current session, or redirects anonymous
// visitors to the login page with next set to the requested path.
func RequireLogin(h HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s := session.From(c)
		if !s.Authenticated() {
			session.AddFlash(c, session.FlashDanger, "Faça login para acessar esta página.")
			target := LoginPath + "?next=" + url.QueryEscape(c.Request().URL.Path)
			return c.Redirect(http.StatusFound, target)
		}
		return h(c, s)
	}
}

// SafeNext returns next when it is a local absolute path, otherwise "".
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return next
}
