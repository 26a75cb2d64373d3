package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"comunidade-inteligente/internal/cache"
	"comunidade-inteligente/internal/database"
	"comunidade-inteligente/internal/model"
	"comunidade-inteligente/internal/session"
	"comunidade-inteligente/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Logger = zerolog.Nop()
	os.Exit(m.Run())
}

func newManager() *session.Manager {
	return session.NewManager(session.Options{
		Secret:      []byte("testsecret"),
		TTL:         time.Hour,
		RememberTTL: 24 * time.Hour,
	}, cache.NewMemoryCache())
}

func newContext(e *echo.Echo, method, target string, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func cookieFrom(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			found = ck
		}
	}
	return found
}

// login 回傳登入後取得的 session cookie
func login(t *testing.T, m *session.Manager, user *model.User) (*http.Cookie, *session.Session) {
	t.Helper()
	c, rec := newContext(echo.New(), http.MethodPost, "/login")
	s, err := m.Login(c, user, false)
	require.NoError(t, err)
	return cookieFrom(rec, "session"), s
}

func restore() {
	getUserByID = store.GetUserByID
}

func TestLoadSession(t *testing.T) {
	e := echo.New()
	m := newManager()
	user := &model.User{ID: 3, Username: "ana"}

	capture := func(got **session.Session) echo.HandlerFunc {
		return func(c echo.Context) error {
			*got = session.From(c)
			return c.NoContent(http.StatusOK)
		}
	}

	t.Run("anonymous without cookie", func(t *testing.T) {
		t.Cleanup(restore)
		var got *session.Session
		c, _ := newContext(e, http.MethodGet, "/")
		require.NoError(t, LoadSession(m, &database.FakeDB{})(capture(&got))(c))
		require.False(t, got.Authenticated())
	})

	t.Run("authenticated", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
			require.Equal(t, 3, id)
			return user, nil
		}
		ck, _ := login(t, m, user)
		var got *session.Session
		c, _ := newContext(e, http.MethodGet, "/", ck)
		require.NoError(t, LoadSession(m, &database.FakeDB{})(capture(&got))(c))
		require.True(t, got.Authenticated())
		require.Equal(t, "ana", got.User.Username)
		require.NotEmpty(t, got.TokenID)
	})

	t.Run("bad cookie is cleared", func(t *testing.T) {
		t.Cleanup(restore)
		var got *session.Session
		c, rec := newContext(e, http.MethodGet, "/", &http.Cookie{Name: "session", Value: "bad"})
		require.NoError(t, LoadSession(m, &database.FakeDB{})(capture(&got))(c))
		require.False(t, got.Authenticated())
		require.Less(t, cookieFrom(rec, "session").MaxAge, 0)
	})

	t.Run("deleted user is anonymous", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return nil, store.ErrNotFound
		}
		ck, _ := login(t, m, user)
		var got *session.Session
		c, _ := newContext(e, http.MethodGet, "/", ck)
		require.NoError(t, LoadSession(m, &database.FakeDB{})(capture(&got))(c))
		require.False(t, got.Authenticated())
	})

	t.Run("store failure", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return nil, errors.New("db down")
		}
		ck, _ := login(t, m, user)
		c, _ := newContext(e, http.MethodGet, "/", ck)
		err := LoadSession(m, &database.FakeDB{})(func(echo.Context) error { return nil })(c)
		require.Error(t, err)
	})

	t.Run("static paths skipped", func(t *testing.T) {
		t.Cleanup(restore)
		called := false
		c, _ := newContext(e, http.MethodGet, "/static/fotos_perfil/x.png", &http.Cookie{Name: "session", Value: "bad"})
		require.NoError(t, LoadSession(m, &database.FakeDB{})(func(c echo.Context) error {
			called = true
			require.Nil(t, c.Get("session"))
			return nil
		})(c))
		require.True(t, called)
	})
}

func TestRequireLogin(t *testing.T) {
	e := echo.New()

	t.Run("anonymous redirects with next", func(t *testing.T) {
		c, rec := newContext(e, http.MethodGet, "/usuarios")
		session.Set(c, &session.Session{})
		called := false
		err := RequireLogin(func(echo.Context, *session.Session) error { called = true; return nil })(c)
		require.NoError(t, err)
		require.False(t, called)
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/login?next="+url.QueryEscape("/usuarios"), rec.Header().Get(echo.HeaderLocation))
		require.NotNil(t, cookieFrom(rec, "flash"))
	})

	t.Run("authenticated passes session", func(t *testing.T) {
		c, rec := newContext(e, http.MethodGet, "/perfil")
		s := &session.Session{User: &model.User{ID: 2}}
		session.Set(c, s)
		err := RequireLogin(func(c echo.Context, got *session.Session) error {
			require.Same(t, s, got)
			return c.String(http.StatusOK, "ok")
		})(c)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

// 登出後再訪問受保護頁面應被導回登入頁
func TestLogoutThenProtectedRouteRedirects(t *testing.T) {
	t.Cleanup(restore)
	e := echo.New()
	m := newManager()
	user := &model.User{ID: 5}
	getUserByID = func(context.Context, database.DB, int) (*model.User, error) { return user, nil }

	ck, s := login(t, m, user)
	c, rec := newContext(e, http.MethodGet, "/sair", ck)
	require.NoError(t, m.Logout(c, s))
	cleared := cookieFrom(rec, "session")
	require.Less(t, cleared.MaxAge, 0)

	protected := LoadSession(m, &database.FakeDB{})(RequireLogin(func(c echo.Context, _ *session.Session) error {
		return c.String(http.StatusOK, "secret")
	}))

	// 瀏覽器已刪除 cookie
	c, rec = newContext(e, http.MethodGet, "/perfil")
	require.NoError(t, protected(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login?next=%2Fperfil", rec.Header().Get(echo.HeaderLocation))

	// 舊 cookie 被重送也已撤銷
	c, rec = newContext(e, http.MethodGet, "/perfil", ck)
	require.NoError(t, protected(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login?next=%2Fperfil", rec.Header().Get(echo.HeaderLocation))
}

func TestSafeNext(t *testing.T) {
	require.Equal(t, "/perfil", SafeNext("/perfil"))
	require.Equal(t, "/post/1?x=1", SafeNext("/post/1?x=1"))
	require.Empty(t, SafeNext(""))
	require.Empty(t, SafeNext("//evil.com"))
	require.Empty(t, SafeNext(`/\evil.com`))
	require.Empty(t, SafeNext("https://evil.com/"))
	require.Empty(t, SafeNext("perfil"))
}
