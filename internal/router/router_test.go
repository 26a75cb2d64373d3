package router

import (
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"comunidade-inteligente/internal/cache"
	"comunidade-inteligente/internal/database"
	"comunidade-inteligente/internal/form"
	"comunidade-inteligente/internal/session"
	"comunidade-inteligente/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// 測試輸出不夾雜 JSON 日誌
func TestMain(m *testing.M) {
	log.Logger = zerolog.Nop()
	os.Exit(m.Run())
}

type noPhotos struct{}

func (noPhotos) Save(context.Context, *multipart.FileHeader) (string, error) { return "", nil }

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	r, err := view.NewRenderer(func(name string) string { return "/static/fotos_perfil/" + name })
	require.NoError(t, err)
	e.Renderer = r
	e.Validator = form.NewValidator()

	db := &database.FakeDB{PingFn: func(context.Context) error { return nil }}
	cch := &cache.FakeCache{
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("OK", nil)
		},
	}
	sm := session.NewManager(session.Options{Secret: []byte("s"), TTL: time.Hour, RememberTTL: time.Hour}, cch)
	Setup(e, db, cch, sm, noPhotos{}, t.TempDir(), "1K")
	return e
}

func TestSetupRoutes(t *testing.T) {
	e := newServer(t)

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /ping",
		http.MethodGet + " /",
		http.MethodGet + " /contato",
		http.MethodGet + " /login",
		http.MethodPost + " /login",
		http.MethodGet + " /usuarios",
		http.MethodGet + " /sair",
		http.MethodGet + " /perfil",
		http.MethodGet + " /perfil/editar",
		http.MethodPost + " /perfil/editar",
		http.MethodGet + " /post/criar",
		http.MethodPost + " /post/criar",
		http.MethodGet + " /post/:id",
		http.MethodPut + " /post/:id",
		http.MethodPost + " /post/:id/excluir",
		http.MethodDelete + " /post/:id/excluir",
		http.MethodGet + " /static/*",
	}
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

func TestServeHTTP(t *testing.T) {
	e := newServer(t)

	do := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}
	postForm := func(target string, values url.Values) *http.Request {
		req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		return req
	}

	rec := do(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "pong")

	rec = do(httptest.NewRequest(http.MethodGet, "/contato", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(httptest.NewRequest(http.MethodGet, "/usuarios", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login?next=%2Fusuarios", rec.Header().Get(echo.HeaderLocation))

	rec = do(postForm("/login", url.Values{"form": {"outro"}}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// _method=PUT 對應到 PUT 路由，未登入時導向登入頁
	rec = do(postForm("/post/1", url.Values{"_method": {"PUT"}, "title": {"x"}}))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login?next=%2Fpost%2F1", rec.Header().Get(echo.HeaderLocation))

	rec = do(postForm("/post/1", url.Values{"title": {"x"}}))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	// 超過上限的上傳在解析表單之前就被拒絕
	rec = do(postForm("/perfil/editar", url.Values{"username": {strings.Repeat("a", 2048)}}))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Contains(t, rec.Body.String(), "Arquivo muito grande.")

	rec = do(httptest.NewRequest(http.MethodGet, "/nao-existe", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Página não encontrada.")
}
