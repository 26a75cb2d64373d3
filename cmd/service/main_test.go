package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"comunidade-inteligente/internal/cache"
	"comunidade-inteligente/internal/database"
	"comunidade-inteligente/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool = worker.NewPool
	exitFunc = os.Exit
	logOutput = os.Stdout
}

// setEnv 設定最小可用的環境變數，目錄指向暫存區
func setEnv(t *testing.T) string {
	t.Helper()
	static := t.TempDir()
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("REDIS_ADDR", "127")
	t.Setenv("REDIS_DB", "1")
	t.Setenv("REDIS_PASSWORD", "pw")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("STATIC_DIR", static)
	t.Setenv("PHOTO_DIR", filepath.Join(static, "fotos_perfil"))
	t.Setenv("LISTEN_ADDR", ":9999")
	return static
}

func stubDeps() {
	logOutput = io.Discard
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	runMigrationsFn = func(string) error { return nil }
	startServer = func(*echo.Echo, string) error { return nil }
}

func TestRunSuccess(t *testing.T) {
	t.Cleanup(restoreGlobals)
	static := setEnv(t)
	stubDeps()
	called := make(map[string]bool)
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		require.Equal(t, "db", url)
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	newRedisClient = func(addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, "127", addr)
		require.Equal(t, "pw", pwd)
		require.Equal(t, 1, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	runMigrationsFn = func(url string) error { called["migrate"] = true; return nil }
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = true
		require.Equal(t, ":9999", addr)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/fotos_perfil/default.jpg", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Comunidade Inteligente")
		return http.ErrServerClosed
	}

	require.NoError(t, run())
	for _, k := range []string{"pgx", "redis", "migrate", "start", "dbClose", "redisClose"} {
		require.True(t, called[k], k)
	}
	_, err := os.Stat(filepath.Join(static, "fotos_perfil", "default.jpg"))
	require.NoError(t, err)
}

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)
	static := setEnv(t)
	stubDeps()

	t.Setenv("DATABASE_URL", "")
	require.Error(t, run())
	t.Setenv("DATABASE_URL", "db")

	t.Setenv("PHOTO_DIR", filepath.Join(filepath.Dir(static), "elsewhere"))
	require.ErrorContains(t, run(), "PHOTO_DIR")
	t.Setenv("PHOTO_DIR", filepath.Join(static, "fotos_perfil"))

	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.ErrorContains(t, run(), "DB 連線失敗")
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }

	newRedisClient = func(string, string, int) (cache.Cache, error) { return nil, errors.New("redis") }
	require.ErrorContains(t, run(), "Redis 連線失敗")
	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }

	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.ErrorContains(t, run(), "Migration 執行失敗")
	runMigrationsFn = func(string) error { return nil }

	startServer = func(*echo.Echo, string) error { return errors.New("start") }
	require.EqualError(t, run(), "start")
}

func TestPhotoURLPrefix(t *testing.T) {
	p, err := photoURLPrefix("static", "static/fotos_perfil")
	require.NoError(t, err)
	require.Equal(t, "/static/fotos_perfil", p)

	p, err = photoURLPrefix("static", "static")
	require.NoError(t, err)
	require.Equal(t, "/static", p)

	_, err = photoURLPrefix("static", "uploads")
	require.Error(t, err)
}

func TestMainFunction(t *testing.T) {
	t.Cleanup(restoreGlobals)
	setEnv(t)
	stubDeps()
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	main()
	require.Zero(t, exitCode)
}

func TestMainExit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	setEnv(t)
	stubDeps()
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("fail") }
	main()
	require.Equal(t, 1, exitCode)
}
