package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/comunidade")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SESSION_SECRET", "k")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	for _, k := range []string{"REDIS_DB", "REDIS_PASSWORD", "SESSION_TTL", "REMEMBER_TTL", "COOKIE_SECURE",
		"STATIC_DIR", "PHOTO_DIR", "WORKER_COUNT", "LISTEN_ADDR", "LOG_LEVEL", "BODY_LIMIT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost/comunidade", cfg.DatabaseURL)
	require.Equal(t, []byte("k"), cfg.SessionSecret)
	require.Equal(t, 0, cfg.RedisDB)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 365*24*time.Hour, cfg.RememberTTL)
	require.False(t, cfg.CookieSecure)
	require.Equal(t, "static/fotos_perfil", cfg.PhotoDir)
	require.Equal(t, 2, cfg.WorkerCount)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "2M", cfg.BodyLimit)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("REMEMBER_TTL", "720h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("PHOTO_DIR", "/tmp/fotos")
	t.Setenv("BODY_LIMIT", "512K")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.RedisDB)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.Equal(t, 720*time.Hour, cfg.RememberTTL)
	require.True(t, cfg.CookieSecure)
	require.Equal(t, 4, cfg.WorkerCount)
	require.Equal(t, "/tmp/fotos", cfg.PhotoDir)
	require.Equal(t, "512K", cfg.BodyLimit)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string][2]string{
		"missing database": {"DATABASE_URL", ""},
		"missing redis":    {"REDIS_ADDR", ""},
		"missing secret":   {"SESSION_SECRET", ""},
		"bad redis db":     {"REDIS_DB", "x"},
		"bad workers":      {"WORKER_COUNT", "0"},
		"bad session ttl":  {"SESSION_TTL", "soon"},
		"negative ttl":     {"REMEMBER_TTL", "-1h"},
		"bad secure":       {"COOKIE_SECURE", "maybe"},
		"bad body limit":   {"BODY_LIMIT", "huge"},
		"zero body limit":  {"BODY_LIMIT", "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			require.Error(t, err)
		})
	}
}
