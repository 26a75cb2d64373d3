package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/labstack/gommon/bytes"
)

// Config 集中所有由環境變數提供的設定
type Config struct {
	DatabaseURL string

	RedisAddr     string
	RedisDB       int
	RedisPassword string

	SessionSecret []byte
	SessionTTL    time.Duration
	RememberTTL   time.Duration
	CookieSecure  bool

	StaticDir   string
	PhotoDir    string
	WorkerCount int
	BodyLimit   string

	ListenAddr string
	LogLevel   string
}

const (
	defaultSessionTTL  = 24 * time.Hour
	defaultRememberTTL = 365 * 24 * time.Hour
	defaultStaticDir   = "static"
	defaultPhotoDir    = "static/fotos_perfil"
	defaultWorkerCount = 2
	defaultBodyLimit   = "2M"
	defaultListenAddr  = ":8080"
	defaultLogLevel    = "info"
)

// Load 讀取環境變數；必填項目缺少或格式錯誤時回傳錯誤
func Load() (*Config, error) {
	cfg := &Config{
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		StaticDir:     envOr("STATIC_DIR", defaultStaticDir),
		PhotoDir:      envOr("PHOTO_DIR", defaultPhotoDir),
		ListenAddr:    envOr("LISTEN_ADDR", defaultListenAddr),
		LogLevel:      envOr("LOG_LEVEL", defaultLogLevel),
		BodyLimit:     envOr("BODY_LIMIT", defaultBodyLimit),
	}

	if cfg.DatabaseURL = os.Getenv("DATABASE_URL"); cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.RedisAddr = os.Getenv("REDIS_ADDR"); cfg.RedisAddr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("環境變數 SESSION_SECRET 未設定")
	}
	cfg.SessionSecret = []byte(secret)

	var err error
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.WorkerCount, err = intEnv("WORKER_COUNT", defaultWorkerCount); err != nil {
		return nil, err
	}
	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("無效的 WORKER_COUNT: %d", cfg.WorkerCount)
	}
	// 格式同 echo BodyLimit，例如 2M、512K
	if n, err := bytes.Parse(cfg.BodyLimit); err != nil || n <= 0 {
		return nil, fmt.Errorf("無效的 BODY_LIMIT: %q", cfg.BodyLimit)
	}
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", defaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.RememberTTL, err = durationEnv("REMEMBER_TTL", defaultRememberTTL); err != nil {
		return nil, err
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		if cfg.CookieSecure, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("無效的 COOKIE_SECURE: %v", err)
		}
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return d, nil
}
