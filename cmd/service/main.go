// File: cmd/service/main.go
// @title        Comunidade Inteligente
// @version      1.0
// @description  Páginas HTML e health check da Comunidade Inteligente
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"comunidade-inteligente/internal/cache"
	"comunidade-inteligente/internal/config"
	"comunidade-inteligente/internal/database"
	"comunidade-inteligente/internal/form"
	"comunidade-inteligente/internal/logging"
	"comunidade-inteligente/internal/model"
	"comunidade-inteligente/internal/photo"
	"comunidade-inteligente/internal/router"
	"comunidade-inteligente/internal/session"
	"comunidade-inteligente/internal/view"
	"comunidade-inteligente/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	_ "comunidade-inteligente/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

var (
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit

	logOutput io.Writer = os.Stdout
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logging.Setup(logOutput, cfg.LogLevel); err != nil {
		log.Warn().Err(err).Str("level", cfg.LogLevel).Msg("無效的 LOG_LEVEL，改用 info")
	}

	photoPrefix, err := photoURLPrefix(cfg.StaticDir, cfg.PhotoDir)
	if err != nil {
		return err
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	photos, err := photo.NewStore(cfg.PhotoDir, photoPrefix, wp)
	if err != nil {
		return err
	}
	if err := photos.EnsurePlaceholder(model.DefaultPhoto); err != nil {
		return err
	}

	renderer, err := view.NewRenderer(photos.URL)
	if err != nil {
		return fmt.Errorf("模板載入失敗: %v", err)
	}

	sm := session.NewManager(session.Options{
		Secret:       cfg.SessionSecret,
		TTL:          cfg.SessionTTL,
		RememberTTL:  cfg.RememberTTL,
		CookieSecure: cfg.CookieSecure,
	}, rdb)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = form.NewValidator()
	e.Use(middleware.Recover())
	e.Use(logging.RequestLogger())

	router.Setup(e, db, rdb, sm, photos, cfg.StaticDir, cfg.BodyLimit)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	log.Info().Str("addr", cfg.ListenAddr).Int("workers", cfg.WorkerCount).Msg("server starting")
	if err := startServer(e, cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// photoURLPrefix 照片目錄必須在靜態目錄之下，回傳其公開路徑
func photoURLPrefix(staticDir, photoDir string) (string, error) {
	rel, err := filepath.Rel(staticDir, photoDir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("PHOTO_DIR %q 必須位於 STATIC_DIR %q 之下", photoDir, staticDir)
	}
	return path.Join("/static", filepath.ToSlash(rel)), nil
}

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("service stopped")
		exitFunc(1)
	}
}
