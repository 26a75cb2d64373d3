package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

type FlashKind string

const (
	FlashSuccess FlashKind = "alert-success"
	FlashDanger  FlashKind = "alert-danger"
)

type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

const (
	flashCookie     = "flash"
	pendingFlashKey = "flash.pending"
	maxFlashes      = 8
)

// AddFlash queues a message for the next rendered page.
func AddFlash(c echo.Context, kind FlashKind, msg string) {
	pending, ok := c.Get(pendingFlashKey).([]Flash)
	if !ok {
		pending = readFlashes(c)
	}
	pending = append(pending, Flash{Kind: kind, Message: msg})
	if len(pending) > maxFlashes {
		pending = pending[len(pending)-maxFlashes:]
	}
	c.Set(pendingFlashKey, pending)
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    encodeFlashes(pending),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes returns the queued messages and clears them.
func PopFlashes(c echo.Context) []Flash {
	flashes := readFlashes(c)
	if len(flashes) == 0 {
		return nil
	}
	c.Set(pendingFlashKey, []Flash{})
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return flashes
}

func readFlashes(c echo.Context) []Flash {
	if pending, ok := c.Get(pendingFlashKey).([]Flash); ok {
		return pending
	}
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return decodeFlashes(cookie.Value)
}

func encodeFlashes(flashes []Flash) string {
	b, err := json.Marshal(flashes)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// decodeFlashes 格式錯誤時直接丟棄
func decodeFlashes(raw string) []Flash {
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(b, &flashes); err != nil {
		return nil
	}
	return flashes
}
