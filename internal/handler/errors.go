package handler

import (
	"errors"
	"net/http"

	"comunidade-inteligente/internal/store"
	"comunidade-inteligente/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var statusMessages = map[int]string{
	http.StatusBadRequest:            "Requisição inválida.",
	http.StatusForbidden:             "Você não tem permissão para acessar esta página.",
	http.StatusNotFound:              "Página não encontrada.",
	http.StatusMethodNotAllowed:      "Método não permitido.",
	http.StatusRequestEntityTooLarge: "Arquivo muito grande.",
	http.StatusInternalServerError:   "Ocorreu um erro inesperado. Tente novamente mais tarde.",
}

// ErrorHandler renders the error page for every error a handler returns.
// Details of 5xx errors are logged, never shown.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := ""
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		status = he.Code
		if s, ok := he.Message.(string); ok && s != http.StatusText(status) {
			msg = s
		}
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Msg("request failed")
		msg = ""
	}
	if msg == "" {
		msg = statusMessages[status]
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = render(c, status, "error", "Erro", view.ErrorData{Status: status, Message: msg})
	}
	if err != nil {
		log.Error().Err(err).Msg("render error page")
		_ = c.String(status, msg)
	}
}
