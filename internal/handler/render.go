package handler

import (
	"net/http"

	"comunidade-inteligente/internal/session"
	"comunidade-inteligente/internal/view"

	"github.com/labstack/echo/v4"
)

// render 將 session 與待顯示的 flash 一起交給模板
func render(c echo.Context, status int, name, title string, data any) error {
	return c.Render(status, name, view.Page{
		Title:   title,
		Session: session.From(c),
		Flashes: session.PopFlashes(c),
		Data:    data,
	})
}

// redirectAfterPost sends the browser to target with a GET.
func redirectAfterPost(c echo.Context, target string) error {
	return c.Redirect(http.StatusSeeOther, target)
}
