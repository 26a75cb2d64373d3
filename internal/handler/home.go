package handler

import (
	"net/http"

	"comunidade-inteligente/internal/database"
	"comunidade-inteligente/internal/middleware"
	"comunidade-inteligente/internal/session"
	"comunidade-inteligente/internal/store"
	"comunidade-inteligente/internal/view"

	"github.com/labstack/echo/v4"
)

var (
	listPosts = store.ListPostsNewestFirst
	listUsers = store.ListUsers
)

// HomeHandler 首頁：所有貼文，新的在前
// @Summary     Home feed
// @Tags        pages
// @Produce     html
// @Success     200
// @Router      / [get]
func HomeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		posts, err := listPosts(c.Request().Context(), db)
		if err != nil {
			return err
		}
		return render(c, http.StatusOK, "home", "", view.HomeData{Posts: posts})
	}
}

// ContactHandler 聯絡頁
// @Summary     Contact page
// @Tags        pages
// @Produce     html
// @Success     200
// @Router      /contato [get]
func ContactHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return render(c, http.StatusOK, "contact", "Contato", nil)
	}
}

// UsersHandler 會員列表（需登入）
// @Summary     List members
// @Tags        pages
// @Produce     html
// @Success     200
// @Failure     302 "redirect to /login"
// @Router      /usuarios [get]
func UsersHandler(db database.DB) middleware.HandlerFunc {
	return func(c echo.Context, _ *session.Session) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return err
		}
		return render(c, http.StatusOK, "users", "Usuários", view.UsersData{Users: users})
	}
}
