// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"comunidade-inteligente/internal/cache"
	"comunidade-inteligente/internal/database"
	"comunidade-inteligente/internal/handler"
	"comunidade-inteligente/internal/middleware"
	"comunidade-inteligente/internal/session"
)

// methodField HTML 表單以此欄位模擬 PUT / DELETE
const methodField = "_method"

// Setup 註冊所有路由與中介層。bodyLimit 限制請求本文大小（例如 "2M"）
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, sm *session.Manager, photos handler.PhotoSaver, staticDir, bodyLimit string) {
	e.HTTPErrorHandler = handler.ErrorHandler

	// MethodOverride 會解析整個表單，上限必須在它之前
	e.Pre(echomw.BodyLimit(bodyLimit))
	// 路由比對前先改寫方法
	e.Pre(echomw.MethodOverrideWithConfig(echomw.MethodOverrideConfig{
		Getter: echomw.MethodFromForm(methodField),
	}))
	e.Use(middleware.LoadSession(sm, db))

	e.Static("/static/", staticDir)

	// 健康檢查
	e.GET("/ping", handler.PingHandler(db, cch))

	// 公開頁面
	e.GET("/", handler.HomeHandler(db))
	e.GET("/contato", handler.ContactHandler())
	e.GET("/login", handler.LoginPageHandler())
	e.POST("/login", handler.LoginSubmitHandler(db, sm))

	// 需登入
	e.GET("/usuarios", middleware.RequireLogin(handler.UsersHandler(db)))
	e.GET("/sair", middleware.RequireLogin(handler.LogoutHandler(sm)))

	perfil := e.Group("/perfil")
	perfil.GET("", middleware.RequireLogin(handler.ProfileHandler()))
	perfil.GET("/editar", middleware.RequireLogin(handler.EditProfilePageHandler()))
	perfil.POST("/editar", middleware.RequireLogin(handler.EditProfileHandler(db, photos)))

	post := e.Group("/post")
	post.GET("/criar", middleware.RequireLogin(handler.CreatePostPageHandler()))
	post.POST("/criar", middleware.RequireLogin(handler.CreatePostHandler(db)))
	post.GET("/:id", middleware.RequireLogin(handler.ShowPostHandler(db)))
	post.PUT("/:id", middleware.RequireLogin(handler.UpdatePostHandler(db)))
	post.POST("/:id/excluir", middleware.RequireLogin(handler.DeletePostHandler(db)))
	post.DELETE("/:id/excluir", middleware.RequireLogin(handler.DeletePostHandler(db)))
}
