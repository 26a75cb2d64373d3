package handler

import (
	"errors"
	"net/http"
	"strconv"

	"comunidade-inteligente/internal/database"
	"comunidade-inteligente/internal/form"
	"comunidade-inteligente/internal/middleware"
	"comunidade-inteligente/internal/model"
	"comunidade-inteligente/internal/session"
	"comunidade-inteligente/internal/store"
	"comunidade-inteligente/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var (
	createPost = store.CreatePost
	getPost    = store.GetPost
	updatePost = store.UpdatePost
	deletePost = store.DeletePost
)

var errNotAuthor = echo.NewHTTPError(http.StatusForbidden, "Apenas o autor pode alterar este post.")

// CreatePostPageHandler 新貼文表單
// @Summary     New post form
// @Tags        posts
// @Produce     html
// @Success     200
// @Router      /post/criar [get]
func CreatePostPageHandler() middleware.HandlerFunc {
	return func(c echo.Context, _ *session.Session) error {
		return render(c, http.StatusOK, "create_post", "Criar Post", view.PostFormData{})
	}
}

// CreatePostHandler 以目前使用者為作者建立貼文
// @Summary     Create post
// @Tags        posts
// @Accept      application/x-www-form-urlencoded
// @Produce     html
// @Param       title formData string true "標題 (2-140)"
// @Param       body  formData string true "內容"
// @Success     303 "redirect to /"
// @Failure     422 "validation errors"
// @Router      /post/criar [post]
func CreatePostHandler(db database.DB) middleware.HandlerFunc {
	return func(c echo.Context, s *session.Session) error {
		f, errs, err := bindPost(c)
		if err != nil {
			return err
		}
		if errs.Any() {
			return render(c, http.StatusUnprocessableEntity, "create_post", "Criar Post", view.PostFormData{Form: f, Errors: errs})
		}

		post, err := createPost(c.Request().Context(), db, &model.Post{
			Title:    f.Title,
			Body:     f.Body,
			AuthorID: s.User.ID,
		})
		if err != nil {
			return err
		}
		log.Info().Int("post_id", post.ID).Int("user_id", s.User.ID).Msg("post created")
		session.AddFlash(c, session.FlashSuccess, "Post Criado com Sucesso")
		return redirectAfterPost(c, "/")
	}
}

// ShowPostHandler 顯示貼文；作者另外看到編輯表單
// @Summary     Show post
// @Tags        posts
// @Produce     html
// @Param       id path int true "貼文 ID"
// @Success     200
// @Failure     404
// @Router      /post/{id} [get]
func ShowPostHandler(db database.DB) middleware.HandlerFunc {
	return func(c echo.Context, s *session.Session) error {
		post, err := loadPost(c, db)
		if err != nil {
			return err
		}
		data := view.PostData{Post: post, Editable: post.IsAuthor(s.User)}
		if data.Editable {
			data.Form = form.Post{Title: post.Title, Body: post.Body}
		}
		return render(c, http.StatusOK, "post", post.Title, data)
	}
}

// UpdatePostHandler 作者更新貼文
// @Summary     Update post
// @Description HTML 表單以 POST 搭配 _method=PUT 送出
// @Tags        posts
// @Accept      application/x-www-form-urlencoded
// @Produce     html
// @Param       id    path     int    true "貼文 ID"
// @Param       title formData string true "標題 (2-140)"
// @Param       body  formData string true "內容"
// @Success     303 "redirect to /"
// @Failure     403
// @Failure     404
// @Failure     422 "validation errors"
// @Router      /post/{id} [put]
func UpdatePostHandler(db database.DB) middleware.HandlerFunc {
	return func(c echo.Context, s *session.Session) error {
		post, err := loadPost(c, db)
		if err != nil {
			return err
		}
		if !post.IsAuthor(s.User) {
			return errNotAuthor
		}
		f, errs, err := bindPost(c)
		if err != nil {
			return err
		}
		if errs.Any() {
			data := view.PostData{Post: post, Editable: true, Form: f, Errors: errs}
			return render(c, http.StatusUnprocessableEntity, "post", post.Title, data)
		}

		post.Title = f.Title
		post.Body = f.Body
		if err := updatePost(c.Request().Context(), db, post); err != nil {
			return err
		}
		session.AddFlash(c, session.FlashSuccess, "Post Atualizado com Sucesso")
		return redirectAfterPost(c, "/")
	}
}

// DeletePostHandler 作者刪除貼文
// @Summary     Delete post
// @Description HTML 表單以 POST (可帶 _method=DELETE) 送出
// @Tags        posts
// @Param       id path int true "貼文 ID"
// @Success     303 "redirect to /"
// @Failure     403
// @Failure     404
// @Router      /post/{id}/excluir [post]
// @Router      /post/{id}/excluir [delete]
func DeletePostHandler(db database.DB) middleware.HandlerFunc {
	return func(c echo.Context, s *session.Session) error {
		post, err := loadPost(c, db)
		if err != nil {
			return err
		}
		if !post.IsAuthor(s.User) {
			return errNotAuthor
		}
		if err := deletePost(c.Request().Context(), db, post); err != nil {
			return err
		}
		log.Info().Int("post_id", post.ID).Int("user_id", s.User.ID).Msg("post deleted")
		session.AddFlash(c, session.FlashSuccess, "Post Excluído com Sucesso")
		return redirectAfterPost(c, "/")
	}
}

func loadPost(c echo.Context, db database.DB) (*model.Post, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return nil, echo.NewHTTPError(http.StatusNotFound)
	}
	post, err := getPost(c.Request().Context(), db, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound)
	}
	return post, err
}

func bindPost(c echo.Context) (form.Post, form.FieldErrors, error) {
	var f form.Post
	if err := c.Bind(&f); err != nil {
		return f, nil, echo.NewHTTPError(http.StatusBadRequest, "Dados de formulário inválidos.")
	}
	f.Normalize()
	if err := c.Validate(&f); err != nil {
		return f, form.Errors(err), nil
	}
	return f, nil, nil
}
