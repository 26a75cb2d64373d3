package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"comunidade-inteligente/internal/database"
	"comunidade-inteligente/internal/form"
	"comunidade-inteligente/internal/middleware"
	"comunidade-inteligente/internal/photo"
	"comunidade-inteligente/internal/session"
	"comunidade-inteligente/internal/store"
	"comunidade-inteligente/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

var updateProfile = store.UpdateProfile

// PhotoSaver persists an uploaded profile photo and returns its filename.
type PhotoSaver interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (string, error)
}

// ProfileHandler 目前使用者的個人頁
// @Summary     Current member profile
// @Tags        profile
// @Produce     html
// @Success     200
// @Router      /perfil [get]
func ProfileHandler() middleware.HandlerFunc {
	return func(c echo.Context, s *session.Session) error {
		return render(c, http.StatusOK, "profile", "Perfil", view.ProfileData{User: s.User})
	}
}

// EditProfilePageHandler 以目前資料預填編輯表單
// @Summary     Profile edit form
// @Tags        profile
// @Produce     html
// @Success     200
// @Router      /perfil/editar [get]
func EditProfilePageHandler() middleware.HandlerFunc {
	return func(c echo.Context, s *session.Session) error {
		f := form.ProfileFrom(s.User)
		return renderEditProfile(c, http.StatusOK, s, f, nil)
	}
}

// EditProfileHandler 更新使用者名稱、e-mail、照片與課程
// @Summary     Update profile
// @Tags        profile
// @Accept      multipart/form-data
// @Produce     html
// @Param       username formData string true  "使用者名稱"
// @Param       email    formData string true  "E-mail"
// @Param       photo    formData file   false "大頭貼 (jpg/png)"
// @Param       courses  formData []string false "課程 id" collectionFormat(multi)
// @Success     303 "redirect to /perfil"
// @Failure     422 "validation errors"
// @Router      /perfil/editar [post]
func EditProfileHandler(db database.DB, photos PhotoSaver) middleware.HandlerFunc {
	return func(c echo.Context, s *session.Session) error {
		var f form.Profile
		if err := c.Bind(&f); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Dados de formulário inválidos.")
		}
		f.Normalize()

		errs := form.FieldErrors{}
		if err := c.Validate(&f); err != nil {
			errs = form.Errors(err)
		}
		ctx := c.Request().Context()
		if err := checkProfileUnique(ctx, db, s, f, errs); err != nil {
			return err
		}

		fh, err := c.FormFile("photo")
		switch {
		case err == nil:
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			fh = nil
		default:
			return echo.NewHTTPError(http.StatusBadRequest, "Upload inválido.")
		}
		if errs.Any() {
			return renderEditProfile(c, http.StatusUnprocessableEntity, s, f, errs)
		}

		updated := *s.User
		updated.Username = f.Username
		updated.Email = f.Email
		updated.Courses = f.CourseSet()
		if fh != nil {
			name, err := photos.Save(ctx, fh)
			if errors.Is(err, photo.ErrUnsupportedFormat) {
				errs.Add("photo", "Formato de imagem não suportado. Envie um arquivo jpg ou png.")
				return renderEditProfile(c, http.StatusUnprocessableEntity, s, f, errs)
			}
			if err != nil {
				return err
			}
			updated.Photo = name
		}

		err = updateProfile(ctx, db, &updated)
		if errors.Is(err, store.ErrDuplicateKey) {
			errs.Add("email", "E-mail ou nome de usuário já cadastrado.")
			return renderEditProfile(c, http.StatusUnprocessableEntity, s, f, errs)
		}
		if err != nil {
			return err
		}
		*s.User = updated

		log.Info().Int("user_id", updated.ID).Msg("profile updated")
		session.AddFlash(c, session.FlashSuccess, "Perfil atualizado com Sucesso")
		return redirectAfterPost(c, "/perfil")
	}
}

// checkProfileUnique 只在值改變時檢查，排除自己
func checkProfileUnique(ctx context.Context, db database.DB, s *session.Session, f form.Profile, errs form.FieldErrors) error {
	if f.Email != "" && f.Email != s.User.Email {
		u, err := getUserByEmail(ctx, db, f.Email)
		switch {
		case err == nil && u.ID != s.User.ID:
			errs.Add("email", "Já existe um usuário com esse e-mail. Cadastre outro e-mail.")
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return err
		}
	}
	if f.Username != "" && f.Username != s.User.Username {
		u, err := getUserByUsername(ctx, db, f.Username)
		switch {
		case err == nil && u.ID != s.User.ID:
			errs.Add("username", "Nome de usuário já em uso.")
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return err
		}
	}
	return nil
}

func renderEditProfile(c echo.Context, status int, s *session.Session, f form.Profile, errs form.FieldErrors) error {
	return render(c, status, "edit_profile", "Editar Perfil", view.EditProfileData{
		User:    s.User,
		Form:    f,
		Errors:  errs,
		Courses: view.CourseOptions(f.Courses),
	})
}
