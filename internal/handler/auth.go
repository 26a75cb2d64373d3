package handler

import (
	"errors"
	"net/http"

	"comunidade-inteligente/internal/database"
	"comunidade-inteligente/internal/form"
	"comunidade-inteligente/internal/middleware"
	"comunidade-inteligente/internal/model"
	"comunidade-inteligente/internal/service"
	"comunidade-inteligente/internal/session"
	"comunidade-inteligente/internal/store"
	"comunidade-inteligente/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const loginFailed = "Falha no Login. E-mail ou Senha Incorretos"

var (
	hashPassword      = service.HashPassword
	authenticateUser  = service.AuthenticateUser
	createUser        = store.CreateUser
	getUserByEmail    = store.GetUserByEmail
	getUserByUsername = store.GetUserByUsername
)

// LoginPageHandler 顯示登入與註冊表單
// @Summary     Login and signup forms
// @Tags        auth
// @Produce     html
// @Param       next query string false "本地路徑，登入後導向"
// @Success     200
// @Router      /login [get]
func LoginPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		data := view.LoginData{Next: middleware.SafeNext(c.QueryParam("next"))}
		return render(c, http.StatusOK, "login", "Login", data)
	}
}

// LoginSubmitHandler 依 form 欄位分派登入或註冊
// @Summary     Login or create an account
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     html
// @Param       form             formData string true  "login 或 signup"
// @Param       email            formData string true  "E-mail"
// @Param       password         formData string true  "密碼"
// @Param       remember         formData bool   false "記住登入 (login)"
// @Param       username         formData string false "使用者名稱 (signup)"
// @Param       confirm_password formData string false "確認密碼 (signup)"
// @Param       cep              formData string false "CEP (signup)"
// @Param       address          formData string false "地址 (signup)"
// @Param       next             query    string false "本地路徑，登入後導向"
// @Success     303 "redirect"
// @Failure     400 "unknown form"
// @Failure     401 "invalid credentials"
// @Failure     422 "validation errors"
// @Router      /login [post]
func LoginSubmitHandler(db database.DB, sm *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		switch c.FormValue(form.KindField) {
		case form.KindLogin:
			return login(c, db, sm)
		case form.KindSignup:
			return signup(c, db)
		default:
			return echo.NewHTTPError(http.StatusBadRequest, "Formulário desconhecido.")
		}
	}
}

func login(c echo.Context, db database.DB, sm *session.Manager) error {
	var f form.Login
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Dados de formulário inválidos.")
	}
	f.Normalize()
	next := middleware.SafeNext(c.QueryParam("next"))
	data := view.LoginData{Login: form.Login{Email: f.Email, Remember: f.Remember}, Next: next}

	if err := c.Validate(&f); err != nil {
		data.LoginErrors = form.Errors(err)
		return render(c, http.StatusUnprocessableEntity, "login", "Login", data)
	}

	ctx := c.Request().Context()
	user, err := getUserByEmail(ctx, db, f.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return loginFailure(c, data)
	case err != nil:
		return err
	}
	if err := authenticateUser(ctx, *user, f.Password); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return loginFailure(c, data)
		}
		return err
	}

	if _, err := sm.Login(c, user, f.Remember); err != nil {
		return err
	}
	log.Info().Int("user_id", user.ID).Msg("user logged in")
	session.AddFlash(c, session.FlashSuccess, "Login feito com sucesso no e-mail: "+f.Email)
	if next == "" {
		next = "/"
	}
	return redirectAfterPost(c, next)
}

func loginFailure(c echo.Context, data view.LoginData) error {
	session.AddFlash(c, session.FlashDanger, loginFailed)
	return render(c, http.StatusUnauthorized, "login", "Login", data)
}

func signup(c echo.Context, db database.DB) error {
	var f form.Signup
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Dados de formulário inválidos.")
	}
	f.Normalize()
	data := view.LoginData{Signup: form.Signup{Username: f.Username, Email: f.Email, CEP: f.CEP, Address: f.Address}}

	errs := form.FieldErrors{}
	if err := c.Validate(&f); err != nil {
		errs = form.Errors(err)
	}
	ctx := c.Request().Context()
	if !errs.Any() {
		if err := checkSignupUnique(c, db, f, errs); err != nil {
			return err
		}
	}
	if errs.Any() {
		data.SignupErrors = errs
		return render(c, http.StatusUnprocessableEntity, "login", "Login", data)
	}

	hash, err := hashPassword(f.Password)
	if err != nil {
		return err
	}
	user, err := createUser(ctx, db, &model.User{
		Username:     f.Username,
		Email:        f.Email,
		PasswordHash: hash,
		CEP:          f.CEP,
		Address:      f.Address,
	})
	if errors.Is(err, store.ErrDuplicateKey) {
		errs.Add("email", "E-mail ou nome de usuário já cadastrado.")
		data.SignupErrors = errs
		return render(c, http.StatusUnprocessableEntity, "login", "Login", data)
	}
	if err != nil {
		return err
	}

	log.Info().Int("user_id", user.ID).Msg("account created")
	session.AddFlash(c, session.FlashSuccess, "Conta criada para o e-mail: "+f.Email)
	return redirectAfterPost(c, "/")
}

func checkSignupUnique(c echo.Context, db database.DB, f form.Signup, errs form.FieldErrors) error {
	ctx := c.Request().Context()
	if _, err := getUserByEmail(ctx, db, f.Email); err == nil {
		errs.Add("email", "E-mail já cadastrado. Cadastre-se com outro e-mail ou faça login para continuar.")
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if _, err := getUserByUsername(ctx, db, f.Username); err == nil {
		errs.Add("username", "Nome de usuário já em uso.")
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

// LogoutHandler 撤銷 session 後導回首頁
// @Summary     Logout
// @Tags        auth
// @Success     302 "redirect to /"
// @Router      /sair [get]
func LogoutHandler(sm *session.Manager) middleware.HandlerFunc {
	return func(c echo.Context, s *session.Session) error {
		if err := sm.Logout(c, s); err != nil {
			return err
		}
		session.AddFlash(c, session.FlashSuccess, "Logout Feito com Sucesso")
		return c.Redirect(http.StatusFound, "/")
	}
}
