// Package form declares the HTML forms of the site and their validation rules.
package form

import (
	"errors"
	"reflect"
	"strings"

	"comunidade-inteligente/internal/model"

	"github.com/go-playground/validator/v10"
)

// Login 與 Signup 共用 /login，以 Kind 欄位區分
const (
	KindLogin  = "login"
	KindSignup = "signup"
)

// KindField is the discriminator field posted by the forms on /login.
const KindField = "form"

type Login struct {
	Email    string `form:"email" validate:"required,email,max=255"`
	Password string `form:"password" validate:"required"`
	Remember bool   `form:"remember"`
}

type Signup struct {
	Username        string `form:"username" validate:"required,max=64"`
	Email           string `form:"email" validate:"required,email,max=255"`
	Password        string `form:"password" validate:"required,min=6,max=20"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	CEP             string `form:"cep" validate:"required,max=16"`
	Address         string `form:"address" validate:"required,max=255"`
}

// Profile 的照片欄位 "photo" 由 handler 透過 FormFile 讀取
type Profile struct {
	Username string   `form:"username" validate:"required,max=64"`
	Email    string   `form:"email" validate:"required,email,max=255"`
	Courses  []string `form:"courses" validate:"dive,course"`
}

type Post struct {
	Title string `form:"title" validate:"required,max=140"`
	Body  string `form:"body" validate:"required"`
}

// Normalize trims the inputs and lower-cases the e-mail.
func (f *Login) Normalize() {
	f.Email = normalizeEmail(f.Email)
}

func (f *Signup) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = normalizeEmail(f.Email)
	f.CEP = strings.TrimSpace(f.CEP)
	f.Address = strings.TrimSpace(f.Address)
}

func (f *Profile) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = normalizeEmail(f.Email)
}

func (f *Post) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Body = strings.TrimSpace(f.Body)
}

// CourseSet converts the checked course ids into the domain set.
func (f *Profile) CourseSet() model.CourseSet {
	courses := make([]model.Course, 0, len(f.Courses))
	for _, id := range f.Courses {
		courses = append(courses, model.Course(id))
	}
	return model.NewCourseSet(courses...)
}

// ProfileFrom pre-fills the profile form from the stored user.
func ProfileFrom(u *model.User) Profile {
	f := Profile{Username: u.Username, Email: u.Email}
	for _, c := range u.Courses {
		f.Courses = append(f.Courses, string(c))
	}
	return f
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

func (e FieldErrors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e FieldErrors) Any() bool { return len(e) > 0 }

// Validator wraps go-playground/validator for Echo. Field names in errors are
// the form tags.
type Validator struct {
	validator *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("course", func(fl validator.FieldLevel) bool {
		return model.Course(fl.Field().String()).Valid()
	})
	return &Validator{validator: v}
}

// Validate calls the underlying validator
func (v *Validator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// Errors turns a validation error into per-field messages. Errors that are
// not validation errors come back under the empty field name.
func Errors(err error) FieldErrors {
	errs := FieldErrors{}
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("", err.Error())
		return errs
	}
	for _, fe := range verrs {
		field := fe.Field()
		// dive 錯誤的欄位名稱是 courses[0]
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		errs.Add(field, message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório."
	case "email":
		return "E-mail inválido."
	case "min":
		return "Mínimo de " + fe.Param() + " caracteres."
	case "max":
		return "Máximo de " + fe.Param() + " caracteres."
	case "eqfield":
		return "As senhas não conferem."
	case "course":
		return "Curso desconhecido."
	default:
		return "Valor inválido."
	}
}
