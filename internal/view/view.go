// Package view renders the HTML pages of the site.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"comunidade-inteligente/internal/form"
	"comunidade-inteligente/internal/model"
	"comunidade-inteligente/internal/session"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templatesFS embed.FS

// Page is the value every template receives.
type Page struct {
	Title   string
	Session *session.Session
	Flashes []session.Flash
	Data    any
}

type HomeData struct {
	Posts []model.Post
}

type UsersData struct {
	Users []model.User
}

// LoginData carries both forms of /login; only the submitted one has errors.
type LoginData struct {
	Login        form.Login
	Signup       form.Signup
	LoginErrors  form.FieldErrors
	SignupErrors form.FieldErrors
	Next         string
}

type ProfileData struct {
	User *model.User
}

type EditProfileData struct {
	User    *model.User
	Form    form.Profile
	Errors  form.FieldErrors
	Courses []CourseOption
}

type PostFormData struct {
	Form   form.Post
	Errors form.FieldErrors
}

// PostData shows a post; Editable is set only for the author.
type PostData struct {
	Post     *model.Post
	Editable bool
	Form     form.Post
	Errors   form.FieldErrors
}

type ErrorData struct {
	Status  int
	Message string
}

// CourseOption is one checkbox of the courses field.
type CourseOption struct {
	ID      string
	Label   string
	Checked bool
}

// CourseOptions lists every course, checking the selected ids.
func CourseOptions(selected []string) []CourseOption {
	checked := make(map[string]bool, len(selected))
	for _, id := range selected {
		checked[id] = true
	}
	opts := make([]CourseOption, 0, len(model.Courses()))
	for _, c := range model.Courses() {
		opts = append(opts, CourseOption{ID: string(c), Label: c.Label(), Checked: checked[string(c)]})
	}
	return opts
}

// Renderer implements echo.Renderer over the embedded templates. Each page is
// parsed together with the layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page. photoURL maps a stored photo file name to
// its public URL.
func NewRenderer(photoURL func(string) string) (*Renderer, error) {
	funcs := template.FuncMap{
		"photo": photoURL,
		"date": func(t time.Time) string {
			return t.Format("02/01/2006")
		},
		"field": func(errs form.FieldErrors, name string) string {
			return errs[name]
		},
		"paragraphs": func(s string) []string {
			return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
		},
	}

	names, err := fs.Glob(templatesFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, file := range names {
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render 實作 echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Has reports whether a page is registered.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}
