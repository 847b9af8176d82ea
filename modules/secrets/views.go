package secrets

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/secretkeeper/handler"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

type HomePageParams struct {
	Message       string
	Authenticated bool
}

type LoginPageParams struct {
	Message       string
	Username      string
	GoogleEnabled bool
}

type RegisterPageParams struct {
	Message       string
	Username      string
	GoogleEnabled bool
}

type SecretsPageParams struct {
	Username     string
	Secrets      []string
	EmptyMessage string
}

type SubmitPageParams struct {
	Message string
}

// Views renders the pages of the module. Any field may be replaced with a
// generated templ component.
type Views struct {
	Home     func(HomePageParams) templ.Component
	Login    func(LoginPageParams) templ.Component
	Register func(RegisterPageParams) templ.Component
	Secrets  func(SecretsPageParams) templ.Component
	Submit   func(SubmitPageParams) templ.Component
	Error    func(handler.ErrorPageParams) templ.Component
}

// DefaultViews renders the embedded HTML templates.
func DefaultViews() *Views {
	return &Views{
		Home:     page[HomePageParams]("home.html"),
		Login:    page[LoginPageParams]("login.html"),
		Register: page[RegisterPageParams]("register.html"),
		Secrets:  page[SecretsPageParams]("secrets.html"),
		Submit:   page[SubmitPageParams]("submit.html"),
		Error:    page[handler.ErrorPageParams]("error.html"),
	}
}

// page parses name together with the layout and adapts it to templ.
func page[P any](name string) func(P) templ.Component {
	t := template.Must(template.ParseFS(templateFiles, "templates/layout.html", "templates/"+name))
	return func(p P) templ.Component {
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			return t.ExecuteTemplate(w, "layout", p)
		})
	}
}

func staticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
