// Package render wires html/template into echo's Renderer interface. All
// page templates are embedded at build time.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gomarket/market-system/internal/api/flash"
	"github.com/gomarket/market-system/internal/core/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer implements echo.Renderer on top of the embedded templates.
type Renderer struct {
	templates *template.Template
}

func New() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"price": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Page is the data envelope every template receives.
type Page struct {
	User    *domain.User
	Flashes []flash.Message
	Year    int
	Items   []domain.Item
	Item    *domain.Item
}

// NewPage builds a Page with the signed-in user (nil for guests) and any
// pending flash messages popped from the cookie.
func NewPage(c echo.Context, user *domain.User) Page {
	return Page{
		User:    user,
		Flashes: flash.Pop(c),
		Year:    time.Now().Year(),
	}
}
