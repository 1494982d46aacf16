// Package web renders the server-side HTML pages.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/users-admin/internal/table"
)

//go:embed templates/*.html
var files embed.FS

const (
	PageLogin    = "login"
	PageTable    = "table"
	PageNotFound = "notfound"
)

type LoginPage struct {
	Username string
	Errors   map[string]string
	Alert    string
}

type NotFoundPage struct {
	Path string
}

type editRow struct {
	View *table.View
	Form string
}

var funcs = template.FuncMap{
	"value": table.Value,
	"row": func(v *table.View, form string) editRow {
		return editRow{View: v, Form: form}
	},
}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, p := range []string{PageLogin, PageTable, PageNotFound} {
		t, err := template.New(p).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+p+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		r.pages[p] = t
	}
	return r, nil
}

// Render executes page into a buffer first so a template error never leaves a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := r.pages[page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("render", "page", page, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
