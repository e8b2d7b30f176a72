package web

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/sozercan/platform-compare/internal/client"
)

//go:embed templates/index.html
var templates embed.FS

type Page struct {
	backend client.Backend
	tmpl    *template.Template
	md      goldmark.Markdown
}

type view struct {
	Query        string
	Error        string
	Loading      bool
	Conservative template.HTML
	Liberal      template.HTML
}

// New returns the comparison form page. Submissions go to backend.
func New(backend client.Backend) (*Page, error) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, err
	}

	return &Page{
		backend: backend,
		tmpl:    tmpl,
		// raw HTML in model output is dropped, not passed through
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}, nil
}

func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	form := client.NewForm()

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		form.Query = r.PostFormValue("query")
		if err := form.Submit(r.Context(), p.backend); err != nil {
			slog.Warn("Form submission failed", "error", err)
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p.render(w, form)
}

func (p *Page) render(w http.ResponseWriter, form *client.Form) {
	v := view{
		Query:        form.Query,
		Error:        form.Error,
		Loading:      form.Loading,
		Conservative: p.markdown(form.Conservative),
		Liberal:      p.markdown(form.Liberal),
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, v); err != nil {
		slog.Error("Failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (p *Page) markdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(text), &buf); err != nil {
		slog.Error("Failed to render markdown", "error", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}
