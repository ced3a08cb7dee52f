// Package views renders the stagepage site. Markup lives in embedded
// html/template files and is exposed as templ components.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/eringen/stagepage/markdown"
	"github.com/eringen/stagepage/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("site").Funcs(template.FuncMap{
	"inline":     markdown.Inline,
	"paragraphs": paragraphs,
	"icon":       icon,
	"imageOf": func(ref ui.ImageRef, alt, class string) imageData {
		return imageData{Ref: ref, Alt: alt, Class: class}
	},
}).ParseFS(templateFS, "templates/*.html"))

func paragraphs(paras []string) (template.HTML, error) {
	return templ.ToGoHTML(context.Background(), markdown.Paragraphs(paras))
}

// Site renders the full artist page.
func Site(p Page) templ.Component {
	return templ.FromGoHTML(templates.Lookup("site"), p)
}

// Part renders one re-renderable region of the page.
func Part(part ui.Part, p Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := templates.Lookup(string(part))
		if t == nil {
			return fmt.Errorf("views: no template for part %q", part)
		}
		return t.Execute(w, p)
	})
}

// RenderParts renders the given parts to HTML strings keyed by part name.
func RenderParts(ctx context.Context, p Page, parts ...ui.Part) (map[ui.Part]string, error) {
	out := make(map[ui.Part]string, len(parts))
	for _, part := range parts {
		html, err := templ.ToGoHTML(ctx, Part(part, p))
		if err != nil {
			return nil, err
		}
		out[part] = string(html)
	}
	return out, nil
}

// NotFound renders the 404 page.
func NotFound(meta PageMeta) templ.Component {
	return templ.FromGoHTML(templates.Lookup("notfound"), ErrorPage{
		Meta:    withTitle(meta, "Not found"),
		Code:    http.StatusNotFound,
		Heading: "Lost the beat",
		Message: "The page you are looking for does not exist.",
	})
}

// ServerError renders the 500 page.
func ServerError(meta PageMeta) templ.Component {
	return templ.FromGoHTML(templates.Lookup("servererror"), ErrorPage{
		Meta:    withTitle(meta, "Server error"),
		Code:    http.StatusInternalServerError,
		Heading: "Something went wrong",
		Message: "Please try again in a moment.",
	})
}

func withTitle(meta PageMeta, title string) PageMeta {
	if meta.Title != "" {
		title += " | " + meta.Title
	}
	meta.Title = title
	if meta.Language == "" {
		meta.Language = "en"
	}
	return meta
}
