package views

import (
	"html/template"

	"github.com/eringen/stagepage/content"
	"github.com/eringen/stagepage/ui"
)

// PageMeta carries OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	Image       string // og:image
	Language    string
}

// Page is everything the site template renders. Nav and lightbox fragments
// are rendered from the same value after each event.
type Page struct {
	Meta      PageMeta
	Content   *content.Content
	Theme     content.Theme
	View      ui.Snapshot
	CSRFToken string
	JSONLD    template.JS
	Year      int
}

// ErrorPage is the data of the 404 and 500 pages.
type ErrorPage struct {
	Meta    PageMeta
	Code    int
	Heading string
	Message string
}

// Sections returns the navigable sections in page order.
func (p Page) Sections() []ui.Section { return ui.Sections }

// NavClass returns the navbar classes for the current scroll state.
func (p Page) NavClass() string { return p.Theme.NavClass(p.View.State.IsScrolled) }

// ScrollThreshold is exposed to the page script, which only reports offsets
// that cross it.
func (p Page) ScrollThreshold() int { return ui.ScrollThreshold }

// imageData is the input of the "img" template.
type imageData struct {
	Ref   ui.ImageRef
	Alt   string
	Class string
}
