package views

import (
	"encoding/json"
	"html/template"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/stagepage/content"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// absoluteURL resolves a site-relative path such as /assets/hero.jpeg against
// the canonical URL. Absolute URLs pass through.
func absoluteURL(base, ref string) string {
	r, err := url.Parse(ref)
	if err != nil || r.IsAbs() {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// MusicGroupJsonLD produces a Schema.org MusicGroup JSON-LD block for the
// artist.
func MusicGroupJsonLD(siteURL string, c *content.Content) template.JS {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "MusicGroup",
		"name":     c.Artist,
		"url":      buildURL(siteURL),
	}
	if len(c.Genres) > 0 {
		data["genre"] = c.Genres
	}
	if c.HeroImage != "" {
		data["image"] = absoluteURL(siteURL, c.HeroImage)
	}
	var sameAs []string
	for _, s := range []string{c.Socials.Instagram, c.Socials.Spotify, c.Socials.YouTube} {
		if s != "" {
			sameAs = append(sameAs, s)
		}
	}
	if len(sameAs) > 0 {
		data["sameAs"] = sameAs
	}
	if c.Email != "" {
		data["email"] = c.Email
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}

// NewPageMeta builds the head metadata for the artist page.
func NewPageMeta(siteURL string, c *content.Content) PageMeta {
	title := c.Artist
	if c.Role != "" {
		title += " | " + c.Role
	}
	desc := c.Sound
	if c.Tagline != "" && c.Role != "" {
		desc = c.Artist + ", " + c.Role + ". " + c.Tagline + "."
	}
	meta := PageMeta{
		Title:       title,
		Description: desc,
		URL:         buildURL(siteURL),
		Language:    c.Language,
	}
	if c.HeroImage != "" {
		meta.Image = absoluteURL(siteURL, c.HeroImage)
	}
	if meta.Language == "" {
		meta.Language = "en"
	}
	return meta
}
