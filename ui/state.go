// Package ui holds the interactive state of a stagepage view: the scroll flag
// driving the navbar, the mobile menu, the gallery lightbox and the per-image
// fallback resolution. Nothing here knows about HTTP; the server feeds events
// into a View and renders its Snapshot.
package ui

import "strings"

// UIState is the transient state of one mounted page.
type UIState struct {
	IsScrolled     bool
	MobileMenuOpen bool
	// ActiveImage is the URL shown in the lightbox, "" when it is closed.
	ActiveImage string
}

// LightboxOpen reports whether an image is enlarged.
func (s UIState) LightboxOpen() bool {
	return s.ActiveImage != ""
}

// Section is a named in-page anchor reachable from the navigation menu.
type Section string

const (
	SectionBio     Section = "bio"
	SectionMusic   Section = "music"
	SectionTour    Section = "tour"
	SectionGallery Section = "gallery"
	SectionContact Section = "contact"
)

// Sections is the menu order.
var Sections = []Section{SectionBio, SectionMusic, SectionTour, SectionGallery, SectionContact}

// Label is the menu text for s.
func (s Section) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ParseSection maps a menu label or anchor id to a Section. Matching is
// case-insensitive so "Gallery" and "gallery" are the same section.
func ParseSection(v string) (Section, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, s := range Sections {
		if string(s) == v {
			return s, true
		}
	}
	return "", false
}
