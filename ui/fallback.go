package ui

import (
	"strconv"
	"strings"
)

// Slot names one rendered image on the page.
type Slot string

const (
	SlotHero Slot = "hero"
	SlotBio  Slot = "bio"

	galleryPrefix = "gallery-"
)

// GallerySlot is the slot of the gallery image at position i.
func GallerySlot(i int) Slot {
	return Slot(galleryPrefix + strconv.Itoa(i))
}

// GalleryIndex returns the gallery position of s.
func (s Slot) GalleryIndex() (int, bool) {
	rest, ok := strings.CutPrefix(string(s), galleryPrefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// ParseSlot validates a slot name coming from the client.
func ParseSlot(v string) (Slot, bool) {
	s := Slot(strings.TrimSpace(v))
	switch s {
	case SlotHero, SlotBio:
		return s, true
	}
	if _, ok := s.GalleryIndex(); ok {
		return s, true
	}
	return "", false
}

// FallbackPolicy chooses the substitute URL for a slot. Gallery images cycle
// through the Gallery set by position.
type FallbackPolicy struct {
	Hero    string
	Bio     string
	Gallery []string
}

// For returns the fallback for slot, or "" when there is none.
func (p FallbackPolicy) For(slot Slot) string {
	switch slot {
	case SlotHero:
		return p.Hero
	case SlotBio:
		return p.Bio
	}
	i, ok := slot.GalleryIndex()
	if !ok || len(p.Gallery) == 0 {
		return ""
	}
	return p.Gallery[i%len(p.Gallery)]
}

// ImageRef is the resolution state of one slot.
type ImageRef struct {
	Slot     Slot
	Primary  string
	Fallback string
	// URL is what the page should currently display.
	URL string
	// Tried is set after the first reported load failure. No further
	// substitution happens once it is set.
	Tried bool
}

// CanFallBack reports whether a load failure would still change the URL.
func (r ImageRef) CanFallBack() bool {
	return !r.Tried && r.Fallback != ""
}

// Substituted reports whether the slot is showing its fallback.
func (r ImageRef) Substituted() bool {
	return r.Tried && r.Fallback != "" && r.URL == r.Fallback
}

// FallbackResolver tracks the displayed URL of every image slot on a page.
type FallbackResolver struct {
	policy FallbackPolicy
	refs   map[Slot]*ImageRef
}

// NewFallbackResolver creates a resolver applying policy.
func NewFallbackResolver(policy FallbackPolicy) *FallbackResolver {
	return &FallbackResolver{policy: policy, refs: make(map[Slot]*ImageRef)}
}

// Register sets the primary URL of slot and resets its resolution.
func (r *FallbackResolver) Register(slot Slot, primary string) {
	r.refs[slot] = &ImageRef{
		Slot:     slot,
		Primary:  primary,
		Fallback: r.policy.For(slot),
		URL:      primary,
	}
}

// Resolve returns the URL currently shown for slot.
func (r *FallbackResolver) Resolve(slot Slot) string {
	if ref, ok := r.refs[slot]; ok {
		return ref.URL
	}
	return ""
}

// Image returns a copy of the slot's state.
func (r *FallbackResolver) Image(slot Slot) (ImageRef, bool) {
	ref, ok := r.refs[slot]
	if !ok {
		return ImageRef{}, false
	}
	return *ref, true
}

// Fail records a load failure on slot. The first failure swaps in the
// fallback; every later one is ignored so a broken fallback stays broken
// instead of looping. It returns the URL now shown and whether it changed.
func (r *FallbackResolver) Fail(slot Slot) (string, bool) {
	ref, ok := r.refs[slot]
	if !ok {
		return "", false
	}
	if ref.Tried {
		return ref.URL, false
	}
	ref.Tried = true
	if ref.Fallback == "" {
		return ref.URL, false
	}
	ref.URL = ref.Fallback
	return ref.URL, true
}
