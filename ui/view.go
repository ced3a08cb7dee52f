package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrBadValue     = errors.New("bad event value")
	ErrNotMounted   = errors.New("view not mounted")
)

// Event names sent by the page script.
const (
	EventScroll           = "scroll"
	EventMenuToggle       = "menu.toggle"
	EventNavigate         = "nav"
	EventScrollTop        = "nav.top"
	EventLightboxOpen     = "lightbox.open"
	EventLightboxClose    = "lightbox.close"
	EventLightboxBackdrop = "lightbox.backdrop"
	EventLightboxImage    = "lightbox.image"
	EventImageError       = "image.error"
)

// Part is a region of the page that re-renders on its own.
type Part string

const (
	PartNav      Part = "nav"
	PartLightbox Part = "lightbox"
)

// Images lists the primary URLs a page renders.
type Images struct {
	Hero    string
	Bio     string
	Gallery []string
}

// Update describes what an event changed.
type Update struct {
	Parts  []Part
	Images []ImageRef
	Scroll []ScrollCommand
}

// Empty reports whether the event changed nothing visible.
func (u Update) Empty() bool {
	return len(u.Parts) == 0 && len(u.Images) == 0 && len(u.Scroll) == 0
}

// Snapshot is a consistent read of a view for rendering.
type Snapshot struct {
	ID      string
	State   UIState
	Hero    ImageRef
	Bio     ImageRef
	Gallery []ImageRef
}

// View is the state container of one mounted page. It owns UIState and hands
// the components callbacks into it; events are applied one at a time.
type View struct {
	mu       sync.Mutex
	id       string
	images   Images
	policy   FallbackPolicy
	state    UIState
	mounted  bool
	lastSeen time.Time

	viewport *PageViewport
	scroll   *ScrollTracker
	nav      *NavigationController
	lightbox *Lightbox
	resolver *FallbackResolver
}

// NewView creates an unmounted view. anchors are the section ids the page
// renders.
func NewView(id string, images Images, policy FallbackPolicy, anchors ...string) *View {
	v := &View{
		id:       id,
		images:   images,
		policy:   policy,
		viewport: NewPageViewport(anchors...),
		lightbox: &Lightbox{},
	}
	v.scroll = NewScrollTracker(func(scrolled bool) { v.state.IsScrolled = scrolled })
	v.nav = NewNavigationController(v.viewport,
		func() bool { return v.state.MobileMenuOpen },
		func(open bool) { v.state.MobileMenuOpen = open },
	)
	return v
}

// ID returns the view id.
func (v *View) ID() string { return v.id }

// Mount resets the state and attaches the scroll subscription.
func (v *View) Mount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = UIState{}
	v.lightbox.Close()
	v.resolver = NewFallbackResolver(v.policy)
	v.resolver.Register(SlotHero, v.images.Hero)
	v.resolver.Register(SlotBio, v.images.Bio)
	for i, src := range v.images.Gallery {
		v.resolver.Register(GallerySlot(i), src)
	}
	v.viewport.Drain()
	v.scroll.Attach(v.viewport)
	v.mounted = true
	v.lastSeen = time.Now()
}

// Unmount detaches the scroll subscription. The view accepts no events after.
func (v *View) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scroll.Detach()
	v.mounted = false
}

// Mounted reports whether the view is live.
func (v *View) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted
}

// LastSeen returns the time of mount or of the last event.
func (v *View) LastSeen() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// Viewport exposes the page viewport, mainly for tests.
func (v *View) Viewport() *PageViewport { return v.viewport }

// HandleEvent applies one client event.
func (v *View) HandleEvent(name, value string) (Update, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return Update{}, ErrNotMounted
	}
	v.lastSeen = time.Now()

	before := v.state
	var upd Update

	switch name {
	case EventScroll:
		offset, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Update{}, fmt.Errorf("%w: scroll offset %q", ErrBadValue, value)
		}
		v.viewport.Publish(offset)
	case EventMenuToggle:
		v.nav.ToggleMenu()
	case EventNavigate:
		v.nav.Navigate(value)
	case EventScrollTop:
		v.nav.ScrollToTop()
	case EventLightboxOpen:
		i, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Update{}, fmt.Errorf("%w: gallery index %q", ErrBadValue, value)
		}
		v.openThumbnail(i)
	case EventLightboxClose, EventLightboxBackdrop:
		v.lightbox.Close()
		v.state.ActiveImage = ""
	case EventLightboxImage:
		v.lightbox.ClickImage()
	case EventImageError:
		slot, ok := ParseSlot(value)
		if !ok {
			return Update{}, fmt.Errorf("%w: image slot %q", ErrBadValue, value)
		}
		if url, changed := v.resolver.Fail(slot); changed {
			ref, _ := v.resolver.Image(slot)
			upd.Images = append(upd.Images, ref)
			if i, ok := slot.GalleryIndex(); ok && v.lightbox.Follow(i, url) {
				v.state.ActiveImage = url
			}
		}
	default:
		return Update{}, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}

	if before.IsScrolled != v.state.IsScrolled || before.MobileMenuOpen != v.state.MobileMenuOpen {
		upd.Parts = append(upd.Parts, PartNav)
	}
	if before.ActiveImage != v.state.ActiveImage {
		upd.Parts = append(upd.Parts, PartLightbox)
	}
	upd.Scroll = v.viewport.Drain()
	return upd, nil
}

func (v *View) openThumbnail(i int) {
	if i < 0 || i >= len(v.images.Gallery) {
		return
	}
	url := v.resolver.Resolve(GallerySlot(i))
	v.lightbox.Open(i, url)
	if active, ok := v.lightbox.Active(); ok {
		v.state.ActiveImage = active
	}
}

// Snapshot returns the current state for rendering.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := Snapshot{ID: v.id, State: v.state}
	if v.resolver == nil {
		return s
	}
	s.Hero, _ = v.resolver.Image(SlotHero)
	s.Bio, _ = v.resolver.Image(SlotBio)
	s.Gallery = make([]ImageRef, len(v.images.Gallery))
	for i := range v.images.Gallery {
		s.Gallery[i], _ = v.resolver.Image(GallerySlot(i))
	}
	return s
}
