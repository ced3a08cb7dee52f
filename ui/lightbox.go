package ui

// Lightbox is the gallery overlay: either closed or showing one image.
type Lightbox struct {
	open  bool
	index int
	url   string
}

// Open enlarges the thumbnail at index, shown at url. Opening while another
// image is up replaces it. An empty url leaves the lightbox as it was.
func (l *Lightbox) Open(index int, url string) {
	if url == "" {
		return
	}
	l.open = true
	l.index = index
	l.url = url
}

// Close returns to the closed state. Backdrop and close control both end here.
func (l *Lightbox) Close() {
	l.open = false
	l.index = 0
	l.url = ""
}

// ClickImage handles a click on the enlarged image itself, which must not
// reach the backdrop. It never changes state.
func (l *Lightbox) ClickImage() {}

// Active returns the displayed URL and whether the lightbox is open.
func (l *Lightbox) Active() (string, bool) {
	return l.url, l.open
}

// Index returns the gallery position of the open image, or -1 when closed.
func (l *Lightbox) Index() int {
	if !l.open {
		return -1
	}
	return l.index
}

// Follow updates the open URL when the thumbnail it came from switched to
// its fallback.
func (l *Lightbox) Follow(index int, url string) bool {
	if !l.open || l.index != index || url == "" || l.url == url {
		return false
	}
	l.url = url
	return true
}
