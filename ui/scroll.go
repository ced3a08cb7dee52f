package ui

// ScrollThreshold is the vertical offset past which the navbar turns compact.
const ScrollThreshold = 50

// Scrolled reports whether offsetY puts the page in the compact navbar state.
func Scrolled(offsetY int) bool {
	return offsetY > ScrollThreshold
}

// ScrollTracker keeps the compact navbar flag in step with a viewport's
// scroll offset for as long as it is attached.
type ScrollTracker struct {
	set    func(scrolled bool)
	cancel func()
}

// NewScrollTracker returns a tracker reporting flag changes to set.
func NewScrollTracker(set func(scrolled bool)) *ScrollTracker {
	return &ScrollTracker{set: set}
}

// Attach subscribes to v. A tracker holds at most one subscription, so
// attaching again first drops the previous one.
func (t *ScrollTracker) Attach(v Viewport) {
	t.Detach()
	t.cancel = v.OnScroll(func(offsetY int) {
		t.set(Scrolled(offsetY))
	})
}

// Detach removes the subscription. Safe to call when not attached.
func (t *ScrollTracker) Detach() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Attached reports whether the tracker currently holds a subscription.
func (t *ScrollTracker) Attached() bool {
	return t.cancel != nil
}
