package ui

import "sync"

// ScrollBehavior mirrors the browser's scroll behavior option.
type ScrollBehavior string

const (
	ScrollSmooth ScrollBehavior = "smooth"
	ScrollAuto   ScrollBehavior = "auto"
)

// Viewport is the browser window as seen from a view.
type Viewport interface {
	// OnScroll registers fn for vertical offset changes. The returned func
	// removes the registration.
	OnScroll(fn func(offsetY int)) (cancel func())
	// HasAnchor reports whether the page contains an element with id.
	HasAnchor(id string) bool
	ScrollIntoView(id string, behavior ScrollBehavior)
	ScrollTo(offsetY int, behavior ScrollBehavior)
}

// ScrollCommand is a scroll request for the client to carry out.
type ScrollCommand struct {
	Anchor   string         `json:"anchor,omitempty"`
	Offset   int            `json:"offset"`
	Behavior ScrollBehavior `json:"behavior"`
}

// PageViewport is the server-side stand-in for a rendered page's window.
// Offsets arrive through Publish; scroll requests queue up until Drain.
type PageViewport struct {
	mu       sync.Mutex
	anchors  map[string]struct{}
	subs     map[int]func(int)
	nextSub  int
	offset   int
	commands []ScrollCommand
}

// NewPageViewport creates a viewport for a page rendering the given anchors.
func NewPageViewport(anchors ...string) *PageViewport {
	p := &PageViewport{
		anchors: make(map[string]struct{}, len(anchors)),
		subs:    make(map[int]func(int)),
	}
	for _, a := range anchors {
		p.anchors[a] = struct{}{}
	}
	return p
}

func (p *PageViewport) OnScroll(fn func(offsetY int)) (cancel func()) {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

func (p *PageViewport) HasAnchor(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.anchors[id]
	return ok
}

func (p *PageViewport) ScrollIntoView(id string, behavior ScrollBehavior) {
	p.mu.Lock()
	p.commands = append(p.commands, ScrollCommand{Anchor: id, Behavior: behavior})
	p.mu.Unlock()
}

func (p *PageViewport) ScrollTo(offsetY int, behavior ScrollBehavior) {
	p.mu.Lock()
	p.commands = append(p.commands, ScrollCommand{Offset: offsetY, Behavior: behavior})
	p.mu.Unlock()
}

// Publish records a new scroll offset and notifies subscribers.
func (p *PageViewport) Publish(offsetY int) {
	p.mu.Lock()
	p.offset = offsetY
	fns := make([]func(int), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(offsetY)
	}
}

// Offset returns the last published offset.
func (p *PageViewport) Offset() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offset
}

// Subscribers returns the number of live scroll registrations.
func (p *PageViewport) Subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

// Drain returns and clears the queued scroll commands.
func (p *PageViewport) Drain() []ScrollCommand {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.commands
	p.commands = nil
	return out
}
