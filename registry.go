package stagepage

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eringen/stagepage/content"
	"github.com/eringen/stagepage/ui"
)

// ErrViewNotFound is returned for view ids that were never mounted, were
// unmounted, or expired.
var ErrViewNotFound = errors.New("view not found")

// ViewRegistry holds the mounted views of all open pages. Views idle for
// longer than ttl are unmounted by a background sweeper. At most max views
// are held; mounting past that unmounts the least recently seen view.
type ViewRegistry struct {
	mu      sync.RWMutex
	views   map[string]*ui.View
	content *content.Content
	anchors []string
	ttl     time.Duration
	max     int

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewViewRegistry starts a registry for pages rendering c. A max of zero or
// less leaves the registry unbounded.
func NewViewRegistry(c *content.Content, ttl time.Duration, max int) *ViewRegistry {
	anchors := make([]string, len(ui.Sections))
	for i, s := range ui.Sections {
		anchors[i] = string(s)
	}
	r := &ViewRegistry{
		views:   make(map[string]*ui.View),
		content: c,
		anchors: anchors,
		ttl:     ttl,
		max:     max,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go r.sweep()
	return r
}

// Mount creates and mounts a fresh view.
func (r *ViewRegistry) Mount() *ui.View {
	v := r.newView(uuid.NewString())
	v.Mount()

	var evicted *ui.View
	r.mu.Lock()
	if r.max > 0 && len(r.views) >= r.max {
		evicted = r.oldestLocked()
		if evicted != nil {
			delete(r.views, evicted.ID())
		}
	}
	r.views[v.ID()] = v
	r.mu.Unlock()

	if evicted != nil {
		evicted.Unmount()
	}
	return v
}

// Preview returns the initial state of a page without registering a view.
// The page renders normally but accepts no events.
func (r *ViewRegistry) Preview() ui.Snapshot {
	v := r.newView("")
	v.Mount()
	defer v.Unmount()
	return v.Snapshot()
}

func (r *ViewRegistry) newView(id string) *ui.View {
	return ui.NewView(id, r.content.Images(), r.content.FallbackPolicy(), r.anchors...)
}

// oldestLocked returns the least recently seen view. r.mu must be held.
func (r *ViewRegistry) oldestLocked() *ui.View {
	var oldest *ui.View
	var seen time.Time
	for _, v := range r.views {
		if t := v.LastSeen(); oldest == nil || t.Before(seen) {
			oldest, seen = v, t
		}
	}
	return oldest
}

// Get returns a mounted view.
func (r *ViewRegistry) Get(id string) (*ui.View, error) {
	r.mu.RLock()
	v, ok := r.views[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrViewNotFound
	}
	return v, nil
}

// Unmount detaches and forgets a view. Unknown ids are ignored.
func (r *ViewRegistry) Unmount(id string) bool {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()
	if ok {
		v.Unmount()
	}
	return ok
}

// Len returns the number of mounted views.
func (r *ViewRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// Expire unmounts every view idle since before cutoff and returns how many.
func (r *ViewRegistry) Expire(cutoff time.Time) int {
	r.mu.Lock()
	var stale []*ui.View
	for id, v := range r.views {
		if v.LastSeen().Before(cutoff) {
			stale = append(stale, v)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()
	for _, v := range stale {
		v.Unmount()
	}
	return len(stale)
}

func (r *ViewRegistry) sweep() {
	defer close(r.done)
	interval := r.ttl / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			r.Expire(now.Add(-r.ttl))
		}
	}
}

// Close stops the sweeper and unmounts all views.
func (r *ViewRegistry) Close() {
	r.stopOnce.Do(func() {
		close(r.stop)
		<-r.done
		r.Expire(time.Now().Add(time.Hour))
	})
}
