package mount

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/proptree/proptree/pkg/vdom"
)

// Memory keeps the rendered content of each target in memory and handles
// events for it. It backs the HTTP server and the terminal UI.
type Memory struct {
	opts Options

	mu      sync.RWMutex
	pages   map[string]Page
	nextSub int
	subs    map[int]func(Page)
}

// NewMemory creates an in-memory mount point.
func NewMemory(opts Options) *Memory {
	return &Memory{
		opts:  opts.withDefaults("mount.memory"),
		pages: make(map[string]Page),
		subs:  make(map[int]func(Page)),
	}
}

// Mount implements Mount. Subscribers are notified when the content of the
// target changed.
func (m *Memory) Mount(ctx context.Context, tree *vdom.VNode, target string) error {
	page, err := renderPage(m.opts.Renderer, tree, target)
	if err != nil {
		return err
	}

	m.mu.Lock()
	prev, existed := m.pages[target]
	m.pages[target] = page
	subs := make([]func(Page), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	m.opts.Logger.DebugContext(ctx, "mounted",
		"target", target,
		"etag", page.ETag,
		"handlers", page.Handlers.Len(),
	)

	if existed && prev.ETag == page.ETag {
		return nil
	}
	for _, fn := range subs {
		fn(page)
	}
	return nil
}

// Page returns the current content of target.
func (m *Memory) Page(target string) (Page, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pages[target]
	return p, ok
}

// Targets returns the mounted targets in sorted order.
func (m *Memory) Targets() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.pages))
	for t := range m.pages {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Subscribe registers fn to be called after a target's content changes.
// The returned function removes the subscription.
func (m *Memory) Subscribe(fn func(Page)) (cancel func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Dispatch implements Dispatcher. The callback runs outside any lock, so
// it may mount new content.
func (m *Memory) Dispatch(ctx context.Context, target, hid, event string) error {
	page, ok := m.Page(target)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}
	action, ok := page.Handlers.Lookup(hid, event)
	if !ok || action == nil {
		return fmt.Errorf("%w: %s %s on %q", ErrUnknownHandler, hid, event, target)
	}

	m.opts.Logger.DebugContext(ctx, "dispatch", "target", target, "hid", hid, "event", event)
	if err := action(ctx); err != nil {
		return fmt.Errorf("mount: %s %s on %q: %w", hid, event, target, err)
	}
	return nil
}
