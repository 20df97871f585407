// Package mount displays final element trees.
//
// A mount point takes a composed tree and a target name and replaces
// whatever the target displayed before. Mounting never modifies the tree,
// and mounting the same tree twice leaves the target unchanged.
//
// Callback values in the tree are registered under hydration ids during
// mounting. Interactive mount points (Memory) invoke them through Dispatch
// when an event arrives; the composer never calls them.
package mount

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/proptree/proptree/pkg/render"
	"github.com/proptree/proptree/pkg/vdom"
)

var (
	// ErrUnknownTarget is returned for targets that were never mounted.
	ErrUnknownTarget = errors.New("mount: unknown target")

	// ErrUnknownHandler is returned when no callback is registered for a
	// hydration id and event.
	ErrUnknownHandler = errors.New("mount: unknown handler")
)

// Mount displays trees on named targets.
type Mount interface {
	// Mount replaces the content of target with tree. A nil tree clears
	// the target's content.
	Mount(ctx context.Context, tree *vdom.VNode, target string) error
}

// Dispatcher is implemented by mount points that handle events.
type Dispatcher interface {
	// Dispatch invokes the callback registered for event on the element
	// with hydration id hid in target's current content.
	Dispatch(ctx context.Context, target, hid, event string) error
}

// Options configure how a mount point renders trees.
type Options struct {
	// Renderer renders trees. Defaults to a compact renderer with no
	// asset resolution.
	Renderer *render.Renderer

	// Title is the document title; the target name is used when empty.
	Title string

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults(component string) Options {
	if o.Renderer == nil {
		o.Renderer = render.NewRenderer(render.RendererConfig{})
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	o.Logger = o.Logger.With("component", component)
	return o
}

// Page is the rendered content of a target.
type Page struct {
	Target    string
	Body      string // HTML of the tree, without document wrapper
	ETag      string // xxhash of Body
	Handlers  render.Handlers
	MountedAt time.Time
}

// renderPage renders tree into a Page.
func renderPage(r *render.Renderer, tree *vdom.VNode, target string) (Page, error) {
	body, handlers, err := r.RenderToString(tree)
	if err != nil {
		return Page{}, fmt.Errorf("mount %s: %w", target, err)
	}
	return Page{
		Target:    target,
		Body:      body,
		ETag:      ETag(body),
		Handlers:  handlers,
		MountedAt: time.Now().UTC(),
	}, nil
}

// ETag returns the entity tag for rendered content.
func ETag(body string) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64String(body))
}

// Document wraps a rendered page body in a complete HTML document.
func Document(r *render.Renderer, p Page, data render.PageData) ([]byte, error) {
	if data.Title == "" {
		data.Title = p.Target
	}
	data.Body = vdom.Raw(p.Body)
	var buf bytes.Buffer
	if _, err := r.RenderPage(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Tee mounts every tree on all of ms in order, stopping at the first error.
func Tee(ms ...Mount) Mount {
	return tee(ms)
}

type tee []Mount

func (t tee) Mount(ctx context.Context, tree *vdom.VNode, target string) error {
	for _, m := range t {
		if err := m.Mount(ctx, tree, target); err != nil {
			return err
		}
	}
	return nil
}
