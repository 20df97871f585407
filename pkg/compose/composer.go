package compose

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"

	"github.com/proptree/proptree/pkg/props"
	"github.com/proptree/proptree/pkg/vdom"
)

// DefaultMaxDepth bounds the component expansion stack.
const DefaultMaxDepth = 256

// Option configures a Composer.
type Option func(*Composer)

// WithMaxDepth sets the maximum nesting of component applications.
// Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(c *Composer) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for debug-level expansion traces.
func WithLogger(l *slog.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// Composer expands component applications into final element trees.
//
// A Composer holds only its configuration; each Compose call keeps its
// expansion state on its own stack, so a Composer may be used from many
// goroutines at once.
type Composer struct {
	maxDepth int
	logger   *slog.Logger
}

// New creates a Composer.
func New(opts ...Option) *Composer {
	c := &Composer{
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultComposer = New()

// Compose expands c applied to p with the default Composer.
func Compose(c vdom.Component, p props.Bundle) (*vdom.VNode, error) {
	return defaultComposer.Compose(c, p)
}

// Compose applies comp to p and expands the result into a final tree that
// contains only element, text, raw and fragment nodes.
//
// A nil tree with a nil error means the component rendered nothing. On error
// the tree is always nil. Callback values are copied into the tree but
// never invoked.
func (c *Composer) Compose(comp vdom.Component, p props.Bundle) (*vdom.VNode, error) {
	x := &expansion{c: c}
	node, err := x.apply(comp, p)
	if err != nil {
		return nil, err
	}
	return node, nil
}

type frame struct {
	comp   vdom.Component
	name   string
	bundle props.Bundle
	fp     uint64
}

// expansion is the state of a single Compose call.
type expansion struct {
	c     *Composer
	stack []frame
}

func (x *expansion) chain(from int, last string) []string {
	names := make([]string, 0, len(x.stack)-from+1)
	for _, f := range x.stack[from:] {
		names = append(names, f.name)
	}
	if last != "" {
		names = append(names, last)
	}
	return names
}

func (x *expansion) current() string {
	if len(x.stack) == 0 {
		return ""
	}
	return x.stack[len(x.stack)-1].name
}

// apply renders one component application and expands its output.
func (x *expansion) apply(comp vdom.Component, p props.Bundle) (*vdom.VNode, error) {
	if comp == nil {
		return nil, fmt.Errorf("compose: nil component in %s", x.current())
	}
	name := vdom.ComponentName(comp)

	if len(x.stack) >= x.c.maxDepth {
		return nil, &Error{
			Kind:      InfiniteExpansion,
			Component: name,
			Chain:     x.chain(0, name),
			Err:       fmt.Errorf("maximum depth %d exceeded", x.c.maxDepth),
		}
	}

	fp := p.Fingerprint()
	for i, f := range x.stack {
		if f.fp == fp && sameComponent(f.comp, comp) && f.bundle.Equal(p) {
			return nil, &Error{
				Kind:      InfiniteExpansion,
				Component: name,
				Chain:     x.chain(i, name),
			}
		}
	}

	if r, ok := comp.(vdom.Requirer); ok {
		if err := p.Require(r.Requires()...); err != nil {
			return nil, x.missing(name, err)
		}
	}

	x.stack = append(x.stack, frame{comp: comp, name: name, bundle: p, fp: fp})
	defer func() { x.stack = x.stack[:len(x.stack)-1] }()

	x.c.logger.Debug("expand component",
		"component", name,
		"depth", len(x.stack),
		"props", p.Len(),
	)

	node, err := comp.Render(p)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			return nil, err
		}
		var me *props.MissingError
		if errors.As(err, &me) {
			return nil, x.missing(name, err)
		}
		return nil, fmt.Errorf("compose: %s: %w", name, err)
	}
	if node == nil {
		return nil, nil
	}
	return x.expand(node, p, "")
}

func (x *expansion) missing(name string, err error) error {
	var me *props.MissingError
	errors.As(err, &me)
	e := &Error{
		Kind:      MissingProperty,
		Component: name,
		Chain:     x.chain(0, ""),
		Err:       err,
	}
	if me != nil {
		e.Path = me.Path
	}
	if len(e.Chain) == 0 || e.Chain[len(e.Chain)-1] != name {
		e.Chain = append(e.Chain, name)
	}
	return e
}

// expand builds the final form of n. p is the bundle of the component that
// produced n; parent is the tag of the nearest enclosing element.
func (x *expansion) expand(n *vdom.VNode, p props.Bundle, parent string) (*vdom.VNode, error) {
	switch n.Kind {
	case vdom.KindText, vdom.KindRaw:
		return n, nil

	case vdom.KindValue:
		v, err := x.eval(n.Value, p)
		if err != nil {
			return nil, err
		}
		return x.value(v, p)

	case vdom.KindComponent:
		out, err := x.apply(n.Comp, n.Props)
		if err != nil || out == nil {
			return nil, err
		}
		if n.Key != "" {
			out = withKey(out, n.Key)
		}
		return out, nil

	case vdom.KindElement:
		if n.Tag == "" {
			return nil, fmt.Errorf("compose: element without tag in %s", x.current())
		}
		attrs, err := x.attrs(n.Attrs, p)
		if err != nil {
			return nil, err
		}
		children, err := x.children(n, p, n.Tag)
		if err != nil {
			return nil, err
		}
		return &vdom.VNode{
			Kind:     vdom.KindElement,
			Tag:      n.Tag,
			Attrs:    attrs,
			Children: children,
			Key:      n.Key,
		}, nil

	case vdom.KindFragment:
		children, err := x.children(n, p, parent)
		if err != nil {
			return nil, err
		}
		return &vdom.VNode{
			Kind:     vdom.KindFragment,
			Children: children,
			Key:      n.Key,
			Keyed:    n.Keyed,
		}, nil

	default:
		return nil, fmt.Errorf("compose: unknown node kind %v in %s", n.Kind, x.current())
	}
}

// children expands the children of n. Unkeyed fragments are flattened into
// the result; nil results are dropped. When n is a keyed list explicit keys
// must be unique, and every other child is keyed by its source position.
func (x *expansion) children(n *vdom.VNode, p props.Bundle, parent string) ([]*vdom.VNode, error) {
	if n.Keyed {
		return x.keyed(n, p, parent)
	}
	out := make([]*vdom.VNode, 0, len(n.Children))
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		e, err := x.expand(child, p, parent)
		if err != nil {
			return nil, err
		}
		if e == nil {
			continue
		}
		if e.Kind == vdom.KindFragment && e.Key == "" {
			out = append(out, e.Children...)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// keyed expands the children of a keyed list. Positional keys live in their
// own namespace: a position that equals an explicit sibling key is prefixed
// with '#' until it is free, so only two equal explicit keys conflict.
func (x *expansion) keyed(n *vdom.VNode, p props.Bundle, parent string) ([]*vdom.VNode, error) {
	type entry struct {
		node *vdom.VNode
		pos  int
	}
	entries := make([]entry, 0, len(n.Children))
	explicit := make(map[string]struct{}, len(n.Children))

	for i, child := range n.Children {
		if child == nil {
			continue
		}
		e, err := x.expand(child, p, parent)
		if err != nil {
			return nil, err
		}
		if e == nil {
			continue
		}
		if e.Key != "" {
			if _, dup := explicit[e.Key]; dup {
				return nil, &Error{
					Kind:      DuplicateKey,
					Key:       e.Key,
					Parent:    parent,
					Component: x.current(),
					Chain:     x.chain(0, ""),
				}
			}
			explicit[e.Key] = struct{}{}
		}
		entries = append(entries, entry{node: e, pos: i})
	}

	out := make([]*vdom.VNode, len(entries))
	for i, en := range entries {
		if en.node.Key != "" {
			out[i] = en.node
			continue
		}
		key := strconv.Itoa(en.pos)
		for {
			if _, taken := explicit[key]; !taken {
				break
			}
			key = "#" + key
		}
		out[i] = withKey(en.node, key)
	}
	return out, nil
}

// value converts a resolved property value in child position into nodes.
// Null and booleans render nothing.
func (x *expansion) value(v props.Value, p props.Bundle) (*vdom.VNode, error) {
	switch v.Kind() {
	case props.KindNull, props.KindBool:
		return nil, nil
	case props.KindString, props.KindNumber, props.KindTime, props.KindResource:
		return vdom.Text(v.Text()), nil
	case props.KindList:
		items := v.Items()
		children := make([]*vdom.VNode, 0, len(items))
		for _, item := range items {
			v, err := x.eval(item, p)
			if err != nil {
				return nil, err
			}
			n, err := x.value(v, p)
			if err != nil {
				return nil, err
			}
			if n == nil {
				continue
			}
			if n.Kind == vdom.KindFragment {
				children = append(children, n.Children...)
				continue
			}
			children = append(children, n)
		}
		return &vdom.VNode{Kind: vdom.KindFragment, Children: children}, nil
	default:
		return nil, fmt.Errorf("%w: %s value in %s", ErrInvalidChild, v.Kind(), x.current())
	}
}

// attrs copies attrs, evaluating computed values against p.
func (x *expansion) attrs(attrs vdom.Attrs, p props.Bundle) (vdom.Attrs, error) {
	out := make(vdom.Attrs, len(attrs))
	for k, v := range attrs {
		r, err := x.eval(v, p)
		if err != nil {
			return nil, err
		}
		out[k] = r
	}
	return out, nil
}

// eval resolves a computed value. A value that never settles is reported
// as an infinite expansion of the current component.
func (x *expansion) eval(v props.Value, p props.Bundle) (props.Value, error) {
	r, err := v.Eval(p)
	if err != nil {
		return props.Null(), &Error{
			Kind:      InfiniteExpansion,
			Component: x.current(),
			Chain:     x.chain(0, ""),
			Err:       err,
		}
	}
	return r, nil
}

// withKey returns n carrying key, copying n when it already has another key
// or was taken unchanged from the component output.
func withKey(n *vdom.VNode, key string) *vdom.VNode {
	if n.Key == key {
		return n
	}
	cp := *n
	cp.Key = key
	return &cp
}

// sameComponent reports whether a and b are the same component. Function
// components compare by code pointer; other non-comparable components fall
// back to their names.
func sameComponent(a, b vdom.Component) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Kind() == reflect.Func {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if ta.Comparable() {
		return a == b
	}
	return vdom.ComponentName(a) == vdom.ComponentName(b)
}
