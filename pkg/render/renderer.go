package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/proptree/proptree/pkg/assets"
	"github.com/proptree/proptree/pkg/props"
	"github.com/proptree/proptree/pkg/vdom"
)

// ErrNotComposed is returned for trees that still contain component
// applications or unresolved values.
var ErrNotComposed = errors.New("render: tree is not composed")

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// Assets resolves resource values in attributes. When nil, resource
	// ids are written unchanged.
	Assets assets.Resolver
}

// Renderer renders final element trees to HTML. It holds only
// configuration and may be shared between goroutines.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// Handlers maps hydration ids to the callbacks of the element carrying the
// id, keyed by event name: handlers["h1"]["click"].
type Handlers map[string]map[string]props.Value

// Lookup returns the action registered for hid and event.
func (h Handlers) Lookup(hid, event string) (props.Action, bool) {
	v, ok := h[hid][event]
	if !ok {
		return nil, false
	}
	return v.Action()
}

// Len returns the number of registered callbacks.
func (h Handlers) Len() int {
	n := 0
	for _, events := range h {
		n += len(events)
	}
	return n
}

// pass is the state of one rendering pass.
type pass struct {
	*Renderer
	hidCounter uint32
	handlers   Handlers
}

func (r *Renderer) newPass() *pass {
	return &pass{Renderer: r, handlers: make(Handlers)}
}

// RenderToString renders a tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, Handlers, error) {
	var buf bytes.Buffer
	h, err := r.RenderToWriter(&buf, node)
	if err != nil {
		return "", nil, err
	}
	return buf.String(), h, nil
}

// RenderToWriter streams a tree to w and returns the callbacks found in it.
// Interactive elements receive data-hid attributes h1, h2, ... in document
// order. The tree is not modified.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) (Handlers, error) {
	p := r.newPass()
	if err := p.renderNode(w, node, 0); err != nil {
		return nil, err
	}
	return p.handlers, nil
}

// renderNode dispatches rendering based on node kind.
func (p *pass) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return p.renderElement(w, node, depth)
	case vdom.KindText:
		return p.renderText(w, node)
	case vdom.KindFragment:
		return p.renderFragment(w, node, depth)
	case vdom.KindRaw:
		return p.renderRaw(w, node)
	case vdom.KindComponent, vdom.KindValue:
		return fmt.Errorf("%w: found %s", ErrNotComposed, node)
	default:
		return fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (p *pass) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag
	if tag == "" {
		return errors.New("render: element without tag")
	}

	// Indentation (if pretty printing)
	if p.config.Pretty && depth > 0 {
		p.writeIndent(w, depth)
	}

	// Opening tag
	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}

	events, err := p.renderAttributes(w, node)
	if err != nil {
		return err
	}

	if len(events) > 0 {
		hid := p.nextHID()
		if _, err := fmt.Fprintf(w, ` data-hid="%s"`, hid); err != nil {
			return err
		}
		p.handlers[hid] = events
	}

	// Self-closing check for void elements
	if vdom.IsVoidElement(tag) {
		if _, err := w.Write([]byte{'>'}); err != nil {
			return err
		}
		if p.config.Pretty {
			w.Write([]byte{'\n'})
		}
		return nil
	}

	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	// Newline after opening tag if has children and pretty printing
	hasBlockChildren := len(node.Children) > 0 && !isInlineElement(tag) && !hasOnlyText(node)
	if p.config.Pretty && hasBlockChildren {
		w.Write([]byte{'\n'})
	}

	for _, child := range node.Children {
		if err := p.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	// Closing tag indentation
	if p.config.Pretty && hasBlockChildren {
		p.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if p.config.Pretty {
		w.Write([]byte{'\n'})
	}

	return nil
}

// renderText renders a text node with HTML escaping.
func (p *pass) renderText(w io.Writer, node *vdom.VNode) error {
	_, err := io.WriteString(w, escapeHTML(node.Text))
	return err
}

// renderFragment renders a fragment's children without a wrapper element.
func (p *pass) renderFragment(w io.Writer, node *vdom.VNode, depth int) error {
	for _, child := range node.Children {
		if err := p.renderNode(w, child, depth); err != nil {
			return err
		}
	}
	return nil
}

// renderRaw renders raw HTML without escaping.
func (p *pass) renderRaw(w io.Writer, node *vdom.VNode) error {
	_, err := io.WriteString(w, node.Text)
	return err
}

// renderAttributes renders all attributes for an element and returns its
// callbacks keyed by event name.
func (p *pass) renderAttributes(w io.Writer, node *vdom.VNode) (map[string]props.Value, error) {
	if len(node.Attrs) == 0 {
		return nil, nil
	}

	// Sort keys for deterministic output
	keys := make([]string, 0, len(node.Attrs))
	for key := range node.Attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var events map[string]props.Value
	for _, key := range keys {
		value := node.Attrs[key]

		switch value.Kind() {
		case props.KindNull:
			continue

		case props.KindFunc:
			if !strings.HasPrefix(key, "on") || len(key) < 3 {
				return nil, fmt.Errorf("render: callback in attribute %q of <%s>", key, node.Tag)
			}
			if events == nil {
				events = make(map[string]props.Value)
			}
			events[strings.ToLower(key[2:])] = value
			continue

		case props.KindComputed:
			return nil, fmt.Errorf("%w: computed attribute %q on <%s>", ErrNotComposed, key, node.Tag)

		case props.KindBool:
			b, _ := value.Flag()
			if isBooleanAttr(key) {
				if b {
					if _, err := fmt.Fprintf(w, " %s", key); err != nil {
						return nil, err
					}
				}
				continue
			}
		}

		str, err := p.attrString(node, key, value)
		if err != nil {
			return nil, err
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(str)); err != nil {
			return nil, err
		}
	}

	// Event marker attributes for client-side binding
	names := make([]string, 0, len(events))
	for name := range events {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, name); err != nil {
			return nil, err
		}
	}

	return events, nil
}

// attrString converts an attribute value to its textual form.
func (p *pass) attrString(node *vdom.VNode, key string, v props.Value) (string, error) {
	switch v.Kind() {
	case props.KindBundle:
		b, _ := v.Bundle()
		if key == "style" {
			return StyleCSS(b), nil
		}
		return "", fmt.Errorf("render: bundle in attribute %q of <%s>", key, node.Tag)
	case props.KindList:
		items := v.Items()
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if s := item.Text(); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " "), nil
	case props.KindResource:
		url, _ := assets.URL(p.config.Assets, v)
		return url, nil
	default:
		return v.Text(), nil
	}
}

// nextHID generates the next sequential hydration ID.
func (p *pass) nextHID() string {
	p.hidCounter++
	return fmt.Sprintf("h%d", p.hidCounter)
}

// writeIndent writes indentation for pretty printing.
func (p *pass) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, p.config.Indent)
	}
}

func hasOnlyText(node *vdom.VNode) bool {
	for _, c := range node.Children {
		if c.Kind != vdom.KindText {
			return false
		}
	}
	return true
}
