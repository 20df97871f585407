package vdom

import (
	"fmt"

	"github.com/proptree/proptree/pkg/props"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Pending component application
	KindRaw                    // Raw HTML (dangerous)
	KindValue                  // Property value resolved at composition
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	case KindValue:
		return "Value"
	default:
		return "Unknown"
	}
}

// VNode is a node of the element tree.
type VNode struct {
	Kind     VKind        // Node type
	Tag      string       // Element tag name (e.g., "div")
	Attrs    Attrs        // Attributes and event handlers
	Children []*VNode     // Child nodes, order is significant
	Key      string       // Identity among keyed siblings
	Text     string       // For KindText and KindRaw
	Comp     Component    // For KindComponent
	Props    props.Bundle // For KindComponent: the bundle to apply
	Value    props.Value  // For KindValue
	Keyed    bool         // For KindFragment: children form a keyed list
}

// Attrs holds element attributes. Callback-valued entries are event handlers.
type Attrs map[string]props.Value

// IsInteractive returns true if this element carries event handlers.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for _, val := range v.Attrs {
		if val.Kind() == props.KindFunc {
			return true
		}
	}
	return false
}

// Attr returns the attribute value, or Null when unset.
func (v *VNode) Attr(key string) props.Value {
	if v == nil {
		return props.Null()
	}
	return v.Attrs[key]
}

// TextContent concatenates the text of all descendant text nodes.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case KindText:
		return v.Text
	case KindValue:
		return v.Value.Text()
	}
	var s string
	for _, c := range v.Children {
		s += c.TextContent()
	}
	return s
}

// String returns a short description of the node for logs and errors.
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindElement:
		if v.Key != "" {
			return fmt.Sprintf("<%s key=%q>", v.Tag, v.Key)
		}
		return "<" + v.Tag + ">"
	case KindText:
		return fmt.Sprintf("%q", v.Text)
	case KindComponent:
		return "component " + ComponentName(v.Comp)
	default:
		return v.Kind.String()
	}
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value props.Value
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string      // "onclick", "oninput", etc.
	Handler props.Value // Func value; Null handlers are dropped
}

// Component maps a property bundle to a node tree. A nil node means
// "render nothing".
type Component interface {
	Render(p props.Bundle) (*VNode, error)
}

// Named is implemented by components that report a display name.
type Named interface {
	Name() string
}

// Requirer is implemented by components that declare the property paths
// they dereference unconditionally.
type Requirer interface {
	Requires() []string
}

// ComponentName returns the component's display name.
func ComponentName(c Component) string {
	if c == nil {
		return "<nil>"
	}
	if n, ok := c.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", c)
}

// RenderFunc adapts an ordinary function to Component.
type RenderFunc func(p props.Bundle) (*VNode, error)

// Render implements Component.
func (f RenderFunc) Render(p props.Bundle) (*VNode, error) {
	return f(p)
}

// Use creates a pending application of c to p. The composer expands it.
func Use(c Component, p props.Bundle) *VNode {
	return &VNode{
		Kind:  KindComponent,
		Comp:  c,
		Props: p,
	}
}

// UseKey is Use with an explicit key for keyed lists.
func UseKey(key any, c Component, p props.Bundle) *VNode {
	n := Use(c, p)
	n.Key = fmt.Sprintf("%v", key)
	return n
}

// Walk visits n and its descendants depth-first until fn returns false.
func Walk(n *VNode, fn func(*VNode) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}
