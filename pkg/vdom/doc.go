// Package vdom provides the element tree used by proptree components.
//
// A tree is built from VNodes: elements, text, fragments, raw HTML, pending
// component applications and property values. Components produce trees that
// may still contain component applications (Use) and property values (Val);
// the compose package expands those into a final tree of elements, text and
// raw nodes that mount points can display.
//
// # Core Types
//
// VNode is the fundamental building block. Attrs maps attribute names to
// props.Value; callback-valued attributes are event handlers and are never
// invoked while a tree is built or composed.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// # Lists and Conditionals
//
// Each and List build keyed lists; When, Branch and Switch evaluate only the
// branch that is taken.
package vdom
