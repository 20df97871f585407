package vdom

import (
	"fmt"

	"github.com/proptree/proptree/pkg/props"
)

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Val creates a node for a property value. Literal values render as text;
// Computed values are evaluated by the composer against the bundle of the
// component that produced the node.
func Val(v props.Value) *VNode {
	return &VNode{
		Kind:  KindValue,
		Value: v,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{
		Kind:     KindFragment,
		Children: make([]*VNode, 0),
	}

	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		case props.Value:
			node.Children = append(node.Children, Val(v))
		}
	}

	return node
}

// List groups children that form a keyed list. Children without an explicit
// Key are keyed by their position during composition; duplicate explicit
// keys fail composition. Nil children render nothing but keep their
// position, so the keys of their siblings do not depend on them.
func List(children ...*VNode) *VNode {
	return &VNode{
		Kind:     KindFragment,
		Keyed:    true,
		Children: children,
	}
}

// Each maps a slice to a keyed list, preserving order. An item whose
// callback returns nil still occupies its index.
func Each[T any](items []T, fn func(item T, index int) *VNode) *VNode {
	children := make([]*VNode, len(items))
	for i, item := range items {
		children[i] = fn(item, i)
	}
	return List(children...)
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
// Both nodes are built by the caller; use Branch when building a node has
// side effects.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Branch is the lazy IfElse: only the taken branch is evaluated.
func Branch(condition bool, ifTrue, ifFalse func() *VNode) *VNode {
	if condition {
		if ifTrue == nil {
			return nil
		}
		return ifTrue()
	}
	if ifFalse == nil {
		return nil
	}
	return ifFalse()
}

// Case represents a case in a Switch statement.
type Case[T comparable] struct {
	Value     T
	Render    func() *VNode
	IsDefault bool
}

// Case_ creates a case for Switch.
func Case_[T comparable](value T, render func() *VNode) Case[T] {
	return Case[T]{Value: value, Render: render}
}

// Default creates a default case for Switch.
func Default[T comparable](render func() *VNode) Case[T] {
	return Case[T]{Render: render, IsDefault: true}
}

// Switch renders the first case matching value, or the default case.
// Only the selected case is evaluated.
func Switch[T comparable](value T, cases ...Case[T]) *VNode {
	for _, c := range cases {
		if !c.IsDefault && c.Value == value {
			return c.render()
		}
	}
	for _, c := range cases {
		if c.IsDefault {
			return c.render()
		}
	}
	return nil
}

func (c Case[T]) render() *VNode {
	if c.Render == nil {
		return nil
	}
	return c.Render()
}

// Range maps a slice to VNodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		node := fn(item, i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Repeat creates n nodes using the given function.
func Repeat(n int, fn func(i int) *VNode) []*VNode {
	if n <= 0 {
		return nil
	}
	result := make([]*VNode, 0, n)
	for i := 0; i < n; i++ {
		node := fn(i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Key creates a key attribute for list identity.
// The key is converted to a string using fmt.Sprintf.
func Key(key any) Attr {
	return attr("key", fmt.Sprintf("%v", key))
}
