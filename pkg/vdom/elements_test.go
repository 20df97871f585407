package vdom

import (
	"testing"

	"github.com/proptree/proptree/pkg/props"
)

func TestCreateElement(t *testing.T) {
	t.Run("basic element", func(t *testing.T) {
		node := Div()
		if node.Kind != KindElement {
			t.Errorf("Kind = %v, want KindElement", node.Kind)
		}
		if node.Tag != "div" {
			t.Errorf("Tag = %v, want div", node.Tag)
		}
	})

	t.Run("with multiple attributes", func(t *testing.T) {
		node := Div(Class("card"), ID("main"))
		if got := node.Attr("class").Text(); got != "card" {
			t.Errorf("class = %v, want card", got)
		}
		if got := node.Attr("id").Text(); got != "main" {
			t.Errorf("id = %v, want main", got)
		}
	})

	t.Run("with attribute slice", func(t *testing.T) {
		node := Div([]Attr{Class("a"), Role("button")})
		if len(node.Attrs) != 2 {
			t.Errorf("Attrs len = %v, want 2", len(node.Attrs))
		}
	})

	t.Run("children keep order", func(t *testing.T) {
		node := Div(H1(Text("Title")), P(Text("Content")), Small("x"))
		if len(node.Children) != 3 {
			t.Fatalf("Children len = %v, want 3", len(node.Children))
		}
		for i, tag := range []string{"h1", "p", "small"} {
			if node.Children[i].Tag != tag {
				t.Errorf("Children[%d].Tag = %v, want %v", i, node.Children[i].Tag, tag)
			}
		}
	})

	t.Run("with string shorthand", func(t *testing.T) {
		node := P("Hello")
		if len(node.Children) != 1 || node.Children[0].Kind != KindText {
			t.Fatalf("expected one text child, got %v", node.Children)
		}
		if node.Children[0].Text != "Hello" {
			t.Errorf("Text = %q", node.Children[0].Text)
		}
	})

	t.Run("with property value", func(t *testing.T) {
		node := P(props.Int(2024))
		if len(node.Children) != 1 || node.Children[0].Kind != KindValue {
			t.Fatalf("expected one value child, got %v", node.Children)
		}
	})

	t.Run("nil and empty args ignored", func(t *testing.T) {
		var child *VNode
		node := Div(nil, child, ClassIf(false, "hidden"), []*VNode{nil, Span()})
		if len(node.Children) != 1 {
			t.Errorf("Children len = %v, want 1", len(node.Children))
		}
		if len(node.Attrs) != 0 {
			t.Errorf("Attrs = %v, want none", node.Attrs)
		}
	})

	t.Run("key attribute sets identity", func(t *testing.T) {
		node := Li(Key(3), "React")
		if node.Key != "3" {
			t.Errorf("Key = %q, want 3", node.Key)
		}
		if _, ok := node.Attrs["key"]; ok {
			t.Errorf("key must not be stored as an attribute")
		}
	})

	t.Run("event handler stored as func attr", func(t *testing.T) {
		node := Button(OnClick(func() {}), "Click")
		if node.Attr("onclick").Kind() != props.KindFunc {
			t.Errorf("onclick kind = %v, want Func", node.Attr("onclick").Kind())
		}
	})
}

func TestElementTags(t *testing.T) {
	tests := []struct {
		fn  func(...any) *VNode
		tag string
	}{
		{Html, "html"}, {Head, "head"}, {Body, "body"}, {Title, "title"},
		{Meta, "meta"}, {Link, "link"}, {Header, "header"}, {Footer, "footer"},
		{Main, "main"}, {Nav, "nav"}, {Section, "section"}, {Article, "article"},
		{Aside, "aside"}, {H1, "h1"}, {H2, "h2"}, {H3, "h3"}, {H4, "h4"},
		{H5, "h5"}, {H6, "h6"}, {Div, "div"}, {P, "p"}, {Span, "span"},
		{Pre, "pre"}, {Blockquote, "blockquote"}, {Ul, "ul"}, {Ol, "ol"},
		{Li, "li"}, {Hr, "hr"}, {Figure, "figure"}, {Figcaption, "figcaption"},
		{A, "a"}, {Strong, "strong"}, {Em, "em"}, {B, "b"}, {I, "i"}, {U, "u"},
		{S, "s"}, {Small, "small"}, {Mark, "mark"}, {Code, "code"},
		{Time_, "time"}, {Br, "br"}, {Form, "form"}, {Input, "input"},
		{Button, "button"}, {Label, "label"}, {Img, "img"}, {Script, "script"},
		{Style, "style"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := tt.fn().Tag; got != tt.tag {
				t.Errorf("Tag = %v, want %v", got, tt.tag)
			}
		})
	}
}

func TestCustomElement(t *testing.T) {
	node := CustomElement("my-card", Class("x"))
	if node.Tag != "my-card" {
		t.Errorf("Tag = %v, want my-card", node.Tag)
	}
}

func TestIsVoidElement(t *testing.T) {
	for _, tag := range []string{"img", "br", "hr", "input", "meta", "link"} {
		if !IsVoidElement(tag) {
			t.Errorf("IsVoidElement(%q) = false", tag)
		}
	}
	for _, tag := range []string{"div", "p", "span"} {
		if IsVoidElement(tag) {
			t.Errorf("IsVoidElement(%q) = true", tag)
		}
	}
}
