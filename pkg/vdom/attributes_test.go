package vdom

import (
	"testing"

	"github.com/proptree/proptree/pkg/props"
)

func TestTextAttributes(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
		key  string
		want string
	}{
		{"ID", ID("main"), "id", "main"},
		{"Class", Class("a", "b"), "class", "a b"},
		{"ClassIf true", ClassIf(true, "on"), "class", "on"},
		{"StyleAttr", StyleAttr("color: red"), "style", "color: red"},
		{"Data", Data("id", "123"), "data-id", "123"},
		{"Role", Role("button"), "role", "button"},
		{"AriaLabel", AriaLabel("Close"), "aria-label", "Close"},
		{"TitleAttr", TitleAttr("tip"), "title", "tip"},
		{"Lang", Lang("en"), "lang", "en"},
		{"Href", Href("/about"), "href", "/about"},
		{"Target", Target("_blank"), "target", "_blank"},
		{"Rel", Rel("noopener"), "rel", "noopener"},
		{"Name", Name("q"), "name", "q"},
		{"Type", Type("text"), "type", "text"},
		{"Src", Src("/a.png"), "src", "/a.png"},
		{"Alt", Alt("logo"), "alt", "logo"},
		{"Width", Width(300), "width", "300"},
		{"Height", Height(150), "height", "150"},
		{"Charset", Charset("utf-8"), "charset", "utf-8"},
		{"Content", Content("width=device-width"), "content", "width=device-width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.attr.Key, tt.key)
			}
			if got := tt.attr.Value.Text(); got != tt.want {
				t.Errorf("Value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBooleanAttributes(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
		key  string
		want bool
	}{
		{"Hidden", Hidden(), "hidden", true},
		{"Disabled", Disabled(), "disabled", true},
		{"AriaHidden false", AriaHidden(false), "aria-hidden", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.attr.Key, tt.key)
			}
			got, ok := tt.attr.Value.Flag()
			if !ok || got != tt.want {
				t.Errorf("Flag() = %v, %v, want %v", got, ok, tt.want)
			}
		})
	}
}

func TestClassIfFalseIsEmpty(t *testing.T) {
	if !ClassIf(false, "x").IsEmpty() {
		t.Errorf("ClassIf(false) should be empty")
	}
}

func TestStyleOf(t *testing.T) {
	style := props.Of("backgroundColor", "#61dbfb", "padding", 10)
	a := StyleOf(style)
	if a.Key != "style" {
		t.Errorf("Key = %q, want style", a.Key)
	}
	b, ok := a.Value.Bundle()
	if !ok {
		t.Fatalf("style value kind = %v, want Bundle", a.Value.Kind())
	}
	if !b.Equal(style) {
		t.Errorf("style bundle = %v, want %v", b, style)
	}
}

func TestSrcValueKeepsResource(t *testing.T) {
	a := SrcValue(props.Resource("images/asabeneh.jpg"))
	id, ok := a.Value.ResourceID()
	if !ok || id != "images/asabeneh.jpg" {
		t.Errorf("ResourceID() = %q, %v", id, ok)
	}
}

func TestAttribute(t *testing.T) {
	a := Attribute("tabindex", props.Int(0))
	if a.Key != "tabindex" || a.Value.Text() != "0" {
		t.Errorf("Attribute = %+v", a)
	}
}
