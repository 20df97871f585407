package vdom

import (
	"strings"

	"github.com/proptree/proptree/pkg/props"
)

// attr creates a text Attr with the given key and value.
func attr(key, value string) Attr {
	return Attr{Key: key, Value: props.String(value)}
}

// boolAttr creates a boolean Attr.
func boolAttr(key string, value bool) Attr {
	return Attr{Key: key, Value: props.Bool(value)}
}

// Attribute sets an arbitrary attribute to a property value.
func Attribute(key string, v props.Value) Attr {
	return Attr{Key: key, Value: v}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// ClassIf adds a class conditionally.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return Class(class)
	}
	return Attr{}
}

// StyleAttr sets the style attribute (named to avoid conflict with Style element).
func StyleAttr(style string) Attr { return attr("style", style) }

// StyleOf sets the style attribute from a bundle of CSS properties in
// camelCase, the way inline style objects are written:
//
//	StyleOf(props.Of("backgroundColor", "#ea4c89", "borderRadius", 5))
func StyleOf(b props.Bundle) Attr { return Attr{Key: "style", Value: props.Nested(b)} }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr { return boolAttr("aria-hidden", hidden) }

// Visibility attributes

// Hidden sets the hidden attribute.
func Hidden() Attr { return boolAttr("hidden", true) }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Target sets the target attribute.
func Target(target string) Attr { return attr("target", target) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Form attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Disabled sets the disabled attribute.
func Disabled() Attr { return boolAttr("disabled", true) }

// Media attributes

// Src sets the src attribute to a URL.
func Src(url string) Attr { return attr("src", url) }

// SrcValue sets the src attribute from a property value, typically an
// external resource handle resolved when the tree is mounted.
func SrcValue(v props.Value) Attr { return Attr{Key: "src", Value: v} }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Width sets the width attribute.
func Width(w int) Attr { return Attr{Key: "width", Value: props.Int(w)} }

// Height sets the height attribute.
func Height(h int) Attr { return Attr{Key: "height", Value: props.Int(h)} }

// Meta attributes

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// Content sets the content attribute.
func Content(content string) Attr { return attr("content", content) }
