package render

import (
	"strings"

	"github.com/proptree/proptree/pkg/props"
)

// unitlessProps are CSS properties whose numeric values take no unit.
var unitlessProps = map[string]bool{
	"animationIterationCount": true,
	"columnCount":             true,
	"flex":                    true,
	"flexGrow":                true,
	"flexShrink":              true,
	"fontWeight":              true,
	"lineHeight":              true,
	"opacity":                 true,
	"order":                   true,
	"orphans":                 true,
	"widows":                  true,
	"zIndex":                  true,
	"zoom":                    true,
}

// StyleCSS renders a style bundle as CSS declarations in insertion order:
//
//	{backgroundColor: "#61dbfb", padding: 10} → "background-color: #61dbfb; padding: 10px"
//
// Numbers get a px unit unless the property is unitless. Nested bundles
// (selector blocks such as ":hover") and null values are skipped.
func StyleCSS(b props.Bundle) string {
	var sb strings.Builder
	b.Range(func(name string, v props.Value) bool {
		var value string
		switch v.Kind() {
		case props.KindNull, props.KindBundle, props.KindFunc, props.KindComputed:
			return true
		case props.KindNumber:
			n, _ := v.Num()
			value = props.FormatNumber(n)
			if n != 0 && !unitlessProps[name] {
				value += "px"
			}
		default:
			value = v.Text()
		}
		if sb.Len() > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(CSSName(name))
		sb.WriteString(": ")
		sb.WriteString(value)
		return true
	})
	return sb.String()
}

// CSSName converts a camelCase property name to kebab-case. Names with a
// leading capital are vendor prefixed: WebkitTransition → -webkit-transition.
// Names that already contain a dash are returned unchanged.
func CSSName(name string) string {
	if strings.Contains(name, "-") {
		return name
	}
	var sb strings.Builder
	sb.Grow(len(name) + 4)
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('-')
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
