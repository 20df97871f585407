package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/proptree/proptree/pkg/props"
	"github.com/proptree/proptree/pkg/render"
	"github.com/proptree/proptree/pkg/vdom"
)

// Outline renders a final tree as an indented outline, one node per line:
//
//	div class=app
//	  h1 "Welcome to React"
//	  ul
//	    li [HTML] "HTML"
//
// Keys are shown in brackets and callbacks as on<event>=ƒ. An element
// whose only child is text is printed on one line.
func Outline(n *vdom.VNode) string {
	var b strings.Builder
	outline(&b, n, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func outline(b *strings.Builder, n *vdom.VNode, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)

	switch n.Kind {
	case vdom.KindElement:
		b.WriteString(indent)
		b.WriteString(elementLine(n))
		if len(n.Children) == 1 && n.Children[0].Kind == vdom.KindText {
			b.WriteString(" " + Styles.Text.Render(fmt.Sprintf("%q", n.Children[0].Text)))
			b.WriteString("\n")
			return
		}
		b.WriteString("\n")
		for _, c := range n.Children {
			outline(b, c, depth+1)
		}

	case vdom.KindText:
		b.WriteString(indent + Styles.Text.Render(fmt.Sprintf("%q", n.Text)) + "\n")

	case vdom.KindRaw:
		b.WriteString(indent + Styles.Attr.Render("raw "+fmt.Sprintf("%q", n.Text)) + "\n")

	case vdom.KindFragment:
		label := "fragment"
		if n.Keyed {
			label = "list"
		}
		b.WriteString(indent + Styles.Attr.Render(label) + "\n")
		for _, c := range n.Children {
			outline(b, c, depth+1)
		}

	default:
		// Pending components and values do not occur in composed trees.
		b.WriteString(indent + Styles.Error.Render(n.String()) + "\n")
	}
}

func elementLine(n *vdom.VNode) string {
	parts := []string{Styles.Tag.Render(n.Tag)}
	if n.Key != "" {
		parts = append(parts, Styles.Key.Render("["+n.Key+"]"))
	}

	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := n.Attrs[name]
		switch v.Kind() {
		case props.KindNull:
			continue
		case props.KindFunc:
			parts = append(parts, Styles.Handler.Render(name+"=ƒ"))
		case props.KindBundle:
			b, _ := v.Bundle()
			parts = append(parts, Styles.Attr.Render(fmt.Sprintf("%s=%q", name, render.StyleCSS(b))))
		default:
			parts = append(parts, Styles.Attr.Render(fmt.Sprintf("%s=%s", name, attrText(v))))
		}
	}
	return strings.Join(parts, " ")
}

func attrText(v props.Value) string {
	s := v.Text()
	if s == "" || strings.ContainsAny(s, " \t\"") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
