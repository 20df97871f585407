package vdom

import (
	"testing"

	"github.com/proptree/proptree/pkg/props"
)

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{KindRaw, "Raw"},
		{KindValue, "Value"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeIsInteractive(t *testing.T) {
	noop := func() {}

	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{"nil node", nil, false},
		{"text node", Text("hello"), false},
		{"element without handlers", Div(Class("test")), false},
		{"element with onclick", Button(OnClick(noop)), true},
		{"element with oninput", Input(OnInput(noop)), true},
		{"dropped handler", Button(OnClick("not a func")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsInteractive(); got != tt.want {
				t.Errorf("IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeAttr(t *testing.T) {
	node := Div(ID("main"))
	if got := node.Attr("id").Text(); got != "main" {
		t.Errorf("Attr(id) = %q, want main", got)
	}
	if !node.Attr("class").IsNull() {
		t.Errorf("Attr(class) should be Null")
	}

	var nilNode *VNode
	if !nilNode.Attr("id").IsNull() {
		t.Errorf("nil node Attr should be Null")
	}
}

func TestVNodeTextContent(t *testing.T) {
	node := Div(
		H1("Title"),
		P("Weight ", Val(props.Number(735.75))),
		Raw("<b>ignored</b>"),
	)
	if got := node.TextContent(); got != "TitleWeight 735.75" {
		t.Errorf("TextContent() = %q", got)
	}
}

func TestVNodeString(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want string
	}{
		{"nil", nil, "<nil>"},
		{"element", Div(), "<div>"},
		{"keyed element", Li(Key("go")), `<li key="go">`},
		{"text", Text("hi"), `"hi"`},
		{"fragment", Fragment(), "Fragment"},
		{"component", Use(namedComp("Header"), props.Bundle{}), "component Header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

type namedComp string

func (n namedComp) Name() string { return string(n) }

func (n namedComp) Render(props.Bundle) (*VNode, error) { return Text(string(n)), nil }

func TestComponentName(t *testing.T) {
	if got := ComponentName(namedComp("Footer")); got != "Footer" {
		t.Errorf("ComponentName = %q, want Footer", got)
	}
	fn := RenderFunc(func(props.Bundle) (*VNode, error) { return nil, nil })
	if got := ComponentName(fn); got != "vdom.RenderFunc" {
		t.Errorf("ComponentName = %q, want vdom.RenderFunc", got)
	}
	if got := ComponentName(nil); got != "<nil>" {
		t.Errorf("ComponentName(nil) = %q", got)
	}
}

func TestUse(t *testing.T) {
	p := props.Of("name", "Asabeneh")
	node := Use(namedComp("Greeting"), p)

	if node.Kind != KindComponent {
		t.Fatalf("Kind = %v, want KindComponent", node.Kind)
	}
	if !node.Props.Equal(p) {
		t.Errorf("Props = %v, want %v", node.Props, p)
	}
	if len(node.Children) != 0 {
		t.Errorf("pending application should have no children")
	}
}

func TestWalk(t *testing.T) {
	tree := Div(H1("a"), Ul(Li("b"), Li("c")))

	var tags []string
	Walk(tree, func(n *VNode) bool {
		if n.Kind == KindElement {
			tags = append(tags, n.Tag)
		}
		return true
	})
	want := []string{"div", "h1", "ul", "li", "li"}
	if len(tags) != len(want) {
		t.Fatalf("visited %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], want[i])
		}
	}

	visited := 0
	complete := Walk(tree, func(n *VNode) bool {
		visited++
		return n.Tag != "ul"
	})
	if complete {
		t.Errorf("Walk should report early stop")
	}
	if visited != 4 {
		t.Errorf("visited = %d, want 4", visited)
	}
}
