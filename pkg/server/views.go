package server

import (
	"strings"

	"github.com/proptree/proptree/pkg/compose"
	"github.com/proptree/proptree/pkg/props"
	. "github.com/proptree/proptree/pkg/vdom"
)

// indexView lists the served pages.
var indexView = compose.Define("Index", func(p props.Bundle) (*VNode, error) {
	pages, err := p.GetList("pages")
	if err != nil {
		return nil, err
	}
	return Main(Class("proptree-index"),
		H1("proptree"),
		Ul(Each(pages, func(v props.Value, _ int) *VNode {
			page, _ := v.Bundle()
			name, _ := page.GetString("name")
			title, _ := page.Lookup("title")
			summary, _ := page.Lookup("summary")
			return Li(Key(name),
				A(Href("/examples/"+name), title),
				" ",
				Small(summary),
			)
		})),
	), nil
}, "pages")

// errorView is the placeholder shown instead of a page that failed to
// compose.
var errorView = compose.Func("CompositionError", func(p props.Bundle) *VNode {
	code, _ := p.Lookup("code")
	message, _ := p.Lookup("message")
	hint, _ := p.Lookup("hint")
	chain, _ := p.Lookup("chain")
	detail, _ := p.Lookup("detail")
	return Div(Class("proptree-error"),
		H1(code, ": ", message),
		Pre(detail),
		If(chain.Len() > 0, P(Class("chain"), Code(strings.Join(textItems(chain), " > ")))),
		If(!hint.IsNull(), P(Class("hint"), hint)),
	)
}, "code", "message", "detail")

func textItems(v props.Value) []string {
	items := v.Items()
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Text()
	}
	return out
}
