package chapters

import (
	"time"

	"github.com/proptree/proptree/pkg/compose"
	"github.com/proptree/proptree/pkg/props"
	. "github.com/proptree/proptree/pkg/vdom"
)

// Greeting renders "Hello, <name>!" as a heading.
var Greeting = compose.Define("Greeting", func(p props.Bundle) (*VNode, error) {
	name, err := p.GetText("name")
	if err != nil {
		return nil, err
	}
	return H1(Textf("Hello, %s!", name)), nil
}, "name")

var helloExample = Example{
	Name:    "hello",
	Chapter: 1,
	Title:   "Hello",
	Summary: "a heading greeting one name",
	App:     Greeting,
	Props: func(time.Time) props.Bundle {
		return props.Of("name", "Aytekin")
	},
}
