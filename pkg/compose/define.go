package compose

import (
	"github.com/proptree/proptree/pkg/props"
	"github.com/proptree/proptree/pkg/vdom"
)

// Definition is a named component with its declared required paths.
// Definitions are immutable and safe to share between compositions.
type Definition struct {
	name     string
	requires []string
	render   func(props.Bundle) (*vdom.VNode, error)
}

// Define creates a component. The composer checks requires against the
// bundle before render is called, so render may dereference those paths
// without checking them:
//
//	var Greeting = compose.Define("Greeting", func(p props.Bundle) (*vdom.VNode, error) {
//	    name, _ := p.GetText("name")
//	    return H1(Text("Hello, " + name + "!")), nil
//	}, "name")
func Define(name string, render func(props.Bundle) (*vdom.VNode, error), requires ...string) *Definition {
	return &Definition{
		name:     name,
		requires: append([]string(nil), requires...),
		render:   render,
	}
}

// Func is Define for render functions that cannot fail.
func Func(name string, render func(props.Bundle) *vdom.VNode, requires ...string) *Definition {
	return Define(name, func(p props.Bundle) (*vdom.VNode, error) {
		return render(p), nil
	}, requires...)
}

// Name implements vdom.Named.
func (d *Definition) Name() string { return d.name }

// Requires implements vdom.Requirer.
func (d *Definition) Requires() []string {
	return append([]string(nil), d.requires...)
}

// Render implements vdom.Component.
func (d *Definition) Render(p props.Bundle) (*vdom.VNode, error) {
	if d.render == nil {
		return nil, nil
	}
	return d.render(p)
}

// With is shorthand for vdom.Use(d, p).
func (d *Definition) With(p props.Bundle) *vdom.VNode {
	return vdom.Use(d, p)
}
