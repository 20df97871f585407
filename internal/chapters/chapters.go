package chapters

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/proptree/proptree/internal/errors"
	"github.com/proptree/proptree/pkg/props"
	"github.com/proptree/proptree/pkg/vdom"
)

// ErrUnknown is wrapped by the error Get returns for unknown names.
var ErrUnknown = stderrors.New("chapters: unknown example")

// Example is a built-in component tree with the literal data it was written
// for.
type Example struct {
	// Name identifies the example on the command line and in URLs.
	Name string

	// Chapter is the course chapter the example comes from.
	Chapter int

	// Title is used as the document title.
	Title string

	// Summary is a one-line description for listings.
	Summary string

	// App is the root component.
	App vdom.Component

	// Props builds the root bundle. now stands in for the current date.
	Props func(now time.Time) props.Bundle
}

// Bundle returns the root bundle for now, with overrides merged on top.
func (e Example) Bundle(now time.Time, overrides props.Bundle) props.Bundle {
	b := e.Props(now)
	if overrides.Len() > 0 {
		b = b.Merge(overrides)
	}
	return b
}

var registry = []Example{
	helloExample,
	introExample,
	setupExample,
	componentsExample,
	propsExample,
	boilerplateExample,
}

// List returns all examples in course order.
func List() []Example {
	out := make([]Example, len(registry))
	copy(out, registry)
	return out
}

// Names returns the example names in course order.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.Name
	}
	return names
}

// Get returns the example called name.
func Get(name string) (Example, error) {
	for _, e := range registry {
		if e.Name == name {
			return e, nil
		}
	}
	return Example{}, errors.New("P010").
		Wrap(fmt.Errorf("%w: %q", ErrUnknown, name)).
		WithSuggestion("Available examples: " + strings.Join(Names(), ", "))
}
