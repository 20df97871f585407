package compose

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is. Every *Error matches exactly one of them.
var (
	ErrMissingProperty   = errors.New("compose: missing property")
	ErrInfiniteExpansion = errors.New("compose: infinite expansion")
	ErrDuplicateKey      = errors.New("compose: duplicate key")
)

// ErrInvalidChild is returned when a property value that cannot be displayed
// (a nested bundle or a callback) is placed in child position.
var ErrInvalidChild = errors.New("compose: value cannot be rendered as a child")

// ErrorKind classifies composition failures.
type ErrorKind uint8

const (
	MissingProperty ErrorKind = iota + 1
	InfiniteExpansion
	DuplicateKey
)

func (k ErrorKind) String() string {
	switch k {
	case MissingProperty:
		return "MissingProperty"
	case InfiniteExpansion:
		return "InfiniteExpansion"
	case DuplicateKey:
		return "DuplicateKey"
	default:
		return "Unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingProperty:
		return ErrMissingProperty
	case InfiniteExpansion:
		return ErrInfiniteExpansion
	case DuplicateKey:
		return ErrDuplicateKey
	default:
		return nil
	}
}

// Error describes a failed composition.
type Error struct {
	Kind ErrorKind

	// Path is the missing property path (MissingProperty).
	Path string

	// Key and Parent identify the duplicated key and the element holding the
	// list (DuplicateKey).
	Key    string
	Parent string

	// Component is the component being expanded when the failure occurred.
	Component string

	// Chain lists the components on the expansion stack, outermost first.
	// For InfiniteExpansion it starts at the first repeated component.
	Chain []string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("compose: ")
	switch e.Kind {
	case MissingProperty:
		fmt.Fprintf(&b, "missing property %q", e.Path)
	case InfiniteExpansion:
		b.WriteString("infinite expansion")
	case DuplicateKey:
		fmt.Fprintf(&b, "duplicate key %q", e.Key)
		if e.Parent != "" {
			fmt.Fprintf(&b, " in <%s>", e.Parent)
		}
	default:
		b.WriteString("error")
	}
	if e.Component != "" {
		fmt.Fprintf(&b, " in component %s", e.Component)
	}
	if len(e.Chain) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.Chain, " -> "))
	}
	return b.String()
}

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *Error) Unwrap() error { return e.Err }
