package props

import (
	"errors"
	"fmt"
)

// ErrComputeLoop is returned when a Computed value keeps producing Computed
// values.
var ErrComputeLoop = errors.New("props: computed value does not settle")

// MissingError is returned when a property path is absent from a bundle.
type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("props: missing property %q", e.Path)
}

// TypeError is returned when a property holds a different kind than the
// accessor expects.
type TypeError struct {
	Path string
	Want Kind
	Got  Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("props: property %q is %s, want %s", e.Path, e.Got, e.Want)
}
