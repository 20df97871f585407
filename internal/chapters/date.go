package chapters

import (
	"fmt"
	"time"

	"github.com/proptree/proptree/pkg/props"
)

// ShowDate formats t the way the course does, with a leading space:
// " Aug 19, 2024".
func ShowDate(t time.Time) string {
	return fmt.Sprintf(" %s %d, %d", t.Month().String()[:3], t.Day(), t.Year())
}

// dateText formats a date property. Timestamps go through ShowDate; dates
// loaded from property files arrive as text and are shown as written.
func dateText(v props.Value) string {
	if t, ok := v.Timestamp(); ok {
		return ShowDate(t)
	}
	return v.Text()
}

// yearOf returns the year of a timestamp property, or its text.
func yearOf(v props.Value) string {
	if t, ok := v.Timestamp(); ok {
		return fmt.Sprint(t.Year())
	}
	return v.Text()
}

// prop returns the value at path, or Null. Components use it for paths
// they declare as required, which the composer checks before rendering.
func prop(p props.Bundle, path string) props.Value {
	v, _ := p.Lookup(path)
	return v
}
