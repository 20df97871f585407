// Package chapters holds the built-in examples: small pages from a React
// course rewritten as proptree components.
//
// Each Example pairs a root component with the literal data the course
// used. The data is a function of the current date so that headers and
// footers can show it; pass a fixed time for reproducible output.
//
//	ex, err := chapters.Get("boilerplate")
//	if err != nil {
//	    return err
//	}
//	tree, err := compose.Compose(ex.App, ex.Bundle(time.Now(), props.Bundle{}))
//
// Examples are independent illustrations. Chapters that reuse a name such
// as Header define their own component rather than sharing one.
package chapters
