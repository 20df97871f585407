// Package props defines property bundles, the immutable inputs of proptree
// components.
//
// A Bundle maps property names to Values in insertion order. Values are a
// tagged variant: null, string, number, boolean, list, nested bundle,
// callback, external resource, timestamp, or a computed value that is
// evaluated against the bundle of the component rendering it.
//
//	author := props.Of("firstName", "Asabeneh", "lastName", "Yetayeh")
//	data := props.Of("welcome", "Welcome to 30 Days Of React", "author", author)
//
//	name, err := data.GetString("author.firstName")
//
// Bundles never change after construction. With, Without and Merge return
// new bundles, so a component cannot alter the bundle its caller holds.
package props
