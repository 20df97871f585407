// Package errors provides structured, actionable error messages for the
// proptree command line.
//
// Library packages return plain Go errors (compose.Error, props.MissingError,
// mount.ErrUnknownTarget, ...). The CLI converts them with FromError into
// coded errors that explain what went wrong and how to fix it:
//
//	ERROR P001: Missing property
//
//	  component: Header
//	  path:      author.firstName
//	  chain:     App -> Header
//
//	  The component declares a required property path that is absent from
//	  the bundle it was applied to.
//
//	  Hint: Pass author.firstName in the bundle given to Header
//
// # Error Codes
//
//   - P001-P009: composition
//   - P010-P019: examples
//   - P020-P029: configuration
//   - P030-P039: mount points
//   - P040-P049: command line
//
// Colors are used only when stderr is a terminal and NO_COLOR is unset.
package errors
