package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/proptree/proptree/pkg/compose"
	"github.com/proptree/proptree/pkg/mount"
	"github.com/proptree/proptree/pkg/props"
	"github.com/proptree/proptree/pkg/render"
)

// Category represents the type of error.
type Category string

const (
	CategoryCompose Category = "compose"
	CategoryExample Category = "example"
	CategoryConfig  Category = "config"
	CategoryMount   Category = "mount"
	CategoryCLI     Category = "cli"
)

// Error is a structured error with context, suggestions, and documentation.
type Error struct {
	// Code is a unique error identifier (e.g., "P001").
	Code string

	// Category is the error type (compose, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Component is the component being expanded, if any.
	Component string

	// Path is the property path involved, if any.
	Path string

	// Chain is the component expansion chain, outermost first.
	Chain []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithComponent records the component involved.
func (e *Error) WithComponent(name string) *Error {
	e.Component = name
	return e
}

// WithPath records the property path involved.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithChain records the component expansion chain.
func (e *Error) WithChain(chain []string) *Error {
	e.Chain = append([]string(nil), chain...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *Error) WithExample(ex string) *Error {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new Error with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError converts err into an Error. Errors from the proptree packages
// get their own codes and context; anything else is wrapped under
// fallback.
func FromError(err error, fallback string) *Error {
	if err == nil {
		return nil
	}
	var pe *Error
	if stderrors.As(err, &pe) {
		return pe
	}

	var ce *compose.Error
	if stderrors.As(err, &ce) {
		return fromCompose(ce, err)
	}

	var me *props.MissingError
	if stderrors.As(err, &me) {
		return New("P001").WithPath(me.Path).Wrap(err).
			WithSuggestion(fmt.Sprintf("Add %s to the property bundle", me.Path))
	}
	var te *props.TypeError
	if stderrors.As(err, &te) {
		return New("P006").WithPath(te.Path).Wrap(err).
			WithSuggestion(fmt.Sprintf("Pass a %s value for %s", te.Want, te.Path))
	}

	switch {
	case stderrors.Is(err, compose.ErrInvalidChild):
		return New("P004").Wrap(err)
	case stderrors.Is(err, render.ErrNotComposed):
		return New("P005").Wrap(err)
	case stderrors.Is(err, mount.ErrUnknownTarget):
		return New("P031").Wrap(err)
	case stderrors.Is(err, mount.ErrUnknownHandler):
		return New("P032").Wrap(err)
	case stderrors.Is(err, mount.ErrNoSnapshot):
		return New("P033").Wrap(err)
	}
	return New(fallback).Wrap(err)
}

func fromCompose(ce *compose.Error, err error) *Error {
	var e *Error
	switch ce.Kind {
	case compose.MissingProperty:
		e = New("P001").WithPath(ce.Path).
			WithSuggestion(fmt.Sprintf("Pass %s in the bundle given to %s", ce.Path, ce.Component))
	case compose.InfiniteExpansion:
		e = New("P002").
			WithSuggestion("Make sure a recursive component changes its properties and reaches a base case")
	case compose.DuplicateKey:
		e = New("P003").WithPath(ce.Key).
			WithSuggestion("Give each list item a unique key, or omit keys to use positions").
			WithExample(`Each(techs, func(tech props.Value, _ int) *VNode {
    return Li(Key(tech.Text()), tech.Text())
})`)
	default:
		e = New("P000")
	}
	return e.WithComponent(ce.Component).WithChain(ce.Chain).Wrap(err)
}
