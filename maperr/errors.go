// Package maperr defines the error taxonomy shared by the accessor, registry
// and mapper packages.
//
// Every failure returned by propmap wraps exactly one of the sentinel errors,
// so callers branch with errors.Is:
//
//	if errors.Is(err, maperr.ErrConfigurationNotFound) {
//	    // the handle outlived its configuration
//	}
//
// Structured context (operation, type pair, property) is available through
// errors.As on *Error.
package maperr

import (
	"errors"
	"strings"
)

var (
	// ErrNullArgument reports a missing source, destination, mapper or handle.
	ErrNullArgument = errors.New("null argument")
	// ErrInvalidArgument reports an empty or unknown property name, a value that
	// does not fit its property, or an argument of the wrong shape.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConfigurationNotFound reports an operation on a mapping configuration
	// that was never created or has been removed.
	ErrConfigurationNotFound = errors.New("configuration not found")
	// ErrReflection reports a descriptor applied to an instance that does not
	// declare it, or a type that has no properties to describe.
	ErrReflection = errors.New("reflection error")
)

// Error carries the context of a failed operation.
type Error struct {
	// Op is the operation that failed (e.g. "ignore", "map").
	Op string
	// Kind is one of the sentinel errors of this package.
	Kind error
	// Pair is the "Source->Destination" type pair, if known.
	Pair string
	// Property is the property name involved, if any.
	Property string
	// Message is the human-readable description.
	Message string
}

// New creates an *Error of the given kind.
func New(kind error, op, message string) *Error {
	return &Error{Op: op, Kind: kind, Message: message}
}

// WithPair returns the error annotated with a type pair.
func (e *Error) WithPair(pair string) *Error {
	e.Pair = pair
	return e
}

// WithProperty returns the error annotated with a property name.
func (e *Error) WithProperty(name string) *Error {
	e.Property = name
	return e
}

func (e *Error) Error() string {
	var sb strings.Builder

	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}

	if e.Pair != "" {
		sb.WriteString("[")
		sb.WriteString(e.Pair)
		sb.WriteString("] ")
	}

	if e.Property != "" {
		sb.WriteString(e.Property)
		sb.WriteString(": ")
	}

	if e.Kind != nil {
		sb.WriteString(e.Kind.Error())
	}

	if e.Message != "" {
		if e.Kind != nil {
			sb.WriteString(": ")
		}

		sb.WriteString(e.Message)
	}

	return sb.String()
}

// Unwrap returns the sentinel kind.
func (e *Error) Unwrap() error {
	return e.Kind
}
