package chart

import (
	"errors"
	"fmt"
)

var (
	// ErrRowOutOfRange is returned for events that target a row the state
	// does not have.
	ErrRowOutOfRange = errors.New("encoding row out of range")

	// ErrUnknownColumn is returned when a field is set to a name that is
	// neither a dataset column nor the wildcard.
	ErrUnknownColumn = errors.New("unknown column")
)

// UnknownOptionError reports an option title that is not valid in the scope
// it was sent to.
type UnknownOptionError struct {
	Title string
	Scope string
}

// Error implements the error interface
func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %q for %s", e.Title, e.Scope)
}

// Is matches any *UnknownOptionError.
func (e *UnknownOptionError) Is(target error) bool {
	_, ok := target.(*UnknownOptionError)
	return ok
}

// InvalidValueError reports a value of the wrong shape for its title, such
// as a number where a column name is expected.
type InvalidValueError struct {
	Title OptionTitle
	Value any
}

// Error implements the error interface
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %v (%T) for %s", e.Value, e.Value, e.Title)
}
