package vocab

import "fmt"

// UnknownKeyError reports a lookup of a name outside a closed vocabulary.
type UnknownKeyError struct {
	Vocabulary string
	Key        string
}

// Error implements the error interface
func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Vocabulary, e.Key)
}

// Is matches any *UnknownKeyError regardless of key.
func (e *UnknownKeyError) Is(target error) bool {
	_, ok := target.(*UnknownKeyError)
	return ok
}
