package collect

import (
	"errors"
	"fmt"
)

// ErrEmptyName is returned for a declaration registered without a name.
var ErrEmptyName = errors.New("command name must not be empty")

// SignatureMismatchError reports a handler whose canonical signature differs
// from the captured interface.
type SignatureMismatchError struct {
	Name     string
	Expected string
	Found    string
}

func (e *SignatureMismatchError) Error() string {
	return fmt.Sprintf("command %q: interface signature inconsistent, expected `%s`, found `%s`", e.Name, e.Expected, e.Found)
}

// InvalidNameError reports a name that does not yield an exported Go
// identifier.
type InvalidNameError struct {
	Name       string
	Identifier string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("command name %q yields %q, which is not a valid exported Go identifier", e.Name, e.Identifier)
}

// NameCollisionError reports two distinct names that normalize to the same
// storage key.
type NameCollisionError struct {
	Key      string
	Existing string
	Name     string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("command name %q collides with %q: both are stored as %q", e.Name, e.Existing, e.Key)
}
