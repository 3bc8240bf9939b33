package generate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDefaultMissing is returned in strict mode when no record produces the
// default variant.
var ErrDefaultMissing = errors.New("no command produces the default variant")

// MalformedBodyError reports a stored record that cannot be turned back
// into a declaration. Generation is aborted and nothing is emitted.
type MalformedBodyError struct {
	Key string
	Err error
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("malformed manifest body for %q: %v", e.Key, e.Err)
}

func (e *MalformedBodyError) Unwrap() error {
	return e.Err
}

// DuplicateCodeError reports commands sharing a numeric code.
type DuplicateCodeError struct {
	Code  uint64
	Names []string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("code %d is registered by more than one command: %s", e.Code, strings.Join(e.Names, ", "))
}

// DuplicateNameError reports generated identifiers that clash.
type DuplicateNameError struct {
	Ident string
	Names []string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("identifier %s is generated for more than one declaration: %s", e.Ident, strings.Join(e.Names, ", "))
}

// StaleRecordError reports a stored command whose signature no longer
// matches the captured interface, typically because the interface was
// re-captured after the command was collected.
type StaleRecordError struct {
	Name     string
	Expected string
	Found    string
}

func (e *StaleRecordError) Error() string {
	return fmt.Sprintf("stored command %q is stale: expected `%s`, found `%s`; re-run collection", e.Name, e.Expected, e.Found)
}

// RetainedClashError reports a retained handler function whose name is also
// declared by the generated file.
type RetainedClashError struct {
	Func  string
	Owner string
}

func (e *RetainedClashError) Error() string {
	return fmt.Sprintf("retained handler %s clashes with the identifier generated for %s: rename the handler or disable collect.retain_original", e.Func, e.Owner)
}
