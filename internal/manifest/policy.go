package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInterfaceMissing is returned by stages that need the captured interface
// signature before it exists.
var ErrInterfaceMissing = errors.New("no interface signature found; run `cmdgen init` to capture the interface before collecting or generating commands")

// Strictness selects whether closed-set invariants (unique names, unique
// codes, presence of the default command) are enforced.
type Strictness int

const (
	// Strict rejects duplicate names and codes and a missing default.
	Strict Strictness = iota
	// Permissive skips those checks.
	Permissive
)

// ParseStrictness parses "strict" or "permissive". An empty string is
// Strict.
func ParseStrictness(s string) (Strictness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "permissive":
		return Permissive, nil
	default:
		return Strict, fmt.Errorf("invalid strictness %q: must be 'strict' or 'permissive'", s)
	}
}

func (s Strictness) String() string {
	if s == Permissive {
		return "permissive"
	}
	return "strict"
}
