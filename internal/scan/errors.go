package scan

import "fmt"

// DirectiveError reports a malformed or misplaced directive.
type DirectiveError struct {
	Pos     string
	Comment string
	Msg     string
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s: invalid directive %q: %s", e.Pos, e.Comment, e.Msg)
}
