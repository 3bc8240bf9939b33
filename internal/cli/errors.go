package cli

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
}

func failure(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: ExitFailure, Message: err.Error(), Err: err}
}
