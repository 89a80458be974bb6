package contract

import "errors"

// Sentinel errors that drive the process exit code.
var (
	// ErrViolations signals that at least one violation at or above the
	// configured severity threshold exists. Exit code 1.
	ErrViolations = errors.New("violations at or above severity threshold")

	// ErrStrictParse signals that one or more units were unparseable and
	// --strict-parse was set. Exit code 3.
	ErrStrictParse = errors.New("unparseable units under strict parse")
)

// ConfigError marks an invocation or configuration failure. The run aborts
// before any analysis and no report is produced. Exit code 2.
type ConfigError struct {
	Err error
}

// NewConfigError wraps err as a ConfigError.
func NewConfigError(err error) *ConfigError {
	return &ConfigError{Err: err}
}

func (e *ConfigError) Error() string {
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
