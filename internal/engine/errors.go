package engine

import (
	"fmt"
	"strings"
)

// ErrorKind identifies the failure signaled by the engine process
type ErrorKind string

const (
	ErrDatasetNotFound  ErrorKind = "dataset_not_found"
	ErrInsufficientData ErrorKind = "insufficient_data"
	ErrUnknownCategory  ErrorKind = "unknown_category"
	ErrEngineFailure    ErrorKind = "engine_failure"
	ErrTimeout          ErrorKind = "timeout"
)

// Error is a classified engine failure. ExitCode and Stderr carry the raw
// diagnostics for logging; they are never shown to callers directly.
type Error struct {
	Kind     ErrorKind
	ExitCode int
	Stderr   string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrDatasetNotFound:
		return "dataset file not found or empty"
	case ErrInsufficientData:
		return "not enough data points to calculate risk"
	case ErrUnknownCategory:
		return "investment type not recognized"
	case ErrTimeout:
		return "engine did not finish in time"
	default:
		return fmt.Sprintf("engine failed with exit code %d", e.ExitCode)
	}
}

// Exit codes signaled by the engine binary. The table is closed: a new
// signal code needs a new ErrorKind, not a silent fall-through.
const (
	exitDatasetNotFound  = 1
	exitInsufficientData = 2
	exitUnknownCategory  = 3
)

// Classify maps an engine exit code to an Error. Zero returns nil.
func Classify(exitCode int, stderr string) *Error {
	stderr = strings.TrimSpace(stderr)

	switch exitCode {
	case 0:
		return nil
	case exitDatasetNotFound:
		return &Error{Kind: ErrDatasetNotFound, ExitCode: exitCode, Stderr: stderr}
	case exitInsufficientData:
		return &Error{Kind: ErrInsufficientData, ExitCode: exitCode, Stderr: stderr}
	case exitUnknownCategory:
		return &Error{Kind: ErrUnknownCategory, ExitCode: exitCode, Stderr: stderr}
	default:
		return &Error{Kind: ErrEngineFailure, ExitCode: exitCode, Stderr: stderr}
	}
}
