package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard application errors
var (
	ErrEmptyInput        = errors.New("input is empty")
	ErrNumber            = errors.New("numeric text failed to parse as the classified numeric type")
	ErrMalformedBrackets = errors.New("array text must start with '[' and end with ']'")
	ErrEmptyPath         = errors.New("pair path has no segments")
	ErrDuplicateKey      = errors.New("key is already bound in its parent")
	ErrTypeConflict      = errors.New("path is bound to two different value kinds")
	ErrUnsortedInput     = errors.New("pair stream is not sorted by path")
	ErrNoInput           = errors.New("no input provided: please specify a file with -i or pipe env data to stdin")
	ErrInvalidFilePath   = errors.New("invalid file path")
	ErrFileNotFound      = errors.New("file not found")
	ErrKeyNotFound       = errors.New("key does not exist in object")
	ErrIndexOutOfRange   = errors.New("index does not exist in array")
	ErrKindMismatch      = errors.New("value kind does not support this lookup")
	ErrBadQuery          = errors.New("malformed query expression")
	ErrBadOptions        = errors.New("invalid options")
)

// Stage categorizes errors by the pipeline stage that produced them.
type Stage string

const (
	StageLiteral  Stage = "literal"
	StageArray    Stage = "array"
	StageAssemble Stage = "assemble"
	StageRead     Stage = "read"
	StageWrite    Stage = "write"
	StageQuery    Stage = "query"
	StageDecode   Stage = "decode"
	StageConfig   Stage = "config"
	StageOutput   Stage = "output"
	StageUnknown  Stage = "unknown"
)

// Error is an application-specific error with context. Path is set for
// structural assembly errors (duplicate key, type conflict) and names the
// offending tree location.
type Error struct {
	Stage   Stage
	Message string
	Path    []string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if len(e.Path) > 0 {
		msg = fmt.Sprintf("%s at %s", msg, strings.Join(e.Path, "."))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Stage, msg)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for stage comparison.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Stage == t.Stage
}

// NewLiteralError creates a new error from literal classification or parsing.
func NewLiteralError(message string, err error) *Error {
	return &Error{
		Stage:   StageLiteral,
		Message: message,
		Err:     err,
	}
}

// NewArrayError creates a new error from array parsing.
func NewArrayError(message string, err error) *Error {
	return &Error{
		Stage:   StageArray,
		Message: message,
		Err:     err,
	}
}

// NewAssembleError creates a new error from tree assembly. path may be nil
// when the failure is not tied to a specific location.
func NewAssembleError(message string, path []string, err error) *Error {
	return &Error{
		Stage:   StageAssemble,
		Message: message,
		Path:    path,
		Err:     err,
	}
}

// NewReadError creates a new error from line-oriented input acquisition.
func NewReadError(message string, err error) *Error {
	return &Error{
		Stage:   StageRead,
		Message: message,
		Err:     err,
	}
}

// NewWriteError creates a new error from tree serialization.
func NewWriteError(message string, err error) *Error {
	return &Error{
		Stage:   StageWrite,
		Message: message,
		Err:     err,
	}
}

// NewQueryError creates a new error from tree lookup.
func NewQueryError(message string, err error) *Error {
	return &Error{
		Stage:   StageQuery,
		Message: message,
		Err:     err,
	}
}

// NewDecodeError creates a new error from struct decoding.
func NewDecodeError(message string, err error) *Error {
	return &Error{
		Stage:   StageDecode,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error from options handling.
func NewConfigError(message string, err error) *Error {
	return &Error{
		Stage:   StageConfig,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error from writing program output.
func NewOutputError(message string, err error) *Error {
	return &Error{
		Stage:   StageOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message.
func UserFriendlyError(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		switch appErr.Stage {
		case StageLiteral:
			return fmt.Sprintf("Literal error: %s", appErr.Error())
		case StageArray:
			return fmt.Sprintf("Array error: %s", appErr.Error())
		case StageAssemble:
			return fmt.Sprintf("Assembly error: %s", appErr.Error())
		case StageRead:
			return fmt.Sprintf("Input error: %s", appErr.Error())
		case StageWrite:
			return fmt.Sprintf("Serialization error: %s", appErr.Error())
		case StageQuery:
			return fmt.Sprintf("Query error: %s", appErr.Error())
		case StageDecode:
			return fmt.Sprintf("Decode error: %s", appErr.Error())
		case StageConfig:
			return fmt.Sprintf("Options error: %s", appErr.Error())
		case StageOutput:
			return fmt.Sprintf("Output error: %s", appErr.Error())
		default:
			return fmt.Sprintf("Error: %s", appErr.Error())
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe env data to stdin."
	}
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide env-style key/value data."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
