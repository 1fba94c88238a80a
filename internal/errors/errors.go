package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes for the parse error taxonomy.
const (
	CodeUnrecognizedTechnique   = "UNRECOGNIZED_TECHNIQUE"
	CodeMalformedHeader         = "MALFORMED_HEADER"
	CodeTableReadFailure        = "TABLE_READ_FAILURE"
	CodeInterpolationOutOfRange = "INTERPOLATION_OUT_OF_RANGE"
)

// Sentinel errors for errors.Is checks. ErrUnrecognizedTechnique is not a
// parse failure: batch enumeration skips such files. ErrOutOfRange never
// escapes the analytics layer; it is converted to absent derived fields.
var (
	ErrUnrecognizedTechnique = stderrors.New("unrecognized technique tag")
	ErrMalformedHeader       = stderrors.New("malformed header")
	ErrTableReadFailure      = stderrors.New("table read failure")
	ErrOutOfRange            = stderrors.New("interpolation target out of range")
)

// ParseError is a structured per-file parse failure.
type ParseError struct {
	Code    string `json:"code"`
	File    string `json:"file"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying sentinel or I/O error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// New creates a ParseError with the given code and message.
func New(code, file, message string, err error) *ParseError {
	return &ParseError{Code: code, File: file, Message: message, Err: err}
}

// UnrecognizedTechnique marks a file whose TAG token is outside the known set.
func UnrecognizedTechnique(file, tag string) *ParseError {
	return New(CodeUnrecognizedTechnique, file,
		fmt.Sprintf("tag %q is not a known technique", tag), ErrUnrecognizedTechnique)
}

// MalformedHeader marks a metadata line that does not split on exactly one colon.
func MalformedHeader(file string, lineNum int, line string) *ParseError {
	return New(CodeMalformedHeader, file,
		fmt.Sprintf("line %d: cannot split %q on a single colon", lineNum, line), ErrMalformedHeader)
}

// TableReadFailure marks a missing, truncated or unparseable data table.
func TableReadFailure(file, message string) *ParseError {
	return New(CodeTableReadFailure, file, message, ErrTableReadFailure)
}

// Is re-exports errors.Is so callers need only one errors import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As re-exports errors.As.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
