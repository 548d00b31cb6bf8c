// Package embfmt holds the codec framework shared by every format: the
// closed error taxonomy, the format registry, and the content detector.
package embfmt

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Code identifies which branch of the closed error taxonomy an error
// belongs to. Callers that need to branch on error kind should use Code
// rather than string-matching Error().
type Code int

const (
	CodeIO Code = iota
	CodeParse
	CodeUnsupportedFormat
	CodeInvalidPattern
	CodeThreadIndexOutOfBounds
	CodeInvalidColor
	CodeEncoding
	CodeUnsupported
	CodeJSON
)

func (c Code) String() string {
	switch c {
	case CodeIO:
		return "IO"
	case CodeParse:
		return "Parse"
	case CodeUnsupportedFormat:
		return "UnsupportedFormat"
	case CodeInvalidPattern:
		return "InvalidPattern"
	case CodeThreadIndexOutOfBounds:
		return "ThreadIndexOutOfBounds"
	case CodeInvalidColor:
		return "InvalidColor"
	case CodeEncoding:
		return "Encoding"
	case CodeUnsupported:
		return "Unsupported"
	case CodeJSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Coded is satisfied by every error this package returns.
type Coded interface {
	error
	Code() Code
}

type codedError struct {
	code  Code
	cause error
}

func (e *codedError) Error() string { return e.cause.Error() }
func (e *codedError) Code() Code    { return e.code }
func (e *codedError) Cause() error  { return e.cause }
func (e *codedError) Unwrap() error { return e.cause }

func newf(code Code, format string, args ...interface{}) error {
	return &codedError{code: code, cause: pkgerrors.Errorf(format, args...)}
}

// IOError wraps a lower-level I/O failure verbatim, preserving it as the
// Cause for errors.Cause/errors.As.
func IOError(cause error) error {
	return &codedError{code: CodeIO, cause: pkgerrors.WithStack(cause)}
}

// ParseError reports a structural mismatch in an input stream. Context
// should identify the failure site (a byte offset, a stitch index, an
// expected-vs-actual value).
func ParseError(format string, args ...interface{}) error {
	return newf(CodeParse, format, args...)
}

// UnsupportedFormatError reports an unrecognised format name, or a
// recognised format lacking the requested direction (read/write).
func UnsupportedFormatError(format string, args ...interface{}) error {
	return newf(CodeUnsupportedFormat, format, args...)
}

// InvalidPatternError reports a semantically invalid pattern.
func InvalidPatternError(format string, args ...interface{}) error {
	return newf(CodeInvalidPattern, format, args...)
}

// ThreadIndexOutOfBoundsError is a specialisation of InvalidPattern
// carrying the offending index.
func ThreadIndexOutOfBoundsError(index int) error {
	return &codedError{
		code:  CodeThreadIndexOutOfBounds,
		cause: pkgerrors.Errorf("thread index out of bounds: %d", index),
	}
}

// InvalidColorError reports a colour string matching neither hex syntax
// nor a known name. suggestion may be empty.
func InvalidColorError(input, suggestion string) error {
	msg := fmt.Sprintf("invalid color: %q", input)
	if suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return &codedError{code: CodeInvalidColor, cause: pkgerrors.New(msg)}
}

// EncodingError reports a pattern that exceeds the target format's
// coordinate or count limits.
func EncodingError(format string, args ...interface{}) error {
	return newf(CodeEncoding, format, args...)
}

// UnsupportedError reports a valid but not-yet-implemented code path.
func UnsupportedError(format string, args ...interface{}) error {
	return newf(CodeUnsupported, format, args...)
}

// JSONError wraps a JSON (de)serialisation failure.
func JSONError(cause error) error {
	return &codedError{code: CodeJSON, cause: pkgerrors.WithStack(cause)}
}

// CodeOf extracts the Code of err if it (or something it wraps) is Coded,
// and reports whether one was found.
func CodeOf(err error) (Code, bool) {
	var c Coded
	if errors.As(err, &c) {
		return c.Code(), true
	}
	return 0, false
}
