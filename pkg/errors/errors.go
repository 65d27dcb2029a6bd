// Package errors provides coded errors for clawplot.
//
// Every failure a user can act on carries a [Code]: a missing frame, a
// setplot that does not validate, an unsupported print format, or an
// external tool (rsvg-convert, pdflatex) that is missing or failed. The
// CLI turns codes into hints and the plot server into HTTP statuses.
//
// Codes follow a small naming scheme: INVALID_* for bad input,
// *_NOT_FOUND for missing frames, figures and setplots, TOOL_* for
// external programs.
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unsupported print format %q", format)
//	err = errors.Wrap(errors.ErrCodeFrameNotFound, err, "frame %d in %s", n, dir)
//	if errors.Is(err, errors.ErrCodeFrameNotFound) {
//	    // suggest "clawplot frames"
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidFrame    Code = "INVALID_FRAME"
	ErrCodeInvalidPlotData Code = "INVALID_PLOTDATA"
	ErrCodeInvalidStyle    Code = "INVALID_STYLE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFrameNotFound   Code = "FRAME_NOT_FOUND"
	ErrCodeFigureNotFound  Code = "FIGURE_NOT_FOUND"
	ErrCodeSetplotNotFound Code = "SETPLOT_NOT_FOUND"

	ErrCodeToolMissing Code = "TOOL_MISSING"
	ErrCodeToolFailed  Code = "TOOL_FAILED"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error. Cause may be nil.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches code and a message to cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost code in err's chain is code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the first *Error or *ToolError in err's
// chain, or "" if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var te *ToolError
	if errors.As(err, &te) {
		return te.Code()
	}
	return ""
}

// UserMessage returns the message of a coded error without its code and
// cause, and err.Error() for anything else.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ToolError describes a failed or missing external program.
// Err is nil when the program was not found on PATH; Hint then says how
// to install it.
type ToolError struct {
	Tool   string
	Hint   string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s not found. Install with:\n%s", e.Tool, e.Hint)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.Tool, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// Code is TOOL_MISSING or TOOL_FAILED.
func (e *ToolError) Code() Code {
	if e.Err == nil {
		return ErrCodeToolMissing
	}
	return ErrCodeToolFailed
}
