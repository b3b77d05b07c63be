package diag

import (
	"errors"

	"sjavac/internal/source"
)

// Error is the single failure value produced by the analysis core.
// The message is derived from Code and Subjects on demand.
type Error struct {
	Code     Code
	Subjects []string
	Line     uint32 // 1-based, 0 when unknown
	Cause    error  // underlying failure, set for IO codes
	Notes    []LineNote
}

// LineNote points at another line involved in the failure.
type LineNote struct {
	Line uint32
	Msg  string
}

// At builds an Error for the given source line.
func At(line uint32, code Code, subjects ...string) *Error {
	return &Error{Code: code, Subjects: subjects, Line: line}
}

// Wrap builds a line-less Error that keeps cause reachable through errors.Is/As.
func Wrap(cause error, code Code, subjects ...string) *Error {
	return &Error{Code: code, Subjects: subjects, Cause: cause}
}

// WithNote attaches a note about line and returns e.
func (e *Error) WithNote(line uint32, msg string) *Error {
	e.Notes = append(e.Notes, LineNote{Line: line, Msg: msg})
	return e
}

func (e *Error) Error() string {
	return e.Code.Format(e.Subjects...)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Family reports the family of the underlying code.
func (e *Error) Family() Family {
	return e.Code.Family()
}

// Diagnostic converts the error into a reportable diagnostic at span.
func (e *Error) Diagnostic(span source.Span) Diagnostic {
	return NewError(e.Code, span, e.Error())
}

// AsError unwraps err into *Error.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
