package syntax

import (
	"fmt"

	"assertgen/source"
)

// ArgsError classifies why a directive's arguments were rejected.
type ArgsError int

const (
	ArgsErrorEmpty ArgsError = iota + 1
	ArgsErrorNotComma
	ArgsErrorSingle
	ArgsErrorNotIdent
	ArgsErrorInvalidOmit
	ArgsErrorTooMany
)

var argsErrorMessages = map[ArgsError]string{
	ArgsErrorEmpty:       "Expected two identifiers as arguments",
	ArgsErrorNotComma:    "Expected the arguments to be separated by a comma",
	ArgsErrorSingle:      "Expected two identifiers, but found only one",
	ArgsErrorNotIdent:    "Expected an identifier",
	ArgsErrorInvalidOmit: "Expected an identifier after the comma too",
	ArgsErrorTooMany:     "Expected only two identifiers as arguments",
}

var argsErrorNames = map[ArgsError]string{
	ArgsErrorEmpty:       "Empty",
	ArgsErrorNotComma:    "NotComma",
	ArgsErrorSingle:      "Single",
	ArgsErrorNotIdent:    "NotIdent",
	ArgsErrorInvalidOmit: "InvalidOmit",
	ArgsErrorTooMany:     "TooMany",
}

func (kind ArgsError) Error() string {
	return argsErrorMessages[kind]
}

func (kind ArgsError) String() string {
	if name, ok := argsErrorNames[kind]; ok {
		return name
	}

	return fmt.Sprintf("ArgsError(%d)", int(kind))
}

// At attaches `kind` to a position. `cause` is the low-level error that made
// the expectation fail, if any; its message becomes the reason.
func (kind ArgsError) At(span source.Span, cause *Error) *Error {
	err := &Error{
		Kind:    kind,
		Message: kind.Error(),
		Span:    span,
	}

	if cause != nil {
		err.Reason = cause.Message
	}

	return err
}

type Error struct {
	Kind    ArgsError
	Message string
	Reason  string
	Span    source.Span
}

func (e *Error) String() string {
	return fmt.Sprintf("%v: %s", e.Span, e.Message)
}

func (e *Error) Error() string {
	return e.String()
}

// Unwrap exposes the kind so callers can use errors.Is(err, ArgsErrorEmpty).
func (e *Error) Unwrap() error {
	if e.Kind == 0 {
		return nil
	}

	return e.Kind
}

// Offset is the byte offset of the error within the tokenized text.
func (e *Error) Offset() int {
	return e.Span.Start.Index
}
