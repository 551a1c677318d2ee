//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies a SchemeError per §7's error taxonomy.
type ErrorKind int

// Error kinds, mirroring §7.
const (
	_ ErrorKind = iota
	ReadError
	ParseError
	UnboundError
	ArityError
	TypeError
	DivisionByZero
	UserError
)

func (k ErrorKind) String() string {
	switch k {
	case ReadError:
		return "read error"
	case ParseError:
		return "parse error"
	case UnboundError:
		return "unbound variable"
	case ArityError:
		return "wrong number of arguments"
	case TypeError:
		return "wrong type"
	case DivisionByZero:
		return "division by zero"
	case UserError:
		return "error"
	default:
		return "unknown error"
	}
}

// SchemeError carries the kind and message of a failure detected
// during reading, parsing, expansion, or evaluation (§7), following
// the teacher's LispError/TclError shape (an error-kind constant plus
// a human-readable message).
type SchemeError struct {
	Kind    ErrorKind
	Message string
	Pos     int // byte offset in source, -1 if not applicable
	cause   error
}

// NewSchemeError creates a SchemeError of the given kind with the
// given message.
func NewSchemeError(kind ErrorKind, msg string) *SchemeError {
	return &SchemeError{Kind: kind, Message: msg, Pos: -1}
}

// NewSchemeErrorAt creates a SchemeError carrying a source position,
// for reader/parser diagnostics (§4.A).
func NewSchemeErrorAt(kind ErrorKind, pos int, msg string) *SchemeError {
	return &SchemeError{Kind: kind, Message: msg, Pos: pos}
}

// wrapSchemeError wraps an underlying Go error (e.g. a strconv
// failure) into a SchemeError of the given kind, using
// github.com/pkg/errors to preserve the original cause (teacher
// precedent: db47h/ngaro's vm package wraps os/io failures the same
// way throughout vm/mem.go, vm/io.go).
func wrapSchemeError(kind ErrorKind, cause error, msg string) *SchemeError {
	return &SchemeError{Kind: kind, Message: msg, Pos: -1, cause: errors.Wrap(cause, msg)}
}

// wrapSchemeErrorAt is wrapSchemeError plus a source position, for
// reader diagnostics that fail partway through a token (e.g. an
// out-of-range numeric literal).
func wrapSchemeErrorAt(kind ErrorKind, pos int, cause error, msg string) *SchemeError {
	return &SchemeError{Kind: kind, Message: msg, Pos: pos, cause: errors.Wrap(cause, msg)}
}

// Error implements the error interface.
func (e *SchemeError) Error() string {
	return e.ErrorMessage()
}

// ErrorMessage returns the human-readable diagnostic for this error,
// including the source position when known.
func (e *SchemeError) ErrorMessage() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (e *SchemeError) Unwrap() error {
	return e.cause
}

// newParserError formats a SchemeError for the parser/expander,
// including the stringified offending element — ported from the
// teacher's newParserError in liswat/parser.go.
func newParserError(kind ErrorKind, elem interface{}, msg string) *SchemeError {
	return NewSchemeError(kind, msg+": "+Write(elem))
}
