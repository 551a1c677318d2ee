//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemeErrorMessageFormatting(t *testing.T) {
	e := NewSchemeError(TypeError, "car: not a pair: 5")
	assert.Equal(t, "wrong type: car: not a pair: 5", e.ErrorMessage())
	assert.Equal(t, e.ErrorMessage(), e.Error())
}

func TestSchemeErrorWithPosition(t *testing.T) {
	e := NewSchemeErrorAt(ReadError, 12, "unterminated string")
	assert.Equal(t, "read error at offset 12: unterminated string", e.ErrorMessage())
}

func TestSchemeErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("invalid syntax")
	e := wrapSchemeError(TypeError, cause, "bad numeric literal")
	assert.ErrorIs(t, e, cause)
}

func TestErrorKindStrings(t *testing.T) {
	cases := map[ErrorKind]string{
		ReadError:      "read error",
		ParseError:     "parse error",
		UnboundError:   "unbound variable",
		ArityError:     "wrong number of arguments",
		TypeError:      "wrong type",
		DivisionByZero: "division by zero",
		UserError:      "error",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}
