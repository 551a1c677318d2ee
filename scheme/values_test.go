//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthiness(t *testing.T) {
	assert.False(t, truthy(false))
	assert.True(t, truthy(true))
	assert.True(t, truthy(0.0), "0 is truthy in Scheme")
	assert.True(t, truthy(theEmptyList), "'() is truthy in Scheme")
	assert.True(t, truthy("anything"))
}

func TestSymbolEquality(t *testing.T) {
	assert.True(t, Eq(Symbol("foo"), Symbol("foo")))
	assert.False(t, Eq(Symbol("foo"), Symbol("bar")))
}

func TestCharacterDisplayAndWrite(t *testing.T) {
	assert.Equal(t, "#\\space", Write(Character(' ')))
	assert.Equal(t, " ", Display(Character(' ')))
	assert.Equal(t, "#\\newline", Write(Character('\n')))
	assert.Equal(t, "#\\a", Write(Character('a')))
	assert.Equal(t, "a", Display(Character('a')))
}

func TestStringDisplayAndWrite(t *testing.T) {
	assert.Equal(t, `"hi there"`, Write("hi there"))
	assert.Equal(t, "hi there", Display("hi there"))
}

func TestEqualRecursesStructurally(t *testing.T) {
	a := NewList(1.0, NewList(2.0, 3.0), "x")
	b := NewList(1.0, NewList(2.0, 3.0), "x")
	assert.True(t, Equal(a, b))
	assert.False(t, Eq(a, b))
}

func TestNumberEqBitwise(t *testing.T) {
	assert.True(t, Eq(1.0, 1.0))
	assert.False(t, Eq(1.0, 1))
	assert.True(t, Eqv(1.0, 1.0))
}

func TestUnspecifiedPrintsEmpty(t *testing.T) {
	assert.Equal(t, "", Write(theUnspecified))
	assert.Equal(t, "", Display(theUnspecified))
}
