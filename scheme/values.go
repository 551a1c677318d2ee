//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

import (
	"fmt"
	"math"
)

// Symbol represents a variable or procedure name in a Scheme
// expression. It is essentially a string but is treated differently —
// two Symbols are eq? iff their underlying text is equal (§3).
type Symbol string

// Character represents a single Unicode scalar value (e.g. '#\a' or
// '#\space') in Scheme.
type Character rune

// String returns the Scheme write representation of the character.
func (c Character) String() string {
	switch c {
	case ' ':
		return "#\\space"
	case '\n':
		return "#\\newline"
	case '\t':
		return "#\\tab"
	case '\r':
		return "#\\return"
	case 0:
		return "#\\null"
	}
	return fmt.Sprintf("#\\%c", rune(c))
}

// emptyListType is the type of the unique empty-list value. It is
// distinguishable from any *Pair and from Go's nil (§3).
type emptyListType struct{}

func (emptyListType) String() string { return "()" }

// theEmptyList is the unique value representing the empty list '().
var theEmptyList = emptyListType{}

// emptyList is theEmptyList held in an interface{} variable.
var emptyList interface{} = theEmptyList

// unspecifiedType is the type of the single "nothing to say" value
// returned by mutation forms such as set! and define.
type unspecifiedType struct{}

func (unspecifiedType) String() string { return "" }

// theUnspecified is the unique Unspecified value (§3).
var theUnspecified = unspecifiedType{}

// letrecSentinel marks a letrec-bound name that has not yet been
// assigned its initializer's value (§4.D, §9's Open Question on
// letrec). Referencing it is reported as an UnboundError.
type letrecSentinelType struct{}

func (letrecSentinelType) String() string { return "#<undefined>" }

var letrecSentinel = letrecSentinelType{}

// truthy reports whether v is a Scheme "true" value. Only the boolean
// #f is falsey; everything else, including 0 and the empty list, is
// truthy (§3).
func truthy(v interface{}) bool {
	b, ok := v.(bool)
	return !ok || b
}

// isPair reports whether v is a non-nil *Pair.
func isPair(v interface{}) bool {
	p, ok := v.(*Pair)
	return ok && p != nil
}

// isNull reports whether v is the empty list.
func isNull(v interface{}) bool {
	_, ok := v.(emptyListType)
	return ok
}

// isProperList reports whether v is either the empty list or a Pair
// whose cdr is (recursively) a proper list (§3).
func isProperList(v interface{}) bool {
	for {
		if isNull(v) {
			return true
		}
		p, ok := v.(*Pair)
		if !ok || p == nil {
			return false
		}
		v = p.rest
	}
}

// Eq reports Scheme eq? identity: same cell for pairs, same
// underlying procedure for closures/builtins, name equality for
// symbols, bit-for-bit equality for numbers, and value equality for
// characters/booleans/the empty list/strings (§3: eq? on strings is
// otherwise unspecified by R5RS, so this implementation simply
// compares value equality).
func Eq(a, b interface{}) bool {
	switch av := a.(type) {
	case *Pair:
		bv, ok := b.(*Pair)
		return ok && av == bv
	case Symbol:
		bv, ok := b.(Symbol)
		return ok && av == bv
	case *Closure:
		bv, ok := b.(*Closure)
		return ok && av == bv
	case *Builtin:
		bv, ok := b.(*Builtin)
		return ok && av == bv
	case emptyListType:
		_, ok := b.(emptyListType)
		return ok
	case unspecifiedType:
		_, ok := b.(unspecifiedType)
		return ok
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case Character:
		bv, ok := b.(Character)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && math.Float64bits(av) == math.Float64bits(bv)
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	default:
		return a == b
	}
}

// Eqv implements Scheme eqv?, which in this implementation is the same
// predicate as Eq, numbers included (both compare them bit for bit).
func Eqv(a, b interface{}) bool {
	return Eq(a, b)
}

// Equal implements Scheme equal?: structural recursion for pairs and
// strings, falling back to Eqv for everything else (§4.C).
func Equal(a, b interface{}) bool {
	switch av := a.(type) {
	case *Pair:
		bv, ok := b.(*Pair)
		if !ok {
			return false
		}
		if av == nil || bv == nil {
			return av == bv
		}
		return Equal(av.first, bv.first) && Equal(av.rest, bv.rest)
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	default:
		return Eqv(a, b)
	}
}
