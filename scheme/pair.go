//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

import (
	"bytes"
)

// Pair represents a cons cell: a mutable pair of values. Unlike a
// singly-linked-list node, both the car and the cdr may be any Scheme
// value, including another Pair, which is how lists and trees are
// built, and including a non-Pair, which is how dotted-pair notation
// (a . b) and variadic lambda parameter lists are represented (§3).
//
// Two Pair values are eq? iff they are the same cell (§3's pair
// identity invariant); since Pair is always handled through a pointer,
// Go's own pointer identity gives us this for free.
type Pair struct {
	first interface{} // the car of the pair
	rest  interface{} // the cdr of the pair; may be *Pair, theEmptyList, or any other value
}

// Cons constructs a new pair holding a as the car and b as the cdr.
func Cons(a, b interface{}) *Pair {
	return &Pair{a, b}
}

// NewPair constructs a singleton list containing just a, i.e. (a).
func NewPair(a interface{}) *Pair {
	return &Pair{a, theEmptyList}
}

// NewList constructs a proper list out of the given items.
func NewList(items ...interface{}) *Pair {
	var list *Pair
	for i := len(items) - 1; i >= 0; i-- {
		list = Cons(items[i], wrapRest(list))
	}
	return list
}

// wrapRest turns a possibly-nil *Pair tail into the canonical empty
// list value so that the zero value of *Pair is never observed as a
// Scheme value.
func wrapRest(p *Pair) interface{} {
	if p == nil {
		return theEmptyList
	}
	return p
}

// First returns the car of the pair, or nil if p is nil.
func (p *Pair) First() interface{} {
	if p != nil {
		return p.first
	}
	return nil
}

// Rest returns the cdr of the pair. If the cdr is itself a list, the
// caller may type-assert it to *Pair; Rest returns theEmptyList (not
// nil) at the end of a proper list.
func (p *Pair) Rest() interface{} {
	if p != nil {
		return p.rest
	}
	return theEmptyList
}

// RestPair returns the cdr as a *Pair, or nil if the cdr is not a
// pair (e.g. the end of a proper list, or a dotted tail).
func (p *Pair) RestPair() *Pair {
	if p == nil {
		return nil
	}
	if next, ok := p.rest.(*Pair); ok {
		return next
	}
	return nil
}

// SetFirst replaces the car of the pair in place (set-car!).
func (p *Pair) SetFirst(v interface{}) {
	p.first = v
}

// SetRest replaces the cdr of the pair in place (set-cdr!).
func (p *Pair) SetRest(v interface{}) {
	p.rest = v
}

// Second returns the second item in the list, or nil if there is no
// such item.
func (p *Pair) Second() interface{} {
	return p.RestPair().First()
}

// Third returns the third item in the list, or nil if there is no such
// item.
func (p *Pair) Third() interface{} {
	return p.RestPair().RestPair().First()
}

// Len finds the length of the proper-list prefix of p. A dotted tail
// does not count toward the length.
func (p *Pair) Len() int {
	length := 0
	for p != nil {
		length++
		p = p.RestPair()
	}
	return length
}

// IsProper reports whether p terminates in the empty list (a proper
// list, per §3) rather than some other, dotted, value.
func (p *Pair) IsProper() bool {
	for p != nil {
		switch rest := p.rest.(type) {
		case *Pair:
			p = rest
		default:
			return p.rest == theEmptyList
		}
	}
	return true
}

// Append adds v to the end of the list headed by p, mutating the
// current last cell's cdr. p must not be nil.
func (p *Pair) Append(v interface{}) {
	last := p
	for last.RestPair() != nil {
		last = last.RestPair()
	}
	last.rest = NewPair(v)
}

// Join appends the elements of other to the end of the list headed by
// p, mutating the current last cell's cdr.
func (p *Pair) Join(other *Pair) {
	last := p
	for last.RestPair() != nil {
		last = last.RestPair()
	}
	last.rest = wrapRest(other)
}

// Reverse returns a new proper list consisting of the elements of p in
// reverse order.
func (p *Pair) Reverse() *Pair {
	var result *Pair
	for p != nil {
		result = Cons(p.first, wrapRest(result))
		p = p.RestPair()
	}
	return result
}

// Map applies fn to every element of the proper list headed by p and
// returns a new list of the results.
func (p *Pair) Map(fn func(interface{}) interface{}) *Pair {
	var head, tail *Pair
	for p != nil {
		cell := NewPair(fn(p.first))
		if head == nil {
			head = cell
		} else {
			tail.rest = cell
		}
		tail = cell
		p = p.RestPair()
	}
	return head
}

// Slice collects the proper-list elements of p into a Go slice,
// useful for evaluating argument lists.
func (p *Pair) Slice() []interface{} {
	out := make([]interface{}, 0, p.Len())
	for p != nil {
		out = append(out, p.first)
		p = p.RestPair()
	}
	return out
}

// Car returns the car of x if x is a *Pair, else an error.
func Car(x interface{}) (interface{}, *SchemeError) {
	p, ok := x.(*Pair)
	if !ok || p == nil {
		return nil, NewSchemeError(TypeError, "car: not a pair: "+Write(x))
	}
	return p.first, nil
}

// Cdr returns the cdr of x if x is a *Pair, else an error.
func Cdr(x interface{}) (interface{}, *SchemeError) {
	p, ok := x.(*Pair)
	if !ok || p == nil {
		return nil, NewSchemeError(TypeError, "cdr: not a pair: "+Write(x))
	}
	return p.rest, nil
}

// Cxr applies a sequence of car/cdr operations named by ops (e.g.
// "cddr" applies cdr then cdr, read right-to-left as in Scheme's
// caar/cadr/cddr/... family) to x.
func Cxr(ops string, x interface{}) (interface{}, *SchemeError) {
	// ops looks like "cXXXr"; walk the middle letters right to left.
	if len(ops) < 3 || ops[0] != 'c' || ops[len(ops)-1] != 'r' {
		return nil, NewSchemeError(TypeError, "malformed accessor: "+ops)
	}
	var err *SchemeError
	result := x
	for i := len(ops) - 2; i >= 1; i-- {
		switch ops[i] {
		case 'a':
			result, err = Car(result)
		case 'd':
			result, err = Cdr(result)
		default:
			return nil, NewSchemeError(TypeError, "malformed accessor: "+ops)
		}
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// String returns the string form of the pair using Write semantics
// (strings quoted, characters named) — see printer.go.
func (p *Pair) String() string {
	buf := new(bytes.Buffer)
	writePair(p, buf)
	return buf.String()
}
