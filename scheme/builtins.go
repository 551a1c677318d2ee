//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

//
// The prelude: every primitive procedure in §4.G, registered into a
// fresh Environment by registerBuiltins. Generalizes the teacher's
// functionTable (swatcl/functions.go) — a map of name to Go function —
// into one keyed by Symbol, with a declared Arity checked once by
// Apply (procedure.go) rather than the ad hoc len(args) check at the
// top of every function the teacher wrote.
//

import (
	"fmt"
	"math"
	"strings"
)

// There is no package-level output sink: display/displayln/newline
// write through the sink function captured when the builtins are
// registered, so each Context's output stays its own (see
// registerBuiltinsWithSink).

// registerBuiltins defines every §4.G primitive in env with a no-op
// output sink, for environments (such as the macro-expansion
// environment) that never perform I/O.
func registerBuiltins(env *Environment) {
	registerBuiltinsWithSink(env, func(string) {})
}

// registerBuiltinsWithSink is registerBuiltins parameterized by an
// output sink, used by Context to route display/displayln/newline
// into its own output buffer (§4.H, §6).
func registerBuiltinsWithSink(env *Environment, sink func(string)) {
	def := func(name string, arity Arity, fn BuiltinFunc) {
		env.Define(Symbol(name), NewBuiltin(Symbol(name), arity, fn))
	}

	// Arithmetic
	def("+", AtLeast(0), func(args []interface{}) (interface{}, *SchemeError) {
		sum := 0.0
		for _, a := range args {
			n, err := asNumber("+", a)
			if err != nil {
				return nil, err
			}
			sum += n
		}
		return sum, nil
	})
	def("*", AtLeast(0), func(args []interface{}) (interface{}, *SchemeError) {
		product := 1.0
		for _, a := range args {
			n, err := asNumber("*", a)
			if err != nil {
				return nil, err
			}
			product *= n
		}
		return product, nil
	})
	def("-", AtLeast(1), func(args []interface{}) (interface{}, *SchemeError) {
		nums, err := asNumbers("-", args)
		if err != nil {
			return nil, err
		}
		if len(nums) == 1 {
			return -nums[0], nil
		}
		result := nums[0]
		for _, n := range nums[1:] {
			result -= n
		}
		return result, nil
	})
	def("/", AtLeast(1), func(args []interface{}) (interface{}, *SchemeError) {
		nums, err := asNumbers("/", args)
		if err != nil {
			return nil, err
		}
		if len(nums) == 1 {
			if nums[0] == 0 {
				return nil, NewSchemeError(DivisionByZero, "/: division by zero")
			}
			return 1 / nums[0], nil
		}
		result := nums[0]
		for _, n := range nums[1:] {
			if n == 0 {
				return nil, NewSchemeError(DivisionByZero, "/: division by zero")
			}
			result /= n
		}
		return result, nil
	})
	def("remainder", Exact(2), integerBinop("remainder", func(a, b int64) (int64, *SchemeError) {
		if b == 0 {
			return 0, NewSchemeError(DivisionByZero, "remainder: division by zero")
		}
		return a % b, nil
	}))
	def("modulo", Exact(2), integerBinop("modulo", func(a, b int64) (int64, *SchemeError) {
		if b == 0 {
			return 0, NewSchemeError(DivisionByZero, "modulo: division by zero")
		}
		m := a % b
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return m, nil
	}))
	def("quotient", Exact(2), integerBinop("quotient", func(a, b int64) (int64, *SchemeError) {
		if b == 0 {
			return 0, NewSchemeError(DivisionByZero, "quotient: division by zero")
		}
		return a / b, nil
	}))
	def("abs", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		n, err := asNumber("abs", args[0])
		if err != nil {
			return nil, err
		}
		return math.Abs(n), nil
	})
	def("min", AtLeast(1), func(args []interface{}) (interface{}, *SchemeError) {
		nums, err := asNumbers("min", args)
		if err != nil {
			return nil, err
		}
		m := nums[0]
		for _, n := range nums[1:] {
			if n < m {
				m = n
			}
		}
		return m, nil
	})
	def("max", AtLeast(1), func(args []interface{}) (interface{}, *SchemeError) {
		nums, err := asNumbers("max", args)
		if err != nil {
			return nil, err
		}
		m := nums[0]
		for _, n := range nums[1:] {
			if n > m {
				m = n
			}
		}
		return m, nil
	})
	def("expt", Exact(2), func(args []interface{}) (interface{}, *SchemeError) {
		base, err := asNumber("expt", args[0])
		if err != nil {
			return nil, err
		}
		exp, err := asNumber("expt", args[1])
		if err != nil {
			return nil, err
		}
		return math.Pow(base, exp), nil
	})
	def("sqrt", Exact(1), unaryFloatFn("sqrt", math.Sqrt))
	def("floor", Exact(1), unaryFloatFn("floor", math.Floor))
	def("ceiling", Exact(1), unaryFloatFn("ceiling", math.Ceil))
	def("round", Exact(1), unaryFloatFn("round", math.RoundToEven))
	def("truncate", Exact(1), unaryFloatFn("truncate", math.Trunc))

	// Comparison
	def("=", AtLeast(1), comparison("=", func(a, b float64) bool { return a == b }))
	def("<", AtLeast(1), comparison("<", func(a, b float64) bool { return a < b }))
	def(">", AtLeast(1), comparison(">", func(a, b float64) bool { return a > b }))
	def("<=", AtLeast(1), comparison("<=", func(a, b float64) bool { return a <= b }))
	def(">=", AtLeast(1), comparison(">=", func(a, b float64) bool { return a >= b }))
	def("zero?", Exact(1), numberPredicate("zero?", func(n float64) bool { return n == 0 }))
	def("positive?", Exact(1), numberPredicate("positive?", func(n float64) bool { return n > 0 }))
	def("negative?", Exact(1), numberPredicate("negative?", func(n float64) bool { return n < 0 }))

	// Numeric predicates
	def("number?", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		_, ok := args[0].(float64)
		return ok, nil
	})
	def("integer?", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		n, ok := args[0].(float64)
		return ok && n == math.Trunc(n), nil
	})

	// Increment
	def("add1", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		n, err := asNumber("add1", args[0])
		if err != nil {
			return nil, err
		}
		return n + 1, nil
	})
	def("sub1", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		n, err := asNumber("sub1", args[0])
		if err != nil {
			return nil, err
		}
		return n - 1, nil
	})

	// Equality
	def("eq?", Exact(2), func(args []interface{}) (interface{}, *SchemeError) {
		return Eq(args[0], args[1]), nil
	})
	def("eqv?", Exact(2), func(args []interface{}) (interface{}, *SchemeError) {
		return Eqv(args[0], args[1]), nil
	})
	def("equal?", Exact(2), func(args []interface{}) (interface{}, *SchemeError) {
		return Equal(args[0], args[1]), nil
	})

	// Booleans
	def("not", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		return !truthy(args[0]), nil
	})
	def("boolean?", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		_, ok := args[0].(bool)
		return ok, nil
	})

	// Pair/List
	def("cons", Exact(2), func(args []interface{}) (interface{}, *SchemeError) {
		return Cons(args[0], args[1]), nil
	})
	def("car", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		return Car(args[0])
	})
	def("cdr", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		return Cdr(args[0])
	})
	def("set-car!", Exact(2), func(args []interface{}) (interface{}, *SchemeError) {
		p, ok := args[0].(*Pair)
		if !ok || p == nil {
			return nil, NewSchemeError(TypeError, "set-car!: not a pair: "+Write(args[0]))
		}
		p.SetFirst(args[1])
		return theUnspecified, nil
	})
	def("set-cdr!", Exact(2), func(args []interface{}) (interface{}, *SchemeError) {
		p, ok := args[0].(*Pair)
		if !ok || p == nil {
			return nil, NewSchemeError(TypeError, "set-cdr!: not a pair: "+Write(args[0]))
		}
		p.SetRest(args[1])
		return theUnspecified, nil
	})
	def("pair?", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		return isPair(args[0]), nil
	})
	def("null?", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		return isNull(args[0]), nil
	})
	def("list", AtLeast(0), func(args []interface{}) (interface{}, *SchemeError) {
		return wrapRest(NewList(args...)), nil
	})
	def("list?", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		return isProperList(args[0]), nil
	})
	def("length", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		if !isProperList(args[0]) {
			return nil, NewSchemeError(TypeError, "length: not a proper list: "+Write(args[0]))
		}
		p, _ := args[0].(*Pair)
		return float64(p.Len()), nil
	})
	def("append", AtLeast(0), func(args []interface{}) (interface{}, *SchemeError) {
		if len(args) == 0 {
			return theEmptyList, nil
		}
		var head, tail *Pair
		for i, a := range args[:len(args)-1] {
			if !isProperList(a) {
				return nil, NewSchemeError(TypeError, fmt.Sprintf("append: argument %d not a proper list: %s", i+1, Write(a)))
			}
			p, _ := a.(*Pair)
			for e := p; e != nil; e = e.RestPair() {
				next := NewPair(e.First())
				if head == nil {
					head = next
				} else {
					tail.SetRest(next)
				}
				tail = next
			}
		}
		last := args[len(args)-1]
		if head == nil {
			return last, nil
		}
		tail.SetRest(last)
		return head, nil
	})
	def("reverse", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		if !isProperList(args[0]) {
			return nil, NewSchemeError(TypeError, "reverse: not a proper list: "+Write(args[0]))
		}
		p, _ := args[0].(*Pair)
		return wrapRest(p.Reverse()), nil
	})
	def("list-ref", Exact(2), func(args []interface{}) (interface{}, *SchemeError) {
		p, ok := args[0].(*Pair)
		if !ok {
			return nil, NewSchemeError(TypeError, "list-ref: not a pair: "+Write(args[0]))
		}
		idx, err := asIndex("list-ref", args[1])
		if err != nil {
			return nil, err
		}
		for i := 0; i < idx; i++ {
			p = p.RestPair()
			if p == nil {
				return nil, NewSchemeError(TypeError, "list-ref: index out of range")
			}
		}
		if p == nil {
			return nil, NewSchemeError(TypeError, "list-ref: index out of range")
		}
		return p.First(), nil
	})
	def("map", AtLeast(2), func(args []interface{}) (interface{}, *SchemeError) {
		return mapLists(args[0], args[1:])
	})
	def("filter", Exact(2), func(args []interface{}) (interface{}, *SchemeError) {
		p, ok := args[1].(*Pair)
		if !ok && !isNull(args[1]) {
			return nil, NewSchemeError(TypeError, "filter: not a proper list: "+Write(args[1]))
		}
		var head, tail *Pair
		for e := p; e != nil; e = e.RestPair() {
			v, err := Apply(args[0], []interface{}{e.First()})
			if err != nil {
				return nil, err
			}
			if truthy(v) {
				next := NewPair(e.First())
				if head == nil {
					head = next
				} else {
					tail.SetRest(next)
				}
				tail = next
			}
		}
		return wrapRest(head), nil
	})
	def("for-each", AtLeast(2), func(args []interface{}) (interface{}, *SchemeError) {
		if _, err := mapLists(args[0], args[1:]); err != nil {
			return nil, err
		}
		return theUnspecified, nil
	})

	// Symbol
	def("symbol?", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		_, ok := args[0].(Symbol)
		return ok, nil
	})
	def("symbol->string", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		s, ok := args[0].(Symbol)
		if !ok {
			return nil, NewSchemeError(TypeError, "symbol->string: not a symbol: "+Write(args[0]))
		}
		return string(s), nil
	})
	def("string->symbol", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		s, ok := args[0].(string)
		if !ok {
			return nil, NewSchemeError(TypeError, "string->symbol: not a string: "+Write(args[0]))
		}
		return Symbol(s), nil
	})

	// String
	def("string?", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		_, ok := args[0].(string)
		return ok, nil
	})
	def("string-length", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		s, ok := args[0].(string)
		if !ok {
			return nil, NewSchemeError(TypeError, "string-length: not a string: "+Write(args[0]))
		}
		return float64(len([]rune(s))), nil
	})
	def("string-ref", Exact(2), func(args []interface{}) (interface{}, *SchemeError) {
		s, ok := args[0].(string)
		if !ok {
			return nil, NewSchemeError(TypeError, "string-ref: not a string: "+Write(args[0]))
		}
		idx, err := asIndex("string-ref", args[1])
		if err != nil {
			return nil, err
		}
		runes := []rune(s)
		if idx < 0 || idx >= len(runes) {
			return nil, NewSchemeError(TypeError, "string-ref: index out of range")
		}
		return Character(runes[idx]), nil
	})
	def("substring", Range(2, 3), func(args []interface{}) (interface{}, *SchemeError) {
		s, ok := args[0].(string)
		if !ok {
			return nil, NewSchemeError(TypeError, "substring: not a string: "+Write(args[0]))
		}
		runes := []rune(s)
		start, err := asIndex("substring", args[1])
		if err != nil {
			return nil, err
		}
		end := len(runes)
		if len(args) == 3 {
			end, err = asIndex("substring", args[2])
			if err != nil {
				return nil, err
			}
		}
		if start < 0 || end > len(runes) || start > end {
			return nil, NewSchemeError(TypeError, "substring: index out of range")
		}
		return string(runes[start:end]), nil
	})
	def("string-append", AtLeast(0), func(args []interface{}) (interface{}, *SchemeError) {
		var b strings.Builder
		for _, a := range args {
			s, ok := a.(string)
			if !ok {
				return nil, NewSchemeError(TypeError, "string-append: not a string: "+Write(a))
			}
			b.WriteString(s)
		}
		return b.String(), nil
	})
	def("string->list", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		s, ok := args[0].(string)
		if !ok {
			return nil, NewSchemeError(TypeError, "string->list: not a string: "+Write(args[0]))
		}
		items := make([]interface{}, 0, len(s))
		for _, r := range s {
			items = append(items, Character(r))
		}
		return wrapRest(NewList(items...)), nil
	})
	def("list->string", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		p, ok := args[0].(*Pair)
		if !ok && !isNull(args[0]) {
			return nil, NewSchemeError(TypeError, "list->string: not a list: "+Write(args[0]))
		}
		var b strings.Builder
		for e := p; e != nil; e = e.RestPair() {
			c, ok := e.First().(Character)
			if !ok {
				return nil, NewSchemeError(TypeError, "list->string: not a list of characters")
			}
			b.WriteRune(rune(c))
		}
		return b.String(), nil
	})

	// Character
	def("char?", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		_, ok := args[0].(Character)
		return ok, nil
	})
	def("char->integer", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		c, ok := args[0].(Character)
		if !ok {
			return nil, NewSchemeError(TypeError, "char->integer: not a character: "+Write(args[0]))
		}
		return float64(c), nil
	})
	def("integer->char", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		n, err := asNumber("integer->char", args[0])
		if err != nil {
			return nil, err
		}
		return Character(rune(int64(n))), nil
	})

	// Procedure
	def("procedure?", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		switch args[0].(type) {
		case *Closure, *Builtin:
			return true, nil
		default:
			return false, nil
		}
	})
	def("apply", AtLeast(2), func(args []interface{}) (interface{}, *SchemeError) {
		last, ok := args[len(args)-1].(*Pair)
		if !ok && !isNull(args[len(args)-1]) {
			return nil, NewSchemeError(TypeError, "apply: last argument must be a list: "+Write(args[len(args)-1]))
		}
		callArgs := append([]interface{}{}, args[1:len(args)-1]...)
		callArgs = append(callArgs, last.Slice()...)
		return Apply(args[0], callArgs)
	})

	// Control
	def("void", AtLeast(0), func(args []interface{}) (interface{}, *SchemeError) {
		return theUnspecified, nil
	})

	// I/O
	def("display", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		sink(Display(args[0]))
		return theUnspecified, nil
	})
	def("displayln", Exact(1), func(args []interface{}) (interface{}, *SchemeError) {
		sink(Display(args[0]) + "\n")
		return theUnspecified, nil
	})
	def("newline", Exact(0), func(args []interface{}) (interface{}, *SchemeError) {
		sink("\n")
		return theUnspecified, nil
	})
}

// asNumber type-asserts v as a Scheme Number, reporting procName in
// the TypeError on failure.
func asNumber(procName string, v interface{}) (float64, *SchemeError) {
	n, ok := v.(float64)
	if !ok {
		return 0, NewSchemeError(TypeError, procName+": not a number: "+Write(v))
	}
	return n, nil
}

// asNumbers type-asserts every element of args as a Number.
func asNumbers(procName string, args []interface{}) ([]float64, *SchemeError) {
	nums := make([]float64, len(args))
	for i, a := range args {
		n, err := asNumber(procName, a)
		if err != nil {
			return nil, err
		}
		nums[i] = n
	}
	return nums, nil
}

// asIndex type-asserts v as a Number and truncates it to an int index
// (used by list-ref/string-ref/substring).
func asIndex(procName string, v interface{}) (int, *SchemeError) {
	n, err := asNumber(procName, v)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// integerBinop wraps a two-argument integer operation (remainder,
// modulo, quotient) behind the Number (float64) boundary: operands are
// truncated to int64, the operation runs, and the result is converted
// back (§4.G; §3's single float64 Number type has no separate integer
// representation to operate on directly).
func integerBinop(name string, fn func(a, b int64) (int64, *SchemeError)) BuiltinFunc {
	return func(args []interface{}) (interface{}, *SchemeError) {
		a, err := asNumber(name, args[0])
		if err != nil {
			return nil, err
		}
		b, err := asNumber(name, args[1])
		if err != nil {
			return nil, err
		}
		result, err := fn(int64(a), int64(b))
		if err != nil {
			return nil, err
		}
		return float64(result), nil
	}
}

// unaryFloatFn wraps a single-argument math function as a Builtin.
func unaryFloatFn(name string, fn func(float64) float64) BuiltinFunc {
	return func(args []interface{}) (interface{}, *SchemeError) {
		n, err := asNumber(name, args[0])
		if err != nil {
			return nil, err
		}
		return fn(n), nil
	}
}

// comparison wraps a binary numeric predicate into a variadic Scheme
// comparison procedure: (= a b c) is true iff fn(a,b) && fn(b,c).
func comparison(name string, fn func(a, b float64) bool) BuiltinFunc {
	return func(args []interface{}) (interface{}, *SchemeError) {
		nums, err := asNumbers(name, args)
		if err != nil {
			return nil, err
		}
		for i := 1; i < len(nums); i++ {
			if !fn(nums[i-1], nums[i]) {
				return false, nil
			}
		}
		return true, nil
	}
}

// numberPredicate wraps a single-argument numeric predicate.
func numberPredicate(name string, fn func(float64) bool) BuiltinFunc {
	return func(args []interface{}) (interface{}, *SchemeError) {
		n, err := asNumber(name, args[0])
		if err != nil {
			return nil, err
		}
		return fn(n), nil
	}
}

// mapLists applies proc across one or more proper lists in lockstep,
// stopping at the shortest, and returns the collected results as a
// proper list (shared implementation behind map and for-each, §4.G).
func mapLists(proc interface{}, lists []interface{}) (interface{}, *SchemeError) {
	cursors := make([]*Pair, len(lists))
	for i, l := range lists {
		p, ok := l.(*Pair)
		if !ok && !isNull(l) {
			return nil, NewSchemeError(TypeError, "map: not a proper list: "+Write(l))
		}
		cursors[i] = p
	}
	var head, tail *Pair
	for {
		callArgs := make([]interface{}, len(cursors))
		for i, c := range cursors {
			if c == nil {
				return wrapRest(head), nil
			}
			callArgs[i] = c.First()
		}
		v, err := Apply(proc, callArgs)
		if err != nil {
			return nil, err
		}
		next := NewPair(v)
		if head == nil {
			head = next
		} else {
			tail.SetRest(next)
		}
		tail = next
		for i, c := range cursors {
			cursors[i] = c.RestPair()
		}
	}
}
