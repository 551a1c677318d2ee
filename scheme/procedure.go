//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

//
// The procedure model: a Scheme procedure is either a Closure (a
// lambda captured together with its defining environment) or a
// Builtin (a primitive implemented in Go), generalizing the teacher's
// Callable interface referenced throughout liswat/parser.go, and the
// per-function arity checks scattered across swatcl/functions.go into
// a single declared Arity checked once by Apply (§4.E, §4.G).
//

import "fmt"

// ArityKind classifies how many arguments a procedure accepts: an
// exact count, a minimum, or an inclusive range.
type ArityKind int

const (
	// ArityExact requires exactly Min arguments.
	ArityExact ArityKind = iota
	// ArityAtLeast requires at least Min arguments.
	ArityAtLeast
	// ArityRange requires between Min and Max arguments, inclusive.
	ArityRange
)

// Arity describes how many arguments a procedure accepts.
type Arity struct {
	Kind ArityKind
	Min  int
	Max  int // only meaningful when Kind == ArityRange
}

// Exact returns an Arity requiring exactly n arguments.
func Exact(n int) Arity { return Arity{Kind: ArityExact, Min: n} }

// AtLeast returns an Arity requiring n or more arguments.
func AtLeast(n int) Arity { return Arity{Kind: ArityAtLeast, Min: n} }

// Range returns an Arity requiring between min and max arguments.
func Range(min, max int) Arity { return Arity{Kind: ArityRange, Min: min, Max: max} }

// accepts reports whether n arguments satisfy the arity.
func (a Arity) accepts(n int) bool {
	switch a.Kind {
	case ArityExact:
		return n == a.Min
	case ArityAtLeast:
		return n >= a.Min
	case ArityRange:
		return n >= a.Min && n <= a.Max
	}
	return false
}

func (a Arity) String() string {
	switch a.Kind {
	case ArityExact:
		return fmt.Sprintf("exactly %d argument(s)", a.Min)
	case ArityAtLeast:
		return fmt.Sprintf("at least %d argument(s)", a.Min)
	case ArityRange:
		return fmt.Sprintf("between %d and %d argument(s)", a.Min, a.Max)
	}
	return "unknown arity"
}

// ParamKind classifies the shape of a lambda's parameter list (§4.E).
type ParamKind int

const (
	// ParamFixed is a proper list of parameter names: (a b c).
	ParamFixed ParamKind = iota
	// ParamVariadic is a single symbol capturing all arguments as a list: args.
	ParamVariadic
	// ParamMixed is a dotted list: (a b . rest).
	ParamMixed
)

// ParamSpec describes a lambda's formal parameters.
type ParamSpec struct {
	Kind  ParamKind
	Names []Symbol // fixed (and leading, for Mixed) parameter names
	Rest  Symbol   // name capturing the remaining arguments (Variadic, Mixed)
}

// parseParamSpec classifies a raw parameter-list AST node (already
// validated by checkParamShape during expand) into a ParamSpec.
func parseParamSpec(params interface{}) ParamSpec {
	if sym, ok := params.(Symbol); ok {
		return ParamSpec{Kind: ParamVariadic, Rest: sym}
	}
	var names []Symbol
	cur := params
	for {
		p, ok := cur.(*Pair)
		if !ok || p == nil {
			break
		}
		names = append(names, p.first.(Symbol))
		cur = p.rest
	}
	if rest, ok := cur.(Symbol); ok {
		return ParamSpec{Kind: ParamMixed, Names: names, Rest: rest}
	}
	return ParamSpec{Kind: ParamFixed, Names: names}
}

// arity computes the Arity implied by a ParamSpec, used to report a
// readable error before a Closure's formals are bound (§7: ArityError).
func (ps ParamSpec) arity() Arity {
	switch ps.Kind {
	case ParamVariadic:
		return AtLeast(0)
	case ParamMixed:
		return AtLeast(len(ps.Names))
	default:
		return Exact(len(ps.Names))
	}
}

// bind creates a new Environment, child of defEnv, with this
// ParamSpec's names bound to args (§4.D).
func (ps ParamSpec) bind(args []interface{}, defEnv *Environment) (*Environment, *SchemeError) {
	if !ps.arity().accepts(len(args)) {
		return nil, NewSchemeError(ArityError, fmt.Sprintf("expected %s, got %d", ps.arity(), len(args)))
	}
	env := NewEnvironment(defEnv)
	for i, name := range ps.Names {
		env.Define(name, args[i])
	}
	if ps.Kind == ParamVariadic {
		env.Define(ps.Rest, wrapRest(NewList(args...)))
	} else if ps.Kind == ParamMixed {
		env.Define(ps.Rest, wrapRest(NewList(args[len(ps.Names):]...)))
	}
	return env, nil
}

// Closure is a user-defined procedure: a lambda's parameter spec and
// body, captured together with the environment active at the point of
// definition, which is what gives Scheme lexical scoping and first-
// class closures (§4.D, §4.E).
type Closure struct {
	Name   Symbol // empty if anonymous; set by define for diagnostics
	Params ParamSpec
	Body   interface{} // a single expression; expand wraps multi-form bodies in (begin ...)
	Env    *Environment
}

// NewClosure constructs a Closure from a lambda's already-expanded
// parameter list and body.
func NewClosure(params interface{}, body interface{}, env *Environment) *Closure {
	return &Closure{Params: parseParamSpec(params), Body: body, Env: env}
}

// String renders a Closure the way the REPL and write/display print
// opaque procedure values (§4.C).
func (c *Closure) String() string {
	if c.Name != "" {
		return fmt.Sprintf("#<procedure %s>", c.Name)
	}
	return "#<procedure>"
}

// BuiltinFunc is the signature every primitive procedure implements.
type BuiltinFunc func(args []interface{}) (interface{}, *SchemeError)

// Builtin is a primitive procedure implemented in Go (§4.G), modeled
// on swatcl/functions.go's functionTable entries but carrying its own
// declared Arity instead of checking argument count ad hoc in every
// function body.
type Builtin struct {
	Name  Symbol
	Arity Arity
	Fn    BuiltinFunc
}

// NewBuiltin constructs a Builtin primitive.
func NewBuiltin(name Symbol, arity Arity, fn BuiltinFunc) *Builtin {
	return &Builtin{Name: name, Arity: arity, Fn: fn}
}

// String renders a Builtin the way write/display print opaque
// procedure values (§4.C).
func (b *Builtin) String() string {
	return fmt.Sprintf("#<procedure %s>", b.Name)
}

// Apply invokes proc (a *Closure or *Builtin) with the given already-
// evaluated arguments, returning the procedure's result. Used both by
// Eval's trampoline for ordinary application, and by the macro
// expander to invoke a define-macro transformer (§4.E).
func Apply(proc interface{}, args []interface{}) (interface{}, *SchemeError) {
	switch p := proc.(type) {
	case *Builtin:
		if !p.Arity.accepts(len(args)) {
			return nil, NewSchemeError(ArityError, fmt.Sprintf("%s: expected %s, got %d", p.Name, p.Arity, len(args)))
		}
		return p.Fn(args)
	case *Closure:
		env, err := p.Params.bind(args, p.Env)
		if err != nil {
			return nil, err
		}
		return Eval(p.Body, env)
	default:
		return nil, NewSchemeError(TypeError, "not a procedure: "+Write(proc))
	}
}
