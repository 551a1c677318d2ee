//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

//
// Eval is a trampoline: the special forms that can appear in tail
// position (if, cond, case, and, or, begin, let/let*/letrec/named-let,
// do, and ordinary application of a Closure) rebind ast/env and loop
// instead of recursing, so a self-recursive Scheme procedure runs in
// constant Go stack space no matter how many times it calls itself in
// tail position (§9's trampoline recipe, §8's proper-tail-call
// invariant).
//
// expand (parser.go) has already normalized quote/if/set!/define/
// lambda/begin/quasiquote before Eval ever sees an AST; the forms
// below (cond/case/and/or/let/let*/letrec/do) are handled directly
// here instead, per parser.go's expand doc comment.
//

// additional well-known symbols recognized only by Eval.
var (
	condSym    = Symbol("cond")
	caseSym    = Symbol("case")
	andSym     = Symbol("and")
	orSym      = Symbol("or")
	letSym     = Symbol("let")
	letStarSym = Symbol("let*")
	letrecSym  = Symbol("letrec")
	doSym      = Symbol("do")
	elseSym    = Symbol("else")
	arrowSym   = Symbol("=>")
)

// Eval evaluates ast in env and returns its value, or a SchemeError
// describing why it could not be evaluated (§4.E, §7).
func Eval(ast interface{}, env *Environment) (interface{}, *SchemeError) {
outer:
	for {
		switch x := ast.(type) {
		case Symbol:
			return env.Lookup(x)
		case *Pair:
			if x == nil {
				return theEmptyList, nil
			}
			if sym, issym := x.First().(Symbol); issym {
				switch sym {
				case quoteSym:
					return x.Second(), nil

				case ifSym:
					test, err := Eval(x.Second(), env)
					if err != nil {
						return nil, err
					}
					if truthy(test) {
						ast = x.Third()
					} else {
						ast = x.RestPair().RestPair().RestPair().First()
					}
					continue outer

				case setSym:
					name := x.Second().(Symbol)
					val, err := Eval(x.Third(), env)
					if err != nil {
						return nil, err
					}
					if err := env.Set(name, val); err != nil {
						return nil, err
					}
					return theUnspecified, nil

				case defineSym:
					name := x.Second().(Symbol)
					val, err := Eval(x.Third(), env)
					if err != nil {
						return nil, err
					}
					if closure, ok := val.(*Closure); ok && closure.Name == "" {
						closure.Name = name
					}
					env.Define(name, val)
					return theUnspecified, nil

				case lambdaSym:
					return NewClosure(x.Second(), x.Third(), env), nil

				case beginSym:
					body := x.RestPair()
					if body == nil {
						return theUnspecified, nil
					}
					for body.RestPair() != nil {
						if _, err := Eval(body.First(), env); err != nil {
							return nil, err
						}
						body = body.RestPair()
					}
					ast = body.First()
					continue outer

				case condSym:
					next, nextEnv, val, done, err := evalCond(x.RestPair(), env)
					if err != nil {
						return nil, err
					}
					if done {
						return val, nil
					}
					ast, env = next, nextEnv
					continue outer

				case caseSym:
					key, err := Eval(x.Second(), env)
					if err != nil {
						return nil, err
					}
					next, val, done, err := evalCase(key, x.RestPair().RestPair())
					if err != nil {
						return nil, err
					}
					if done {
						return val, nil
					}
					ast = next
					continue outer

				case andSym:
					operands := x.RestPair()
					if operands == nil {
						return true, nil
					}
					for operands.RestPair() != nil {
						v, err := Eval(operands.First(), env)
						if err != nil {
							return nil, err
						}
						if !truthy(v) {
							return v, nil
						}
						operands = operands.RestPair()
					}
					ast = operands.First()
					continue outer

				case orSym:
					operands := x.RestPair()
					if operands == nil {
						return false, nil
					}
					for operands.RestPair() != nil {
						v, err := Eval(operands.First(), env)
						if err != nil {
							return nil, err
						}
						if truthy(v) {
							return v, nil
						}
						operands = operands.RestPair()
					}
					ast = operands.First()
					continue outer

				case letSym:
					next, nextEnv, err := evalLet(x, env)
					if err != nil {
						return nil, err
					}
					ast, env = next, nextEnv
					continue outer

				case letStarSym:
					next, nextEnv, err := evalLetStar(x, env)
					if err != nil {
						return nil, err
					}
					ast, env = next, nextEnv
					continue outer

				case letrecSym:
					next, nextEnv, err := evalLetrec(x, env)
					if err != nil {
						return nil, err
					}
					ast, env = next, nextEnv
					continue outer

				case doSym:
					next, nextEnv, val, done, err := evalDo(x, env)
					if err != nil {
						return nil, err
					}
					if done {
						return val, nil
					}
					ast, env = next, nextEnv
					continue outer
				}
			}

			// ordinary application: evaluate operator and operands,
			// then tail-call into a Closure's body or invoke a Builtin.
			opVal, err := Eval(x.First(), env)
			if err != nil {
				return nil, err
			}
			args, err := evalArgs(x.RestPair(), env)
			if err != nil {
				return nil, err
			}
			switch p := opVal.(type) {
			case *Closure:
				newEnv, aerr := p.Params.bind(args, p.Env)
				if aerr != nil {
					return nil, aerr
				}
				ast, env = p.Body, newEnv
				continue outer
			case *Builtin:
				return Apply(p, args)
			default:
				return nil, NewSchemeError(TypeError, "not a procedure: "+Write(opVal))
			}

		default:
			// self-evaluating: numbers, strings, booleans, characters,
			// the empty list, the unspecified value (§3).
			return ast, nil
		}
	}
}

// evalArgs evaluates every element of a proper argument list in env.
func evalArgs(p *Pair, env *Environment) ([]interface{}, *SchemeError) {
	args := make([]interface{}, 0, p.Len())
	for p != nil {
		v, err := Eval(p.First(), env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		p = p.RestPair()
	}
	return args, nil
}

// wrapBegin turns a proper list of body forms into a single
// expression, wrapping multiple forms in (begin ...), matching the
// way expand prepares a lambda body (§4.E).
func wrapBegin(body *Pair) interface{} {
	if body == nil {
		return theUnspecified
	}
	if body.RestPair() == nil {
		return body.First()
	}
	return Cons(beginSym, wrapRest(body))
}

// evalCond evaluates a cond form's clauses in order (§4.E). It
// returns either (done=true, val) when a clause's test fails to match
// any remaining clause or yields a value directly, or (done=false,
// next, nextEnv) to continue Eval's trampoline in tail position on the
// matching clause's body.
func evalCond(clauses *Pair, env *Environment) (interface{}, *Environment, interface{}, bool, *SchemeError) {
	for c := clauses; c != nil; c = c.RestPair() {
		clause, ok := c.First().(*Pair)
		if !ok || clause == nil {
			return nil, nil, nil, false, NewSchemeError(ParseError, "cond: malformed clause: "+Write(c.First()))
		}
		if sym, issym := clause.First().(Symbol); issym && sym == elseSym {
			return wrapBegin(clause.RestPair()), env, nil, false, nil
		}
		test, err := Eval(clause.First(), env)
		if err != nil {
			return nil, nil, nil, false, err
		}
		if !truthy(test) {
			continue
		}
		rest := clause.RestPair()
		if rest == nil {
			return nil, nil, test, true, nil
		}
		if sym, issym := rest.First().(Symbol); issym && sym == arrowSym {
			proc, err := Eval(rest.Second(), env)
			if err != nil {
				return nil, nil, nil, false, err
			}
			val, err := Apply(proc, []interface{}{test})
			if err != nil {
				return nil, nil, nil, false, err
			}
			return nil, nil, val, true, nil
		}
		return wrapBegin(rest), env, nil, false, nil
	}
	return nil, nil, theUnspecified, true, nil
}

// evalCase evaluates a case form's clauses against an already-
// evaluated key (§4.E), returning either (done=true, val) or
// (done=false, next) for the trampoline to continue on.
func evalCase(key interface{}, clauses *Pair) (interface{}, interface{}, bool, *SchemeError) {
	for c := clauses; c != nil; c = c.RestPair() {
		clause, ok := c.First().(*Pair)
		if !ok || clause == nil {
			return nil, nil, false, NewSchemeError(ParseError, "case: malformed clause: "+Write(c.First()))
		}
		if sym, issym := clause.First().(Symbol); issym && sym == elseSym {
			return wrapBegin(clause.RestPair()), nil, false, nil
		}
		datums, _ := clause.First().(*Pair)
		for d := datums; d != nil; d = d.RestPair() {
			if Eqv(key, d.First()) {
				return wrapBegin(clause.RestPair()), nil, false, nil
			}
		}
	}
	return nil, theUnspecified, true, nil
}

// evalLet evaluates an ordinary or named let (§4.E), returning the
// body expression and environment for the trampoline to continue on.
func evalLet(x *Pair, env *Environment) (interface{}, *Environment, *SchemeError) {
	if name, isname := x.Second().(Symbol); isname {
		bindings, _ := x.Third().(*Pair)
		body := x.RestPair().RestPair().RestPair()
		loopEnv := env.Extend()
		var names []Symbol
		var args []interface{}
		for b := bindings; b != nil; b = b.RestPair() {
			bp := b.First().(*Pair)
			names = append(names, bp.First().(Symbol))
			v, err := Eval(bp.Second(), env)
			if err != nil {
				return nil, nil, err
			}
			args = append(args, v)
		}
		closure := &Closure{
			Name:   name,
			Params: ParamSpec{Kind: ParamFixed, Names: names},
			Body:   wrapBegin(body),
			Env:    loopEnv,
		}
		loopEnv.Define(name, closure)
		callEnv, err := closure.Params.bind(args, loopEnv)
		if err != nil {
			return nil, nil, err
		}
		return closure.Body, callEnv, nil
	}

	bindings, _ := x.Second().(*Pair)
	body := x.RestPair().RestPair()
	newEnv := env.Extend()
	for b := bindings; b != nil; b = b.RestPair() {
		bp := b.First().(*Pair)
		v, err := Eval(bp.Second(), env)
		if err != nil {
			return nil, nil, err
		}
		newEnv.Define(bp.First().(Symbol), v)
	}
	return wrapBegin(body), newEnv, nil
}

// evalLetStar evaluates let*, whose bindings are evaluated in order,
// each one visible to the inits that follow it (§4.E).
func evalLetStar(x *Pair, env *Environment) (interface{}, *Environment, *SchemeError) {
	bindings, _ := x.Second().(*Pair)
	body := x.RestPair().RestPair()
	cur := env
	for b := bindings; b != nil; b = b.RestPair() {
		bp := b.First().(*Pair)
		v, err := Eval(bp.Second(), cur)
		if err != nil {
			return nil, nil, err
		}
		cur = cur.Extend()
		cur.Define(bp.First().(Symbol), v)
	}
	return wrapBegin(body), cur, nil
}

// evalLetrec evaluates letrec: every name is pre-bound to the letrec
// sentinel so mutually-recursive lambda bodies can close over each
// other, then each init is evaluated with all of the names visible
// (§4.E, §9's Open Question on letrec).
func evalLetrec(x *Pair, env *Environment) (interface{}, *Environment, *SchemeError) {
	bindings, _ := x.Second().(*Pair)
	body := x.RestPair().RestPair()
	newEnv := env.Extend()
	var names []Symbol
	var inits []interface{}
	for b := bindings; b != nil; b = b.RestPair() {
		bp := b.First().(*Pair)
		name := bp.First().(Symbol)
		names = append(names, name)
		inits = append(inits, bp.Second())
		newEnv.Define(name, letrecSentinel)
	}
	for i, name := range names {
		v, err := Eval(inits[i], newEnv)
		if err != nil {
			return nil, nil, err
		}
		if closure, ok := v.(*Closure); ok && closure.Name == "" {
			closure.Name = name
		}
		newEnv.Define(name, v)
	}
	return wrapBegin(body), newEnv, nil
}

// doStep describes one iteration variable of a do loop: its name and
// the expression stepping it to the next iteration's value (§4.E).
type doStep struct {
	name Symbol
	step interface{}
}

// evalDo evaluates R5RS's do loop (§4.E): iteration variables bound
// to inits, stepped each pass, until test becomes true, at which point
// the result expressions (if any) are evaluated in tail position.
func evalDo(x *Pair, env *Environment) (interface{}, *Environment, interface{}, bool, *SchemeError) {
	specs, _ := x.Second().(*Pair)
	testClause, _ := x.Third().(*Pair)
	commands := x.RestPair().RestPair().RestPair()

	newEnv := env.Extend()
	var steps []doStep
	for s := specs; s != nil; s = s.RestPair() {
		sp := s.First().(*Pair)
		name := sp.First().(Symbol)
		init := sp.Second()
		var step interface{} = name
		if sp.Len() >= 3 {
			step = sp.Third()
		}
		v, err := Eval(init, env)
		if err != nil {
			return nil, nil, nil, false, err
		}
		newEnv.Define(name, v)
		steps = append(steps, doStep{name, step})
	}

	for {
		testVal, err := Eval(testClause.First(), newEnv)
		if err != nil {
			return nil, nil, nil, false, err
		}
		if truthy(testVal) {
			results := testClause.RestPair()
			if results == nil {
				return nil, nil, theUnspecified, true, nil
			}
			return wrapBegin(results), newEnv, nil, false, nil
		}
		for c := commands; c != nil; c = c.RestPair() {
			if _, err := Eval(c.First(), newEnv); err != nil {
				return nil, nil, nil, false, err
			}
		}
		nextVals := make([]interface{}, len(steps))
		for i, st := range steps {
			v, err := Eval(st.step, newEnv)
			if err != nil {
				return nil, nil, nil, false, err
			}
			nextVals[i] = v
		}
		stepEnv := env.Extend()
		for i, st := range steps {
			stepEnv.Define(st.name, nextVals[i])
		}
		newEnv = stepEnv
	}
}
