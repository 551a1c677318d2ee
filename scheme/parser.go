//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

//
// Parser for Scheme, which turns tokens from the lexer into a tree of
// Pair-based expressions to be evaluated (§4.B). A subsequent expand
// pass normalizes a handful of special forms (quote arity, if's
// missing alternate, define's procedure sugar, lambda's multi-body
// wrapping, quasiquote) following the teacher's liswat/parser.go.
//

import (
	"strconv"
)

// well-known symbols used by the reader/expander/evaluator.
var (
	quoteSym           = Symbol("quote")
	quasiquoteSym      = Symbol("quasiquote")
	unquoteSym         = Symbol("unquote")
	unquotesplicingSym = Symbol("unquote-splicing")
	ifSym              = Symbol("if")
	setSym             = Symbol("set!")
	defineSym          = Symbol("define")
	definemacroSym     = Symbol("define-macro")
	lambdaSym          = Symbol("lambda")
	beginSym           = Symbol("begin")
	appendSym          = Symbol("append")
	consSym            = Symbol("cons")
)

// ParseAll reads every top-level form out of source, in order,
// expanding each one, and returns the resulting ASTs ready for Eval.
// Empty input yields an empty, non-nil slice (§4.B). macroEnv holds
// any define-macro transformers already defined in this Context (and
// receives any new ones defined by source) — it is never shared across
// Contexts (§5), unlike the teacher's single package-level macro table.
// A caller with no Context of its own (e.g. an embedding test) can
// pass a fresh NewMacroEnv().
func ParseAll(source string, macroEnv *Environment) ([]interface{}, *SchemeError) {
	c := lex("source", source)
	forms := make([]interface{}, 0)
	for {
		t, ok := <-c
		if !ok {
			return nil, NewSchemeError(ReadError, "unexpected end of lexer stream")
		}
		if t.typ == tokenEOF {
			return forms, nil
		}
		raw, err := parserRead(t, c)
		if err != nil {
			return nil, err
		}
		expanded, err := expand(raw, true, macroEnv)
		if err != nil {
			return nil, err
		}
		if expanded != nil {
			forms = append(forms, expanded)
		}
	}
}

// parseNext reads one complete expression from the token channel.
func parseNext(c chan token) (interface{}, *SchemeError) {
	t, ok := <-c
	if !ok {
		return nil, NewSchemeError(ReadError, "unexpected end of lexer stream")
	}
	if t.typ == tokenEOF {
		return nil, NewSchemeError(ReadError, "unexpected EOF")
	}
	return parserRead(t, c)
}

// parserRead reads a complete expression from the channel of tokens,
// starting with the initial token value provided.
func parserRead(t token, c chan token) (interface{}, *SchemeError) {
	switch t.typ {
	case tokenError:
		return nil, NewSchemeErrorAt(ReadError, t.pos, t.val)
	case tokenEOF:
		return nil, NewSchemeErrorAt(ReadError, t.pos, "unexpected EOF in list")
	case tokenOpenParen:
		return parseList(c, t.pos)
	case tokenCloseParen:
		return nil, NewSchemeErrorAt(ParseError, t.pos, "unexpected )")
	case tokenDot:
		return nil, NewSchemeErrorAt(ParseError, t.pos, "unexpected .")
	case tokenString:
		return t.contents(), nil
	case tokenInteger, tokenFloat:
		return atof(t.val, t.pos)
	case tokenBoolean:
		return len(t.val) == 2 && (t.val[1] == 't' || t.val[1] == 'T'), nil
	case tokenCharacter:
		runes := []rune(t.val)
		if len(runes) != 3 {
			return nil, NewSchemeErrorAt(ReadError, t.pos, "unrecognized character: "+t.val)
		}
		return Character(runes[2]), nil
	case tokenQuote:
		var quote Symbol
		switch t.val {
		case "'":
			quote = quoteSym
		case "`":
			quote = quasiquoteSym
		case ",":
			quote = unquoteSym
		case ",@":
			quote = unquotesplicingSym
		default:
			return nil, NewSchemeErrorAt(ParseError, t.pos, "unrecognized quote: "+t.val)
		}
		datum, err := parseNext(c)
		if err != nil {
			return nil, err
		}
		return NewList(quote, datum), nil
	case tokenIdentifier:
		return Symbol(t.val), nil
	}
	return nil, NewSchemeErrorAt(ParseError, t.pos, "unrecognized token")
}

// parseList reads the elements of a parenthesized form, handling
// proper lists and the dotted-pair form (a b . c).
func parseList(c chan token, openPos int) (interface{}, *SchemeError) {
	var list *Pair
	for {
		t, ok := <-c
		if !ok {
			return nil, NewSchemeErrorAt(ReadError, openPos, "unexpected end of lexer stream")
		}
		if t.typ == tokenCloseParen {
			return wrapRest(list), nil
		}
		if t.typ == tokenEOF {
			return nil, NewSchemeErrorAt(ReadError, openPos, "unclosed list")
		}
		if t.typ == tokenDot {
			if list == nil {
				return nil, NewSchemeErrorAt(ParseError, t.pos, "dot must follow at least one element")
			}
			tail, err := parseNext(c)
			if err != nil {
				return nil, err
			}
			closeTok, ok := <-c
			if !ok || closeTok.typ != tokenCloseParen {
				return nil, NewSchemeErrorAt(ParseError, t.pos, "malformed dotted list")
			}
			setTail(list, tail)
			return list, nil
		}
		val, err := parserRead(t, c)
		if err != nil {
			return nil, err
		}
		if list == nil {
			list = NewPair(val)
		} else {
			list.Append(val)
		}
	}
}

// setTail replaces the cdr of the last cell of list with tail,
// producing a dotted list (a b . tail).
func setTail(list *Pair, tail interface{}) {
	last := list
	for last.RestPair() != nil {
		last = last.RestPair()
	}
	last.SetRest(tail)
}

// atof parses a decimal numeric literal (§4.A). Every Scheme number in
// this implementation is a double-precision float (§3: "Numbers are
// represented as double-precision floats with integer-predicate
// awareness"); a literal written without a decimal point or exponent
// is simply a float that happens to have no fractional part.
func atof(text string, pos int) (float64, *SchemeError) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, wrapSchemeErrorAt(ReadError, pos, err, "invalid numeric literal: "+text)
	}
	return v, nil
}

// expandListSafely applies expand to every element of list, threading
// any *SchemeError back out through a panic/recover since Pair.Map's
// callback signature has no error return of its own.
func expandListSafely(list *Pair, toplevel bool, macroEnv *Environment) (val *Pair, err *SchemeError) {
	if list == nil {
		return nil, nil
	}
	expandWithPanic := func(x interface{}) interface{} {
		val, err := expand(x, toplevel, macroEnv)
		if err != nil {
			panic(err)
		}
		return val
	}
	defer func() {
		if e := recover(); e != nil {
			val = nil
			err = e.(*SchemeError)
		}
	}()
	return list.Map(expandWithPanic), nil
}

// expand walks the raw parsed tree, normalizing a handful of special
// forms and reporting syntax errors the parser itself cannot catch
// (arity of if/set!/quote/lambda/define, lambda parameter shapes),
// expanding quasiquote into cons/append/quote application, and
// expanding user-defined macros (§"Supplemented features"). Forms
// not recognized here (cond, case, and, or, let, let*, letrec, do,
// named let) are not rewritten themselves, only their subforms are
// expanded, and they are dispatched directly by Eval.
// macroEnv is the Context-owned scope that holds define-macro
// transformers (see ParseAll); it is threaded through every recursive
// call so macro state never leaks between Contexts.
func expand(x interface{}, toplevel bool, macroEnv *Environment) (interface{}, *SchemeError) {
	pair, ispair := x.(*Pair)
	if !ispair || pair == nil {
		return x, nil
	}
	head := pair.First()
	if sym, issym := head.(Symbol); issym {
		switch sym {
		case quoteSym:
			if pair.Len() != 2 {
				return nil, newParserError(ParseError, pair, "quote requires exactly one datum")
			}
			return pair, nil

		case ifSym:
			if pair.Len() == 3 {
				// a missing alternate evaluates to Unspecified, not ()
				// (§4.E: "eval e (tail) or Unspecified").
				pair.Append(theUnspecified)
			}
			if pair.Len() != 4 {
				return nil, newParserError(ParseError, pair, "if requires 2 or 3 operands")
			}
			return expandListSafely(pair, false, macroEnv)

		case setSym:
			if pair.Len() != 3 {
				return nil, newParserError(ParseError, pair, "set! requires exactly 2 operands")
			}
			name := pair.Second()
			if _, ok := name.(Symbol); !ok {
				return nil, newParserError(ParseError, name, "set! target must be a symbol")
			}
			val, err := expand(pair.Third(), false, macroEnv)
			if err != nil {
				return nil, err
			}
			return NewList(setSym, name, val), nil

		case defineSym, definemacroSym:
			if pair.Len() < 3 {
				return nil, newParserError(ParseError, pair, "define requires a name/signature and a value")
			}
			target := pair.Second()
			if sig, islist := target.(*Pair); islist && sig.Len() > 0 {
				// (define (f args...) body...) => (define f (lambda (args...) body...))
				name, params := sig.First(), sig.RestPair()
				body, _ := Cxr2("cddr", pair).(*Pair)
				lambda := NewList(lambdaSym, wrapRest(params))
				lambda.Join(body)
				return expand(NewList(sym, name, lambda), toplevel, macroEnv)
			}
			name, issym := target.(Symbol)
			if !issym {
				return nil, newParserError(ParseError, target, "define target must be a symbol or signature")
			}
			val, err := expand(pair.Third(), false, macroEnv)
			if err != nil {
				return nil, err
			}
			if sym == definemacroSym {
				if !toplevel {
					return nil, newParserError(ParseError, pair, "define-macro only allowed at top level")
				}
				proc, evalErr := Eval(val, macroEnv)
				if evalErr != nil {
					return nil, evalErr
				}
				closure, isclosure := proc.(*Closure)
				if !isclosure {
					return nil, newParserError(TypeError, pair, "define-macro value must be a procedure")
				}
				macroEnv.Define(name, closure)
				return nil, nil
			}
			return NewList(defineSym, name, val), nil

		case beginSym:
			if pair.Len() == 1 {
				return nil, nil
			}
			return expandListSafely(pair, toplevel, macroEnv)

		case lambdaSym:
			if pair.Len() < 3 {
				return nil, newParserError(ParseError, pair, "lambda requires a parameter list and a body")
			}
			params := pair.Second()
			if err := checkParamShape(params); err != nil {
				return nil, err
			}
			body := Cxr2("cddr", pair)
			bp, isbp := body.(*Pair)
			if !isbp || bp == nil {
				return nil, newParserError(ParseError, pair, "lambda body must be non-empty")
			}
			var wrapped interface{}
			if bp.Len() == 1 {
				wrapped = bp.First()
			} else {
				wrapped = Cons(beginSym, wrapRest(bp))
			}
			wrapped, err := expand(wrapped, false, macroEnv)
			if err != nil {
				return nil, err
			}
			return NewList(lambdaSym, params, wrapped), nil

		case quasiquoteSym:
			if pair.Len() != 2 {
				return nil, newParserError(ParseError, pair, "quasiquote requires exactly one datum")
			}
			return expandQuasiquote(pair.Second())

		default:
			if entry, ok := macroEnv.vars[sym]; ok {
				if macro, isclosure := entry.(*Closure); isclosure {
					result, err := Apply(macro, pair.RestPair().Slice())
					if err != nil {
						return nil, err
					}
					return expand(result, toplevel, macroEnv)
				}
			}
		}
	}
	return expandListSafely(pair, false, macroEnv)
}

// checkParamShape validates that a lambda's parameter spec is a
// proper list of symbols, a dotted list of symbols, or a single
// symbol (§4.E: Fixed / Mixed / Variadic).
func checkParamShape(params interface{}) *SchemeError {
	switch p := params.(type) {
	case Symbol:
		return nil
	case emptyListType:
		return nil
	case *Pair:
		cur := interface{}(p)
		for {
			pp, ok := cur.(*Pair)
			if !ok {
				if _, issym := cur.(Symbol); issym || isNull(cur) {
					return nil
				}
				return NewSchemeError(ParseError, "lambda parameters must be symbols")
			}
			if _, issym := pp.first.(Symbol); !issym {
				return NewSchemeError(ParseError, "lambda parameters must be symbols")
			}
			cur = pp.rest
		}
	default:
		return NewSchemeError(ParseError, "lambda parameters must be a list or a symbol")
	}
}

// expandQuasiquote implements quasiquotation (§4.E): literal data by
// default, (unquote x) evaluates x, (unquote-splicing x) inside a
// list splices x's elements into the surrounding list. Expressed, per
// the teacher's approach, as ordinary cons/append/quote application
// rather than as an evaluator special form.
func expandQuasiquote(x interface{}) (interface{}, *SchemeError) {
	pair, ispair := x.(*Pair)
	if !ispair || pair == nil {
		return NewList(quoteSym, x), nil
	}
	if sym, issym := pair.First().(Symbol); issym && sym == unquoteSym {
		if pair.Len() != 2 {
			return nil, newParserError(ParseError, pair, "unquote requires exactly one operand")
		}
		return pair.Second(), nil
	}
	if sym, issym := pair.First().(Symbol); issym && sym == unquotesplicingSym {
		return nil, newParserError(ParseError, pair, "unquote-splicing not valid here")
	}
	if head, ok := pair.First().(*Pair); ok && head != nil {
		if sym, issym := head.First().(Symbol); issym && sym == unquotesplicingSym {
			if head.Len() != 2 {
				return nil, newParserError(ParseError, head, "unquote-splicing requires exactly one operand")
			}
			restExpanded, err := expandQuasiquote(pair.RestPair())
			if err != nil {
				return nil, err
			}
			return NewList(appendSym, head.Second(), restExpanded), nil
		}
	}
	firstExpanded, err := expandQuasiquote(pair.First())
	if err != nil {
		return nil, err
	}
	restExpanded, err := expandQuasiquote(pair.RestPair())
	if err != nil {
		return nil, err
	}
	return NewList(consSym, firstExpanded, restExpanded), nil
}

// Cxr2 is a small convenience wrapper over Cxr that returns the empty
// list instead of an error when the accessor does not apply, used
// only in expand() where the callers check the shape of the result
// themselves.
func Cxr2(ops string, x interface{}) interface{} {
	v, err := Cxr(ops, x)
	if err != nil {
		return theEmptyList
	}
	return v
}
