//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verifyRun takes a map of source text to expected last-result printed
// forms, running each through a fresh Context (teacher's
// verifyInterpret/verifyExpandMap map-driven style, liswat/parser_test.go).
func verifyRun(t *testing.T, inputs map[string]string) {
	for source, expected := range inputs {
		ctx := New()
		result := ctx.Run(source)
		assert.Equal(t, expected, result, "Run(%q)", source)
	}
}

// TestScenarios exercises the §8 "Concrete scenarios" table verbatim.
func TestScenarios(t *testing.T) {
	verifyRun(t, map[string]string{
		`(define (sum-to n) (if (= n 0) 0 (+ n (sum-to (sub1 n))))) (sum-to 5)`: "15",
		`(let loop ((numbers '(3 -2 1 6 -5)) (nonneg '()) (neg '()))
		   (cond ((null? numbers) (list nonneg neg))
		         ((>= (car numbers) 0) (loop (cdr numbers) (cons (car numbers) nonneg) neg))
		         (else (loop (cdr numbers) nonneg (cons (car numbers) neg)))))`: "((6 1 3) (-5 -2))",
		`(define p (cons 1 2)) (set-car! p 99) p`: "(99 . 2)",
		`(define (mk) (let ((x 0)) (lambda () (set! x (+ x 1)) x))) (define c (mk)) (c) (c) (c)`: "3",
		`(define (gcd a b) (if (zero? b) a (gcd b (remainder a b)))) (gcd 54 24)`:                  "6",
		"`(1 ,(+ 1 1) ,@(list 3 4) 5)":                                                              "(1 2 3 4 5)",
	})
}

// TestTailRecursionDoesNotOverflow exercises §8 invariant 4: a
// tail-recursive procedure with a large driving input completes in
// constant Go stack space via Eval's trampoline.
func TestTailRecursionDoesNotOverflow(t *testing.T) {
	ctx := New()
	result := ctx.Run(`
		(define (count-to n acc)
		  (if (= n acc) acc (count-to n (+ acc 1))))
		(count-to 200000 0)
	`)
	assert.Equal(t, "200000", result)
}

// TestPartialSideEffectsPersistAcrossForms covers §7: an error in a
// later top-level form does not undo an earlier form's define.
func TestPartialSideEffectsPersistAcrossForms(t *testing.T) {
	ctx := New()
	ctx.Run(`(define x 42)`)
	result := ctx.Run(`(car x)`)
	assert.Contains(t, result, "wrong type")
	again := ctx.Run(`x`)
	assert.Equal(t, "42", again)
}

// TestDisplayOutputIsBuffered verifies display/displayln/newline write
// to the Context's drainable output buffer rather than directly to any
// process-wide stream (§4.H, §6).
func TestDisplayOutputIsBuffered(t *testing.T) {
	ctx := New()
	result := ctx.Run(`(display "hello") (displayln " world") (newline) 7`)
	assert.Equal(t, "7", result)
	assert.Equal(t, "hello world\n\n", ctx.Output())
	assert.Equal(t, "", ctx.Output(), "Output should drain")
}

// TestErrorReporting checks that each phase's failure surfaces as a
// readable diagnostic string rather than a panic (§7).
func TestErrorReporting(t *testing.T) {
	cases := map[string]string{
		`(`:                 "unclosed list",
		`)`:                 "unexpected )",
		`unbound-name`:       "unbound variable",
		`(car '())`:          "wrong type",
		`((lambda (x) x))`:   "wrong number of arguments",
		`(/ 1 0)`:            "division by zero",
		`"unterminated`:      "unterminated string",
	}
	for source, expectedSubstr := range cases {
		ctx := New()
		result := ctx.Run(source)
		assert.Contains(t, result, expectedSubstr, "Run(%q)", source)
	}
}

// TestDefineMacro covers the supplemented define-macro feature
// (SPEC_FULL.md "Supplemented features").
func TestDefineMacro(t *testing.T) {
	ctx := New()
	result := ctx.Run(`
		(define-macro my-unless
		  (lambda (test body) (list 'if test (list 'quote 'unspecified) body)))
		(my-unless #f (+ 1 2))
	`)
	assert.Equal(t, "3", result)
}

// TestDefineMacroPersistsAcrossRunCalls covers §5: a macro, like any
// other binding, survives from one Run call to the next on the same
// Context (it is not reset or rediscovered per call).
func TestDefineMacroPersistsAcrossRunCalls(t *testing.T) {
	ctx := New()
	ctx.Run(`(define-macro my-unless
	            (lambda (test body) (list 'if test (list 'quote 'unspecified) body)))`)
	result := ctx.Run(`(my-unless #f (+ 1 2))`)
	assert.Equal(t, "3", result)
}

// TestRunAll covers the batch host convenience (§5: independent
// Contexts may be driven concurrently).
func TestRunAll(t *testing.T) {
	jobs := []Job{
		{Ctx: New(), Source: "(+ 1 2)"},
		{Ctx: New(), Source: "(* 6 7)"},
		{Ctx: New(), Source: "(define x 10) (* x x)"},
		{Ctx: New(), Source: `(define-macro my-unless
		                         (lambda (test body) (list 'if test (list 'quote 'unspecified) body)))
		                       (my-unless #f 99)`},
	}
	results, err := RunAll(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, "3", results[0].Output)
	assert.Equal(t, "42", results[1].Output)
	assert.Equal(t, "100", results[2].Output)
	assert.Equal(t, "99", results[3].Output)
}

// TestContextsAreIndependent covers §5: defining a name in one
// Context must not be visible in another.
func TestContextsAreIndependent(t *testing.T) {
	a := New()
	b := New()
	a.Run(`(define secret 1)`)
	result := b.Run(`secret`)
	assert.Contains(t, result, "unbound variable")
}

// TestMacrosAreIndependentAcrossContexts covers §5's independence
// guarantee for the macro table specifically: a define-macro run in
// one Context must not change how another Context expands forms. This
// is also what keeps RunAll's concurrent Contexts (above) from racing
// a shared map.
func TestMacrosAreIndependentAcrossContexts(t *testing.T) {
	a := New()
	b := New()
	a.Run(`(define-macro my-unless
	          (lambda (test body) (list 'if test (list 'quote 'unspecified) body)))`)
	result := b.Run(`(my-unless #f 1)`)
	assert.Contains(t, result, "unbound variable", "my-unless must not be visible outside the Context that defined it")
}

// TestContextID covers the uuid-based identity option.
func TestContextID(t *testing.T) {
	a := New()
	b := New()
	assert.NotEqual(t, a.ID(), b.ID())
}
