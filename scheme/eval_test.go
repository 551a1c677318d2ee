//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runOne evaluates source in a fresh Context and returns what Run
// returns: the printed form of the last top-level result, or the
// diagnostic text of an error.
func runOne(t *testing.T, source string) string {
	t.Helper()
	ctx := New()
	result := ctx.Run(source)
	return result
}

func TestLetLetStarLetrec(t *testing.T) {
	assert.Equal(t, "3", runOne(t, `(let ((a 1) (b 2)) (+ a b))`))
	assert.Equal(t, "7", runOne(t, `(let* ((a 1) (b (+ a 1)) (c (+ b 2))) (+ a b c))`))
	assert.Equal(t, "#t", runOne(t, `
		(letrec ((even? (lambda (n) (if (= n 0) #t (odd? (- n 1)))))
		         (odd?  (lambda (n) (if (= n 0) #f (even? (- n 1))))))
		  (even? 10))`))
}

func TestLetBindsInParallelNotSequentially(t *testing.T) {
	// inner `a` must refer to the outer binding, not the let's own.
	result := runOne(t, `(define a 100) (let ((a 1) (b a)) b)`)
	assert.Equal(t, "100", result)
}

func TestCondElseAndArrow(t *testing.T) {
	assert.Equal(t, "small", runOne(t, `(cond ((> 1 2) 'big) (else 'small))`))
	assert.Equal(t, "10", runOne(t, `(cond (5 => (lambda (n) (* n 2))) (else 0))`))
}

func TestCaseMatchesByEqv(t *testing.T) {
	assert.Equal(t, "weekday", runOne(t, `
		(case 3
		  ((0 6) 'weekend)
		  ((1 2 3 4 5) 'weekday)
		  (else 'unknown))`))
}

func TestAndOrShortCircuit(t *testing.T) {
	assert.Equal(t, "#f", runOne(t, `(and 1 2 #f (/ 1 0))`))
	assert.Equal(t, "#t", runOne(t, `(and)`))
	assert.Equal(t, "5", runOne(t, `(or #f #f 5 (/ 1 0))`))
	assert.Equal(t, "#f", runOne(t, `(or)`))
}

func TestDoLoopSumsToN(t *testing.T) {
	result := runOne(t, `
		(do ((i 0 (+ i 1)) (sum 0 (+ sum i)))
		    ((= i 5) sum))`)
	assert.Equal(t, "10", result)
}

func TestNamedLetIteratesAndCollects(t *testing.T) {
	result := runOne(t, `
		(let loop ((i 0) (acc '()))
		  (if (= i 3) (reverse acc) (loop (+ i 1) (cons i acc))))`)
	assert.Equal(t, "(0 1 2)", result)
}

// TestLexicalScopeSurvivesLaterShadowing covers §8 invariant 3: a
// closure observes the binding at its creation-site environment, and
// is not affected by the caller's later (unrelated) define of the same
// name in a different scope.
func TestLexicalScopeSurvivesLaterShadowing(t *testing.T) {
	ctx := New()
	ctx.Run(`
		(define x 1)
		(define (get-x) x)
	`)
	first := ctx.Run(`(get-x)`)
	assert.Equal(t, "1", first)
	ctx.Run(`(let ((x 999)) x)`) // a sibling scope's binding of x
	second := ctx.Run(`(get-x)`)
	assert.Equal(t, "1", second, "get-x must still see the top-level x")
	ctx.Run(`(set! x 2)`)
	third := ctx.Run(`(get-x)`)
	assert.Equal(t, "2", third, "get-x must observe set!'s mutation of the captured binding")
}

func TestVariadicAndMixedLambda(t *testing.T) {
	assert.Equal(t, "(1 2 3)", runOne(t, `((lambda args args) 1 2 3)`))
	assert.Equal(t, "(1 (2 3))", runOne(t, `((lambda (a . rest) (list a rest)) 1 2 3)`))
}

func TestArityErrorsOnMismatch(t *testing.T) {
	result := runOne(t, `((lambda (a b) (+ a b)) 1)`)
	assert.Contains(t, result, "wrong number of arguments")
}

func TestApplyAndProcedurePredicate(t *testing.T) {
	assert.Equal(t, "6", runOne(t, `(apply + '(1 2 3))`))
	assert.Equal(t, "6", runOne(t, `(apply + 1 2 '(3))`))
	assert.Equal(t, "#t", runOne(t, `(procedure? car)`))
	assert.Equal(t, "#f", runOne(t, `(procedure? 5)`))
}

// TestEvalDirectAPI exercises Eval/Apply directly rather than through
// Context.Run, covering the lower-level embedding surface.
func TestEvalDirectAPI(t *testing.T) {
	env := NewEnvironment(nil)
	registerBuiltins(env)
	forms, err := ParseAll(`(+ 2 3)`, NewMacroEnv())
	require.Nil(t, err)
	val, evalErr := Eval(forms[0], env)
	require.Nil(t, evalErr)
	assert.Equal(t, 5.0, val)
}
