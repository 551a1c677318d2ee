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

// collectTokens drains every token the lexer produces for input.
func collectTokens(input string) []token {
	c := lex("test", input)
	var out []token
	for t := range c {
		out = append(out, t)
	}
	return out
}

func TestLexSimpleList(t *testing.T) {
	toks := collectTokens(`(+ 1 2)`)
	types := make([]tokenType, len(toks))
	for i, tok := range toks {
		types[i] = tok.typ
	}
	assert.Equal(t, []tokenType{
		tokenOpenParen, tokenIdentifier, tokenInteger, tokenInteger, tokenCloseParen, tokenEOF,
	}, types)
}

func TestLexString(t *testing.T) {
	toks := collectTokens(`"hello\nworld"`)
	tok := toks[0]
	assert.Equal(t, tokenString, tok.typ)
	assert.Equal(t, "hello\nworld", tok.contents())
}

func TestLexCharacterLiterals(t *testing.T) {
	cases := map[string]rune{
		`#\a`:       'a',
		`#\space`:   ' ',
		`#\newline`: '\n',
		`#\tab`:     '\t',
	}
	for input, want := range cases {
		toks := collectTokens(input)
		assert.Equal(t, tokenCharacter, toks[0].typ, input)
		runes := []rune(toks[0].val)
		assert.Equal(t, want, runes[len(runes)-1], input)
	}
}

func TestLexBooleans(t *testing.T) {
	toks := collectTokens(`#t #f`)
	assert.Equal(t, tokenBoolean, toks[0].typ)
	assert.Equal(t, tokenBoolean, toks[1].typ)
}

func TestLexQuoteFamily(t *testing.T) {
	toks := collectTokens("' ` , ,@")
	vals := []string{toks[0].val, toks[1].val, toks[2].val, toks[3].val}
	assert.Equal(t, []string{"'", "`", ",", ",@"}, vals)
}

func TestLexNumbers(t *testing.T) {
	cases := map[string]tokenType{
		"42":     tokenInteger,
		"-7":     tokenInteger,
		"3.14":   tokenFloat,
		"3.":     tokenFloat,
		"6e4":    tokenFloat,
		"7.91e+16": tokenFloat,
	}
	for input, want := range cases {
		toks := collectTokens(input)
		assert.Equal(t, want, toks[0].typ, input)
	}
}

func TestLexCommentsIgnored(t *testing.T) {
	toks := collectTokens("; a comment\n42")
	assert.Equal(t, tokenInteger, toks[0].typ)
	assert.Equal(t, "42", toks[0].val)
}

func TestLexUnterminatedStringIsError(t *testing.T) {
	toks := collectTokens(`"oops`)
	assert.Equal(t, tokenError, toks[0].typ)
}
