//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

//
// Context is the embedding facade (§4.H, §6): it owns one root
// environment seeded with the prelude, an output buffer that
// display/displayln/newline write into, and identity/logging for the
// host to correlate multiple concurrently-running contexts. Grounded
// on swatcl/interpreter.go's NewInterpreter-then-Evaluate shape,
// generalized with the functional-options constructor idiom and the
// uuid/slog ambient stack described in the project's dependency
// survey.
//

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Context owns one Scheme execution environment: a root frame seeded
// with the prelude, a second frame holding this Context's own
// define-macro transformers, an accumulated output buffer, and
// logging/identity metadata for the host (§4.H, §5: "Multiple Context
// instances are independent and may be used from different host
// threads; they share no mutable state"). macroEnv is why that
// independence extends to macros too: it is never shared with another
// Context, unlike a package-level macro table would be.
type Context struct {
	id       uuid.UUID
	env      *Environment
	macroEnv *Environment
	output   bytes.Buffer
	logger   *slog.Logger
}

// ContextOption configures a Context at construction time.
type ContextOption func(*Context)

// WithLogger overrides the Context's logger. The default is a text
// handler writing to stderr at Warn level, so parse and eval failures
// reported by Run are logged there unless the host supplies a logger.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(c *Context) { c.logger = logger }
}

// WithID overrides the Context's identity, useful for a host that
// wants to correlate a Context with its own session/request IDs.
func WithID(id uuid.UUID) ContextOption {
	return func(c *Context) { c.id = id }
}

// New constructs a Context with a fresh root environment seeded from
// the prelude (§4.G), ready to Run source (§4.H).
func New(opts ...ContextOption) *Context {
	c := &Context{
		id:     uuid.New(),
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.env = NewEnvironment(nil)
	registerBuiltinsWithSink(c.env, func(s string) { c.output.WriteString(s) })
	c.macroEnv = NewMacroEnv()
	return c
}

// ID returns the Context's identity.
func (c *Context) ID() uuid.UUID {
	return c.id
}

// Run reads, parses, and evaluates every top-level form in source in
// order against the Context's root environment, returning the
// printable representation of the last form's value (§4.H). The whole
// of source is read and expanded before any form is evaluated, so a
// read or parse error anywhere in it is returned before any of its
// forms run. An evaluation error aborts the current top-level form;
// per §7, the defines/mutations of the forms evaluated before it
// persist. Either kind of error is returned as a human-readable
// diagnostic string.
func (c *Context) Run(source string) string {
	forms, err := ParseAll(source, c.macroEnv)
	if err != nil {
		c.logger.Warn("parse failed", "context", c.id, "error", err.Error())
		return err.Error()
	}
	var last interface{} = theUnspecified
	for _, form := range forms {
		val, evalErr := Eval(form, c.env)
		if evalErr != nil {
			c.logger.Warn("eval failed", "context", c.id, "error", evalErr.Error())
			return evalErr.Error()
		}
		last = val
	}
	return Write(last)
}

// Output drains and returns the output accumulated so far by
// display/displayln/newline (§6).
func (c *Context) Output() string {
	s := c.output.String()
	c.output.Reset()
	return s
}
