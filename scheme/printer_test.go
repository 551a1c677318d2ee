//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestPrintCyclicPairTerminates covers §9's "conservative implementation
// may truncate" treatment of cycles introduced via set-cdr!: printing
// must terminate rather than loop forever.
func TestPrintCyclicPairTerminates(t *testing.T) {
	p := NewList(1.0, 2.0, 3.0)
	last := p.RestPair().RestPair()
	last.SetRest(p) // p now points back to itself: (1 2 3 1 2 3 ...)

	done := make(chan string, 1)
	go func() { done <- Write(p) }()

	select {
	case s := <-done:
		assert.Contains(t, s, "...")
	case <-time.After(time.Second):
		t.Fatal("Write did not terminate on a cyclic pair structure")
	}
}

func TestWriteVsDisplayProcedure(t *testing.T) {
	b := NewBuiltin("car", Exact(1), func(args []interface{}) (interface{}, *SchemeError) { return nil, nil })
	assert.Equal(t, "#<procedure car>", Write(b))
	assert.Equal(t, "#<procedure car>", Display(b))
}

func TestDottedPairPrintedWithDotNotation(t *testing.T) {
	assert.Equal(t, "(1 . 2)", Write(Cons(1.0, 2.0)))
	assert.Equal(t, "(1 2 . 3)", Write(Cons(1.0, Cons(2.0, 3.0))))
}

// TestSharedNonCyclicStructurePrintsInFull covers the distinction
// between a true cycle (truncated with "...") and a DAG: the same pair
// appearing twice as siblings, with no cycle back to an ancestor, must
// print both occurrences in full rather than truncating the second.
func TestSharedNonCyclicStructurePrintsInFull(t *testing.T) {
	shared := NewList(1.0, 2.0)
	outer := NewList(shared, shared)
	assert.Equal(t, "((1 2) (1 2))", Write(outer))
}
