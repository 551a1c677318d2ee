//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

//
// Printer for Scheme values, following §4.C's display/write split:
// display prints strings without quotes and characters without the
// #\ prefix, while write quotes/escapes them, for use in REPL output
// vs. machine-readable re-readable output.
//

import (
	"bytes"
	"fmt"
	"strconv"
)

// Display returns the human-readable string form of v (the teacher's
// stringifyBuffer dispatch, split into a display/write pair per §4.C).
func Display(v interface{}) string {
	buf := new(bytes.Buffer)
	printValue(v, buf, false, make(map[*Pair]bool))
	return buf.String()
}

// Write returns the machine-readable, re-readable string form of v.
func Write(v interface{}) string {
	buf := new(bytes.Buffer)
	printValue(v, buf, true, make(map[*Pair]bool))
	return buf.String()
}

func writePair(p *Pair, buf *bytes.Buffer) {
	printValue(p, buf, true, make(map[*Pair]bool))
}

// printValue writes the printed form of v into buf. write controls
// whether strings/characters are quoted/named (write) or not
// (display). seen detects cycles introduced by set-car!/set-cdr! so
// that printing terminates (§9: "a conservative implementation may
// truncate or detect and mark").
func printValue(v interface{}, buf *bytes.Buffer, write bool, seen map[*Pair]bool) {
	switch x := v.(type) {
	case nil:
		buf.WriteString("#<unspecified>")
	case emptyListType:
		buf.WriteString("()")
	case unspecifiedType:
		// nothing to print; callers typically suppress this entirely
	case letrecSentinelType:
		buf.WriteString("#<undefined>")
	case bool:
		if x {
			buf.WriteString("#t")
		} else {
			buf.WriteString("#f")
		}
	case Symbol:
		buf.WriteString(string(x))
	case Character:
		if write {
			buf.WriteString(x.String())
		} else {
			buf.WriteRune(rune(x))
		}
	case string:
		if write {
			buf.WriteString(strconv.Quote(x))
		} else {
			buf.WriteString(x)
		}
	case float64:
		buf.WriteString(formatFloat(x))
	case *Pair:
		printPair(x, buf, write, seen)
	case *Closure:
		buf.WriteString(x.String())
	case *Builtin:
		buf.WriteString(x.String())
	default:
		fmt.Fprintf(buf, "%v", x)
	}
}

// formatFloat renders a float64 the way Scheme expects integral
// values to look (no trailing .0 is required by the spec, but the
// teacher's own tests — TestParseExprNumbers's "3." -> "3" — expect
// whole numbers printed without a fractional part when exactly
// representable, while still printing genuine fractions normally).
func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// printPair marks each pair on its own spine in seen only for the
// duration of this call, unmarking them again on return (via marked).
// That way a cycle still reachable from further down the same spine
// (an ancestor still "in progress") gets truncated with "...", but a
// pair that was already fully printed and finished — reused elsewhere
// as shared, non-cyclic structure — does not get mistaken for one.
func printPair(p *Pair, buf *bytes.Buffer, write bool, seen map[*Pair]bool) {
	buf.WriteString("(")
	first := true
	var marked []*Pair
	defer func() {
		for _, m := range marked {
			delete(seen, m)
		}
	}()
	for p != nil {
		if seen[p] {
			buf.WriteString(" ...")
			break
		}
		seen[p] = true
		marked = append(marked, p)
		if !first {
			buf.WriteString(" ")
		}
		first = false
		printValue(p.first, buf, write, seen)
		switch rest := p.rest.(type) {
		case *Pair:
			p = rest
			continue
		case emptyListType:
			p = nil
		default:
			buf.WriteString(" . ")
			printValue(p.rest, buf, write, seen)
			p = nil
		}
	}
	buf.WriteString(")")
}
