//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package scheme

//
// RunAll is a host convenience for running several independent
// programs concurrently, each against its own Context (§5: "Multiple
// Context instances are independent... they share no mutable state").
// Since a single Context is not safe for concurrent access, batching
// is only meaningful across distinct Contexts, one goroutine each.
//

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job pairs a Context with the source to run in it.
type Job struct {
	Ctx    *Context
	Source string
}

// Result is the outcome of running one Job.
type Result struct {
	Output string
	Err    error
}

// RunAll runs each Job's source against its own Context concurrently,
// returning one Result per Job in the same order as jobs. A failure in
// one Job's goroutine (which should not normally happen — Context.Run
// reports Scheme errors as a string result rather than a Go error)
// does not prevent the others from completing; ctx cancellation stops
// any jobs that have not yet started.
func RunAll(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = Result{Err: gctx.Err()}
				return gctx.Err()
			default:
			}
			results[i] = Result{Output: job.Ctx.Run(job.Source)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
