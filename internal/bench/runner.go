// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"

	"github.com/staranto/nthprime/internal/prime"
)

// Result is one timed finder call.
type Result struct {
	Phase   string        `json:"phase" yaml:"phase"`
	Method  string        `json:"method" yaml:"method"`
	N       uint32        `json:"n" yaml:"n"`
	Prime   uint32        `json:"prime" yaml:"prime"`
	Ms      int64         `json:"ms" yaml:"ms"`
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
}

// Runner executes a Plan. Hooks are optional and fire synchronously on the
// calling goroutine; they are never timed.
type Runner struct {
	// Now defaults to time.Now. Tests replace it with a fake clock.
	Now func() time.Time
	// Finder defaults to prime.Finder.
	Finder func(prime.Method) (prime.Func, error)

	OnWarmup     func(Plan)
	OnPhaseStart func(Phase)
	OnResult     func(Result)
}

// NewRunner returns a Runner that uses the real clock and finders.
func NewRunner() *Runner {
	return &Runner{
		Now:    time.Now,
		Finder: prime.Finder,
	}
}

// Run executes the plan and returns one Result per timed call, in order. The
// context is checked between calls; a running finder is never interrupted.
func (r *Runner) Run(ctx context.Context, plan Plan) ([]Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	now := r.Now
	if now == nil {
		now = time.Now
	}
	finder := r.Finder
	if finder == nil {
		finder = prime.Finder
	}

	if plan.WarmupMethod != "" {
		fn, err := finder(plan.WarmupMethod)
		if err != nil {
			return nil, err
		}
		if r.OnWarmup != nil {
			r.OnWarmup(plan)
		}
		log.Debugf("warm-up: %s(%d)", plan.WarmupMethod, plan.WarmupN)
		fn(plan.WarmupN)
	}

	var results []Result
	for _, ph := range plan.Phases {
		if r.OnPhaseStart != nil {
			r.OnPhaseStart(ph)
		}

		for _, m := range ph.Methods {
			if err := ctx.Err(); err != nil {
				return results, fmt.Errorf("benchmark interrupted: %w", err)
			}

			fn, err := finder(m)
			if err != nil {
				return results, err
			}

			start := now()
			p := fn(ph.N)
			elapsed := now().Sub(start)

			res := Result{
				Phase:   ph.Name,
				Method:  m.String(),
				N:       ph.N,
				Prime:   p,
				Ms:      elapsed.Milliseconds(),
				Elapsed: elapsed,
			}

			if want, ok := Known[ph.N]; ok && want != p {
				log.WithFields(log.Fields{
					"method": m,
					"n":      ph.N,
					"got":    p,
					"want":   want,
				}).Warn("finder returned an unexpected prime")
			}
			log.Debugf("%s %s: prime=%d elapsed=%s", ph.Name, m, p, elapsed)

			results = append(results, res)
			if r.OnResult != nil {
				r.OnResult(res)
			}
		}
	}

	return results, nil
}
