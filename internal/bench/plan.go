// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/staranto/nthprime/internal/prime"
)

// Phase is a group of methods timed against the same n.
type Phase struct {
	Name    string
	N       uint32
	Methods []prime.Method
}

// Plan is an optional warm-up call followed by the phases, in order.
type Plan struct {
	WarmupMethod prime.Method
	WarmupN      uint32
	Phases       []Phase
}

// Known holds primes the harness checks its results against.
var Known = map[uint32]uint32{
	10000:   104729,
	1000000: 15485863,
}

// DefaultPlan is the classic run: warm up with naive at 10,000, then time all
// three finders at 10,000 and the two caching finders at 1,000,000. Naive is
// left out of the large phase because it takes minutes there.
func DefaultPlan() Plan {
	return Plan{
		WarmupMethod: prime.MethodNaive,
		WarmupN:      10000,
		Phases: []Phase{
			{
				Name:    "10k",
				N:       10000,
				Methods: []prime.Method{prime.MethodNaive, prime.MethodCaching, prime.MethodOpt},
			},
			{
				Name:    "1m",
				N:       1000000,
				Methods: []prime.Method{prime.MethodCaching, prime.MethodOpt},
			},
		},
	}
}

// CustomPlan times the given methods at a single n with no warm-up.
func CustomPlan(n uint32, methods ...prime.Method) Plan {
	if len(methods) == 0 {
		methods = prime.Methods
	}
	return Plan{
		Phases: []Phase{
			{Name: fmt.Sprintf("n%d", n), N: n, Methods: methods},
		},
	}
}

// WithoutLarge drops every phase whose n exceeds limit.
func (p Plan) WithoutLarge(limit uint32) Plan {
	out := Plan{WarmupMethod: p.WarmupMethod, WarmupN: p.WarmupN}
	for _, ph := range p.Phases {
		if ph.N <= limit {
			out.Phases = append(out.Phases, ph)
		}
	}
	return out
}

// Validate checks every method name in the plan resolves to a finder.
func (p Plan) Validate() error {
	if p.WarmupMethod != "" {
		if _, err := prime.Finder(p.WarmupMethod); err != nil {
			return fmt.Errorf("warm-up: %w", err)
		}
	}
	if len(p.Phases) == 0 {
		return fmt.Errorf("plan has no phases")
	}
	for _, ph := range p.Phases {
		if len(ph.Methods) == 0 {
			return fmt.Errorf("phase %s has no methods", ph.Name)
		}
		for _, m := range ph.Methods {
			if _, err := prime.Finder(m); err != nil {
				return fmt.Errorf("phase %s: %w", ph.Name, err)
			}
		}
	}
	return nil
}

// Title is the heading printed before a phase runs.
func (ph Phase) Title() string {
	return fmt.Sprintf("running benchmark for %s prime...", ordinal(ph.N))
}

// ordinal renders n with thousands separators and an English suffix, such as
// 10,000th or 1,000,001st.
func ordinal(n uint32) string {
	suffix := humanize.Ordinal(int(n % 100))
	for i := 0; i < len(suffix); i++ {
		if suffix[i] < '0' || suffix[i] > '9' {
			suffix = suffix[i:]
			break
		}
	}
	return humanize.Comma(int64(n)) + suffix
}
