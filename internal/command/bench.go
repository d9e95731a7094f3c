// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/nthprime/internal/bench"
	"github.com/staranto/nthprime/internal/meta"
	"github.com/staranto/nthprime/internal/prime"
	"github.com/staranto/nthprime/internal/reports"
)

// largeLimit is the largest n kept by --skip-large.
const largeLimit uint32 = 100000

// BenchCommandAction runs the benchmark plan and reports the results.
func BenchCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for bench %v", cmd.Args().Slice())

	plan, err := benchPlan(cmd)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	format := cmd.String("output")
	legacy := cmd.Bool("legacy") && format == "text"

	runner := bench.NewRunner()
	if legacy {
		attachLegacyHooks(runner, w)
	}

	results, err := runner.Run(ctx, plan)
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	switch {
	case legacy:
	case format == "raw":
		WriteBenchLines(w, results)
	default:
		al := BuildAttrs(cmd, "phase", "method", "n", "prime", "ms")
		if err := Emit(cmd, results, al); err != nil {
			return err
		}
	}

	if name := cmd.String("save"); name != "" {
		if err := saveReport(name, results); err != nil {
			return err
		}
	}

	if path := cmd.String("baseline"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read baseline: %w", err)
		}
		return compareWithBaseline(cmd.Root().ErrWriter, path, data, results)
	}

	if name := cmd.String("against"); name != "" {
		entry, err := reports.Read(name)
		if err != nil {
			return err
		}
		return compareWithBaseline(cmd.Root().ErrWriter, "report "+name, entry.Data, results)
	}
	return nil
}

func benchPlan(cmd *cli.Command) (bench.Plan, error) {
	plan := bench.DefaultPlan()

	if n := int64(cmd.Int("n")); n != 0 {
		if n < 0 || n > int64(^uint32(0)) {
			return bench.Plan{}, fmt.Errorf("--n must be in 1..%d", ^uint32(0))
		}
		methods, err := parseMethods(cmd.String("methods"))
		if err != nil {
			return bench.Plan{}, err
		}
		plan = bench.CustomPlan(uint32(n), methods...)
	}

	if cmd.Bool("skip-large") {
		plan = plan.WithoutLarge(largeLimit)
	}
	return plan, nil
}

// attachLegacyHooks prints the classic progress lines as the run goes.
// Methods are numbered by their position in prime.Methods.
func attachLegacyHooks(r *bench.Runner, w io.Writer) {
	r.OnWarmup = func(bench.Plan) {
		fmt.Fprintln(w, "warming up...")
	}
	r.OnPhaseStart = func(ph bench.Phase) {
		fmt.Fprintln(w, ph.Title())
	}
	r.OnResult = func(res bench.Result) {
		fmt.Fprintf(w, "method %d: %d\n", methodNumber(res.Method), res.Ms)
	}
}

func methodNumber(name string) int {
	for i, m := range prime.Methods {
		if m.String() == name {
			return i + 1
		}
	}
	return 0
}

// WriteBenchLines writes one BENCH:<suite>:<test>:<result>:<ms> line per
// result.
func WriteBenchLines(w io.Writer, results []bench.Result) {
	for _, r := range results {
		fmt.Fprintf(w, "BENCH:nthprime:%s-%s:%d:%d\n", r.Phase, r.Method, r.Prime, r.Ms)
	}
}

func saveReport(name string, results []bench.Result) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	path, err := reports.Write(name, data)
	if err != nil {
		return err
	}
	log.Infof("saved report %s to %s", name, path)
	return nil
}

func compareWithBaseline(w io.Writer, label string, data []byte, results []bench.Result) error {
	diff, err := bench.CompareBaseline(data, results)
	if errors.Is(err, bench.ErrBaselineMismatch) {
		fmt.Fprint(w, diff)
	}
	if err != nil {
		return fmt.Errorf("baseline %s: %w", label, err)
	}
	log.Debugf("baseline %s matches", label)
	return nil
}

func BenchCommandBuilder(meta meta.Meta) *cli.Command {
	src := meta.Config.Source
	return (&CommandBuilder{
		Name:      "bench",
		Usage:     "benchmark the prime finders",
		UsageText: "nthprime bench [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "against",
				Usage: "compare primes with a report saved by --save",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator, ReportNameValidator)
				},
			},
			&cli.StringFlag{
				Name:  "baseline",
				Usage: "compare primes with a report saved by --output json",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			&cli.BoolFlag{
				Name:  "legacy",
				Usage: "print plain progress lines with text output",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("bench.legacy", altsrc.StringSourcer(src)),
				),
			},
			&cli.StringFlag{
				Name:  "methods",
				Usage: "comma-separated methods for the --n phase",
				Value: "naive,caching,opt",
				Validator: func(value string) error {
					return FlagValidators(value, MethodsValidator)
				},
			},
			&cli.IntFlag{
				Name:  "n",
				Usage: "run a single phase at this n instead of the default plan",
			},
			&cli.StringFlag{
				Name:  "save",
				Usage: "save the results as a named report",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator, ReportNameValidator)
				},
			},
			&cli.BoolFlag{
				Name:  "skip-large",
				Usage: "skip phases above the 100,000th prime",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("NTHPRIME_SKIP_LARGE"),
					yaml.YAML("bench.skip-large", altsrc.StringSourcer(src)),
				),
			},
		},
		Action: BenchCommandAction,
		Meta:   meta,
	}).Build()
}
