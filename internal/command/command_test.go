// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/nthprime/internal/bench"
	"github.com/staranto/nthprime/internal/reports"
)

// runApp builds the app against cfg and runs args, returning what was
// written to stdout and stderr.
func runApp(t *testing.T, cfg string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("NTHPRIME_CFG", cfg)

	args = append([]string{"nthprime"}, args...)
	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err = app.Run(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

func TestNth_JSON(t *testing.T) {
	out, _, err := runApp(t, "testdata/empty.yaml",
		"nth", "--output", "json", "--attrs", "n,method", "0", "1", "4", "10,000")
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"n":0,"method":"auto","prime":0},
		{"n":1,"method":"auto","prime":2},
		{"n":4,"method":"auto","prime":7},
		{"n":10000,"method":"auto","prime":104729}
	]`, out)
}

func TestNth_Text(t *testing.T) {
	out, _, err := runApp(t, "testdata/empty.yaml", "nth", "10000")
	require.NoError(t, err)
	assert.Equal(t, "104,729", strings.TrimSpace(out))
}

func TestNth_ConfigDefaults(t *testing.T) {
	// nth.method and nth.output come from the config file.
	out, _, err := runApp(t, "testdata/nthprime.yaml", "nth", "--attrs", "method", "100")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"method":"opt","prime":541}]`, out)
}

func TestNth_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing n", []string{"nth"}, "at least one N"},
		{"bad n", []string{"nth", "ten"}, "invalid N"},
		{"bad method", []string{"nth", "--method", "sieve", "5"}, "unknown method"},
		{"bad output", []string{"nth", "--output", "xml", "5"}, "must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runApp(t, "testdata/empty.yaml", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseN(t *testing.T) {
	n, err := ParseN("1,000,000")
	require.NoError(t, err)
	assert.Equal(t, uint32(1000000), n)

	n, err = ParseN("4294967295")
	require.NoError(t, err)
	assert.Equal(t, ^uint32(0), n)

	for _, bad := range []string{"", "-1", "4294967296", "1.5", "0x10"} {
		_, err := ParseN(bad)
		assert.Error(t, err, bad)
	}
}

func TestBench_JSON(t *testing.T) {
	out, _, err := runApp(t, "testdata/empty.yaml",
		"bench", "--n", "100", "--methods", "caching,opt", "--output", "json")
	require.NoError(t, err)

	doc := gjson.Parse(out)
	require.True(t, doc.IsArray())
	assert.Equal(t, `["n100","n100"]`, doc.Get("#.phase").Raw)
	assert.Equal(t, `["caching","opt"]`, doc.Get("#.method").Raw)
	assert.Equal(t, `[541,541]`, doc.Get("#.prime").Raw)
	assert.Equal(t, `[100,100]`, doc.Get("#.n").Raw)
	assert.Len(t, doc.Get("#.ms").Array(), 2)
	assert.False(t, doc.Get("0.elapsed_ns").Exists())
}

func TestBench_Filter(t *testing.T) {
	out, _, err := runApp(t, "testdata/empty.yaml",
		"bench", "--n", "100", "--output", "json", "--filter", "method=naive", "--attrs", "!ms")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"phase":"n100","method":"naive","n":100,"prime":541}]`, out)
}

func TestBench_Raw(t *testing.T) {
	out, _, err := runApp(t, "testdata/empty.yaml",
		"bench", "--n", "100", "--methods", "naive,opt", "--output", "raw")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, `^BENCH:nthprime:n100-naive:541:\d+$`, lines[0])
	assert.Regexp(t, `^BENCH:nthprime:n100-opt:541:\d+$`, lines[1])
}

func TestBench_Legacy(t *testing.T) {
	out, _, err := runApp(t, "testdata/empty.yaml",
		"bench", "--n", "1000", "--legacy")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "running benchmark for 1,000th prime...", lines[0])
	for i, line := range lines[1:] {
		assert.Regexp(t, regexp.MustCompile(`^method `+string(rune('1'+i))+`: \d+$`), line)
	}
}

func TestBench_Baseline(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good,
		[]byte(`[{"phase":"n100","method":"opt","n":100,"prime":541,"ms":0}]`), 0o644))
	_, _, err := runApp(t, "testdata/empty.yaml",
		"bench", "--n", "100", "--output", "raw", "--baseline", good)
	require.NoError(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad,
		[]byte(`[{"phase":"n100","method":"opt","n":100,"prime":547,"ms":0}]`), 0o644))
	_, stderr, err := runApp(t, "testdata/empty.yaml",
		"bench", "--n", "100", "--output", "raw", "--baseline", bad)
	require.ErrorIs(t, err, bench.ErrBaselineMismatch)
	assert.Contains(t, stderr, "541")

	_, _, err = runApp(t, "testdata/empty.yaml",
		"bench", "--n", "100", "--output", "raw", "--baseline", filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to read baseline")
}

func TestBench_BadFlags(t *testing.T) {
	_, _, err := runApp(t, "testdata/empty.yaml", "bench", "--n", "10", "--methods", "naive,sieve")
	assert.ErrorContains(t, err, "unknown method")

	_, _, err = runApp(t, "testdata/empty.yaml", "bench", "--n=-5")
	assert.ErrorContains(t, err, "--n must be in")

	_, _, err = runApp(t, "testdata/empty.yaml", "check", "--upto=-1")
	assert.ErrorContains(t, err, "--upto must be in")
}

func TestBenchPlanSkipLarge(t *testing.T) {
	plan := bench.DefaultPlan().WithoutLarge(largeLimit)
	require.Len(t, plan.Phases, 1)
	assert.Equal(t, uint32(10000), plan.Phases[0].N)
}

func TestMethodNumber(t *testing.T) {
	assert.Equal(t, 1, methodNumber("naive"))
	assert.Equal(t, 2, methodNumber("caching"))
	assert.Equal(t, 3, methodNumber("opt"))
	assert.Equal(t, 0, methodNumber("auto"))
}

func TestWriteBenchLines(t *testing.T) {
	var buf bytes.Buffer
	WriteBenchLines(&buf, []bench.Result{
		{Phase: "10k", Method: "naive", N: 10000, Prime: 104729, Ms: 420},
		{Phase: "1m", Method: "opt", N: 1000000, Prime: 15485863, Ms: 2200},
	})
	assert.Equal(t,
		"BENCH:nthprime:10k-naive:104729:420\nBENCH:nthprime:1m-opt:15485863:2200\n",
		buf.String())
}

func TestCheck(t *testing.T) {
	out, _, err := runApp(t, "testdata/empty.yaml", "check", "--upto", "300")
	require.NoError(t, err)
	assert.Equal(t, "all finders agree for n in 0..300\n", out)
}

func TestCrossCheck(t *testing.T) {
	assert.NoError(t, CrossCheck(context.Background(), 0))
	assert.NoError(t, CrossCheck(context.Background(), 200))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, CrossCheck(ctx, 10), context.Canceled)
}

func TestCompletion(t *testing.T) {
	out, _, err := runApp(t, "testdata/empty.yaml", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _nthprime nthprime")

	out, _, err = runApp(t, "testdata/empty.yaml", "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "#compdef nthprime")

	_, _, err = runApp(t, "testdata/empty.yaml", "completion", "fish")
	assert.ErrorContains(t, err, "unsupported shell")
}

func TestInitAppFlagsSorted(t *testing.T) {
	t.Setenv("NTHPRIME_CFG", "testdata/empty.yaml")
	app, err := InitApp(context.Background(), []string{"nthprime", "bench"})
	require.NoError(t, err)

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
		for i := 1; i < len(cmd.Flags); i++ {
			assert.LessOrEqual(t, cmd.Flags[i-1].Names()[0], cmd.Flags[i].Names()[0], cmd.Name)
		}
	}
	assert.Equal(t, []string{"nth", "bench", "check", "reports", "completion"}, names)
	assert.Equal(t, "bench", GetMeta(app.Commands[1]).Config.Namespace)
}

func TestBench_SaveAndAgainst(t *testing.T) {
	t.Setenv("NTHPRIME_REPORT_DIR", t.TempDir())

	_, _, err := runApp(t, "testdata/empty.yaml",
		"bench", "--n", "100", "--methods", "caching,opt", "--output", "raw", "--save", "base")
	require.NoError(t, err)

	_, _, err = runApp(t, "testdata/empty.yaml",
		"bench", "--n", "100", "--methods", "opt", "--output", "raw", "--against", "base")
	require.NoError(t, err)

	_, _, err = runApp(t, "testdata/empty.yaml",
		"bench", "--n", "100", "--output", "raw", "--against", "missing")
	assert.ErrorIs(t, err, reports.ErrNotFound)

	_, _, err = runApp(t, "testdata/empty.yaml",
		"bench", "--n", "100", "--output", "raw", "--save", "../x")
	assert.ErrorContains(t, err, "invalid report name")

	out, _, err := runApp(t, "testdata/empty.yaml", "reports", "--output", "json", "--attrs", "path")
	require.NoError(t, err)
	doc := gjson.Parse(out)
	assert.Equal(t, `["base"]`, doc.Get("#.name").Raw)
	assert.True(t, strings.HasSuffix(doc.Get("0.path").String(), "base.json"))
}
