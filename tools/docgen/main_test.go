// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = "# nthprime nth\n\n" +
	"## Short description\n\n" +
	"Print the n-th prime\nfor one or more counts.\n\n" +
	"More text.\n\n" +
	"## Quick examples\n\n" +
	"```sh\n" +
	"# The 10,000th prime\n" +
	"nthprime nth 10000\n" +
	"\n" +
	"nthprime   nth -o json 1 2\n" +
	"```\n\n" +
	"## Flags\n\n" +
	"- `--method`\n"

func TestExtractTitleAndShortDesc(t *testing.T) {
	title, short := extractTitleAndShortDesc(sampleDoc)
	assert.Equal(t, "nthprime nth", title)
	assert.Equal(t, "Print the n-th prime for one or more counts.", short)

	title, short = extractTitleAndShortDesc("# only a title\n")
	assert.Equal(t, "only a title", title)
	assert.Equal(t, "only a title.", short)
}

func TestExtractQuickExamples(t *testing.T) {
	exs := extractQuickExamples(sampleDoc)
	assert.Equal(t, []example{
		{Desc: "The 10,000th prime", Cmd: "nthprime nth 10000"},
		{Desc: "Example", Cmd: "nthprime nth -o json 1 2"},
	}, exs)

	assert.Nil(t, extractQuickExamples("# no examples\n"))
}

func TestBuildTLDR(t *testing.T) {
	got := buildTLDR("check", "", "", nil)
	assert.Contains(t, got, "# nthprime-check\n")
	assert.Contains(t, got, "> nthprime check\n")
	assert.Contains(t, got, "`nthprime check --help`")
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "docs", "commands")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nth.md"), []byte(sampleDoc), 0o644))

	n, err := generate(root, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	man, err := os.ReadFile(filepath.Join(root, "docs", "man", "share", "man1", "nthprime-nth.1"))
	require.NoError(t, err)
	assert.NotEmpty(t, man)

	tldr, err := os.ReadFile(filepath.Join(root, "docs", "tldr", "nthprime-nth.md"))
	require.NoError(t, err)
	assert.Contains(t, string(tldr), "`nthprime nth 10000`")
}

func TestGenerateEmpty(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs", "commands"), 0o755))

	_, err := generate(root, true)
	assert.Error(t, err)
}
