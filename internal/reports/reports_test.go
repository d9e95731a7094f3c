// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package reports

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	t.Setenv("NTHPRIME_REPORT_DIR", "/tmp/somewhere")
	d, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, "/tmp/somewhere", d)
}

func TestValidName(t *testing.T) {
	for _, good := range []string{"base", "v1.2", "run_3-a"} {
		assert.NoError(t, ValidName(good), good)
	}
	for _, bad := range []string{"", ".hidden", "a/b", "../x", "sp ace"} {
		assert.Error(t, ValidName(bad), bad)
	}
}

func TestWriteReadList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	t.Setenv("NTHPRIME_REPORT_DIR", dir)

	names, err := List()
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = Read("base")
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := Write("base", []byte("[{\"prime\":2}]\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "base.json"), p)

	_, err = Write("after", []byte("[]"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	e, err := Read("base")
	require.NoError(t, err)
	assert.Equal(t, "base", e.Name)
	assert.Equal(t, `[{"prime":2}]`, string(e.Data))

	names, err = List()
	require.NoError(t, err)
	assert.Equal(t, []string{"after", "base"}, names)

	_, err = Write("../escape", []byte("[]"))
	assert.Error(t, err)
}

func TestPurge(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NTHPRIME_REPORT_DIR", dir)

	_, err := Write("old", []byte("[]"))
	require.NoError(t, err)
	_, err = Write("new", []byte("[]"))
	require.NoError(t, err)

	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.json"), past, past))

	n, err := Purge(0)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = Purge(24)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	names, err := List()
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, names)
}
