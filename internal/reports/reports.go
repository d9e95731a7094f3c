// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package reports

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
)

// Entry is a saved report read back from disk.
type Entry struct {
	Name    string
	Path    string
	ModTime time.Time
	Data    []byte
}

const ext = ".json"

var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ErrNotFound is returned by Read when no report has the given name.
var ErrNotFound = errors.New("report not found")

// Dir resolves the report directory.
// Precedence:
//  1. NTHPRIME_REPORT_DIR, if set and non-empty
//  2. os.UserCacheDir()/nthprime/reports
//
// Returns ("", false) if a directory cannot be resolved.
func Dir() (string, bool) {
	if d, ok := os.LookupEnv("NTHPRIME_REPORT_DIR"); ok && d != "" {
		return d, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "nthprime", "reports"), true
	}
	return "", false
}

// ValidName reports whether name can be used as a report name.
func ValidName(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("invalid report name %q: use letters, digits, '.', '_' and '-'", name)
	}
	return nil
}

// Path returns where the named report lives and whether it exists.
func Path(name string) (string, bool, error) {
	if err := ValidName(name); err != nil {
		return "", false, err
	}
	base, ok := Dir()
	if !ok {
		return "", false, errors.New("no report directory available")
	}
	p := filepath.Join(base, name+ext)
	if _, err := os.Stat(p); err == nil {
		return p, true, nil
	}
	return p, false, nil
}

// Write stores data under name, replacing any earlier report of that name.
// Creates directories as needed.
func Write(name string, data []byte) (string, error) {
	p, _, err := Path(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	log.Debugf("saved report %s to %s", name, p)
	return p, nil
}

// Read loads the named report.
func Read(name string) (*Entry, error) {
	p, ok, err := Path(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	fi, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("failed to stat report: %w", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return &Entry{
		Name:    name,
		Path:    p,
		ModTime: fi.ModTime(),
		Data:    bytes.TrimSpace(b),
	}, nil
}

// List returns the names of all saved reports, sorted.
func List() ([]string, error) {
	base, ok := Dir()
	if !ok {
		return nil, nil
	}
	entries, err := os.ReadDir(base)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(names)
	return names, nil
}

// Purge removes reports older than the provided number of hours.
// If hours <= 0 or the directory cannot be resolved, it is a no-op.
func Purge(hours int) (int, error) {
	if hours <= 0 {
		log.Debug("report purge disabled")
		return 0, nil
	}
	base, ok := Dir()
	if !ok {
		return 0, nil
	}
	entries, err := os.ReadDir(base)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to purge reports: %w", err)
	}

	maxAge := time.Duration(hours) * time.Hour
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		info, err := e.Info()
		if err != nil || time.Since(info.ModTime()) <= maxAge {
			continue
		}
		path := filepath.Join(base, e.Name())
		if err := os.Remove(path); err != nil {
			log.WithError(err).Warnf("failed to remove report %s", path)
			continue
		}
		log.Debugf("removed report %s", path)
		removed++
	}
	return removed, nil
}
