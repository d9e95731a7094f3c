// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// ErrBaselineMismatch is returned when a run produced primes that differ
// from the saved report.
var ErrBaselineMismatch = errors.New("results differ from baseline")

// CompareBaseline checks the primes in results against a JSON report written
// by a previous `bench --output json`. Timings are ignored and only phase/method
// pairs present on both sides are compared. On mismatch it returns the diff
// and ErrBaselineMismatch.
func CompareBaseline(baseline []byte, results []Result) (string, error) {
	if !gjson.ValidBytes(baseline) {
		return "", fmt.Errorf("baseline is not valid JSON")
	}

	doc := gjson.ParseBytes(baseline)
	if !doc.IsArray() {
		return "", fmt.Errorf("baseline must be a JSON array of results")
	}

	saved := make(map[string]interface{})
	for _, row := range doc.Array() {
		key := baselineKey(row.Get("phase").String(), row.Get("method").String())
		saved[key] = row.Get("prime").Float()
	}

	// Only entries present on both sides are compared.
	current := make(map[string]interface{}, len(results))
	for _, r := range results {
		key := baselineKey(r.Phase, r.Method)
		if _, ok := saved[key]; ok {
			current[key] = float64(r.Prime)
		}
	}
	for key := range saved {
		if _, ok := current[key]; !ok {
			delete(saved, key)
		}
	}

	if len(current) == 0 {
		log.Warn("baseline shares no phase/method pairs with this run")
		return "", nil
	}
	log.Debugf("baseline: comparing %d entries", len(current))

	left := map[string]interface{}{"primes": saved}
	right := map[string]interface{}{"primes": current}

	diff := gojsondiff.New().CompareObjects(left, right)
	if !diff.Modified() {
		return "", nil
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
	})
	text, err := f.Format(diff)
	if err != nil {
		return "", fmt.Errorf("failed to format baseline diff: %w", err)
	}
	return text, ErrBaselineMismatch
}

func baselineKey(phase, method string) string {
	return phase + "/" + method
}
