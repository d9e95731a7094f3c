// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package prime

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMethod is returned by ParseMethod and Finder for names that do
// not map to a finder.
var ErrUnknownMethod = errors.New("unknown method")

// Method names a finder.
type Method string

const (
	MethodAuto    Method = "auto"
	MethodNaive   Method = "naive"
	MethodCaching Method = "caching"
	MethodOpt     Method = "opt"
)

// Methods lists every method in benchmark order.
var Methods = []Method{MethodNaive, MethodCaching, MethodOpt}

var finders = map[Method]Func{
	MethodAuto:    Nth,
	MethodNaive:   NthNaive,
	MethodCaching: NthWithCaching,
	MethodOpt:     NthWithCachingOpt,
}

// ParseMethod converts a case-insensitive method name to a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := finders[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
	return m, nil
}

// Finder returns the finder for m.
func Finder(m Method) (Func, error) {
	fn, ok := finders[m]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, string(m))
	}
	return fn, nil
}

func (m Method) String() string {
	return string(m)
}
