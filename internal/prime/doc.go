// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package prime locates the n-th prime with three trial division strategies
// of increasing sophistication and a dispatcher that picks between the first
// two. Every finder owns its prime prefix for the duration of a single call;
// nothing is memoized across calls.
package prime
