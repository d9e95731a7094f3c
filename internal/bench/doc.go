// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package bench times the prime finders over a fixed plan and compares the
// primes a run produced against a saved report.
package bench
