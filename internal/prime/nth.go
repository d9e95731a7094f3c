// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package prime

// NaiveThreshold is the largest n the dispatcher hands to NthNaive. Above it
// the prefix bookkeeping of NthWithCaching pays for itself.
const NaiveThreshold uint32 = 1000

// Func is the signature shared by every finder: n (1-indexed) in, the n-th
// prime out, 0 when n is 0.
type Func func(n uint32) uint32

// Nth returns the n-th prime, routing small n to NthNaive and everything
// else to NthWithCaching.
func Nth(n uint32) uint32 {
	if n > NaiveThreshold {
		return NthWithCaching(n)
	}
	return NthNaive(n)
}

// NthNaive returns the n-th prime by testing every integer from 2 upward with
// IsPrime. It returns 0 for n == 0.
func NthNaive(n uint32) uint32 {
	if n < 1 {
		return 0
	}

	var found uint32
	for candidate := uint32(2); ; candidate++ {
		if IsPrime(candidate) {
			found++
			if found == n {
				return candidate
			}
		}
	}
}

// NthWithCaching returns the n-th prime. It uses more memory than NthNaive,
// one uint32 per prime found, but tests each candidate only against the
// primes discovered so far. It returns 0 for n == 0.
func NthWithCaching(n uint32) uint32 {
	if n < 1 {
		return 0
	}

	var found uint32
	primes := make([]uint32, 0, n)

	for candidate := uint32(2); ; candidate++ {
		if IsPrimePlus(candidate, primes) {
			primes = append(primes, candidate)
			found++

			if found == n {
				return candidate
			}
		}
	}
}

// optBase holds the answers NthWithCachingOpt returns without scanning.
var optBase = [...]uint32{0, 2, 3, 5}

// strideStep is one slot of the optimized scan. The candidate at a skipped
// slot ends in 5 and is never tested.
type strideStep struct {
	offset uint32
	skip   bool
}

// optStride walks the odd numbers from 7 in blocks of five: 7 9 11 13 are
// tested, 15 is skipped, then 17 19 21 23 and 25 skipped, and so on.
var optStride = [...]strideStep{
	{offset: 2},
	{offset: 2},
	{offset: 2},
	{offset: 2},
	{offset: 2, skip: true},
}

// NthWithCachingOpt is NthWithCaching specialized to skip even candidates and
// multiples of 5. The first three primes are answered from a table; the scan
// starts at 7 with the prefix seeded to [3 5] and the count to 3.
func NthWithCachingOpt(n uint32) uint32 {
	if int(n) < len(optBase) {
		return optBase[n]
	}

	found := uint32(len(optBase) - 1)
	primes := make([]uint32, 0, n)
	primes = append(primes, 3, 5)

	candidate := uint32(7)
	for slot := 0; ; slot = (slot + 1) % len(optStride) {
		step := optStride[slot]
		if !step.skip && isPrimeOdd(candidate, primes) {
			primes = append(primes, candidate)
			found++

			if found == n {
				return candidate
			}
		}
		candidate += step.offset
	}
}
