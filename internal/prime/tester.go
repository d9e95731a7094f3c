// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package prime

import "math"

// isqrt returns floor(sqrt(n)). float64 carries 53 bits of mantissa, so the
// conversion is exact for the whole uint32 range.
func isqrt(n uint32) uint32 {
	return uint32(math.Sqrt(float64(n)))
}

// IsPrime reports whether n is prime by trial dividing it by every integer in
// 2..=floor(sqrt(n)). Callers never pass values below 2.
func IsPrime(n uint32) bool {
	sqrtN := isqrt(n)
	for m := uint32(2); m <= sqrtN; m++ {
		if n%m == 0 {
			return false
		}
	}
	return true
}

// IsPrimePlus reports whether n is prime. If not empty, prefix must hold the
// first len(prefix) primes in increasing order. The prefix is not validated; a
// prefix with gaps silently yields wrong answers.
func IsPrimePlus(n uint32, prefix []uint32) bool {
	sqrtN := isqrt(n)
	for _, p := range prefix {
		if p > sqrtN {
			return true
		} else if n%p == 0 {
			return false
		}
	}

	startAt := uint32(2)
	if len(prefix) > 0 {
		startAt = prefix[len(prefix)-1] + 1
	}

	for m := startAt; m <= sqrtN; m++ {
		if n%m == 0 {
			return false
		}
	}

	return true
}

// isPrimeOdd is IsPrimePlus for a search space that already excludes even
// candidates and multiples of 5. prefix must start with 3 and 5.
//
// The fallback loop stops strictly below sqrt(n). For a candidate whose
// square root is an odd prime beyond the prefix this reports true (49 with
// prefix [3 5], for example). NthWithCachingOpt never reaches the fallback,
// because its prefix always extends past sqrt of the next candidate.
func isPrimeOdd(n uint32, prefix []uint32) bool {
	if len(prefix) == 0 {
		panic("prime: odd tester called with an empty prefix")
	}

	sqrtN := isqrt(n)
	for _, p := range prefix {
		if p > sqrtN {
			return true
		} else if n%p == 0 {
			return false
		}
	}

	for divisor := prefix[len(prefix)-1] + 2; divisor < sqrtN; divisor += 2 {
		if n%divisor == 0 {
			return false
		}
	}

	return true
}
