/*
NAME
  merge.go

DESCRIPTION
  merge.go implements the encode merging-bit search as a pure function:
  given the trailing run of zeros already emitted, the upcoming symbol,
  and the running DSV polarity, choose the 3-bit merge candidate that
  keeps the run-length rule satisfied and minimizes the DSV delta.

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

package channel

import "github.com/coldcathode/efm/efmerr"

var mergeCandidates = []string{"000", "001", "010", "100"}

// chooseMerge picks the best merge candidate to splice between the
// bits already emitted (tail) and the upcoming symbol's bits (next),
// given the running DSV polarity. It returns the chosen merge bits,
// the new running polarity, and the new DSV accumulator.
func chooseMerge(tail string, next string, polarity, dsv int) (merge string, newPolarity, newDSV int, err error) {
	type candidate struct {
		bits        string
		polarity    int
		dsv         int
		absDelta    int
	}
	var survivors []candidate

	for _, c := range mergeCandidates {
		combined := c + next
		if !runsValid(tail, combined) {
			continue
		}
		p, d := simulateDSV(combined, polarity, dsv)
		survivors = append(survivors, candidate{bits: c, polarity: p, dsv: d, absDelta: abs(d - dsv)})
	}
	if len(survivors) == 0 {
		return "", 0, 0, efmerr.New(efmerr.ComponentChannel, "no merge candidate satisfies RLL(2,10)")
	}

	best := survivors[0]
	for _, s := range survivors[1:] {
		if s.absDelta < best.absDelta {
			best = s
		}
	}
	return best.bits, best.polarity, best.dsv, nil
}

// runsValid reports whether every run of zeros strictly between two
// `1`s in tail+combined falls in [2,10] (the RLL(2,10) constraint).
// Leading zeros before the first `1` and trailing zeros after the last
// `1` in the window are boundary context, not a bounded run, and are
// skipped.
func runsValid(tail, combined string) bool {
	window := tail + combined
	first, last := -1, -1
	for i, c := range window {
		if c == '1' {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return true
	}
	run := 0
	for i := first + 1; i <= last; i++ {
		if window[i] == '1' {
			if run < 2 || run > 10 {
				return false
			}
			run = 0
		} else {
			run++
		}
	}
	return true
}

// simulateDSV walks bits, flipping polarity on every `1` and
// accumulating +-1 per bit according to the current polarity (a run
// of N zeros after a flip contributes N to the DSV in the new
// direction), returning the new running polarity and DSV value.
func simulateDSV(bits string, polarity, dsv int) (newPolarity, newDSV int) {
	for _, c := range bits {
		if c == '1' {
			polarity = -polarity
		}
		dsv += polarity
	}
	return polarity, dsv
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
