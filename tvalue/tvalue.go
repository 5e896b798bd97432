/*
NAME
  tvalue.go

DESCRIPTION
  tvalue.go converts between channel T-values (run-length counts) and
  the RLL(2,10) bitstring they represent.

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

// Package tvalue implements the T-value <-> channel-bitstring codec
// for the RLL(2,10) channel code. A T-value in [3,11] becomes a '1'
// followed by T-1 zeros; decoding reverses the process, rejecting any
// run outside [2,10] zeros as a programming error.
package tvalue

import "github.com/coldcathode/efm/efmerr"

const (
	MinT = 3
	MaxT = 11
)

// Stats accumulates the non-fatal clamp counters from ToBits.
type Stats struct {
	Valid       int
	InvalidHigh int
	InvalidLow  int
}

// ToBits renders a sequence of T-values as an RLL(2,10) bit sequence,
// clamping out-of-range values into [MinT, MaxT] and counting the
// clamps in stats. stats may be nil.
func ToBits(values []byte, stats *Stats) []bool {
	bits := make([]bool, 0, len(values)*6)
	for _, t := range values {
		v := int(t)
		switch {
		case v > MaxT:
			if stats != nil {
				stats.InvalidHigh++
			}
			v = MaxT
		case v < MinT:
			if stats != nil {
				stats.InvalidLow++
			}
			v = MinT
		default:
			if stats != nil {
				stats.Valid++
			}
		}
		bits = append(bits, true)
		for i := 0; i < v-1; i++ {
			bits = append(bits, false)
		}
	}
	return bits
}

// FromBits re-groups a bit sequence into T-values: each '1' starts a
// run, and the run length (zeros+1) must land in [2,10] zeros, i.e.
// T in [3,11]. A leading zero, or any run outside that range, is a
// structural programming error and returns a *efmerr.FatalError.
func FromBits(bits []bool) ([]byte, error) {
	if len(bits) == 0 {
		return nil, nil
	}
	if !bits[0] {
		return nil, efmerr.New(efmerr.ComponentTValue, "bitstring does not start with a 1")
	}
	var out []byte
	zeros := 0
	flush := func() error {
		t := zeros + 1
		if t < MinT || t > MaxT {
			return efmerr.New(efmerr.ComponentTValue, "run length outside [2,10] zeros")
		}
		out = append(out, byte(t))
		return nil
	}
	for i := 1; i < len(bits); i++ {
		if bits[i] {
			if err := flush(); err != nil {
				return nil, err
			}
			zeros = 0
			continue
		}
		zeros++
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}
