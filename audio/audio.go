/*
NAME
  audio.go

DESCRIPTION
  audio.go implements the §4.9 Data24 <-> Audio conversion: 16-bit
  little-endian sample extraction, hi=byte[2k+1], lo=byte[2k] (Design
  Notes §9 Open Question 3 flags this byte order for cross-platform
  review; it is implemented exactly as spec.md states).

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

// Package audio implements Data24<->Audio conversion (§4.9) and the
// erasure-concealment stage (§4.10).
package audio

import "github.com/coldcathode/efm/frame"

// FromData24 converts a 24-byte Data24 frame into 12 signed 16-bit
// samples, little-endian: sample = (hi<<8)|lo, hi=byte[2k+1],
// lo=byte[2k]. A sample's error flag is the OR of its two
// constituent byte-error flags.
func FromData24(d frame.Data24) frame.AudioFrame {
	var f frame.AudioFrame
	for k := 0; k < len(f.Samples); k++ {
		lo := d.Data[2*k]
		hi := d.Data[2*k+1]
		f.Samples[k] = int16(uint16(hi)<<8 | uint16(lo))
		f.Flags[k] = orFlag(d.Flags[2*k], d.Flags[2*k+1])
	}
	return f
}

// ToData24 is the inverse of FromData24.
func ToData24(f frame.AudioFrame) frame.Data24 {
	var d frame.Data24
	for k, s := range f.Samples {
		v := uint16(s)
		d.Data[2*k] = byte(v)
		d.Data[2*k+1] = byte(v >> 8)
		d.Flags[2*k] = f.Flags[k]
		d.Flags[2*k+1] = f.Flags[k]
	}
	return d
}

func orFlag(a, b byte) byte {
	if a != 0 || b != 0 {
		return 1
	}
	return 0
}
