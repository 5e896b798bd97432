package circ

// Decoder delay-line depths, recovered verbatim from
// original_source/tools/efm-decoder/src/dec_f2sectiontof1section.cpp's
// constructor initializer lists.
var (
	// DecodeDelay1Depths is the 32-lane bank applied to the raw F2
	// frame before C1 decode: alternating {0,1}.
	DecodeDelay1Depths = alternate32()

	// DecodeDelayMDepths is the 28-lane bank applied between C1 and C2
	// decode: 108,104,...,4,0.
	DecodeDelayMDepths = rampDown(108, 4, 28)

	// DecodeDelay2Depths is the 24-lane bank applied after
	// deinterleave, before emitting the F1 frame: {0,0,0,0,2,2,2,2}x3.
	DecodeDelay2Depths = repeatGroup([]int{0, 0, 0, 0, 2, 2, 2, 2}, 3)
)

// Encoder delay-line depths are this module's derivation (the encoder
// side was not present in the retrieval pack): each lane's encoder
// depth is the complement of its decoder counterpart so that every
// lane's combined encode+decode delay is constant, which is what the
// standard CIRC convolutional interleaver design requires for correct
// alignment and for property 3's fixed round-trip latency. See
// DESIGN.md.
var (
	// EncodeDelayADepths is the 24-lane bank applied before interleave,
	// which in turn precedes C2 encode: complement of DecodeDelay2Depths
	// (swap 0<->2), since decode applies delayLine2 after Deinterleave.
	EncodeDelayADepths = complementDepths(DecodeDelay2Depths, 2)

	// EncodeDelayBDepths is the 28-lane bank applied after C2 encode,
	// before C1 encode: reverse of DecodeDelayMDepths (0,4,...,108).
	EncodeDelayBDepths = reverseDepths(DecodeDelayMDepths)

	// EncodeDelayCDepths is the 32-lane bank applied after C1 encode,
	// before parity inversion: complement of DecodeDelay1Depths.
	EncodeDelayCDepths = complementDepths(DecodeDelay1Depths, 1)
)

func alternate32() []int {
	d := make([]int, 32)
	for i := range d {
		d[i] = i % 2
	}
	return d
}

func rampDown(start, step, n int) []int {
	d := make([]int, n)
	for i := 0; i < n; i++ {
		d[i] = start - step*i
	}
	return d
}

func repeatGroup(group []int, times int) []int {
	d := make([]int, 0, len(group)*times)
	for i := 0; i < times; i++ {
		d = append(d, group...)
	}
	return d
}

func complementDepths(depths []int, max int) []int {
	d := make([]int, len(depths))
	for i, v := range depths {
		d[i] = max - v
	}
	return d
}

func reverseDepths(depths []int) []int {
	d := make([]int, len(depths))
	for i, v := range depths {
		d[len(depths)-1-i] = v
	}
	return d
}
