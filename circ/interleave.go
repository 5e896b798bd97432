package circ

import "github.com/coldcathode/efm/efmerr"

// interleaveMap[i] = j means output[i] = input[j]. Recovered verbatim
// from original_source/libs/efm/src/interleave.cpp.
var interleaveMap = [24]int{
	0, 1, 8, 9, 16, 17, 2, 3, 10, 11, 18, 19,
	4, 5, 12, 13, 20, 21, 6, 7, 14, 15, 22, 23,
}

var deinterleaveMap = invert(interleaveMap)

func invert(m [24]int) [24]int {
	var out [24]int
	for i, j := range m {
		out[j] = i
	}
	return out
}

// Interleave applies the fixed 24-byte CIRC interleave permutation to
// data and flags in lock-step.
func Interleave(data, flags []byte) ([]byte, []byte, error) {
	return permute(data, flags, interleaveMap)
}

// Deinterleave applies the inverse permutation.
func Deinterleave(data, flags []byte) ([]byte, []byte, error) {
	return permute(data, flags, deinterleaveMap)
}

func permute(data, flags []byte, m [24]int) ([]byte, []byte, error) {
	if len(data) != 24 || len(flags) != 24 {
		return nil, nil, efmerr.New(efmerr.ComponentCIRC, "interleave requires 24 bytes")
	}
	outData := make([]byte, 24)
	outFlags := make([]byte, 24)
	for i, j := range m {
		outData[i] = data[j]
		outFlags[i] = flags[j]
	}
	return outData, outFlags, nil
}
