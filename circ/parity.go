package circ

import "github.com/coldcathode/efm/efmerr"

// InvertParity bitwise-NOTs the four C1 and four C2 parity bytes of a
// 32-byte F2 frame, at indices 12..15 and 28..31. It is its own
// inverse.
func InvertParity(data []byte) ([]byte, error) {
	if len(data) != 32 {
		return nil, efmerr.New(efmerr.ComponentCIRC, "parity inversion requires 32 bytes")
	}
	out := append([]byte(nil), data...)
	for _, i := range []int{12, 13, 14, 15, 28, 29, 30, 31} {
		out[i] = ^out[i]
	}
	return out, nil
}
