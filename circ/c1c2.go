package circ

import "github.com/coldcathode/efm/efmerr"

// Stats mirrors the ReedSolomon class's bookkeeping: valid/fixed/error
// counters for both C1 and C2 decodes.
type Stats struct {
	ValidC1, FixedC1, ErrorC1 int
	ValidC2, FixedC2, ErrorC2 int
}

// RS holds the C1 and C2 codecs plus their running statistics. Build
// one with NewRS; the zero value has no codecs.
type RS struct {
	c1, c2 *rsCodec
	Stats  Stats
}

// NewRS constructs the C1 (32,28) and C2 (28,24) CIRC Reed-Solomon
// codecs over GF(256), generator 0x11D, first consecutive root 0,
// root step 1 — exactly the ECMA-130 CIRC configuration.
func NewRS() *RS {
	return &RS{c1: newRSCodec(32, 4), c2: newRSCodec(28, 4)}
}

// C1Encode performs the systematic (28,32) C1 encode: 28 data bytes in,
// 32 bytes (data + 4 trailing parity) out.
func (r *RS) C1Encode(data []byte) ([]byte, error) {
	if len(data) != 28 {
		return nil, efmerr.New(efmerr.ComponentCIRC, "C1 encode requires 28 input bytes")
	}
	return r.c1.encode(data), nil
}

// C1Decode performs the erasure-aware C1 decode: 32 bytes in (data +
// trailing parity) with parallel error flags, 28 bytes + flags out.
// More than 2 erasures is an uncorrectable failure; all 28 output
// bytes are then flagged as erasures.
func (r *RS) C1Decode(data, flags []byte) ([]byte, []byte, error) {
	if len(data) != 32 || len(flags) != 32 {
		return nil, nil, efmerr.New(efmerr.ComponentCIRC, "C1 decode requires 32 input bytes")
	}
	eras := erasurePositions(flags)
	if len(eras) > 2 {
		r.Stats.ErrorC1++
		out := append([]byte(nil), data[:28]...)
		outFlags := make([]byte, 28)
		for i := range outFlags {
			outFlags[i] = 1
		}
		return out, outFlags, nil
	}
	buf := append([]byte(nil), data...)
	result := r.c1.decode(buf, eras)
	out := buf[:28]
	outFlags := make([]byte, 28)
	if result < 0 {
		r.Stats.ErrorC1++
		for i := range outFlags {
			outFlags[i] = 1
		}
		return out, outFlags, nil
	}
	if result == 0 {
		r.Stats.ValidC1++
	} else {
		r.Stats.FixedC1++
	}
	return out, outFlags, nil
}

// C2Encode performs the systematic (24,28) C2 encode. The four parity
// bytes sit at positions 12..15 of the 28-byte output, matching the
// CIRC C2 layout; they are produced by erasure-decoding the 28-byte
// word with those positions marked unknown, mirroring the source's
// "encode via erasure fill" technique.
func (r *RS) C2Encode(data []byte) ([]byte, error) {
	if len(data) != 24 {
		return nil, efmerr.New(efmerr.ComponentCIRC, "C2 encode requires 24 input bytes")
	}
	buf := make([]byte, 28)
	copy(buf[0:12], data[0:12])
	copy(buf[16:28], data[12:24])
	eras := []int{12, 13, 14, 15}
	if result := r.c2.decode(buf, eras); result < 0 {
		return nil, efmerr.New(efmerr.ComponentCIRC, "C2 encode: parity fill failed")
	}
	return buf, nil
}

// C2Decode performs the erasure-aware C2 decode: 28 bytes in (data at
// 0..11/16..27, parity at 12..15) with parallel error flags, 24 bytes
// + flags out. More than 4 erasures, or a residual error count above
// 3, is treated as an uncorrectable failure.
func (r *RS) C2Decode(data, flags []byte) ([]byte, []byte, error) {
	if len(data) != 28 || len(flags) != 28 {
		return nil, nil, efmerr.New(efmerr.ComponentCIRC, "C2 decode requires 28 input bytes")
	}
	eras := erasurePositions(flags)
	if len(eras) > 4 {
		r.Stats.ErrorC2++
		out := concatExcludeParity(data)
		outFlags := make([]byte, 24)
		for i := range outFlags {
			outFlags[i] = 1
		}
		return out, outFlags, nil
	}
	buf := append([]byte(nil), data...)
	result := r.c2.decode(buf, eras)
	if result > 3 {
		result = -1
	}
	out := concatExcludeParity(buf)
	outFlags := make([]byte, 24)
	if result < 0 {
		r.Stats.ErrorC2++
		for i := range outFlags {
			outFlags[i] = 1
		}
		return out, outFlags, nil
	}
	if result == 0 {
		r.Stats.ValidC2++
	} else {
		r.Stats.FixedC2++
	}
	return out, outFlags, nil
}

func concatExcludeParity(data []byte) []byte {
	out := make([]byte, 24)
	copy(out[0:12], data[0:12])
	copy(out[12:24], data[16:28])
	return out
}

func erasurePositions(flags []byte) []int {
	var eras []int
	for i, f := range flags {
		if f != 0 {
			eras = append(eras, i)
		}
	}
	return eras
}
