package channel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coldcathode/efm/efmtable"
	"github.com/coldcathode/efm/frame"
)

// TestEncodeDecodeRoundTrip exercises property 6 and scenario-style
// coverage: an encoded frame decodes back to the original F3Frame, is
// exactly 588 bits, contains exactly one sync, and two consecutive
// frames contain exactly two.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc := NewEncoder()

	var f1 frame.F3Frame
	f1.Type = frame.Sync0
	for i := range f1.Data {
		f1.Data[i] = byte(i)
	}
	frameStr1, err := enc.Encode(f1)
	require.NoError(t, err)
	require.Len(t, frameStr1, FrameBits)

	f2 := f1
	f2.Type = frame.Sync1
	frameStr2, err := enc.Encode(f2)
	require.NoError(t, err)

	require.NoError(t, ValidateConsecutive(frameStr1, frameStr2))

	// The decoder extracts a frame only once the following frame's sync
	// is buffered, so a trailing sync pattern closes frameStr2.
	dec := NewDecoder()
	bits := stringToBits(frameStr1 + frameStr2 + SyncPattern)
	got, err := dec.Push(bits)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, frame.Sync0, got[0].Type)
	require.Equal(t, f1.Data, got[0].Data)
	require.Equal(t, frame.Sync1, got[1].Type)
	require.Equal(t, f2.Data, got[1].Data)
}

// TestSymbolZeroMatchesSpecExample is scenario S2: symbol 0 renders as
// "01001000100000" and decodes back to 0.
func TestSymbolZeroMatchesSpecExample(t *testing.T) {
	s, err := efmtable.EightToFourteen(0)
	require.NoError(t, err)
	require.Equal(t, "01001000100000", s)

	v, err := efmtable.FourteenToEight(s)
	require.NoError(t, err)
	require.Equal(t, 0, v)
}

func TestDecoderWaitsBelowMinBufferedBits(t *testing.T) {
	dec := NewDecoder()
	partial := make([]bool, minBufferedBits-1)
	got, err := dec.Push(partial)
	require.NoError(t, err)
	require.Empty(t, got)
}
