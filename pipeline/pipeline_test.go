package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coldcathode/efm/frame"
	"github.com/coldcathode/efm/section"
	"github.com/coldcathode/efm/sectiontime"
)

func cleanSection(at int) section.Data24Section {
	var sec section.Data24Section
	sec.Metadata = section.Metadata{
		SectionType:         section.UserData,
		QMode:               section.Q1,
		TrackNumber:         1,
		IsAudioTrack:        true,
		Is2ChannelBit:       true,
		SectionTime:         sectiontime.New(0, 0, at),
		AbsoluteSectionTime: sectiontime.New(0, 0, at),
	}
	for i := range sec.Frames {
		// The first two bytes carry the frame's global index
		// (at*FrameCount+i) as big-endian so every frame across every
		// section this test generates has globally unique content and
		// a decoded frame can be traced back to exactly one input
		// frame; a plain modular byte pattern wraps and collides once
		// enough sections are generated to clear CIRC priming latency.
		idx := at*section.FrameCount + i
		sec.Frames[i].Data[0] = byte(idx >> 8)
		sec.Frames[i].Data[1] = byte(idx)
		for j := 2; j < len(sec.Frames[i].Data); j++ {
			sec.Frames[i].Data[j] = byte((at*24 + i + j) % 256)
		}
	}
	return sec
}

// TestEncoderProducesValidTValueStream exercises the encode chain
// end-to-end: every Data24Section encodes to a T-value stream whose
// bytes fall in tvalue's [MinT, MaxT] range with zero clamp events.
func TestEncoderProducesValidTValueStream(t *testing.T) {
	enc := NewEncoder(nil)
	sec := cleanSection(100)

	out, err := enc.Push(sec)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	for _, v := range out {
		require.GreaterOrEqual(t, int(v), 3)
		require.LessOrEqual(t, int(v), 11)
	}
}

// TestDecoderHandlesEncoderOutput feeds a long run of sections' encoded
// T-value streams into a fresh Decoder and confirms the decoded bytes
// match the original encoder input once the pipeline's combined
// encode/decode CIRC priming latency (§4.6: ~111 frames per
// direction, ~220+ frames round trip) has cleared, per spec.md
// scenario S1 and property 3.
func TestDecoderHandlesEncoderOutput(t *testing.T) {
	enc := NewEncoder(nil)
	dec := NewDecoder(nil)

	const sections = 20 // 20*98 = 1960 frames, comfortably past priming
	var inputFrames [][24]byte
	var decoded []section.Data24Section
	for at := 0; at < sections; at++ {
		sec := cleanSection(at)
		for _, f := range sec.Frames {
			inputFrames = append(inputFrames, f.Data)
		}

		tvals, err := enc.Push(sec)
		require.NoError(t, err)

		out, err := dec.Push(tvals)
		require.NoError(t, err)
		decoded = append(decoded, out...)
	}
	flushed, err := dec.Flush()
	require.NoError(t, err)
	decoded = append(decoded, flushed...)

	require.NotEmpty(t, decoded)

	// Frames decoded before the priming latency has cleared come out
	// erasure-flagged (the decoder's own priming blanks, and frames
	// built from the encoder's priming blanks); collection starts at
	// the first frame with no flag set.
	var decodedFrames [][24]byte
	for _, sec := range decoded {
		for _, f := range sec.Frames {
			if len(decodedFrames) == 0 && frame.CountErrors(f.Flags[:]) != 0 {
				continue
			}
			decodedFrames = append(decodedFrames, f.Data)
		}
	}
	require.NotEmpty(t, decodedFrames)

	// decodedFrames[0] corresponds to some input frame, offset by the
	// pipeline's fixed combined priming latency; recover that offset
	// from the unique per-byte pattern every input frame carries, then
	// require every later decoded frame to match its corresponding
	// input exactly, byte for byte.
	offset := -1
	for k, in := range inputFrames {
		if in == decodedFrames[0] {
			offset = k
			break
		}
	}
	require.GreaterOrEqual(t, offset, 0, "decodedFrames[0] must match some input frame's data exactly")
	require.LessOrEqual(t, offset+len(decodedFrames), len(inputFrames), "decoded stream must not outrun the inputs it was derived from")

	for i, got := range decodedFrames {
		require.Equal(t, inputFrames[offset+i], got, "decoded frame %d must match its corresponding input frame", i)
	}
}
