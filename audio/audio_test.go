package audio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coldcathode/efm/frame"
	"github.com/coldcathode/efm/section"
)

func TestDataAudioRoundTrip(t *testing.T) {
	var d frame.Data24
	for i := range d.Data {
		d.Data[i] = byte(i * 7)
	}
	af := FromData24(d)
	got := ToData24(af)
	require.Equal(t, d.Data, got.Data)
}

func TestByteOrderLittleEndian(t *testing.T) {
	var d frame.Data24
	d.Data[0] = 0x34 // lo
	d.Data[1] = 0x12 // hi
	af := FromData24(d)
	require.Equal(t, int16(0x1234), af.Samples[0])
}

// TestConcealmentScenarioS6 mirrors spec.md scenario S6: a sample at
// frame index 10, position 4 is erased; its same-frame neighbours at
// positions 2 and 6 are valid with values 100 and 200. Concealed
// output is their mean, 150.
func TestConcealmentScenarioS6(t *testing.T) {
	var sec section.AudioSection
	sec.Frames[10].Samples[2] = 100
	sec.Frames[10].Samples[6] = 200
	sec.Frames[10].Flags[4] = 1

	c := NewConcealer()
	out := c.ProcessSection(sec)

	require.Equal(t, int16(150), out.Frames[10].Samples[4])
	require.Equal(t, 1, c.Stats.ConcealedSamples)
}

func TestConcealmentSilencesWithNoNeighbours(t *testing.T) {
	var sec section.AudioSection
	sec.Frames[0].Flags[0] = 1 // no preceding carry, no valid neighbour

	c := NewConcealer()
	out := c.ProcessSection(sec)

	require.Equal(t, int16(0), out.Frames[0].Samples[0])
	require.Equal(t, 1, c.Stats.SilencedSamples)
}

// TestConcealmentIdempotentOnCleanSection is property 8.
func TestConcealmentIdempotentOnCleanSection(t *testing.T) {
	var sec section.AudioSection
	for i := range sec.Frames {
		for j := range sec.Frames[i].Samples {
			sec.Frames[i].Samples[j] = int16(i + j)
		}
	}
	c := NewConcealer()
	out := c.ProcessSection(sec)
	require.Equal(t, sec, out)
	require.Equal(t, 0, c.Stats.ConcealedSamples)
	require.Equal(t, 0, c.Stats.SilencedSamples)
}

// TestConcealmentCarriesAcrossSectionBoundary exercises the
// SPEC_FULL §4.13 cross-section carry for j in {0,1}.
func TestConcealmentCarriesAcrossSectionBoundary(t *testing.T) {
	var first section.AudioSection
	first.Frames[97].Samples[10] = 42

	c := NewConcealer()
	c.ProcessSection(first)

	var second section.AudioSection
	second.Frames[0].Flags[0] = 1
	second.Frames[0].Samples[2] = 58
	out := c.ProcessSection(second)

	require.Equal(t, int16(50), out.Frames[0].Samples[0])
}
