package correction

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coldcathode/efm/section"
	"github.com/coldcathode/efm/sectiontime"
)

func validSection(at int) section.F2Section {
	return section.F2Section{
		Metadata: section.Metadata{
			SectionType:         section.UserData,
			TrackNumber:         1,
			AbsoluteSectionTime: sectiontime.New(0, 0, at),
			SectionTime:         sectiontime.New(0, 0, at),
			Valid:               true,
		},
	}
}

// TestGapSynthesis is scenario S5: a stream with absolute times
// 100,101,102,missing,missing,105,106 emits 100..106 with two
// synthesized sections carrying valid=true, all-erasure frames.
func TestGapSynthesis(t *testing.T) {
	s := New()

	var emitted []section.F2Section
	// Settle on five consecutive valid chronological sections.
	for at := 95; at <= 99; at++ {
		out, err := s.Push(validSection(at))
		require.NoError(t, err)
		emitted = append(emitted, out...)
	}
	require.True(t, s.settled)

	for _, at := range []int{100, 101, 102, 105, 106} {
		out, err := s.Push(validSection(at))
		require.NoError(t, err)
		emitted = append(emitted, out...)
	}

	final := s.Flush()
	all := append(emitted, final...)
	require.Len(t, all, 12)

	require.Equal(t, 2, s.Stats.Synthesized)

	synth103 := all[8]
	require.True(t, synth103.Metadata.Valid)
	require.Equal(t, 103, synth103.Metadata.AbsoluteSectionTime.Frames())
	for _, flag := range synth103.Frames[0].Flags {
		require.Equal(t, byte(1), flag)
	}

	synth104 := all[9]
	require.Equal(t, 104, synth104.Metadata.AbsoluteSectionTime.Frames())
}

func TestOutOfOrderDropped(t *testing.T) {
	s := New()
	for at := 0; at < LeadInSettleCount; at++ {
		_, err := s.Push(validSection(at))
		require.NoError(t, err)
	}
	require.True(t, s.settled)

	_, err := s.Push(validSection(LeadInSettleCount + 1))
	require.NoError(t, err)

	// An out-of-order section (earlier than expected) is dropped, not
	// inserted.
	_, err = s.Push(validSection(LeadInSettleCount - 2))
	require.NoError(t, err)
	require.Equal(t, 1, s.Stats.OutOfOrderDropped)
}
