package assembler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coldcathode/efm/frame"
	"github.com/coldcathode/efm/section"
	"github.com/coldcathode/efm/sectiontime"
	"github.com/coldcathode/efm/subcode"
)

func buildSection(t *testing.T, md section.Metadata) []frame.F3Frame {
	t.Helper()
	q, err := subcode.ToData(md)
	require.NoError(t, err)
	subcodeBytes := subcode.PackBytes(q, md.PFlagBit)

	frames := make([]frame.F3Frame, 0, section.FrameCount)
	frames = append(frames, frame.F3Frame{Type: frame.Sync0})
	frames = append(frames, frame.F3Frame{Type: frame.Sync1})
	for i := 0; i < subcode.SubcodeByteCount; i++ {
		var f frame.F3Frame
		f.Type = frame.Subcode
		f.SubcodeByte = subcodeBytes[i]
		for j := range f.Data {
			f.Data[j] = byte(i)
		}
		frames = append(frames, f)
	}
	return frames
}

func TestAssembleHappyPath(t *testing.T) {
	md := section.Metadata{
		SectionType:         section.UserData,
		QMode:               section.Q1,
		SectionTime:         sectiontime.New(0, 1, 0),
		AbsoluteSectionTime: sectiontime.New(0, 1, 0),
		TrackNumber:         1,
		IsAudioTrack:        true,
		Is2ChannelBit:       true,
	}
	frames := buildSection(t, md)

	a := New()
	var got *section.F2Section
	for _, f := range frames {
		sec, err := a.Push(f)
		require.NoError(t, err)
		if sec != nil {
			got = sec
		}
	}
	require.NotNil(t, got)
	require.True(t, got.Metadata.Valid)
	require.Equal(t, md.TrackNumber, got.Metadata.TrackNumber)
	require.Equal(t, 1, a.Stats.ValidSections)
	require.Equal(t, 0, a.Stats.MissedSync0s)
}

func TestAssembleMissingSync0Synthesizes(t *testing.T) {
	md := section.Metadata{SectionType: section.LeadIn, QMode: section.Q1}
	frames := buildSection(t, md)[1:] // drop Sync0

	a := New()
	var got *section.F2Section
	for _, f := range frames {
		sec, err := a.Push(f)
		require.NoError(t, err)
		if sec != nil {
			got = sec
		}
	}
	require.NotNil(t, got)
	require.Equal(t, 1, a.Stats.MissedSync0s)
}
