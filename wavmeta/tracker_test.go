package wavmeta

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coldcathode/efm/section"
	"github.com/coldcathode/efm/sectiontime"
)

func TestTrackerEmitsOneClosedRange(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	tr := NewTracker(w)

	var sec section.AudioSection
	sec.Metadata.AbsoluteSectionTime = sectiontime.New(0, 0, 0)
	sec.Frames[0].Flags[5] = 1
	sec.Frames[0].Flags[6] = 1

	require.NoError(t, tr.ProcessSection(sec))
	require.NoError(t, tr.Flush())

	require.Contains(t, buf.String(), "5\t6\tError:")
}

func TestTrackerLeavesOpenRangeForFlush(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	tr := NewTracker(w)

	var sec section.AudioSection
	sec.Metadata.AbsoluteSectionTime = sectiontime.New(0, 0, 0)
	sec.Frames[97].Flags[11] = 1

	require.NoError(t, tr.ProcessSection(sec))
	require.Empty(t, buf.String())

	require.NoError(t, tr.Flush())
	require.NotEmpty(t, buf.String())
}
