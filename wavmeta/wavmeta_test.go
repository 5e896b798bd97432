package wavmeta

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimestampFormula(t *testing.T) {
	loc := Location{Min: 1, Sec: 2, Frame: 3, Subsection: 4, Sample: 10}
	got := loc.Timestamp()
	want := float64(1)*60 + 2 + float64(3)/75 + float64(4)/(75*98) + float64(5)/(75*98*6)
	require.InDelta(t, want, got, 1e-9)
}

func TestWriterFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteRange(10, 20, Location{}))
	require.NoError(t, w.Close())
	require.Equal(t, "10\t20\tError: 0.000000\n", buf.String())
}
