package wav

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coldcathode/efm/frame"
)

// seekableBuffer is a minimal io.WriteSeeker backed by an in-memory
// buffer, since go-audio/wav.Encoder needs to seek back to patch the
// header sizes on Close.
type seekableBuffer struct {
	data []byte
	pos  int
}

func (s *seekableBuffer) Write(p []byte) (int, error) {
	end := s.pos + len(p)
	if end > len(s.data) {
		grown := make([]byte, end)
		copy(grown, s.data)
		s.data = grown
	}
	copy(s.data[s.pos:end], p)
	s.pos = end
	return len(p), nil
}

func (s *seekableBuffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		s.pos = int(offset)
	case io.SeekCurrent:
		s.pos += int(offset)
	case io.SeekEnd:
		s.pos = len(s.data) + int(offset)
	}
	return int64(s.pos), nil
}

func TestWriterThenReaderRoundTrip(t *testing.T) {
	buf := &seekableBuffer{}
	w := NewWriter(buf)

	want := frame.AudioFrame{Samples: [12]int16{1, -2, 3, -4, 5, -6, 7, -8, 9, -10, 11, -12}}
	require.NoError(t, w.WriteFrame(want))
	require.NoError(t, w.Close())

	r, err := NewReader(bytes.NewReader(buf.data))
	require.NoError(t, err)

	got, err := r.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, want.Samples, got.Samples)

	_, err = r.ReadFrame()
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderRejectsWrongFormat(t *testing.T) {
	// A bare 8-byte blob is not a valid RIFF/WAVE file.
	_, err := NewReader(bytes.NewReader([]byte("notawav!")))
	require.Error(t, err)
}
