/*
NAME
  wav.go

DESCRIPTION
  wav.go adapts the WAV container to the pipeline's AudioFrame type,
  wrapping go-audio/wav's Encoder/Decoder rather than hand-rolling RIFF
  headers: the library already writes the 44-byte PCM header post-hoc
  with correct sizes on Close.

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

// Package wav provides the WAV container reader/writer collaborators for
// 16-bit LE stereo audio at 44100 Hz.
package wav

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/coldcathode/efm/efmerr"
	"github.com/coldcathode/efm/frame"
)

const (
	SampleRate = 44100
	BitDepth   = 16
	Channels   = 2
	pcmFormat  = 1
)

// Writer emits AudioFrames as interleaved 16-bit LE stereo PCM through a
// go-audio/wav.Encoder, which writes the 44-byte header with final sizes
// when Close is called.
type Writer struct {
	enc *wav.Encoder
	buf *audio.IntBuffer
}

// NewWriter builds a Writer over w.
func NewWriter(w io.WriteSeeker) *Writer {
	return &Writer{
		enc: wav.NewEncoder(w, SampleRate, BitDepth, Channels, pcmFormat),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: Channels, SampleRate: SampleRate},
			SourceBitDepth: BitDepth,
			Data:           make([]int, frame.AudioFrame{}.Size()),
		},
	}
}

// WriteFrame appends one AudioFrame's 12 samples to the stream.
func (w *Writer) WriteFrame(f frame.AudioFrame) error {
	for i, s := range f.Samples {
		w.buf.Data[i] = int(s)
	}
	if err := w.enc.Write(w.buf); err != nil {
		return errors.Wrap(err, "wav: write frame")
	}
	return nil
}

// Close finalizes the WAV header (sizes are computed post-hoc).
func (w *Writer) Close() error { return w.enc.Close() }

// Reader decodes 16-bit LE stereo PCM at 44100 Hz from a WAV container,
// validating the format fields (audioFormat=1, numChannels=2,
// sampleRate=44100, bitsPerSample=16) before yielding AudioFrames.
type Reader struct {
	dec *wav.Decoder
	buf *audio.IntBuffer
}

// NewReader builds a Reader over r, failing fatally if the WAV header
// does not declare RIFF/WAVE PCM stereo 16-bit 44100 Hz audio.
func NewReader(r io.Reader) (*Reader, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, efmerr.New(efmerr.ComponentAudio, "not a valid WAV file")
	}
	if dec.WavAudioFormat != pcmFormat {
		return nil, efmerr.New(efmerr.ComponentAudio, "WAV audioFormat must be PCM (1)")
	}
	if dec.NumChans != Channels {
		return nil, efmerr.New(efmerr.ComponentAudio, "WAV numChannels must be 2")
	}
	if dec.SampleRate != SampleRate {
		return nil, efmerr.New(efmerr.ComponentAudio, "WAV sampleRate must be 44100")
	}
	if dec.BitDepth != BitDepth {
		return nil, efmerr.New(efmerr.ComponentAudio, "WAV bitsPerSample must be 16")
	}
	return &Reader{
		dec: dec,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: Channels, SampleRate: SampleRate},
			SourceBitDepth: BitDepth,
			Data:           make([]int, frame.AudioFrame{}.Size()),
		},
	}, nil
}

// ReadFrame reads the next 12 samples (6 stereo pairs) as an AudioFrame
// with the error flags of every sample read from the file clear. It
// returns io.EOF once the stream is exhausted; a final short frame is
// zero-padded and its padded tail flagged.
func (r *Reader) ReadFrame() (frame.AudioFrame, error) {
	n, err := r.dec.PCMBuffer(r.buf)
	if err != nil {
		return frame.AudioFrame{}, errors.Wrap(err, "wav: read frame")
	}
	if n == 0 {
		return frame.AudioFrame{}, io.EOF
	}
	var f frame.AudioFrame
	for i := 0; i < len(f.Samples); i++ {
		if i < n {
			f.Samples[i] = int16(r.buf.Data[i])
		} else {
			f.Flags[i] = 1
		}
	}
	return f, nil
}
