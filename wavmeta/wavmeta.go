/*
NAME
  wavmeta.go

DESCRIPTION
  wavmeta.go implements §6's "Output: WAV metadata sidecar": a plain
  tab-separated error-range log alongside a decoded WAV, timestamped
  in decimal seconds from the stream's first section.

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

// Package wavmeta writes the WAV metadata sidecar of §6: tab-separated
// erasure ranges, timestamped relative to the first section seen.
package wavmeta

import (
	"bufio"
	"fmt"
	"io"

	"github.com/coldcathode/efm/sectiontime"
)

// samplesPerFrame is the count of 16-bit mono samples per F2 audio
// frame (six stereo pairs, §4.9).
const samplesPerFrame = 12

// Location pins one sample to its position in the stream: a relative
// minute:second:frame (elapsed since the first section), the
// subsection (frame index within the section, 0-97) and the sample
// index within that frame (0-11).
type Location struct {
	Min, Sec, Frame int
	Subsection      int
	Sample          int
}

// Timestamp computes the decimal-seconds-from-first-section value
// specified in §6: min*60 + sec + frame/75 + subsection/(75*98) +
// (sample/2)/(75*98*6).
func (l Location) Timestamp() float64 {
	const (
		framesPerSection    = 98
		pairsPerFrame       = samplesPerFrame / 2
		subsectionsPerFrame = sectiontime.FramesPerSecond * framesPerSection
	)
	return float64(l.Min)*60 +
		float64(l.Sec) +
		float64(l.Frame)/sectiontime.FramesPerSecond +
		float64(l.Subsection)/float64(subsectionsPerFrame) +
		float64(l.Sample/2)/float64(subsectionsPerFrame*pairsPerFrame)
}

// Writer emits rangeStart<TAB>rangeEnd<TAB>Error: <timestamp> lines.
type Writer struct {
	w *bufio.Writer
}

// NewWriter builds a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteRange emits one sidecar line for the closed sample range
// [start, end], timestamped from at (the range's first sample).
func (w *Writer) WriteRange(start, end int, at Location) error {
	_, err := fmt.Fprintf(w.w, "%d\t%d\tError: %.6f\n", start, end, at.Timestamp())
	return err
}

// Close flushes any buffered output.
func (w *Writer) Close() error {
	return w.w.Flush()
}
