package wavmeta

import (
	"github.com/coldcathode/efm/section"
	"github.com/coldcathode/efm/sectiontime"
)

// Tracker scans a stream of AudioSections for runs of flagged
// (erased, pre-concealment) samples and reports each closed run to a
// Writer as one sidecar line.
type Tracker struct {
	w *Writer

	baseline      sectiontime.Time
	baselineKnown bool

	open          bool
	rangeStart    int
	rangeStartLoc Location
	globalSample  int
}

// NewTracker builds a Tracker writing through w. The first section
// pushed fixes the sidecar's time-zero point.
func NewTracker(w *Writer) *Tracker {
	return &Tracker{w: w}
}

// ProcessSection scans sec's per-sample flags, opening a range on the
// first flagged sample after a run of clean ones and closing (and
// emitting) it on the next clean sample.
func (t *Tracker) ProcessSection(sec section.AudioSection) error {
	if !t.baselineKnown {
		t.baseline = sec.Metadata.AbsoluteSectionTime
		t.baselineKnown = true
	}
	elapsed := sec.Metadata.AbsoluteSectionTime.Sub(t.baseline)
	min := elapsed / (sectiontime.FramesPerSecond * 60)
	rem := elapsed % (sectiontime.FramesPerSecond * 60)
	sec_ := rem / sectiontime.FramesPerSecond
	frame := rem % sectiontime.FramesPerSecond

	for subsection := range sec.Frames {
		f := sec.Frames[subsection]
		for sampleIdx, flag := range f.Flags {
			loc := Location{Min: min, Sec: sec_, Frame: frame, Subsection: subsection, Sample: sampleIdx}
			erased := flag != 0

			switch {
			case erased && !t.open:
				t.open = true
				t.rangeStart = t.globalSample
				t.rangeStartLoc = loc
			case !erased && t.open:
				t.open = false
				if err := t.w.WriteRange(t.rangeStart, t.globalSample-1, t.rangeStartLoc); err != nil {
					return err
				}
			}
			t.globalSample++
		}
	}
	return nil
}

// Flush closes and emits any range still open at end-of-stream, then
// flushes the Writer's buffered output.
func (t *Tracker) Flush() error {
	if t.open {
		t.open = false
		if err := t.w.WriteRange(t.rangeStart, t.globalSample-1, t.rangeStartLoc); err != nil {
			return err
		}
	}
	return t.w.Close()
}
