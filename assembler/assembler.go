/*
NAME
  assembler.go

DESCRIPTION
  assembler.go implements the §4.4 four-state F3-frame -> F2-section
  state machine: ExpectSync0, ExpectSync1, ExpectSubcode, and the
  transient ProcessSection step that decodes the accumulated subcode
  bytes into SectionMetadata (§4.5) and emits a full F2Section.

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

// Package assembler implements the F3-frame -> F2-section assembler of
// §4.4.
package assembler

import (
	"github.com/coldcathode/efm/frame"
	"github.com/coldcathode/efm/section"
	"github.com/coldcathode/efm/subcode"
)

// State names the assembler's current expectation.
type State int

const (
	ExpectSync0 State = iota
	ExpectSync1
	ExpectSubcode
)

// Stats mirrors the counters §4.4 requires.
type Stats struct {
	MissedSync0s, MissedSync1s, MissedSubcodes int
	ValidSections, InvalidSections             int
}

// Assembler holds the in-progress section buffer and state.
type Assembler struct {
	state State
	buf   []frame.F3Frame
	Stats Stats
}

// New builds an Assembler awaiting the next section's Sync0 frame.
func New() *Assembler {
	return &Assembler{state: ExpectSync0}
}

// Push feeds one F3 frame into the state machine. It returns a
// non-nil *section.F2Section whenever the 98th frame completes a
// section (the ProcessSection transition); err is set only if the
// embedded subcode decode hits a structural fatal (§4.5, §7).
func (a *Assembler) Push(f frame.F3Frame) (*section.F2Section, error) {
	switch a.state {
	case ExpectSync0:
		a.pushExpectSync0(f)
	case ExpectSync1:
		a.pushExpectSync1(f)
	case ExpectSubcode:
		a.pushExpectSubcode(f)
	}

	if a.state == ExpectSubcode && len(a.buf) == section.FrameCount {
		sec, err := a.process()
		a.buf = nil
		a.state = ExpectSync0
		return sec, err
	}
	return nil, nil
}

func (a *Assembler) pushExpectSync0(f frame.F3Frame) {
	switch f.Type {
	case frame.Sync0:
		a.buf = []frame.F3Frame{f}
		a.state = ExpectSync1
	case frame.Sync1:
		a.Stats.MissedSync0s++
		synthetic := frame.F3Frame{Type: frame.Sync0}
		a.buf = []frame.F3Frame{synthetic, f}
		a.state = ExpectSubcode
	case frame.Subcode:
		a.Stats.MissedSync0s++
		relabeled := f
		relabeled.Type = frame.Sync0
		a.buf = []frame.F3Frame{relabeled}
		a.state = ExpectSync1
	}
}

func (a *Assembler) pushExpectSync1(f frame.F3Frame) {
	switch f.Type {
	case frame.Sync1:
		a.buf = append(a.buf, f)
		a.state = ExpectSubcode
	case frame.Sync0:
		a.Stats.MissedSync1s++
		a.buf = nil
		a.state = ExpectSync0
		a.pushExpectSync0(f)
	case frame.Subcode:
		a.Stats.MissedSync1s++
		relabeled := f
		relabeled.Type = frame.Sync1
		a.buf = append(a.buf, relabeled)
		a.state = ExpectSubcode
	}
}

func (a *Assembler) pushExpectSubcode(f frame.F3Frame) {
	switch f.Type {
	case frame.Subcode:
		a.buf = append(a.buf, f)
	case frame.Sync0:
		a.Stats.MissedSubcodes++
		a.buf = []frame.F3Frame{f}
		a.state = ExpectSync1
	case frame.Sync1:
		a.Stats.MissedSubcodes++
		relabeled := f
		relabeled.Type = frame.Subcode
		a.buf = append(a.buf, relabeled)
	}
}

// process decodes the 96 accumulated subcode bytes (buf[2:98]) into
// SectionMetadata and assembles the F2 section from the 98 frames'
// 32-byte payloads, which are already the CIRC-encoded F2 bytes.
func (a *Assembler) process() (*section.F2Section, error) {
	var subcodeBytes [subcode.SubcodeByteCount]byte
	for i := 0; i < subcode.SubcodeByteCount; i++ {
		subcodeBytes[i] = a.buf[2+i].SubcodeByte
	}
	q, pFlag := subcode.UnpackBytes(subcodeBytes)
	metadata, err := subcode.FromData(q)
	if err != nil {
		return nil, err
	}
	metadata.PFlagBit = pFlag

	if metadata.Valid {
		a.Stats.ValidSections++
	} else {
		a.Stats.InvalidSections++
	}

	var sec section.F2Section
	sec.Metadata = metadata
	for i, f := range a.buf {
		sec.Frames[i].Data = f.Data
		sec.Frames[i].Flags = f.Flags
	}
	return &sec, nil
}
