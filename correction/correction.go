/*
NAME
  correction.go

DESCRIPTION
  correction.go implements the §4.7 F2-section metadata correction
  stage: lead-in settling (sub-state A) followed by steady-state gap
  synthesis, out-of-order drop, and gap fill (sub-state B).

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

// Package correction implements the F2-section metadata correction
// stage of §4.7.
package correction

import (
	"github.com/coldcathode/efm/efmerr"
	"github.com/coldcathode/efm/section"
	"github.com/coldcathode/efm/sectiontime"
)

// MaxGap is the largest correctable run of missing sections between
// two valid bookends (§4.7).
const MaxGap = 3

// MaxInternalBuffer bounds the steady-state buffer (≈5s at 75
// sections/s, §4.7).
const MaxInternalBuffer = 375

// LeadInSettleCount is the number of consecutive valid chronological
// sections required to exit lead-in settling (§4.7).
const LeadInSettleCount = 5

// notSetSentinel mirrors the source corrector's m_absoluteStartTime
// sentinel (59:59:74) used to detect "not yet set" before any valid
// section has been seen (§4.7, SPEC_FULL §4).
var notSetSentinel = sectiontime.New(59, 59, 74)

// Stats accumulates the correction stage's bookkeeping.
type Stats struct {
	PreLeadIn         int
	OutOfOrderDropped int
	Synthesized       int
	GapFilled         int
}

// Stage holds the correction stage's settling/steady-state buffers.
type Stage struct {
	settled bool
	leadin  []section.F2Section

	buf           []section.F2Section
	lastValidIdx  int
	lastValidTime sectiontime.Time

	Stats Stats
}

// New builds a Stage awaiting lead-in settling.
func New() *Stage {
	return &Stage{lastValidIdx: -1, lastValidTime: notSetSentinel}
}

func (s *Stage) lastValidSet() bool { return s.lastValidIdx >= 0 }

// Push feeds one F2 section through the stage, returning zero or more
// corrected sections ready for the next stage (§5: output order is
// FIFO except for synthesized insertions at well-defined positions).
func (s *Stage) Push(sec section.F2Section) ([]section.F2Section, error) {
	if !s.settled {
		return s.pushSettling(sec)
	}
	return s.pushSteady(sec)
}

func (s *Stage) pushSettling(sec section.F2Section) ([]section.F2Section, error) {
	chronological := len(s.leadin) == 0 ||
		sec.Metadata.AbsoluteSectionTime == s.leadin[len(s.leadin)-1].Metadata.AbsoluteSectionTime.Add(1)

	if sec.Metadata.Valid && chronological {
		s.leadin = append(s.leadin, sec)
		if len(s.leadin) < LeadInSettleCount {
			return nil, nil
		}
		s.settled = true
		flushing := s.leadin
		s.leadin = nil
		var emitted []section.F2Section
		for _, fs := range flushing {
			out, err := s.pushSteady(fs)
			if err != nil {
				return emitted, err
			}
			emitted = append(emitted, out...)
		}
		return emitted, nil
	}

	s.Stats.PreLeadIn += len(s.leadin)
	s.leadin = nil
	if sec.Metadata.Valid {
		s.leadin = append(s.leadin, sec)
	} else {
		s.Stats.PreLeadIn++
	}
	return nil, nil
}

func (s *Stage) pushSteady(sec section.F2Section) ([]section.F2Section, error) {
	if s.lastValidSet() {
		expected := s.lastValidTime.Add(len(s.buf) - s.lastValidIdx)
		actual := sec.Metadata.AbsoluteSectionTime

		switch {
		case sec.Metadata.Valid && actual.Sub(expected) > 0:
			gap := actual.Sub(expected)
			for i := 0; i < gap; i++ {
				s.buf = append(s.buf, synthesizeMissing(sec, expected.Add(i)))
				s.Stats.Synthesized++
			}
			s.buf = append(s.buf, sec)
			s.lastValidIdx = len(s.buf) - 1
			s.lastValidTime = actual
		case sec.Metadata.Valid && actual.Sub(expected) < 0:
			s.Stats.OutOfOrderDropped++
		default:
			s.buf = append(s.buf, sec)
			if sec.Metadata.Valid {
				s.lastValidIdx = len(s.buf) - 1
				s.lastValidTime = actual
			}
		}
	} else {
		s.buf = append(s.buf, sec)
		if sec.Metadata.Valid {
			s.lastValidIdx = len(s.buf) - 1
			s.lastValidTime = sec.Metadata.AbsoluteSectionTime
		}
	}

	if err := s.correctGaps(); err != nil {
		return nil, err
	}

	var emitted []section.F2Section
	for len(s.buf) > MaxInternalBuffer {
		emitted = append(emitted, s.buf[0])
		s.buf = s.buf[1:]
		if s.lastValidIdx >= 0 {
			s.lastValidIdx--
		}
	}
	return emitted, nil
}

// correctGaps scans the buffer for invalid runs bracketed by two valid
// sections. A bracketed run is fillable only when the bracketing
// sections' absolute-time difference is its length plus one and the
// run does not exceed MaxGap; otherwise the stage halts fatally (§4.7).
func (s *Stage) correctGaps() error {
	left := -1
	for i, sec := range s.buf {
		if !sec.Metadata.Valid {
			continue
		}
		if left < 0 {
			left = i
			continue
		}
		run := i - left - 1
		if run > 0 {
			timeDiff := s.buf[i].Metadata.AbsoluteSectionTime.Sub(s.buf[left].Metadata.AbsoluteSectionTime)
			if run > MaxGap || timeDiff != run+1 {
				return efmerr.New(efmerr.ComponentCorrection, "uncorrectable gap in F2 section stream")
			}
			if s.buf[left].Metadata.TrackNumber != s.buf[i].Metadata.TrackNumber {
				// Track-change inside a corrected gap: the source flags
				// this path as untested territory (§4.7, §9 Open
				// Question 1); treat it as a hard error.
				return efmerr.New(efmerr.ComponentCorrection, "track change inside corrected gap is unsupported")
			}
			for k := 1; k <= run; k++ {
				clone := s.buf[left].Metadata
				clone.AbsoluteSectionTime = clone.AbsoluteSectionTime.Add(k)
				clone.SectionTime = clone.SectionTime.Add(k)
				clone.Valid = true
				s.buf[left+k].Metadata = clone
				s.Stats.GapFilled++
			}
		}
		left = i
	}
	return nil
}

// synthesizeMissing builds an all-erasure section for a detected gap,
// inheriting metadata from the following real section but back-dating
// the times to at (§4.7).
func synthesizeMissing(following section.F2Section, at sectiontime.Time) section.F2Section {
	var sec section.F2Section
	for i := range sec.Frames {
		for j := range sec.Frames[i].Flags {
			sec.Frames[i].Flags[j] = 1
		}
	}
	sec.Metadata = following.Metadata
	delta := following.Metadata.AbsoluteSectionTime.Sub(at)
	sec.Metadata.AbsoluteSectionTime = at
	if st, err := following.Metadata.SectionTime.SubFrames(delta); err == nil {
		sec.Metadata.SectionTime = st
	}
	sec.Metadata.Valid = true
	return sec
}

// Flush drains the remaining internal buffer (§5 end-of-stream).
func (s *Stage) Flush() []section.F2Section {
	out := s.buf
	s.buf = nil
	s.lastValidIdx = -1
	s.lastValidTime = notSetSentinel
	return out
}
