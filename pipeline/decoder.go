/*
NAME
  decoder.go

DESCRIPTION
  decoder.go drives the full decode chain named in §2's pipeline
  diagram: T-value stream -> channel bits -> F3Frame -> F2Section ->
  corrected F2Section -> F1Section -> Data24Section. It is the
  single-threaded cooperative driver §5 describes: every sub-stage
  exposes push, and this driver forwards whatever each stage emits to
  the next without blocking.

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

// Package pipeline wires the per-stage codecs (tvalue, channel,
// assembler, correction, circ, frame) into the two end-to-end drivers
// named in §2: Decoder (T-values -> Data24Section) and Encoder
// (Data24Section -> T-values).
package pipeline

import (
	"github.com/coldcathode/efm/assembler"
	"github.com/coldcathode/efm/channel"
	"github.com/coldcathode/efm/circ"
	"github.com/coldcathode/efm/correction"
	"github.com/coldcathode/efm/frame"
	"github.com/coldcathode/efm/section"
	"github.com/coldcathode/efm/telemetry"
	"github.com/coldcathode/efm/tvalue"
)

// Decoder runs the T-value-to-Data24Section decode chain.
type Decoder struct {
	chDec   *channel.Decoder
	asm     *assembler.Assembler
	corr    *correction.Stage
	circDec *circ.Decoder
	corrupt frame.CorruptBytes
	log     telemetry.Logger

	TValueStats tvalue.Stats
}

// NewDecoder builds a Decoder with every sub-stage in its initial
// state. log may be nil for silent operation.
func NewDecoder(log telemetry.Logger) *Decoder {
	return &Decoder{
		chDec:   channel.NewDecoder(),
		asm:     assembler.New(),
		corr:    correction.New(),
		circDec: circ.NewDecoder(),
		log:     log,
	}
}

// CIRCStats reports the decode-side CIRC engine's running C1/C2
// statistics (§4.6).
func (d *Decoder) CIRCStats() circ.Stats { return d.circDec.Stats() }

// AssemblerStats reports the §4.4 section-assembly counters.
func (d *Decoder) AssemblerStats() assembler.Stats { return d.asm.Stats }

// CorrectionStats reports the §4.7 metadata-correction counters.
func (d *Decoder) CorrectionStats() correction.Stats { return d.corr.Stats }

// CorruptBytes reports the total erasure-flagged output bytes seen
// after CIRC decode (§4.8).
func (d *Decoder) CorruptBytes() int { return d.corrupt.Total }

// Push feeds a chunk of T-values through the full decode chain,
// returning zero or more completed Data24Sections.
func (d *Decoder) Push(tvalues []byte) ([]section.Data24Section, error) {
	bits := tvalue.ToBits(tvalues, &d.TValueStats)

	f3Frames, err := d.chDec.Push(bits)
	if err != nil {
		if d.log != nil {
			d.log.Errorf("channel decode: %v", err)
		}
		return nil, err
	}

	var out []section.Data24Section
	for _, f3 := range f3Frames {
		f2sec, err := d.asm.Push(f3)
		if err != nil {
			if d.log != nil {
				d.log.Errorf("section assembly: %v", err)
			}
			return out, err
		}
		if f2sec == nil {
			continue
		}

		corrected, err := d.corr.Push(*f2sec)
		if err != nil {
			if d.log != nil {
				d.log.Errorf("metadata correction: %v", err)
			}
			return out, err
		}
		for _, cs := range corrected {
			d24, err := d.decodeSection(cs)
			if err != nil {
				return out, err
			}
			out = append(out, d24)
		}
	}
	return out, nil
}

// Flush drains the correction stage's internal buffer at end-of-stream
// (§5 terminal flush) and decodes whatever it yields.
func (d *Decoder) Flush() ([]section.Data24Section, error) {
	var out []section.Data24Section
	for _, cs := range d.corr.Flush() {
		d24, err := d.decodeSection(cs)
		if err != nil {
			return out, err
		}
		out = append(out, d24)
	}
	return out, nil
}

// decodeSection runs one corrected F2Section through the CIRC decode
// engine and the §4.8 byte-pair swap to produce a Data24Section. The
// CIRC delay lines span the whole stream, not just one section, so a
// frame emitted while they are still priming is replaced with an
// all-erasure blank (§4.6).
func (d *Decoder) decodeSection(sec section.F2Section) (section.Data24Section, error) {
	var out section.Data24Section
	out.Metadata = sec.Metadata

	for i, f2 := range sec.Frames {
		f1, ready, err := d.circDec.Push(f2)
		if err != nil {
			return out, err
		}
		if !ready {
			f1 = blankF1()
		}
		d.corrupt.Count(f1.Flags[:])
		out.Frames[i] = frame.F1ToData24(f1)
	}
	return out, nil
}

func blankF1() frame.F1Frame {
	var f frame.F1Frame
	for i := range f.Flags {
		f.Flags[i] = 1
	}
	return f
}
