/*
NAME
  encoder.go

DESCRIPTION
  encoder.go drives the mirror-image encode chain: Data24Section ->
  F1Section (§4.8 swap) -> F2Section (§4.6 CIRC encode) -> subcode
  framing (§4.5) -> F3Section -> channel bitstream (§4.3) -> T-value
  stream (tvalue).

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

package pipeline

import (
	"github.com/coldcathode/efm/channel"
	"github.com/coldcathode/efm/circ"
	"github.com/coldcathode/efm/frame"
	"github.com/coldcathode/efm/section"
	"github.com/coldcathode/efm/subcode"
	"github.com/coldcathode/efm/telemetry"
	"github.com/coldcathode/efm/tvalue"
)

// Encoder runs the Data24Section-to-T-value encode chain.
type Encoder struct {
	circEnc *circ.Encoder
	chEnc   *channel.Encoder
	log     telemetry.Logger
}

// NewEncoder builds an Encoder with every sub-stage in its initial
// state. log may be nil for silent operation.
func NewEncoder(log telemetry.Logger) *Encoder {
	return &Encoder{
		circEnc: circ.NewEncoder(),
		chEnc:   channel.NewEncoder(),
		log:     log,
	}
}

// Push encodes one full Data24Section into its T-value byte stream
// (§6 "Output: Channel T-value stream"). While the CIRC encoder's
// delay lines are still priming, the corresponding F2 frames are
// all-erasure blanks, matching the source's leading-frame discard
// (§4.6); callers must supply lead-in sections to flush past this.
func (e *Encoder) Push(sec section.Data24Section) ([]byte, error) {
	var f2Frames [section.FrameCount]frame.F2Frame
	for i, d24 := range sec.Frames {
		f1 := frame.Data24ToF1(d24)
		f2, ready, err := e.circEnc.Push(f1)
		if err != nil {
			return nil, err
		}
		if !ready {
			f2 = blankF2()
		}
		f2Frames[i] = f2
	}

	q, err := subcode.ToData(sec.Metadata)
	if err != nil {
		return nil, err
	}
	subcodeBytes := subcode.PackBytes(q, sec.Metadata.PFlagBit)

	var bits []bool
	for i := 0; i < section.FrameCount; i++ {
		var f3 frame.F3Frame
		switch i {
		case 0:
			f3 = frame.F3Frame{Data: f2Frames[i].Data, Flags: f2Frames[i].Flags, Type: frame.Sync0}
		case 1:
			f3 = frame.F3Frame{Data: f2Frames[i].Data, Flags: f2Frames[i].Flags, Type: frame.Sync1}
		default:
			f3 = frame.NewF3Subcode(f2Frames[i].Data, f2Frames[i].Flags, subcodeBytes[i-2])
		}

		frameStr, err := e.chEnc.Encode(f3)
		if err != nil {
			if e.log != nil {
				e.log.Errorf("channel encode: %v", err)
			}
			return nil, err
		}
		bits = append(bits, stringToBools(frameStr)...)
	}

	return tvalue.FromBits(bits)
}

func blankF2() frame.F2Frame {
	var f frame.F2Frame
	for i := range f.Flags {
		f.Flags[i] = 1
	}
	return f
}

func stringToBools(s string) []bool {
	out := make([]bool, len(s))
	for i, c := range s {
		out[i] = c == '1'
	}
	return out
}
