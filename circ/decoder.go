/*
NAME
  decoder.go

DESCRIPTION
  decoder.go composes the four CIRC primitives (delay banks, parity
  inverter, C1/C2 Reed-Solomon) into the F2-section -> F1-section
  decode pipeline.

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

package circ

import "github.com/coldcathode/efm/frame"

// Decoder runs the CIRC decode pipeline: delayLine1 -> invertParity ->
// C1_decode -> delayLineM -> C2_decode -> deinterleave -> delayLine2,
// one F2 frame in, at most one F1 frame out.
type Decoder struct {
	delay1 *DelayBank
	flags1 *DelayBank
	delayM *DelayBank
	flagsM *DelayBank
	delay2 *DelayBank
	flags2 *DelayBank

	rs *RS
}

// NewDecoder builds a Decoder with fresh, unprimed delay banks.
func NewDecoder() *Decoder {
	return &Decoder{
		delay1: NewDelayBank(DecodeDelay1Depths),
		flags1: NewDelayBank(DecodeDelay1Depths),
		delayM: NewDelayBank(DecodeDelayMDepths),
		flagsM: NewDelayBank(DecodeDelayMDepths),
		delay2: NewDelayBank(DecodeDelay2Depths),
		flags2: NewDelayBank(DecodeDelay2Depths),
		rs:     NewRS(),
	}
}

// Stats reports the underlying RS codec's running C1/C2 statistics.
func (d *Decoder) Stats() Stats { return d.rs.Stats }

// Push feeds one F2 frame through the pipeline. ready is false while
// the delay lines are still priming; the caller must emit a blank F1
// frame in that case.
func (d *Decoder) Push(f frame.F2Frame) (out frame.F1Frame, ready bool, err error) {
	data, r, err := d.delay1.Push(f.Data[:])
	if err != nil {
		return out, false, err
	}
	flags, _, err := d.flags1.Push(f.Flags[:])
	if err != nil {
		return out, false, err
	}
	if !r {
		return out, false, nil
	}

	data32, err := InvertParity(data)
	if err != nil {
		return out, false, err
	}

	c1Data, c1Flags, err := d.rs.C1Decode(data32, flags)
	if err != nil {
		return out, false, err
	}

	dataM, r, err := d.delayM.Push(c1Data)
	if err != nil {
		return out, false, err
	}
	flagsM, _, err := d.flagsM.Push(c1Flags)
	if err != nil {
		return out, false, err
	}
	if !r {
		return out, false, nil
	}

	c2Data, c2Flags, err := d.rs.C2Decode(dataM, flagsM)
	if err != nil {
		return out, false, err
	}

	deData, deFlags, err := Deinterleave(c2Data, c2Flags)
	if err != nil {
		return out, false, err
	}

	data2, r, err := d.delay2.Push(deData)
	if err != nil {
		return out, false, err
	}
	flags2, _, err := d.flags2.Push(deFlags)
	if err != nil {
		return out, false, err
	}
	if !r {
		return out, false, nil
	}

	copy(out.Data[:], data2)
	copy(out.Flags[:], flags2)
	return out, true, nil
}
