/*
NAME
  encoder.go

DESCRIPTION
  encoder.go composes the CIRC primitives into the mirror-image F1 ->
  F2 encode pipeline: delayA, interleave, C2 encode, delayB, C1
  encode, delayC, invert-parity (depths.go documents why each encode
  delay bank is the complement of its decode counterpart). delayA must
  run before interleave because it pre-compensates decode's
  post-deinterleave delayLine2, which in decode order runs after
  Deinterleave; reversing the two would mix bytes from different
  input frames into the same output frame. Freshly computed parity
  bytes never carry an erasure flag, so each RS encode step expands
  the flag vector by inserting zeros at the new parity positions
  rather than delaying them.

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

package circ

import "github.com/coldcathode/efm/frame"

// Encoder runs the CIRC encode pipeline: delayA -> interleave ->
// C2_encode -> delayB -> C1_encode -> delayC -> invertParity, one F1
// frame in, at most one F2 frame out.
type Encoder struct {
	delayA, flagsA *DelayBank
	delayB, flagsB *DelayBank
	delayC, flagsC *DelayBank

	rs *RS
}

// NewEncoder builds an Encoder with fresh, unprimed delay banks.
func NewEncoder() *Encoder {
	return &Encoder{
		delayA: NewDelayBank(EncodeDelayADepths),
		flagsA: NewDelayBank(EncodeDelayADepths),
		delayB: NewDelayBank(EncodeDelayBDepths),
		flagsB: NewDelayBank(EncodeDelayBDepths),
		delayC: NewDelayBank(EncodeDelayCDepths),
		flagsC: NewDelayBank(EncodeDelayCDepths),
		rs:     NewRS(),
	}
}

// Push feeds one F1 frame through the pipeline. ready is false while
// the delay lines are still priming; the caller must discard the
// returned frame in that case.
func (e *Encoder) Push(f frame.F1Frame) (out frame.F2Frame, ready bool, err error) {
	dData, r, err := e.delayA.Push(f.Data[:])
	if err != nil {
		return out, false, err
	}
	dFlags, _, err := e.flagsA.Push(f.Flags[:])
	if err != nil {
		return out, false, err
	}
	if !r {
		return out, false, nil
	}

	aData, aFlags, err := Interleave(dData, dFlags)
	if err != nil {
		return out, false, err
	}

	c2Data, err := e.rs.C2Encode(aData)
	if err != nil {
		return out, false, err
	}
	c2Flags := insertZeros(aFlags, []int{12, 13, 14, 15})

	bData, r, err := e.delayB.Push(c2Data)
	if err != nil {
		return out, false, err
	}
	bFlags, _, err := e.flagsB.Push(c2Flags)
	if err != nil {
		return out, false, err
	}
	if !r {
		return out, false, nil
	}

	c1Data, err := e.rs.C1Encode(bData)
	if err != nil {
		return out, false, err
	}
	c1Flags := append(append([]byte(nil), bFlags...), 0, 0, 0, 0)

	cData, r, err := e.delayC.Push(c1Data)
	if err != nil {
		return out, false, err
	}
	cFlags, _, err := e.flagsC.Push(c1Flags)
	if err != nil {
		return out, false, err
	}
	if !r {
		return out, false, nil
	}

	final, err := InvertParity(cData)
	if err != nil {
		return out, false, err
	}

	copy(out.Data[:], final)
	copy(out.Flags[:], cFlags)
	return out, true, nil
}

// insertZeros builds a new slice of len(in)+len(positions) by
// inserting a zero byte at each (post-insertion) position, shifting
// the rest of in along. positions must be ascending.
func insertZeros(in []byte, positions []int) []byte {
	out := make([]byte, 0, len(in)+len(positions))
	pos := map[int]bool{}
	for _, p := range positions {
		pos[p] = true
	}
	srcIdx := 0
	for i := 0; i < len(in)+len(positions); i++ {
		if pos[i] {
			out = append(out, 0)
			continue
		}
		out = append(out, in[srcIdx])
		srcIdx++
	}
	return out
}
