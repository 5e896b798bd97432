// Package sectiontime implements SectionTime: an absolute 24-bit frame
// count addressed as minutes:seconds:frames at 75 frames/second, with
// BCD conversion for the subcode Q-channel.
package sectiontime

import (
	"github.com/coldcathode/efm/bcd"
	"github.com/coldcathode/efm/efmerr"
)

// FramesPerSecond is the CD channel rate.
const FramesPerSecond = 75

// Max is the largest representable absolute time: 60:00:00 exclusive,
// i.e. 75*60*60 frames.
const Max = FramesPerSecond * 60 * 60

// Time is an absolute frame count. The zero value is 00:00:00.
type Time int

// New builds a Time from minutes, seconds and frames. Out-of-range
// fields are not validated and the composed value is not wrapped into
// [0, Max); of the arithmetic helpers, only SubFrames traps underflow
// below 0.
func New(min, sec, f int) Time {
	return Time((min*60+sec)*FramesPerSecond + f)
}

// MSF decomposes t into minutes, seconds, frames.
func (t Time) MSF() (min, sec, f int) {
	n := int(t)
	f = n % FramesPerSecond
	n /= FramesPerSecond
	sec = n % 60
	min = n / 60
	return min, sec, f
}

// Frames returns the raw absolute frame count.
func (t Time) Frames() int { return int(t) }

// Add returns t advanced by n frames (n may be negative).
func (t Time) Add(n int) Time { return t + Time(n) }

// Sub returns the difference t - other, in frames.
func (t Time) Sub(other Time) int { return int(t - other) }

// SubFrames returns t decremented by n frames, trapping on underflow
// below zero.
func (t Time) SubFrames(n int) (Time, error) {
	r := int(t) - n
	if r < 0 {
		return 0, efmerr.New(efmerr.ComponentSection, "section time underflow")
	}
	return Time(r), nil
}

// ToBCD packs t as three BCD bytes: minute, second, frame.
func (t Time) ToBCD() [3]byte {
	min, sec, f := t.MSF()
	return [3]byte{bcd.Encode(min), bcd.Encode(sec), bcd.Encode(f)}
}

// FromBCD unpacks three BCD bytes (minute, second, frame) into a Time.
func FromBCD(b [3]byte) Time {
	return New(bcd.Decode(b[0]), bcd.Decode(b[1]), bcd.Decode(b[2]))
}
