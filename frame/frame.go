// Package frame defines the fixed-size frame types that flow through
// the pipeline (Data24, F1, F2, F3, Audio) plus the shared error-flag
// bookkeeping every stage relies on. Each type simply knows its own
// size via Sized, and CountErrors is a free function over a frame's
// error-flag vector rather than a method on every frame type.
package frame

import "github.com/coldcathode/efm/efmerr"

// Sized is implemented by every frame type so generic code (stats,
// validation) can ask for a frame's nominal byte length without a
// type switch.
type Sized interface {
	Size() int
}

// CountErrors returns the number of nonzero bytes in flags, the
// parallel error-flag vector for a frame's payload.
func CountErrors(flags []byte) int {
	n := 0
	for _, f := range flags {
		if f != 0 {
			n++
		}
	}
	return n
}

// Data24 is the 24-byte user-payload frame.
type Data24 struct {
	Data  [24]byte
	Flags [24]byte
}

func (Data24) Size() int { return 24 }

// F1Frame is Data24 with byte-pairs swapped.
type F1Frame struct {
	Data  [24]byte
	Flags [24]byte
}

func (F1Frame) Size() int { return 24 }

// F2Frame is an F1 frame plus 2x4 Reed-Solomon parity bytes,
// interleaved by the CIRC encoder.
type F2Frame struct {
	Data  [32]byte
	Flags [32]byte
}

func (F2Frame) Size() int { return 32 }

// F3FrameType tags an F3 frame as a subcode byte carrier or one of the
// two section-boundary pseudo-frames.
type F3FrameType int

const (
	Subcode F3FrameType = iota
	Sync0
	Sync1
)

// F3Frame is a 32-byte payload frame tagged with its channel role.
type F3Frame struct {
	Data        [32]byte
	Flags       [32]byte
	Type        F3FrameType
	SubcodeByte byte // valid only when Type == Subcode
}

func (F3Frame) Size() int { return 32 }

// NewF3Subcode builds an F3Frame carrying a subcode byte.
func NewF3Subcode(data [32]byte, flags [32]byte, b byte) F3Frame {
	return F3Frame{Data: data, Flags: flags, Type: Subcode, SubcodeByte: b}
}

// AudioFrame is 12 signed 16-bit samples (6 stereo pairs) with
// parallel error flags.
type AudioFrame struct {
	Samples [12]int16
	Flags   [12]byte
}

func (AudioFrame) Size() int { return 12 }

// Validate checks that data and flags are the expected size for a
// Sized frame type, returning a structural *efmerr.FatalError if not.
func Validate(s Sized, dataLen, flagsLen int) error {
	if dataLen != s.Size() {
		return efmerr.New(efmerr.ComponentSection, "frame payload size mismatch")
	}
	if flagsLen != s.Size() {
		return efmerr.New(efmerr.ComponentSection, "frame error-flag size mismatch")
	}
	return nil
}
