// Package section defines the Section data model (§3): exactly 98
// frames of one type plus SectionMetadata. A section is meaningful
// only when full; partial sections never appear on an inter-stage
// queue (§5).
package section

import (
	"github.com/coldcathode/efm/efmerr"
	"github.com/coldcathode/efm/frame"
	"github.com/coldcathode/efm/sectiontime"
)

// FrameCount is the fixed number of frames per section (§3).
const FrameCount = 98

// Type classifies a section's disc region.
type Type int

const (
	UserData Type = iota
	LeadIn
	LeadOut
)

// QMode is the subcode Q-channel mode. Only Q1 and Q4 are implemented
// (§1 Non-goals: Q-modes 2/3 are out of scope).
type QMode int

const (
	Q1 QMode = iota + 1
	Q2
	Q3
	Q4
)

// Metadata is SectionMetadata (§3): the Q-channel-derived facts about a
// section plus the control bits spec.md §4.5 enumerates.
type Metadata struct {
	SectionType         Type
	QMode               QMode
	SectionTime         sectiontime.Time
	AbsoluteSectionTime sectiontime.Time
	TrackNumber         int
	IsAudioTrack        bool
	CopyProhibitedBit   bool
	PreEmphasisBit      bool
	Is2ChannelBit       bool
	PFlagBit            bool
	Valid               bool
}

// IsAudio reports whether the control nibble declares an audio track
// (expansion accessor spec.md §4.5's control-nibble table implies).
func (m Metadata) IsAudio() bool { return m.IsAudioTrack }

// CopyProhibited reports the copy-protection control bit.
func (m Metadata) CopyProhibited() bool { return m.CopyProhibitedBit }

// PreEmphasis reports the preemphasis control bit.
func (m Metadata) PreEmphasis() bool { return m.PreEmphasisBit }

// Is2Channel reports the 2-channel control bit.
func (m Metadata) Is2Channel() bool { return m.Is2ChannelBit }

// PFlag reports the P subchannel flag bit.
func (m Metadata) PFlag() bool { return m.PFlagBit }

// Validate enforces the §3 invariant: LeadIn/LeadOut implies track 0;
// UserData implies 1..99.
func (m Metadata) Validate() error {
	switch m.SectionType {
	case LeadIn, LeadOut:
		if m.TrackNumber != 0 {
			return efmerr.New(efmerr.ComponentSection, "lead-in/lead-out section must carry track 0")
		}
	case UserData:
		if m.TrackNumber < 1 || m.TrackNumber > 99 {
			return efmerr.New(efmerr.ComponentSection, "user-data section with track 0 is illegal")
		}
	}
	return nil
}

// F1Section is 98 F1 frames plus metadata.
type F1Section struct {
	Frames   [FrameCount]frame.F1Frame
	Metadata Metadata
}

// F2Section is 98 F2 frames plus metadata.
type F2Section struct {
	Frames   [FrameCount]frame.F2Frame
	Metadata Metadata
}

// F3Section is 98 F3 frames, as assembled by §4.4 before their subcode
// bytes are decoded into Metadata.
type F3Section struct {
	Frames [FrameCount]frame.F3Frame
}

// Data24Section is 98 Data24 frames plus metadata.
type Data24Section struct {
	Frames   [FrameCount]frame.Data24
	Metadata Metadata
}

// AudioSection is 98 audio frames (1176 stereo samples) plus metadata.
type AudioSection struct {
	Frames   [FrameCount]frame.AudioFrame
	Metadata Metadata
}
