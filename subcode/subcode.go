/*
NAME
  subcode.go

DESCRIPTION
  subcode.go implements the P/Q subcode codec: a pure SectionMetadata
  <-> [12]byte Q-channel codec with CRC-16, and a pure framer
  packing/unpacking the Q-channel's 96 bits against the section's 96
  subcode bytes. Both halves are pure functions with no I/O or stored
  state, kept independent of the section's P/Q bit framing.

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

// Package subcode implements the P/Q subcode codec.
package subcode

import (
	"github.com/coldcathode/efm/bcd"
	"github.com/coldcathode/efm/efmerr"
	"github.com/coldcathode/efm/section"
	"github.com/coldcathode/efm/sectiontime"
)

// SubcodeByteCount is the number of subcode bytes per section (index
// 2..97 of the 98-frame section).
const SubcodeByteCount = 96

const (
	leadInTrack  = 0x00
	leadOutTrack = 0xAA
)

// controlNibble is the exhaustive Q-channel control-nibble table.
type controlNibble struct {
	audio, twoChannel, preEmphasis, copyPermitted bool
}

var controlTable = map[byte]controlNibble{
	0x0: {audio: true, twoChannel: true, preEmphasis: false, copyPermitted: false},
	0x1: {audio: true, twoChannel: true, preEmphasis: true, copyPermitted: false},
	0x2: {audio: true, twoChannel: true, preEmphasis: false, copyPermitted: true},
	0x3: {audio: true, twoChannel: true, preEmphasis: true, copyPermitted: true},
	0x4: {audio: false, copyPermitted: false},
	0x6: {audio: false, copyPermitted: true},
}

func encodeControlNibble(m section.Metadata) (byte, error) {
	for nibble, c := range controlTable {
		if c.audio == m.IsAudioTrack &&
			c.twoChannel == m.Is2ChannelBit &&
			c.preEmphasis == m.PreEmphasisBit &&
			c.copyPermitted == !m.CopyProhibitedBit {
			return nibble, nil
		}
	}
	return 0, efmerr.New(efmerr.ComponentSubcode, "control bits do not match any known control nibble")
}

func decodeControlNibble(nibble byte) (controlNibble, error) {
	c, ok := controlTable[nibble]
	if !ok {
		return controlNibble{}, efmerr.New(efmerr.ComponentSubcode, "unknown control nibble")
	}
	return c, nil
}

// ToData encodes m as the 12-byte Q-channel payload (byte 0 control/mode,
// byte 1 track, byte 2 index, bytes 3-5 section time, byte 6 reserved,
// bytes 7-9 absolute time, bytes 10-11 CRC-16).
func ToData(m section.Metadata) ([12]byte, error) {
	var out [12]byte
	control, err := encodeControlNibble(m)
	if err != nil {
		return out, err
	}
	out[0] = (control << 4) | byte(m.QMode)

	switch m.SectionType {
	case section.LeadIn:
		out[1] = leadInTrack
	case section.LeadOut:
		out[1] = leadOutTrack
	default:
		out[1] = bcd.Encode(m.TrackNumber)
	}
	out[2] = 0x00 // index/pointer, not interpreted

	st := m.SectionTime.ToBCD()
	copy(out[3:6], st[:])
	out[6] = 0x00

	at := m.AbsoluteSectionTime.ToBCD()
	copy(out[7:10], at[:])

	crc := ^crc16(out[0:10])
	out[10] = byte(crc >> 8)
	out[11] = byte(crc)
	return out, nil
}

// FromData decodes the 12-byte Q-channel payload into Metadata. The CRC
// is always recomputed and recorded in Metadata.Valid; a CRC mismatch
// does not itself halt decode — an invalid-metadata section is handled
// by the correction stage, not here. TrackNumber 0 under
// section.UserData is a structural fatal condition.
func FromData(data [12]byte) (section.Metadata, error) {
	var m section.Metadata

	control, err := decodeControlNibble(data[0] >> 4)
	if err != nil {
		return m, err
	}
	m.IsAudioTrack = control.audio
	m.Is2ChannelBit = control.twoChannel
	m.PreEmphasisBit = control.preEmphasis
	m.CopyProhibitedBit = !control.copyPermitted
	m.QMode = section.QMode(data[0] & 0x0F)

	switch data[1] {
	case leadInTrack:
		m.SectionType = section.LeadIn
		m.TrackNumber = 0
	case leadOutTrack:
		m.SectionType = section.LeadOut
		m.TrackNumber = 0
	default:
		m.SectionType = section.UserData
		m.TrackNumber = bcd.Decode(data[1])
		if m.TrackNumber == 0 {
			return m, efmerr.New(efmerr.ComponentSubcode, "user-data section with track 0 is illegal")
		}
	}

	m.SectionTime = sectiontime.FromBCD([3]byte{data[3], data[4], data[5]})
	m.AbsoluteSectionTime = sectiontime.FromBCD([3]byte{data[7], data[8], data[9]})

	stored := uint16(data[10])<<8 | uint16(data[11])
	computed := ^crc16(data[0:10])
	m.Valid = stored == computed

	return m, nil
}

// IsCRCValid reports whether the stored CRC in a raw Q-channel payload
// matches the recomputed CRC-16 over bytes 0..9.
func IsCRCValid(data [12]byte) bool {
	stored := uint16(data[10])<<8 | uint16(data[11])
	return stored == ^crc16(data[0:10])
}

// crc16 computes the CRC-16/CCITT-style checksum used by the Q-channel:
// polynomial 0x1021, initial value 0, MSB-first, over the given bytes.
// The standard one's-complement step is applied by the caller, not here.
func crc16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
