/*
NAME
  decoder.go

DESCRIPTION
  decoder.go implements the channel-frame decode contract: a bitstring
  buffer that, once it holds enough bits and at least two sync
  patterns, extracts and decodes one 588-bit channel frame into an
  F3Frame.

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

package channel

import (
	"strings"

	"github.com/coldcathode/efm/efmerr"
	"github.com/coldcathode/efm/efmtable"
	"github.com/coldcathode/efm/frame"
)

// minBufferedBits is the threshold (≥612 bits) at which the decoder
// attempts extraction.
const minBufferedBits = 612

// Decoder holds the internal bit buffer for channel-frame decode.
type Decoder struct {
	buf string // bits as '0'/'1' characters, for cheap substring search
}

// NewDecoder builds an empty channel Decoder.
func NewDecoder() *Decoder { return &Decoder{} }

// Push appends newly arrived channel bits and extracts as many F3
// frames as the buffer currently supports.
func (d *Decoder) Push(bits []bool) ([]frame.F3Frame, error) {
	d.buf += bitsToString(bits)

	var out []frame.F3Frame
	for {
		f, progressed, err := d.tryExtract()
		if err != nil {
			return out, err
		}
		if f != nil {
			out = append(out, *f)
		}
		if !progressed {
			break
		}
	}
	return out, nil
}

func (d *Decoder) tryExtract() (f *frame.F3Frame, progressed bool, err error) {
	if len(d.buf) < minBufferedBits {
		return nil, false, nil
	}

	first := strings.Index(d.buf, SyncPattern)
	if first < 0 {
		d.trimToTail()
		return nil, true, nil
	}
	second := strings.Index(d.buf[first+1:], SyncPattern)
	if second < 0 {
		d.trimToTail()
		return nil, true, nil
	}

	if first+FrameBits > len(d.buf) {
		// Not enough bits past the first sync yet; wait for more.
		return nil, false, nil
	}

	frameStr := d.buf[first : first+FrameBits]
	d.buf = d.buf[first+FrameBits:]

	decoded, err := decodeFrame(frameStr)
	if err != nil {
		return nil, false, err
	}
	return decoded, true, nil
}

// trimToTail discards everything but the trailing 24 bits: if only one
// sync pattern is found, discard all but the last 24 bits and wait for
// more data.
func (d *Decoder) trimToTail() {
	if len(d.buf) > 24 {
		d.buf = d.buf[len(d.buf)-24:]
	}
}

// decodeFrame decodes one 588-bit channel frame string (sync already
// stripped to its leading position) into an F3Frame.
func decodeFrame(frameStr string) (*frame.F3Frame, error) {
	pos := 24 // past sync
	pos += 3  // merge

	subcodeSym, err := efmtable.FourteenToEight(frameStr[pos : pos+14])
	if err != nil {
		return nil, err
	}
	pos += 14
	pos += 3 // merge

	var f frame.F3Frame
	for i := 0; i < dataSymbolsPerFrame; i++ {
		sym, err := efmtable.FourteenToEight(frameStr[pos : pos+14])
		if err != nil {
			return nil, err
		}
		if sym > 255 {
			return nil, efmerr.New(efmerr.ComponentChannel, "data symbol decoded to a sync pseudo-symbol")
		}
		f.Data[i] = byte(sym)
		pos += 14
		pos += 3 // merge
	}

	switch subcodeSym {
	case efmtable.Sync0:
		f.Type = frame.Sync0
	case efmtable.Sync1:
		f.Type = frame.Sync1
	default:
		f.Type = frame.Subcode
		f.SubcodeByte = byte(subcodeSym)
	}
	return &f, nil
}
