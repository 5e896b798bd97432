/*
NAME
  rawsector.go

DESCRIPTION
  rawsector.go implements the Data24<->RawSector boundary: the CD-ROM
  raw-sector sync search (WaitingForSync/InSync/LostSync) and the
  self-synchronizing scrambler that the pressing process applies to
  every raw sector before it enters the CIRC/EFM pipeline.

  The scrambler table is not copied from a fixture; it is regenerated
  from its defining 15-bit LFSR (polynomial x^15+x+1, seed 1) the way
  the format actually specifies it. XOR against the table is its own
  inverse, so the same table scrambles on encode and unscrambles on
  decode.

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

// Package rawsector implements the Data24<->RawSector boundary:
// raw-sector sync acquisition/loss tracking and the CD-ROM scrambler.
package rawsector

// SectorSize is the size in bytes of one raw CD-ROM sector.
const SectorSize = 2352

// SyncSize is the length of the raw-sector sync pattern.
const SyncSize = 12

// missThreshold is the number of consecutive bad leading-sync checks
// that demote InSync to LostSync.
const missThreshold = 4

// syncPattern is the fixed 00 FF*10 00 raw-sector sync mark.
var syncPattern = [SyncSize]byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

// RawSector is one 2352-byte raw CD-ROM sector, descrambled, with a
// parallel byte-error-flag vector carried through from the Data24
// frames it was assembled from.
type RawSector struct {
	Data  [SectorSize]byte
	Flags [SectorSize]byte
}

// State is a sync-acquisition state of the raw-sector decoder.
type State int

const (
	WaitingForSync State = iota
	InSync
	LostSync
)

// Stats accumulates the decoder's sync-acquisition bookkeeping.
type Stats struct {
	GoodSync      int
	BadSync       int
	MissedSyncRun int
}

// Decoder recovers RawSectors from a stream of Data24 payload bytes,
// tracking sync acquisition the way a CD-ROM reader's servo does.
type Decoder struct {
	state State
	buf   []byte
	flags []byte

	Stats Stats
}

// NewDecoder builds a Decoder awaiting initial sync.
func NewDecoder() *Decoder {
	return &Decoder{state: WaitingForSync}
}

// State reports the decoder's current sync-acquisition state.
func (d *Decoder) State() State { return d.state }

// Push appends scrambled Data24 payload bytes (with their parallel
// error flags) to the decoder's buffer and returns every RawSector
// that can be extracted as a result, each one descrambled.
func (d *Decoder) Push(data, flags []byte) []RawSector {
	d.buf = append(d.buf, data...)
	d.flags = append(d.flags, flags...)

	var out []RawSector
	for {
		sec, progressed := d.step()
		if sec != nil {
			out = append(out, *sec)
		}
		if !progressed {
			return out
		}
	}
}

func (d *Decoder) step() (*RawSector, bool) {
	switch d.state {
	case WaitingForSync:
		return d.stepWaitingForSync()
	case InSync:
		return d.stepInSync()
	case LostSync:
		d.Stats.MissedSyncRun = 0
		d.state = WaitingForSync
		return nil, true
	default:
		return nil, false
	}
}

func (d *Decoder) stepWaitingForSync() (*RawSector, bool) {
	idx := indexOfSync(d.buf)
	if idx < 0 {
		if len(d.buf) > SyncSize-1 {
			trim := len(d.buf) - (SyncSize - 1)
			d.buf = d.buf[trim:]
			d.flags = d.flags[trim:]
		}
		return nil, false
	}
	d.buf = d.buf[idx:]
	d.flags = d.flags[idx:]
	d.state = InSync
	return nil, true
}

func (d *Decoder) stepInSync() (*RawSector, bool) {
	if len(d.buf) < SectorSize {
		return nil, false
	}
	if !matchesSync(d.buf[:SyncSize]) {
		d.Stats.MissedSyncRun++
		d.Stats.BadSync++
		if d.Stats.MissedSyncRun >= missThreshold {
			d.state = LostSync
		}
		// Slide by one byte and retry alignment on the next pass,
		// mirroring the scan a servo performs while hunting for sync.
		d.buf = d.buf[1:]
		d.flags = d.flags[1:]
		return nil, true
	}

	d.Stats.MissedSyncRun = 0
	d.Stats.GoodSync++

	var sec RawSector
	copy(sec.Data[:], descramble(d.buf[:SectorSize]))
	copy(sec.Flags[:], d.flags[:SectorSize])
	d.buf = d.buf[SectorSize:]
	d.flags = d.flags[SectorSize:]
	return &sec, true
}

func matchesSync(b []byte) bool {
	if len(b) != SyncSize {
		return false
	}
	for i, want := range syncPattern {
		if b[i] != want {
			return false
		}
	}
	return true
}

func indexOfSync(buf []byte) int {
	if len(buf) < SyncSize {
		return -1
	}
	for i := 0; i+SyncSize <= len(buf); i++ {
		if matchesSync(buf[i : i+SyncSize]) {
			return i
		}
	}
	return -1
}

// Encode scrambles a raw 2352-byte sector (sync mark, header and
// payload already in place) for transmission through the rest of the
// pipeline. It is the mirror of the descrambling Push performs.
func Encode(sector [SectorSize]byte) [SectorSize]byte {
	var out [SectorSize]byte
	copy(out[:], descramble(sector[:]))
	return out
}
