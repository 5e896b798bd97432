/*
NAME
  sector.go

DESCRIPTION
  sector.go implements RawSector->Sector: BCD address/mode extraction
  from a raw sector's 16-byte header, and the two output writers
  (CD-ROM data body stream, sector metadata sidecar).

  CD-ROM sector P/Q parity ECC is preserved as named no-op stubs
  (qParityEcc/pParityEcc) rather than silently implemented or dropped;
  see DESIGN.md.

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

// Package sector implements the RawSector->Sector conversion and the
// CD-ROM data/metadata output writers.
package sector

import (
	"bufio"
	"fmt"
	"io"

	"github.com/coldcathode/efm/bcd"
	"github.com/coldcathode/efm/rawsector"
	"github.com/coldcathode/efm/sectiontime"
)

// UserDataSize is the size in bytes of a sector's user payload.
const UserDataSize = 2048

// headerSize is the sync (12) plus address+mode (4) header preceding
// a sector's user data.
const headerSize = rawsector.SyncSize + 4

// Mode is a CD-ROM sector mode, decoded from the raw sector's mode
// byte.
type Mode int

const (
	Mode0       Mode = 0
	Mode1       Mode = 1
	Mode2       Mode = 2
	ModeInvalid Mode = -1
)

// Sector is the decoded form of one RawSector: its BCD address, its
// mode, a metadata-validity flag, and its 2048-byte user payload.
type Sector struct {
	Address       sectiontime.Time
	Mode          Mode
	MetadataValid bool
	Data          [UserDataSize]byte
}

// FromRawSector decodes raw's header (bytes 12-14 BCD M:S:F, byte 15
// mode) and copies its user data (§4.12). MetadataValid is false if
// any header byte carried an error flag.
func FromRawSector(raw rawsector.RawSector) Sector {
	var sec Sector

	m := bcd.Decode(raw.Data[12])
	s := bcd.Decode(raw.Data[13])
	f := bcd.Decode(raw.Data[14])
	sec.Address = sectiontime.New(m, s, f)

	switch raw.Data[15] {
	case 0:
		sec.Mode = Mode0
	case 1:
		sec.Mode = Mode1
	case 2:
		sec.Mode = Mode2
	default:
		sec.Mode = ModeInvalid
	}

	sec.MetadataValid = true
	for i := 12; i <= 15; i++ {
		if raw.Flags[i] != 0 {
			sec.MetadataValid = false
			break
		}
	}

	copy(sec.Data[:], raw.Data[headerSize:headerSize+UserDataSize])

	qParityEcc(sec)
	pParityEcc(sec)

	return sec
}

// qParityEcc is a preserved stub: the source's CD-ROM sector Q-parity
// ECC is not implemented (Design Notes §9 Open Question 2).
func qParityEcc(Sector) {}

// pParityEcc is a preserved stub: the source's CD-ROM sector P-parity
// ECC is not implemented (Design Notes §9 Open Question 2).
func pParityEcc(Sector) {}

// Writer emits the concatenated 2048-byte sector bodies named in §6's
// "Output: CD-ROM data".
type Writer struct {
	w *bufio.Writer
}

// NewWriter builds a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteSector appends sec's user data to the output stream.
func (w *Writer) WriteSector(sec Sector) error {
	_, err := w.w.Write(sec.Data[:])
	return err
}

// Close flushes any buffered output.
func (w *Writer) Close() error {
	return w.w.Flush()
}

// MetadataWriter emits the sector metadata sidecar named in §6:
// "address,mode,dataValid" lines preceded by a fixed 3-line header.
type MetadataWriter struct {
	w           *bufio.Writer
	wroteHeader bool
}

// NewMetadataWriter builds a MetadataWriter over w.
func NewMetadataWriter(w io.Writer) *MetadataWriter {
	return &MetadataWriter{w: bufio.NewWriter(w)}
}

// WriteSector appends one metadata line for sec, writing the header
// first if this is the first call.
func (w *MetadataWriter) WriteSector(sec Sector) error {
	if !w.wroteHeader {
		fmt.Fprintln(w.w, "# coldcathode/efm sector metadata sidecar")
		fmt.Fprintln(w.w, "# columns: address,mode,dataValid")
		fmt.Fprintln(w.w, "#")
		w.wroteHeader = true
	}
	_, err := fmt.Fprintf(w.w, "%d,%d,%t\n", sec.Address.Frames(), sec.Mode, sec.MetadataValid)
	return err
}

// Close flushes any buffered output.
func (w *MetadataWriter) Close() error {
	return w.w.Flush()
}
