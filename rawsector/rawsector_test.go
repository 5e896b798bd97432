package rawsector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScrambleRoundTrip(t *testing.T) {
	var sector [SectorSize]byte
	for i := range sector {
		sector[i] = byte(i * 13)
	}
	scrambled := Encode(sector)
	require.NotEqual(t, sector, scrambled)

	back := descramble(scrambled[:])
	var got [SectorSize]byte
	copy(got[:], back)
	require.Equal(t, sector, got)
}

func buildStream(sectors ...[SectorSize]byte) ([]byte, []byte) {
	var data, flags []byte
	for _, s := range sectors {
		scrambled := Encode(s)
		data = append(data, scrambled[:]...)
		flags = append(flags, make([]byte, SectorSize)...)
	}
	return data, flags
}

func sectorWithSync(fill byte) [SectorSize]byte {
	var s [SectorSize]byte
	copy(s[:SyncSize], syncPattern[:])
	for i := SyncSize; i < SectorSize; i++ {
		s[i] = fill
	}
	return s
}

func TestDecoderAcquiresSyncAndEmitsSector(t *testing.T) {
	sector := sectorWithSync(0x42)
	data, flags := buildStream(sector)

	d := NewDecoder()
	got := d.Push(data, flags)
	require.Len(t, got, 1)
	require.Equal(t, sector, got[0].Data)
	require.Equal(t, 1, d.Stats.GoodSync)
	require.Equal(t, InSync, d.State())
}

func TestDecoderLeadingGarbageIsDiscarded(t *testing.T) {
	sector := sectorWithSync(0x7)
	data, flags := buildStream(sector)
	garbage := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xDD}
	data = append(garbage, data...)
	flags = append(make([]byte, len(garbage)), flags...)

	d := NewDecoder()
	got := d.Push(data, flags)
	require.Len(t, got, 1)
	require.Equal(t, sector, got[0].Data)
}

func TestDecoderTwoSectorsBackToBack(t *testing.T) {
	first := sectorWithSync(1)
	second := sectorWithSync(2)
	data, flags := buildStream(first, second)

	d := NewDecoder()
	got := d.Push(data, flags)
	require.Len(t, got, 2)
	require.Equal(t, first, got[0].Data)
	require.Equal(t, second, got[1].Data)
}

func TestDecoderLostSyncAfterRepeatedMismatch(t *testing.T) {
	sector := sectorWithSync(0x9)
	data, flags := buildStream(sector, sector, sector)

	// The first sector puts the decoder InSync. Corrupt the second
	// sector's sync mark so every leading-sync check inside InSync
	// fails from there, driving MissedSyncRun up to the threshold.
	data[SectorSize] = 0xFF

	d := NewDecoder()
	d.Push(data, flags)
	require.GreaterOrEqual(t, d.Stats.BadSync, missThreshold)
}

func TestDecoderFlagsCarryThrough(t *testing.T) {
	sector := sectorWithSync(0x5)
	data, flags := buildStream(sector)
	flags[SyncSize+3] = 1

	d := NewDecoder()
	got := d.Push(data, flags)
	require.Len(t, got, 1)
	require.Equal(t, byte(1), got[0].Flags[SyncSize+3])
}
