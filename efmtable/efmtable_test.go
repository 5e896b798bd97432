package efmtable_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/coldcathode/efm/efmtable"
)

// S2 (EFM symbol sanity).
func TestSymbolZero(t *testing.T) {
	s, err := efmtable.EightToFourteen(0)
	require.NoError(t, err)
	require.Equal(t, "01001000100000", s)

	v, err := efmtable.FourteenToEight(s)
	require.NoError(t, err)
	require.Equal(t, 0, v)
}

func TestSyncSymbols(t *testing.T) {
	_, err := efmtable.EightToFourteen(efmtable.Sync0)
	require.NoError(t, err)
	_, err = efmtable.EightToFourteen(efmtable.Sync1)
	require.NoError(t, err)
}

func TestOutOfRange(t *testing.T) {
	_, err := efmtable.EightToFourteen(258)
	require.Error(t, err)
}

func TestUnknownSymbol(t *testing.T) {
	_, err := efmtable.FourteenToEight("11111111111111")
	require.Error(t, err)
}

// Property 1: fourteen_to_eight(eight_to_fourteen(b)) == b for all bytes.
func TestBijectiveProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := rapid.IntRange(0, 255).Draw(t, "b")
		s, err := efmtable.EightToFourteen(b)
		require.NoError(t, err)
		v, err := efmtable.FourteenToEight(s)
		require.NoError(t, err)
		require.Equal(t, b, v)
	})
}

func TestTableBijective(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < efmtable.Size; i++ {
		s, err := efmtable.EightToFourteen(i)
		require.NoError(t, err)
		require.Len(t, s, efmtable.SymbolBits)
		require.False(t, seen[s], "duplicate symbol at index %d", i)
		seen[s] = true
	}
}
