package mgtable_test

import (
	"bytes"
	"encoding/binary"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EllipticPIR/EllipticPIR/curve"
	"github.com/EllipticPIR/EllipticPIR/mgtable"
)

func buildSortedRecords(t *testing.T, n uint32) [][mgtable.RecordSize]byte {
	t.Helper()
	records := make([][mgtable.RecordSize]byte, n)
	for m := uint32(0); m < n; m++ {
		p := curve.NewPoint().BaseScalarMult(curve.NewScalarFromUint64(uint64(m)))
		binary.LittleEndian.PutUint32(records[m][:4], m)
		copy(records[m][4:], p.Bytes())
	}
	sort.Slice(records, func(i, j int) bool {
		return bytes.Compare(records[i][4:], records[j][4:]) < 0
	})
	return records
}

// TestTableIsSorted mirrors spec §8 invariant 6: consecutive entries are
// lexicographically ordered by point encoding.
func TestTableIsSorted(t *testing.T) {
	records := buildSortedRecords(t, 128)
	for i := 1; i < len(records); i++ {
		require.LessOrEqual(t, bytes.Compare(records[i-1][4:], records[i][4:]), 0)
	}
}

// TestLookupFindsEveryEntry mirrors spec §8 invariant 7: looking up every
// entry's own point recovers its scalar.
func TestLookupFindsEveryEntry(t *testing.T) {
	const n = 128
	records := buildSortedRecords(t, n)
	table, got, err := mgtable.LoadInMemory(records, n)
	require.NoError(t, err)
	require.EqualValues(t, n, got)

	for _, rec := range records {
		want := binary.LittleEndian.Uint32(rec[:4])
		var point [curve.PointSize]byte
		copy(point[:], rec[4:])

		value, found := table.Lookup(point)
		require.True(t, found)
		require.Equal(t, want, value)
	}
}

// TestLookupMissesNonMember mirrors spec §8 invariant 7's second half: a
// point absent from the table returns NotFound.
func TestLookupMissesNonMember(t *testing.T) {
	const n = 8
	records := buildSortedRecords(t, n)
	table, _, err := mgtable.LoadInMemory(records, n)
	require.NoError(t, err)

	absent := curve.NewPoint().BaseScalarMult(curve.NewScalarFromUint64(n + 1))
	var point [curve.PointSize]byte
	copy(point[:], absent.Bytes())

	_, found := table.Lookup(point)
	require.False(t, found)
}

// TestLoadInMemoryTruncation mirrors spec scenario S5: a table short of
// its requested element count reports its actual length but is not Ready.
func TestLoadInMemoryTruncation(t *testing.T) {
	const want = 16
	records := buildSortedRecords(t, want-1)

	table, n, err := mgtable.LoadInMemory(records, want)
	require.NoError(t, err)
	require.Equal(t, want-1, n)
	require.Equal(t, want-1, table.Len())
	require.False(t, table.Ready())
}

func TestLoadInMemoryFullTableIsReady(t *testing.T) {
	const want = 16
	records := buildSortedRecords(t, want)

	table, n, err := mgtable.LoadInMemory(records, want)
	require.NoError(t, err)
	require.Equal(t, want, n)
	require.True(t, table.Ready())
}
