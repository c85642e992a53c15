package pir_test

import (
	"bytes"
	"encoding/binary"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EllipticPIR/EllipticPIR/curve"
	"github.com/EllipticPIR/EllipticPIR/mgtable"
)

// buildTable constructs a full mG table over [0, n), small enough for unit
// tests (production tables hold mgtable.MMAX = 2^24 entries, which this
// deliberately does not attempt). It exercises the same sortedness contract
// (spec §8 invariant 6) the production loader relies on.
func buildTable(t *testing.T, n uint32) *mgtable.Table {
	t.Helper()

	records := make([][mgtable.RecordSize]byte, n)
	for m := uint32(0); m < n; m++ {
		p := curve.NewPoint().BaseScalarMult(curve.NewScalarFromUint64(uint64(m)))
		var rec [mgtable.RecordSize]byte
		binary.LittleEndian.PutUint32(rec[:4], m)
		copy(rec[4:], p.Bytes())
		records[m] = rec
	}
	sort.Slice(records, func(i, j int) bool {
		return bytes.Compare(records[i][4:], records[j][4:]) < 0
	})

	table, got, err := mgtable.LoadInMemory(records, n)
	require.NoError(t, err)
	require.EqualValues(t, n, got)
	require.True(t, table.Ready())
	return table
}

// buildTableFor constructs an mG table holding exactly the given plaintexts,
// for scenarios that need one specific, possibly large, value without
// paying for a full contiguous [0, n) table.
func buildTableFor(t *testing.T, values ...uint32) *mgtable.Table {
	t.Helper()

	records := make([][mgtable.RecordSize]byte, len(values))
	for i, m := range values {
		p := curve.NewPoint().BaseScalarMult(curve.NewScalarFromUint64(uint64(m)))
		var rec [mgtable.RecordSize]byte
		binary.LittleEndian.PutUint32(rec[:4], m)
		copy(rec[4:], p.Bytes())
		records[i] = rec
	}
	sort.Slice(records, func(i, j int) bool {
		return bytes.Compare(records[i][4:], records[j][4:]) < 0
	})

	table, got, err := mgtable.LoadInMemory(records, uint32(len(values)))
	require.NoError(t, err)
	require.EqualValues(t, len(values), got)
	require.True(t, table.Ready())
	return table
}
