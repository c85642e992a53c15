// Package mgtable loads and queries the "mG" discrete-log table: a
// precomputed, ascending-by-point-sorted table mapping small integers m to
// their encoding of m·G, used to invert the discrete-log step of
// EC-ElGamal decryption by binary search (spec §4.D).
package mgtable

import (
	"encoding/binary"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/mmap"

	"github.com/EllipticPIR/EllipticPIR/internal/xerrors"
)

// MMAX is the entry count of a full production table, 2^24: it decodes
// plaintexts 0 … MMAX-1.
const MMAX = 1 << 24

// RecordSize is the on-disk size of one (scalar, point) entry: a 4-byte
// little-endian scalar followed by a 32-byte canonical point encoding.
const RecordSize = 4 + 32

// Table is an immutable, read-only view over an mG table. Once loaded, it
// is safe to share across goroutines without locking: §5 treats it as
// process-wide shared state with an init-then-read lifecycle.
type Table struct {
	recordAt func(i int) []byte
	n        int
	want     int
	close    func() error
}

// Len returns the number of entries actually present in the table.
func (t *Table) Len() int { return t.n }

// Ready reports whether the table holds as many entries as were requested
// of Load/LoadInMemory. A table that does not is unusable: callers must
// not invoke ReplyDecrypt against it (spec §7, resource-state error).
func (t *Table) Ready() bool { return t.n == t.want }

// Lookup returns the scalar m associated with the given canonical point
// encoding, and true, or (0, false) if point does not appear in the table.
// The comparison branches on point, which is public data relative to the
// party performing the lookup (spec §4.D).
func (t *Table) Lookup(point [32]byte) (uint32, bool) {
	idx := sort.Search(t.n, func(i int) bool {
		rec := t.recordAt(i)
		return byteSliceCompare(rec[4:], point[:]) >= 0
	})
	if idx >= t.n {
		return 0, false
	}
	rec := t.recordAt(idx)
	if byteSliceCompare(rec[4:], point[:]) != 0 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(rec[:4]), true
}

func byteSliceCompare(a, b []byte) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Close releases the resources backing the table (the memory mapping, for
// a file-backed table; a no-op for an in-memory one).
func (t *Table) Close() error {
	if t.close == nil {
		return nil
	}
	return t.close()
}

// Load memory-maps the mG table file at path and returns a Table backed by
// it, together with the number of complete 36-byte records present (capped
// at maxElems). A read that returns fewer than maxElems records indicates
// a truncated or invalid table: Load still returns a usable *Table so the
// caller can inspect Len()/Ready(), but Table.Ready() will be false and
// ReplyDecrypt will refuse to run against it.
func Load(path string, maxElems uint32) (*Table, int, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, 0, errors.Wrapf(xerrors.ErrIO, "mgtable: opening %q: %v", path, err)
	}

	available := r.Len() / RecordSize
	n := available
	if n > int(maxElems) {
		n = int(maxElems)
	}

	t := &Table{
		n:     n,
		want:  int(maxElems),
		close: r.Close,
		recordAt: func(i int) []byte {
			buf := make([]byte, RecordSize)
			if _, err := r.ReadAt(buf, int64(i)*RecordSize); err != nil {
				panic(errors.Wrap(err, "mgtable: short read of mapped table"))
			}
			return buf
		},
	}
	return t, n, nil
}

// LoadInMemory builds a Table directly from a slice of already-sorted
// 36-byte records, without any file I/O. Used by tests, which synthesize
// small tables that do not warrant the 600 MiB production file.
func LoadInMemory(records [][RecordSize]byte, maxElems uint32) (*Table, int, error) {
	n := len(records)
	if n > int(maxElems) {
		n = int(maxElems)
	}
	t := &Table{
		n:    n,
		want: int(maxElems),
		recordAt: func(i int) []byte {
			return records[i][:]
		},
	}
	return t, n, nil
}
