package pir

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/EllipticPIR/EllipticPIR/internal/workerpool"
	"github.com/EllipticPIR/EllipticPIR/internal/xerrors"
)

// MaxPacking is the largest number of plaintext bytes a single ciphertext
// slot may carry (spec §4.F: packing ∈ [1, 8]).
const MaxPacking = 8

// planPhases returns, for a reply holding n0 ciphertexts, the ciphertext
// count at the start of each of the dimension phases. It validates up
// front that every intermediate phase leaves a multiple of CipherSize
// bytes, rejecting malformed (dimension, packing, reply size) tuples
// before any decryption work starts — the REDESIGN the original C core
// left as an unvalidated Open Question.
func planPhases(n0 int, dimension, packing uint8) ([]int, error) {
	counts := make([]int, dimension)
	n := n0
	for k := uint8(0); k < dimension; k++ {
		counts[k] = n
		bytesOut := n * int(packing)
		if k == dimension-1 {
			break
		}
		if bytesOut%CipherSize != 0 {
			return nil, errors.Wrapf(xerrors.ErrInputShape,
				"pir: phase %d produces %d bytes, not a multiple of %d", k, bytesOut, CipherSize)
		}
		n = bytesOut / CipherSize
	}
	return counts, nil
}

// ReplyDecrypt unwinds a packed, dimension-deep homomorphic reply,
// decrypting dimension phases of Nk ciphertexts each and recovering the
// final Nk*packing plaintext bytes in place at the front of reply. mg must
// be fully loaded (mg.Ready()); workers <= 0 uses workerpool.Default().
//
// Intermediate phases leave stale bytes beyond the compacted region: the
// returned slice is the only defined output, callers must not rely on
// anything past its length.
func ReplyDecrypt(reply []byte, sk *PrivateKey, dimension, packing uint8, mg MGTable, workers int) ([]byte, error) {
	switch {
	case len(reply)%CipherSize != 0:
		return nil, errors.Wrapf(xerrors.ErrInputShape, "pir: reply size %d is not a multiple of %d", len(reply), CipherSize)
	case dimension == 0:
		return nil, errors.Wrap(xerrors.ErrInputShape, "pir: dimension must be >= 1")
	case packing == 0 || packing > MaxPacking:
		return nil, errors.Wrapf(xerrors.ErrInputShape, "pir: packing %d out of range [1, %d]", packing, MaxPacking)
	case mg == nil || !mg.Ready():
		return nil, xerrors.ErrMgNotLoaded
	}

	n0 := len(reply) / CipherSize
	phaseCounts, err := planPhases(n0, dimension, packing)
	if err != nil {
		return nil, err
	}

	for _, n := range phaseCounts {
		if err := decryptPhase(reply, sk, n, packing, mg, workers); err != nil {
			return nil, err
		}
		compactPhase(reply, n, packing)
	}

	finalLen := phaseCounts[len(phaseCounts)-1] * int(packing)
	return reply[:finalLen], nil
}

// decryptPhase decrypts the n ciphertexts at the front of reply in
// parallel, and unpacks each recovered scalar into the first `packing`
// bytes of its own 64-byte slot, little-endian.
func decryptPhase(reply []byte, sk *PrivateKey, n int, packing uint8, mg MGTable, workers int) error {
	return workerpool.Run(n, workers, func(i int) error {
		slot := reply[i*CipherSize : (i+1)*CipherSize]
		var c Ciphertext
		copy(c[:], slot)

		value, found, err := Decrypt(sk, &c, mg)
		if err != nil {
			return err
		}
		if !found {
			return xerrors.ErrDecryptionFailed
		}

		var buf [MaxPacking]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(value))
		copy(slot[:packing], buf[:packing])
		return nil
	})
}

// compactPhase copies the first `packing` bytes of each of the n slots
// down to the contiguous region at offset i*packing. It is a cheap
// sequential read/write on the shared buffer and, per spec §4.F, is not
// parallelized.
func compactPhase(reply []byte, n int, packing uint8) {
	p := int(packing)
	for i := 0; i < n; i++ {
		copy(reply[i*p:(i+1)*p], reply[i*CipherSize:i*CipherSize+p])
	}
}
