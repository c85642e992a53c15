package pir

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/EllipticPIR/EllipticPIR/internal/workerpool"
	"github.com/EllipticPIR/EllipticPIR/internal/xerrors"
)

// IndexCounts describes the size of each PIR dimension: index_counts[i] is
// the number of elements along dimension i.
type IndexCounts []uint64

// ElementsCount returns ∏ index_counts[i], the total number of addressable
// elements.
func (c IndexCounts) ElementsCount() uint64 {
	prod := uint64(1)
	for _, n := range c {
		prod *= n
	}
	return prod
}

// CiphersCount returns Σ index_counts[i], the number of ciphertext slots a
// selector over these dimensions requires.
func (c IndexCounts) CiphersCount() uint64 {
	var sum uint64
	for _, n := range c {
		sum += n
	}
	return sum
}

func (c IndexCounts) validate() error {
	if len(c) == 0 {
		return errors.Wrap(xerrors.ErrInputShape, "pir: index_counts is empty")
	}
	for i, n := range c {
		if n == 0 {
			return errors.Wrapf(xerrors.ErrInputShape, "pir: index_counts[%d] is zero", i)
		}
	}
	return nil
}

// decompose expresses idx in mixed radix over counts, most-significant
// dimension first: for i = 0..len(counts)-1, prod /= counts[i],
// digits[i] = idx / prod, idx %= prod. This ordering must be reproduced
// exactly, or the server addresses the wrong element.
func decompose(counts IndexCounts, idx uint64) []uint64 {
	digits := make([]uint64, len(counts))
	prod := counts.ElementsCount()
	for i, n := range counts {
		prod /= n
		digits[i] = idx / prod
		idx %= prod
	}
	return digits
}

// plaintextSelector builds the pre-encryption selector pattern: for each
// dimension i, slot j in [0, counts[i]), a leading byte of 1 iff j equals
// the mixed-radix digit for that dimension, 0 otherwise.
func plaintextSelector(counts IndexCounts, idx uint64) []byte {
	digits := decompose(counts, idx)
	ciphers := counts.CiphersCount()

	bits := make([]byte, ciphers)
	offset := uint64(0)
	for i, n := range counts {
		for j := uint64(0); j < n; j++ {
			if j == digits[i] {
				bits[offset] = 1
			}
			offset++
		}
	}
	return bits
}

// encryptFn encrypts a single selector bit and returns its ciphertext.
type encryptFn func(bit byte) (*Ciphertext, error)

func buildSelector(counts IndexCounts, idx uint64, workers int, encrypt encryptFn) ([]byte, error) {
	if err := counts.validate(); err != nil {
		return nil, err
	}
	elements := counts.ElementsCount()
	if idx >= elements {
		return nil, errors.Wrapf(xerrors.ErrInputShape, "pir: idx %d out of range [0, %d)", idx, elements)
	}

	bits := plaintextSelector(counts, idx)
	n := len(bits)

	out := make([]byte, n*CipherSize)
	err := workerpool.Run(n, workers, func(i int) error {
		c, err := encrypt(bits[i])
		if err != nil {
			return fmt.Errorf("pir: encrypting selector slot %d: %w", i, err)
		}
		copy(out[i*CipherSize:(i+1)*CipherSize], c[:])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SelectorCreate builds and encrypts, under the standard (public-key)
// encryption path, the selector addressing flat index idx over the given
// dimension sizes. workers <= 0 uses workerpool.Default().
func SelectorCreate(pk *PublicKey, counts IndexCounts, idx uint64, workers int) ([]byte, error) {
	return buildSelector(counts, idx, workers, func(bit byte) (*Ciphertext, error) {
		return Encrypt(pk, uint64(bit), nil)
	})
}

// SelectorCreateFast is SelectorCreate using the fast (private-key)
// encryption path.
func SelectorCreateFast(sk *PrivateKey, counts IndexCounts, idx uint64, workers int) ([]byte, error) {
	return buildSelector(counts, idx, workers, func(bit byte) (*Ciphertext, error) {
		return EncryptFast(sk, uint64(bit), nil)
	})
}
