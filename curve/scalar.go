// Package curve wraps the Ed25519 group arithmetic needed by the EC-ElGamal
// PIR core. It re-exports exactly the primitives spec.md §4.A requires
// (random scalar, scalar-multiply-add, scalar-from-u64, point encode/decode,
// base and variable-point scalar multiplication, variable-time double
// scalar multiplication, point subtraction) on top of filippo.io/edwards25519,
// so that callers never need to import the underlying library directly.
package curve

import (
	"crypto/rand"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"

	"github.com/EllipticPIR/EllipticPIR/internal/disalloweq"
)

// ScalarSize is the size in bytes of a canonical scalar encoding.
const ScalarSize = 32

// Scalar is an integer modulo the Ed25519 group order ℓ. The zero value is
// not valid; use NewScalar. All arguments and receivers are allowed to
// alias. Scalar wraps a pointer, so `==` would compare identity rather
// than value; DisallowEqual forces callers to use Equal instead.
type Scalar struct {
	_ disalloweq.DisallowEqual
	s *edwards25519.Scalar
}

// NewScalar returns a new zero-valued Scalar.
func NewScalar() *Scalar {
	return &Scalar{s: edwards25519.NewScalar()}
}

// Set sets s = a and returns s.
func (s *Scalar) Set(a *Scalar) *Scalar {
	s.s.Set(a.s)
	return s
}

// Random sets s to a uniformly random scalar drawn from crypto/rand and
// returns s. Mirrors crypto_core_ed25519_scalar_random: 64 bytes of
// randomness are reduced mod ℓ rather than 32, to avoid biasing the low
// bits.
func (s *Scalar) Random() (*Scalar, error) {
	var buf [64]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, errors.Wrap(err, "curve: reading randomness")
	}
	if _, err := s.s.SetUniformBytes(buf[:]); err != nil {
		// SetUniformBytes only fails on the wrong input length.
		return nil, errors.Wrap(err, "curve: reducing random scalar")
	}
	return s, nil
}

// FromUint64 sets s to n, zero-extended to a scalar, and returns s.
func (s *Scalar) FromUint64(n uint64) *Scalar {
	var buf [ScalarSize]byte
	buf[0] = byte(n)
	buf[1] = byte(n >> 8)
	buf[2] = byte(n >> 16)
	buf[3] = byte(n >> 24)
	buf[4] = byte(n >> 32)
	buf[5] = byte(n >> 40)
	buf[6] = byte(n >> 48)
	buf[7] = byte(n >> 56)
	if _, err := s.s.SetCanonicalBytes(buf[:]); err != nil {
		// Any uint64 is far below ℓ ≈ 2^252, so this cannot fail.
		panic("curve: u64 scalar rejected as non-canonical")
	}
	return s
}

// SetCanonicalBytes sets s to the scalar encoded by src, a 32-byte
// little-endian canonical encoding, and returns s. Returns an error if src
// does not represent a value in [0, ℓ).
func (s *Scalar) SetCanonicalBytes(src []byte) (*Scalar, error) {
	if _, err := s.s.SetCanonicalBytes(src); err != nil {
		return nil, errors.Wrap(err, "curve: non-canonical scalar encoding")
	}
	return s, nil
}

// Bytes returns the 32-byte little-endian canonical encoding of s.
func (s *Scalar) Bytes() []byte {
	return s.s.Bytes()
}

// MulAdd sets s = a*b + c mod ℓ and returns s.
func (s *Scalar) MulAdd(a, b, c *Scalar) *Scalar {
	s.s.MultiplyAdd(a.s, b.s, c.s)
	return s
}

// Multiply sets s = a*b mod ℓ and returns s.
func (s *Scalar) Multiply(a, b *Scalar) *Scalar {
	s.s.Multiply(a.s, b.s)
	return s
}

// Equal returns 1 iff s == a, 0 otherwise.
func (s *Scalar) Equal(a *Scalar) int {
	return s.s.Equal(a.s)
}

// NewScalarFromUint64 returns a new Scalar set to n.
func NewScalarFromUint64(n uint64) *Scalar {
	return NewScalar().FromUint64(n)
}

// NewRandomScalar returns a new uniformly random Scalar.
func NewRandomScalar() (*Scalar, error) {
	return NewScalar().Random()
}

// NewScalarFromCanonicalBytes creates a new Scalar from its canonical
// little-endian byte encoding.
func NewScalarFromCanonicalBytes(src []byte) (*Scalar, error) {
	return NewScalar().SetCanonicalBytes(src)
}
