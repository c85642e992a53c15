package curve

import (
	"bytes"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"

	"github.com/EllipticPIR/EllipticPIR/internal/disalloweq"
)

// PointSize is the size in bytes of a canonical point encoding.
const PointSize = 32

// Point is an Ed25519 group element, held in its canonical encoding's
// underlying representation. The zero value is not valid; use NewPoint or
// one of the NewXPoint constructors. All arguments and receivers are
// allowed to alias. Point wraps a pointer, so `==` would compare identity
// rather than value; DisallowEqual forces callers to use Equal instead.
type Point struct {
	_ disalloweq.DisallowEqual
	p *edwards25519.Point
}

// NewPoint returns a new Point set to the identity element.
func NewPoint() *Point {
	return &Point{p: edwards25519.NewIdentityPoint()}
}

// NewGeneratorPoint returns a new Point set to the canonical base point G.
func NewGeneratorPoint() *Point {
	return &Point{p: edwards25519.NewGeneratorPoint()}
}

// Set sets v = p and returns v.
func (v *Point) Set(p *Point) *Point {
	v.p.Set(p.p)
	return v
}

// Add sets v = p + q and returns v.
func (v *Point) Add(p, q *Point) *Point {
	v.p.Add(p.p, q.p)
	return v
}

// Subtract sets v = p - q and returns v.
func (v *Point) Subtract(p, q *Point) *Point {
	v.p.Subtract(p.p, q.p)
	return v
}

// Equal returns 1 iff v == p, 0 otherwise.
func (v *Point) Equal(p *Point) int {
	return v.p.Equal(p.p)
}

// BaseScalarMult sets v = s*G and returns v.
func (v *Point) BaseScalarMult(s *Scalar) *Point {
	v.p.ScalarBaseMult(s.s)
	return v
}

// ScalarMult sets v = s*p and returns v. Constant-time in s; used whenever
// s is secret key material.
func (v *Point) ScalarMult(s *Scalar, p *Point) *Point {
	v.p.ScalarMult(s.s, p.p)
	return v
}

// DoubleScalarMultVartime sets v = a*P + b*G and returns v. Variable-time
// in both scalars: only safe to use when a and b are public, which holds
// at its one call site in this module (the standard EC-ElGamal encryption
// path, where the randomness and plaintext are not secret key material).
func (v *Point) DoubleScalarMultVartime(a *Scalar, p *Point, b *Scalar) *Point {
	v.p.VarTimeDoubleScalarBaseMult(a.s, p.p, b.s)
	return v
}

// Bytes returns the 32-byte canonical encoding of v.
func (v *Point) Bytes() []byte {
	return v.p.Bytes()
}

// SetBytes sets v to the point encoded by src, a 32-byte canonical Ed25519
// point encoding, and returns v. Returns an error if src is not canonical
// or does not lie on the curve.
func (v *Point) SetBytes(src []byte) (*Point, error) {
	p, err := new(edwards25519.Point).SetBytes(src)
	if err != nil {
		return nil, errors.Wrap(err, "curve: invalid point encoding")
	}
	// edwards25519 accepts non-canonical encodings of valid points; reject
	// any input that does not re-encode to itself.
	if !bytes.Equal(p.Bytes(), src) {
		return nil, errors.New("curve: non-canonical point encoding")
	}
	v.p.Set(p)
	return v, nil
}

// NewPointFromBytes decodes a 32-byte canonical Ed25519 point encoding into
// a new Point.
func NewPointFromBytes(src []byte) (*Point, error) {
	return NewPoint().SetBytes(src)
}
