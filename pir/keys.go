// Package pir implements the client-side cryptographic core of an
// EC-ElGamal Private Information Retrieval protocol: keypair management,
// additively-homomorphic encryption of small integers, multi-dimensional
// selector construction, and multi-phase reply decryption.
package pir

import "github.com/EllipticPIR/EllipticPIR/curve"

// PrivateKey is a uniformly random Ed25519 scalar.
type PrivateKey [curve.ScalarSize]byte

// PublicKey is an Ed25519 point encoding, the image of a PrivateKey under
// scalar multiplication by the base point.
type PublicKey [curve.PointSize]byte

// GeneratePrivateKey draws a new uniformly random private key.
func GeneratePrivateKey() (*PrivateKey, error) {
	s, err := curve.NewRandomScalar()
	if err != nil {
		return nil, err
	}
	var sk PrivateKey
	copy(sk[:], s.Bytes())
	return &sk, nil
}

// PublicKeyFromPrivateKey derives pk = sk·G.
func PublicKeyFromPrivateKey(sk *PrivateKey) (*PublicKey, error) {
	s, err := curve.NewScalarFromCanonicalBytes(sk[:])
	if err != nil {
		return nil, err
	}
	p := curve.NewPoint().BaseScalarMult(s)
	var pk PublicKey
	copy(pk[:], p.Bytes())
	return &pk, nil
}

func (sk *PrivateKey) scalar() (*curve.Scalar, error) {
	return curve.NewScalarFromCanonicalBytes(sk[:])
}

func (pk *PublicKey) point() (*curve.Point, error) {
	return curve.NewPointFromBytes(pk[:])
}
