package pir

import "github.com/EllipticPIR/EllipticPIR/curve"

// CipherSize is the size in bytes of a ciphertext: two concatenated point
// encodings, c1 = r·G and c2 = m·G + r·P.
const CipherSize = 2 * curve.PointSize

// Ciphertext is an EC-ElGamal ciphertext encrypting a small integer
// plaintext under a public key.
type Ciphertext [CipherSize]byte

// C1 returns the c1 = r·G component.
func (c *Ciphertext) C1() []byte { return c[:curve.PointSize] }

// C2 returns the c2 = m·G + r·P component.
func (c *Ciphertext) C2() []byte { return c[curve.PointSize:] }

// MGTable is the discrete-log lookup the reply decoder and Decrypt consult:
// given the canonical encoding of a point m·G, return m and true, or
// (0, false) if no such entry exists. Ready reports whether the table was
// loaded in full (spec §7, resource-state error otherwise). Implemented by
// *mgtable.Table.
type MGTable interface {
	Lookup(point [curve.PointSize]byte) (uint32, bool)
	Ready() bool
}

// randomness returns r if non-nil, else a freshly drawn scalar.
func randomness(r *curve.Scalar) (*curve.Scalar, error) {
	if r != nil {
		return r, nil
	}
	return curve.NewRandomScalar()
}

// Encrypt encrypts the small integer m under public key pk: c1 = r·G,
// c2 = r·P + m·G. If r is nil, fresh randomness is drawn; supplying r
// explicitly is a test hook for deterministic encryption, never used on
// production paths.
func Encrypt(pk *PublicKey, m uint64, r *curve.Scalar) (*Ciphertext, error) {
	p, err := pk.point()
	if err != nil {
		return nil, err
	}
	rr, err := randomness(r)
	if err != nil {
		return nil, err
	}

	c1 := curve.NewPoint().BaseScalarMult(rr)
	mScalar := curve.NewScalarFromUint64(m)
	c2 := curve.NewPoint().DoubleScalarMultVartime(rr, p, mScalar)

	var c Ciphertext
	copy(c[:curve.PointSize], c1.Bytes())
	copy(c[curve.PointSize:], c2.Bytes())
	return &c, nil
}

// EncryptFast encrypts m using the private key directly, via the identity
// r·P + m·G = (r·sk + m)·G. Both c1 and c2 are produced by constant-time
// base-point multiplication, which is both faster than Encrypt's
// variable-point multiply and keeps sk inside a constant-time primitive;
// prefer this form whenever the caller holds sk.
func EncryptFast(sk *PrivateKey, m uint64, r *curve.Scalar) (*Ciphertext, error) {
	s, err := sk.scalar()
	if err != nil {
		return nil, err
	}
	rr, err := randomness(r)
	if err != nil {
		return nil, err
	}

	c1 := curve.NewPoint().BaseScalarMult(rr)

	mScalar := curve.NewScalarFromUint64(m)
	rPrime := curve.NewScalar().MulAdd(rr, s, mScalar)
	c2 := curve.NewPoint().BaseScalarMult(rPrime)

	var c Ciphertext
	copy(c[:curve.PointSize], c1.Bytes())
	copy(c[curve.PointSize:], c2.Bytes())
	return &c, nil
}

// Decrypt recovers the plaintext integer encrypted in c under sk, via
// M = c2 - sk·c1 followed by a discrete-log lookup in mg. found is false
// if M's encoding has no entry in mg — either because the plaintext
// exceeded the table's range or the ciphertext was malformed. That is not
// itself an error: it is a value, escalated to an aggregate failure by
// ReplyDecrypt.
func Decrypt(sk *PrivateKey, c *Ciphertext, mg MGTable) (value uint32, found bool, err error) {
	s, err := sk.scalar()
	if err != nil {
		return 0, false, err
	}
	c1, err := curve.NewPointFromBytes(c.C1())
	if err != nil {
		return 0, false, err
	}
	c2, err := curve.NewPointFromBytes(c.C2())
	if err != nil {
		return 0, false, err
	}

	sC1 := curve.NewPoint().ScalarMult(s, c1)
	m := curve.NewPoint().Subtract(c2, sC1)

	var enc [curve.PointSize]byte
	copy(enc[:], m.Bytes())
	value, found = mg.Lookup(enc)
	return value, found, nil
}
