package pir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EllipticPIR/EllipticPIR/curve"
	"github.com/EllipticPIR/EllipticPIR/pir"
)

const testTableSize = 64

func TestEncryptDecryptRoundTrip(t *testing.T) {
	table := buildTable(t, testTableSize)
	sk, err := pir.GeneratePrivateKey()
	require.NoError(t, err)
	pk, err := pir.PublicKeyFromPrivateKey(sk)
	require.NoError(t, err)

	t.Run("Encrypt", func(t *testing.T) {
		for _, m := range []uint64{0, 1, 17, testTableSize - 1} {
			c, err := pir.Encrypt(pk, m, nil)
			require.NoError(t, err)
			value, found, err := pir.Decrypt(sk, c, table)
			require.NoError(t, err)
			require.True(t, found)
			require.EqualValues(t, m, value)
		}
	})

	t.Run("EncryptFast", func(t *testing.T) {
		for _, m := range []uint64{0, 1, 17, testTableSize - 1} {
			c, err := pir.EncryptFast(sk, m, nil)
			require.NoError(t, err)
			value, found, err := pir.Decrypt(sk, c, table)
			require.NoError(t, err)
			require.True(t, found)
			require.EqualValues(t, m, value)
		}
	})
}

// TestEncryptOutOfRangeIsNotFound mirrors spec scenario S1's final step:
// encrypting a plaintext outside the mG table's range decrypts to NotFound,
// not an error.
func TestEncryptOutOfRangeIsNotFound(t *testing.T) {
	table := buildTable(t, testTableSize)
	sk, err := pir.GeneratePrivateKey()
	require.NoError(t, err)
	pk, err := pir.PublicKeyFromPrivateKey(sk)
	require.NoError(t, err)

	c, err := pir.Encrypt(pk, testTableSize, nil)
	require.NoError(t, err)
	_, found, err := pir.Decrypt(sk, c, table)
	require.NoError(t, err)
	require.False(t, found)
}

// TestEncryptAndEncryptFastAgreeWithFixedRandomness mirrors spec scenario
// S2: with identical randomness, the standard and fast encryption paths
// produce byte-identical ciphertexts.
func TestEncryptAndEncryptFastAgreeWithFixedRandomness(t *testing.T) {
	sk, err := pir.GeneratePrivateKey()
	require.NoError(t, err)
	pk, err := pir.PublicKeyFromPrivateKey(sk)
	require.NoError(t, err)

	r := curve.NewScalarFromUint64(1)

	c1, err := pir.Encrypt(pk, 42, r)
	require.NoError(t, err)
	c2, err := pir.EncryptFast(sk, 42, r)
	require.NoError(t, err)
	require.Equal(t, c1[:], c2[:])
}

// TestHomomorphicAddition mirrors spec §8 invariant 4: adding two
// ciphertexts componentwise, as group elements, decrypts to the sum of
// their plaintexts.
func TestHomomorphicAddition(t *testing.T) {
	table := buildTable(t, testTableSize)
	sk, err := pir.GeneratePrivateKey()
	require.NoError(t, err)
	pk, err := pir.PublicKeyFromPrivateKey(sk)
	require.NoError(t, err)

	a, err := pir.Encrypt(pk, 10, nil)
	require.NoError(t, err)
	b, err := pir.Encrypt(pk, 20, nil)
	require.NoError(t, err)

	sum := addCiphertexts(t, a, b)
	value, found, err := pir.Decrypt(sk, sum, table)
	require.NoError(t, err)
	require.True(t, found)
	require.EqualValues(t, 30, value)
}

func addCiphertexts(t *testing.T, a, b *pir.Ciphertext) *pir.Ciphertext {
	t.Helper()
	c1a, err := curve.NewPointFromBytes(a.C1())
	require.NoError(t, err)
	c1b, err := curve.NewPointFromBytes(b.C1())
	require.NoError(t, err)
	c2a, err := curve.NewPointFromBytes(a.C2())
	require.NoError(t, err)
	c2b, err := curve.NewPointFromBytes(b.C2())
	require.NoError(t, err)

	c1 := curve.NewPoint().Add(c1a, c1b)
	c2 := curve.NewPoint().Add(c2a, c2b)

	var out pir.Ciphertext
	copy(out[:curve.PointSize], c1.Bytes())
	copy(out[curve.PointSize:], c2.Bytes())
	return &out
}
