package pir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/EllipticPIR/EllipticPIR/curve"
	"github.com/EllipticPIR/EllipticPIR/pir"
)

func TestPublicKeyFromPrivateKeyMatchesBaseScalarMult(t *testing.T) {
	sk, err := pir.GeneratePrivateKey()
	require.NoError(t, err)

	pk, err := pir.PublicKeyFromPrivateKey(sk)
	require.NoError(t, err)

	s, err := curve.NewScalarFromCanonicalBytes(sk[:])
	require.NoError(t, err)
	want := curve.NewPoint().BaseScalarMult(s)

	got, err := curve.NewPointFromBytes(pk[:])
	require.NoError(t, err)
	require.EqualValues(t, 1, got.Equal(want))
}

func TestGeneratePrivateKeyDrawsDistinctKeys(t *testing.T) {
	a, err := pir.GeneratePrivateKey()
	require.NoError(t, err)
	b, err := pir.GeneratePrivateKey()
	require.NoError(t, err)
	require.NotEqual(t, *a, *b)
}
