package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndVerify(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	digest, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	require.NotEqual(t, "correct horse battery staple", digest)

	require.True(t, h.Verify("correct horse battery staple", digest))
	require.False(t, h.Verify("wrong password", digest))
}

func TestBcrypt_HashesAreSalted(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	first, err := h.Hash("same password")
	require.NoError(t, err)
	second, err := h.Hash("same password")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, h.Verify("same password", first))
	require.True(t, h.Verify("same password", second))
}

func TestBcrypt_MalformedHash(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	require.False(t, h.Verify("anything", "not-a-bcrypt-hash"))
	require.False(t, h.Verify("anything", ""))
}

func TestBcrypt_CostOutOfRange(t *testing.T) {
	h := NewBcrypt(100)

	digest, err := h.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, cost)
}
