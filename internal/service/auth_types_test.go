package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundtrip(t *testing.T) {
	hasher := BcryptPasswordHasher{Cost: bcrypt.MinCost}

	digest, err := hasher.Hash("s3cret-passphrase")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	ok, err := hasher.Verify(digest, "s3cret-passphrase")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasherMismatchIsNotAnError(t *testing.T) {
	hasher := BcryptPasswordHasher{Cost: bcrypt.MinCost}

	digest, err := hasher.Hash("s3cret-passphrase")
	require.NoError(t, err)

	ok, err := hasher.Verify(digest, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasherCorruptDigest(t *testing.T) {
	hasher := BcryptPasswordHasher{Cost: bcrypt.MinCost}

	ok, err := hasher.Verify("not-a-bcrypt-digest", "anything")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrCorruptDigest)
}

func TestBcryptHasherRejectsOversizedInput(t *testing.T) {
	hasher := BcryptPasswordHasher{Cost: bcrypt.MinCost}

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	_, err := hasher.Hash(string(long))
	assert.Error(t, err)
}
