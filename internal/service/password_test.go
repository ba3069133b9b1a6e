package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashVerify(t *testing.T) {
	t.Parallel()

	encoded, err := hashPassword("s3cret-pass")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=19456,t=2,p=1$"))

	ok, err := verifyPassword(encoded, "s3cret-pass")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = verifyPassword(encoded, "wrong-pass")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPasswordHashSaltIsRandom(t *testing.T) {
	t.Parallel()

	first, err := hashPassword("s3cret-pass")
	require.NoError(t, err)
	second, err := hashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifyPasswordMalformed(t *testing.T) {
	t.Parallel()

	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=19456,t=2,p=1$onlysaltnokey",
	} {
		_, err := verifyPassword(encoded, "s3cret-pass")
		require.Error(t, err)
	}
}
