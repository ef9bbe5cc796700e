package cryptox_test

import (
	"strings"
	"testing"

	"github.com/reelhouse/accounts/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	hash, err := cryptox.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, cryptox.VerifyPassword("correct horse battery staple", hash))
	require.ErrorIs(t, cryptox.VerifyPassword("wrong password", hash), cryptox.ErrPasswordMismatch)
}

func TestHashesAreSalted(t *testing.T) {
	t.Parallel()

	a, err := cryptox.HashPassword("same input")
	require.NoError(t, err)
	b, err := cryptox.HashPassword("same input")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestVerifyRejectsMalformedHashes(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=4$c2FsdA",          // missing digest
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",             // bad params
		"$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA",      // bad salt encoding
		"$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$!!!",      // bad digest encoding
		"$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA$x", // extra part
	}

	for _, tc := range cases {
		err := cryptox.VerifyPassword("whatever", tc)
		require.Error(t, err, "hash: %q", tc)
		require.NotErrorIs(t, err, cryptox.ErrPasswordMismatch, "hash: %q", tc)
	}
}
