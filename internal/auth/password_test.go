package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
)

func TestPasswordHasher_HashProducesUniqueSalts(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	second, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)

	require.NotEqual(t, first, second)

	ok, err := hasher.Verify("correct horse battery staple", first)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = hasher.Verify("correct horse battery staple", second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestPasswordHasher_VerifyRejectsWrongPassword(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	ok, err := hasher.Verify("password124", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPasswordHasher_EmptyArguments(t *testing.T) {
	hasher := NewPasswordHasher()

	_, err := hasher.Hash("")
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = hasher.Verify("", "$2a$10$abcdefghijklmnopqrstuv")
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = hasher.Verify("password123", "")
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestPasswordHasher_MalformedHashIsNotAnError(t *testing.T) {
	hasher := NewPasswordHasher()

	ok, err := hasher.Verify("password123", "not-a-bcrypt-hash")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPasswordHasher_ErrorKindsAreDistinct(t *testing.T) {
	hasher := NewPasswordHasher()

	_, err := hasher.Hash("")
	require.False(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}
