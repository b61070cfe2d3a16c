package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/NeuralTrust/AuthShield/mocks"
	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/NeuralTrust/AuthShield/pkg/infra/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIdentityVerifier(t *testing.T) {
	hash, err := repository.HashSecret("correct horse")
	require.NoError(t, err)

	repo := repository.NewMemoryIdentityRepository()
	repo.Save(&identity.Identity{Key: "Ana@Example.com", Role: identity.RoleMember, PasswordHash: hash})
	repo.Save(&identity.Identity{Key: "nohash@example.com", Role: identity.RoleMember})

	verifier, err := repository.NewIdentityVerifier(repo)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("valid secret", func(t *testing.T) {
		ident, err := verifier.Verify(ctx, " ana@example.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", ident.Key)
		assert.Equal(t, identity.RoleMember, ident.Role)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := verifier.Verify(ctx, "ana@example.com", "battery staple")
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("unknown identity looks the same", func(t *testing.T) {
		_, err := verifier.Verify(ctx, "ghost@example.com", "correct horse")
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("identity without a secret", func(t *testing.T) {
		_, err := verifier.Verify(ctx, "nohash@example.com", "")
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})
}

func TestIdentityVerifier_StorageError(t *testing.T) {
	repo := mocks.NewIdentityRepository(t)
	repo.On("FindByKey", mock.Anything, "ana@example.com").Return(nil, errors.New("connection reset"))

	verifier, err := repository.NewIdentityVerifier(repo)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), "ana@example.com", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, identity.ErrInvalidCredentials)
}
