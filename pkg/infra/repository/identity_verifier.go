package repository

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/NeuralTrust/AuthShield/pkg/domain/errors"
	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"golang.org/x/crypto/bcrypt"
)

// IdentityVerifier checks a secret against the stored bcrypt hash. Unknown
// identities still pay for one comparison so response time does not reveal
// which keys exist.
type IdentityVerifier struct {
	repo  identity.Repository
	dummy []byte
}

func NewIdentityVerifier(repo identity.Repository) (*IdentityVerifier, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("authshield-unknown-identity"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("prepare verifier: %w", err)
	}
	return &IdentityVerifier{repo: repo, dummy: dummy}, nil
}

func (v *IdentityVerifier) Verify(ctx context.Context, key, secret string) (*identity.Identity, error) {
	ident, err := v.repo.FindByKey(ctx, identity.NormalizeKey(key))
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(v.dummy, []byte(secret))
		if domain.IsNotFoundError(err) {
			return nil, identity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}
	if ident.PasswordHash == "" {
		_ = bcrypt.CompareHashAndPassword(v.dummy, []byte(secret))
		return nil, identity.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(secret)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, identity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare hash: %w", err)
	}
	return ident, nil
}

// HashSecret is used when seeding identities.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
