package identity

import (
	"context"
	"errors"
)

// ErrInvalidCredentials covers both unknown identities and wrong secrets.
var ErrInvalidCredentials = errors.New("invalid credentials")

//go:generate mockery --name=CredentialVerifier --dir=. --output=../../../mocks --filename=credential_verifier_mock.go --structname=CredentialVerifier --case=underscore
type CredentialVerifier interface {
	Verify(ctx context.Context, key, secret string) (*Identity, error)
}
