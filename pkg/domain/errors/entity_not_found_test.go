package domain_test

import (
	"errors"
	"fmt"
	"testing"

	domain "github.com/NeuralTrust/AuthShield/pkg/domain/errors"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := domain.NewNotFoundError("identity", "a@example.com")
	wrapped := fmt.Errorf("find identity: %w", err)

	assert.EqualError(t, err, "identity with key 'a@example.com' not found")
	assert.True(t, errors.Is(wrapped, domain.ErrEntityNotFound))
	assert.True(t, domain.IsNotFoundError(wrapped))
	assert.False(t, domain.IsNotFoundError(errors.New("boom")))
	assert.False(t, domain.IsNotFoundError(nil))
}
