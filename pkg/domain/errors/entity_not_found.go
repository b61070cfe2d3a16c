package domain

import (
	"errors"
	"fmt"
)

// ErrEntityNotFound matches every notFoundError through errors.Is.
var ErrEntityNotFound = errors.New("entity not found")

type notFoundError struct {
	EntityType string
	Key        string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s with key '%s' not found", e.EntityType, e.Key)
}

func (e *notFoundError) Unwrap() error {
	return ErrEntityNotFound
}

func NewNotFoundError(entityType string, key string) error {
	return &notFoundError{
		EntityType: entityType,
		Key:        key,
	}
}

func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var nf *notFoundError
	return errors.As(err, &nf)
}
