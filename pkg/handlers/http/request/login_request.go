package request

import (
	"errors"
	"strings"
)

const maxSecretLength = 1024

type LoginRequest struct {
	Email    string `json:"email" form:"email" xml:"email"`
	Password string `json:"password" form:"password" xml:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	if len(r.Password) > maxSecretLength {
		return errors.New("password is too long")
	}
	return nil
}
