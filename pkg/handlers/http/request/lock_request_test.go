package request

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request LockRequest
		wantErr bool
	}{
		{name: "indefinite lock", request: LockRequest{Reason: "takeover"}},
		{name: "timed lock", request: LockRequest{Reason: "takeover", DurationMinutes: 30}},
		{name: "empty reason is allowed", request: LockRequest{}},
		{name: "negative duration", request: LockRequest{DurationMinutes: -1}, wantErr: true},
		{name: "longer than a year", request: LockRequest{DurationMinutes: 525601}, wantErr: true},
		{name: "reason too long", request: LockRequest{Reason: strings.Repeat("x", 501)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLockRequest_Duration(t *testing.T) {
	assert.Equal(t, 30*time.Minute, (&LockRequest{DurationMinutes: 30}).Duration())
	assert.Zero(t, (&LockRequest{}).Duration())
}

func TestLoginRequest_Validate(t *testing.T) {
	r := LoginRequest{Email: "  ana@example.com ", Password: "x"}
	assert.NoError(t, r.Validate())
	assert.Equal(t, "ana@example.com", r.Email)

	assert.Error(t, (&LoginRequest{Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "ana@example.com"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "ana@example.com", Password: strings.Repeat("x", 1025)}).Validate())
}
