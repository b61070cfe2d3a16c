package request

import (
	"errors"
	"strings"
	"time"
)

// maximum manual lock of one year
const maxLockMinutes = 525600

type LockRequest struct {
	Reason          string `json:"reason"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (r *LockRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if r.DurationMinutes < 0 {
		return errors.New("duration_minutes must not be negative")
	}
	if r.DurationMinutes > maxLockMinutes {
		return errors.New("duration_minutes must not exceed one year")
	}
	if len(r.Reason) > 500 {
		return errors.New("reason must not exceed 500 characters")
	}
	return nil
}

// Duration is zero for an indefinite lock.
func (r *LockRequest) Duration() time.Duration {
	return time.Duration(r.DurationMinutes) * time.Minute
}

type UnlockRequest struct {
	Reason string `json:"reason"`
}

func (r *UnlockRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if len(r.Reason) > 500 {
		return errors.New("reason must not exceed 500 characters")
	}
	return nil
}
