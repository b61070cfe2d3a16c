package lockout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextAttempt(t *testing.T) {
	policy := DefaultPolicy()
	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	recent := now.Add(-10 * time.Minute)
	stale := now.Add(-61 * time.Minute)
	edge := now.Add(-60 * time.Minute)

	tests := []struct {
		name      string
		record    AttemptRecord
		wantCount int
		wantLock  bool
	}{
		{"first failure", AttemptRecord{}, 1, false},
		{"within window increments", AttemptRecord{Count: 2, LastFailedAt: &recent}, 3, false},
		{"window boundary still increments", AttemptRecord{Count: 2, LastFailedAt: &edge}, 3, false},
		{"outside window resets", AttemptRecord{Count: 4, LastFailedAt: &stale}, 1, false},
		{"reaching max locks", AttemptRecord{Count: 4, LastFailedAt: &recent}, 5, true},
		{"beyond max stays locked", AttemptRecord{Count: 7, LastFailedAt: &recent}, 8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NextAttempt(tt.record, now, policy)
			assert.Equal(t, tt.wantCount, out.Count)
			assert.Equal(t, tt.wantLock, out.Lock)
			if tt.wantLock {
				assert.Equal(t, now.Add(15*time.Minute), out.LockedUntil)
			} else {
				assert.True(t, out.LockedUntil.IsZero())
			}
		})
	}
}

func TestPolicy_Remaining(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 5, p.Remaining(0))
	assert.Equal(t, 1, p.Remaining(4))
	assert.Equal(t, 0, p.Remaining(9))
}

func TestPolicy_WithDefaults(t *testing.T) {
	p := Policy{MaxFailedAttempts: 3}.withDefaults()
	assert.Equal(t, 3, p.MaxFailedAttempts)
	assert.Equal(t, DefaultLockoutDuration, p.LockoutDuration)
	assert.Equal(t, DefaultAttemptWindow, p.AttemptWindow)
}
