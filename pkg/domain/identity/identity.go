package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identity is the account a login attempt targets. The lockout columns are
// owned by the identity store and mutated only through UpdateLockout.
type Identity struct {
	ID                  uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Key                 string     `json:"key" gorm:"uniqueIndex"`
	Role                Role       `json:"role"`
	PasswordHash        string     `json:"-"`
	FailedAttemptCount  int        `json:"failed_attempt_count"`
	LastFailedAttemptAt *time.Time `json:"last_failed_attempt_at,omitempty"`
	LockedUntil         *time.Time `json:"locked_until,omitempty"`
	LockoutReason       *string    `json:"lockout_reason,omitempty"`
	IsManuallyLocked    bool       `json:"is_manually_locked"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (i Identity) TableName() string {
	return "public.identities"
}

// LockoutFields is the full lockout state, always written as one unit.
type LockoutFields struct {
	FailedAttemptCount  int
	LastFailedAttemptAt *time.Time
	LockedUntil         *time.Time
	LockoutReason       *string
	IsManuallyLocked    bool
}

func (i *Identity) Lockout() LockoutFields {
	return LockoutFields{
		FailedAttemptCount:  i.FailedAttemptCount,
		LastFailedAttemptAt: i.LastFailedAttemptAt,
		LockedUntil:         i.LockedUntil,
		LockoutReason:       i.LockoutReason,
		IsManuallyLocked:    i.IsManuallyLocked,
	}
}

func (i *Identity) ApplyLockout(f LockoutFields) {
	i.FailedAttemptCount = f.FailedAttemptCount
	i.LastFailedAttemptAt = f.LastFailedAttemptAt
	i.LockedUntil = f.LockedUntil
	i.LockoutReason = f.LockoutReason
	i.IsManuallyLocked = f.IsManuallyLocked
}

// IsLockedAt reports whether the identity is locked at now. A manual lock
// without an expiry holds until an administrator lifts it.
func (i *Identity) IsLockedAt(now time.Time) bool {
	if i.IsManuallyLocked {
		return i.LockedUntil == nil || i.LockedUntil.After(now)
	}
	return i.LockedUntil != nil && i.LockedUntil.After(now)
}

// LockExpiredAt reports a lock whose lockedUntil has passed but whose
// fields have not been cleared yet.
func (i *Identity) LockExpiredAt(now time.Time) bool {
	return i.LockedUntil != nil && !i.LockedUntil.After(now)
}

// NormalizeKey canonicalizes an identity key (an email address).
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
