package lockout

import "time"

const (
	DefaultMaxFailedAttempts = 5
	DefaultLockoutDuration   = 15 * time.Minute
	DefaultAttemptWindow     = 60 * time.Minute
)

type Policy struct {
	MaxFailedAttempts int
	LockoutDuration   time.Duration
	AttemptWindow     time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxFailedAttempts: DefaultMaxFailedAttempts,
		LockoutDuration:   DefaultLockoutDuration,
		AttemptWindow:     DefaultAttemptWindow,
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.MaxFailedAttempts <= 0 {
		p.MaxFailedAttempts = d.MaxFailedAttempts
	}
	if p.LockoutDuration <= 0 {
		p.LockoutDuration = d.LockoutDuration
	}
	if p.AttemptWindow <= 0 {
		p.AttemptWindow = d.AttemptWindow
	}
	return p
}

// AttemptRecord is the prior failed-attempt state of an identity.
type AttemptRecord struct {
	Count        int
	LastFailedAt *time.Time
}

type AttemptOutcome struct {
	Count       int
	Lock        bool
	LockedUntil time.Time
}

// NextAttempt applies one failure to rec. The count keeps growing while
// failures stay within the attempt window of the previous one and restarts
// at 1 otherwise.
func NextAttempt(rec AttemptRecord, now time.Time, p Policy) AttemptOutcome {
	count := 1
	if rec.LastFailedAt != nil && now.Sub(*rec.LastFailedAt) <= p.AttemptWindow {
		count = rec.Count + 1
	}
	out := AttemptOutcome{Count: count}
	if count >= p.MaxFailedAttempts {
		out.Lock = true
		out.LockedUntil = now.Add(p.LockoutDuration)
	}
	return out
}

// Remaining is how many more failures the policy tolerates before locking.
func (p Policy) Remaining(count int) int {
	if r := p.MaxFailedAttempts - count; r > 0 {
		return r
	}
	return 0
}
