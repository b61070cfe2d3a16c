package identity

import "time"

type PredicateKind int

const (
	PredicateManuallyLocked PredicateKind = iota
	PredicateAutoLockActive
	PredicateAutoLockExpired
)

// Predicate selects identities for Count. At is the reference instant.
type Predicate struct {
	Kind PredicateKind
	At   time.Time
}

func ManuallyLocked(now time.Time) Predicate {
	return Predicate{Kind: PredicateManuallyLocked, At: now}
}

func AutoLockActive(now time.Time) Predicate {
	return Predicate{Kind: PredicateAutoLockActive, At: now}
}

func AutoLockExpired(now time.Time) Predicate {
	return Predicate{Kind: PredicateAutoLockExpired, At: now}
}

func (p Predicate) Matches(i *Identity) bool {
	switch p.Kind {
	case PredicateManuallyLocked:
		return i.IsManuallyLocked && i.IsLockedAt(p.At)
	case PredicateAutoLockActive:
		return !i.IsManuallyLocked && i.IsLockedAt(p.At)
	case PredicateAutoLockExpired:
		return !i.IsManuallyLocked && i.LockExpiredAt(p.At)
	default:
		return false
	}
}
