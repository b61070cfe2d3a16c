package threat

import (
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/google/uuid"
)

type Kind string

const (
	KindSuspiciousLogin     Kind = "suspicious_login"
	KindBruteForce          Kind = "brute_force"
	KindAnomalousBehavior   Kind = "anomalous_behavior"
	KindPrivilegeEscalation Kind = "privilege_escalation"
	KindInjectionAttempt    Kind = "injection_attempt"
)

func Kinds() []Kind {
	return []Kind{
		KindSuspiciousLogin,
		KindBruteForce,
		KindAnomalousBehavior,
		KindPrivilegeEscalation,
		KindInjectionAttempt,
	}
}

// Event is a classified detection. Severity is fixed when the event is
// created.
type Event struct {
	ID            uuid.UUID              `json:"id"`
	Kind          Kind                   `json:"kind"`
	Severity      Severity               `json:"severity"`
	SourceAddress string                 `json:"source_address"`
	Identity      string                 `json:"identity,omitempty"`
	Rule          string                 `json:"rule"`
	Details       map[string]interface{} `json:"details,omitempty"`
	ObservedAt    time.Time              `json:"observed_at"`
}

func NewEvent(kind Kind, severity Severity, rule string, req *Request, details map[string]interface{}) Event {
	return Event{
		ID:            uuid.New(),
		Kind:          kind,
		Severity:      severity,
		SourceAddress: req.SourceAddress,
		Identity:      req.identityForEvent(),
		Rule:          rule,
		Details:       details,
		ObservedAt:    req.ObservedAt,
	}
}

// Request is the view of an inbound request the detectors work on.
type Request struct {
	SourceAddress string
	Method        string
	Path          string
	RawQuery      string
	Body          []byte
	UserAgent     string
	// AttemptedIdentity is the identity submitted to an authentication
	// endpoint, known or not.
	AttemptedIdentity string
	ObservedAt        time.Time
	Principal         *Principal
}

// Principal is the authenticated caller, when there is one.
type Principal struct {
	Identity string
	Role     identity.Role
}

func (r *Request) identityForEvent() string {
	if r.Principal != nil && r.Principal.Identity != "" {
		return r.Principal.Identity
	}
	return r.AttemptedIdentity
}

// IsStateChanging reports methods that mutate server state.
func (r *Request) IsStateChanging() bool {
	switch r.Method {
	case "POST", "PUT", "PATCH", "DELETE":
		return true
	default:
		return false
	}
}
