package threat

import "github.com/NeuralTrust/AuthShield/pkg/domain/threat"

// PolicyRule is the reputation action for one severity. PromoteAfter, when
// positive, blocks an address once it has that many tallied events.
type PolicyRule struct {
	MarkSuspicious bool
	Block          bool
	PromoteAfter   int
}

type Policy map[threat.Severity]PolicyRule

type Decision struct {
	MarkSuspicious bool
	Block          bool
}

func DefaultPolicy(promoteAfter int) Policy {
	return Policy{
		threat.SeverityCritical: {Block: true},
		threat.SeverityHigh:     {MarkSuspicious: true, PromoteAfter: promoteAfter},
		threat.SeverityMedium:   {MarkSuspicious: true},
		threat.SeverityLow:      {MarkSuspicious: true},
	}
}

// Decide maps a severity and the address's current event tally to actions.
// Severities missing from the table produce no action.
func (p Policy) Decide(severity threat.Severity, tally int) Decision {
	rule, ok := p[severity]
	if !ok {
		return Decision{}
	}
	return Decision{
		MarkSuspicious: rule.MarkSuspicious,
		Block:          rule.Block || (rule.PromoteAfter > 0 && tally >= rule.PromoteAfter),
	}
}
