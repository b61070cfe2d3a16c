package threat

import (
	"strings"

	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/NeuralTrust/AuthShield/pkg/domain/threat"
)

// detectSuspiciousLogin looks at authentication requests only. Many
// distinct identities from one address is credential stuffing; an identity
// that names an administrative account is flagged on its own.
func (e *engine) detectSuspiciousLogin(req *threat.Request) []threat.Event {
	if e.classifyPath(req.Path) != pathAuth {
		return nil
	}
	attempted := identity.NormalizeKey(req.AttemptedIdentity)
	if attempted == "" {
		return nil
	}

	var events []threat.Event
	if req.SourceAddress != "" {
		distinct := e.identities.addDistinct(req.SourceAddress, attempted, req.ObservedAt)
		if distinct > e.opts.StuffingThreshold {
			events = append(events, threat.NewEvent(
				threat.KindSuspiciousLogin,
				threat.SeverityHigh,
				"credential_stuffing",
				req,
				map[string]interface{}{
					"distinct_identities": distinct,
					"threshold":           e.opts.StuffingThreshold,
					"window":              e.opts.StuffingWindow.String(),
				},
			))
		}
	}

	for _, marker := range e.opts.AdminIdentityMarkers {
		marker = strings.ToLower(strings.TrimSpace(marker))
		if marker != "" && strings.Contains(attempted, marker) {
			events = append(events, threat.NewEvent(
				threat.KindSuspiciousLogin,
				threat.SeverityMedium,
				"admin_targeting",
				req,
				map[string]interface{}{"marker": marker},
			))
			break
		}
	}
	return events
}
