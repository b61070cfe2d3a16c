package threat

import (
	"context"

	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/NeuralTrust/AuthShield/pkg/domain/threat"
	"github.com/NeuralTrust/AuthShield/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

// detectAnomalousBehavior compares an authenticated request with the
// caller's baseline. Each unfamiliar dimension is its own event; a baseline
// with nothing recorded for a dimension never fires for it.
func (e *engine) detectAnomalousBehavior(ctx context.Context, req *threat.Request) []threat.Event {
	principal := req.Principal
	if principal == nil || principal.Identity == "" {
		return nil
	}

	var events []threat.Event
	if req.IsStateChanging() && e.classifyPath(req.Path) == pathAdmin && !principal.Role.IsAdministrative() {
		events = append(events, threat.NewEvent(
			threat.KindPrivilegeEscalation,
			threat.SeverityCritical,
			"admin_mutation_by_non_admin",
			req,
			map[string]interface{}{
				"role":   string(principal.Role),
				"method": req.Method,
				"path":   req.Path,
			},
		))
	}

	baseline, err := e.baselines.get(ctx, identity.NormalizeKey(principal.Identity), req.ObservedAt)
	if err != nil {
		prometheus.FailOpenTotal.WithLabelValues("threat", "baseline").Inc()
		e.logger.WithError(err).WithFields(logrus.Fields{
			"identity": principal.Identity,
		}).Error("baseline unavailable, skipping behavior checks")
		return events
	}

	if len(baseline.Addresses) > 0 && req.SourceAddress != "" && !baseline.KnowsAddress(req.SourceAddress) {
		events = append(events, threat.NewEvent(
			threat.KindAnomalousBehavior,
			threat.SeverityMedium,
			"unfamiliar_address",
			req,
			map[string]interface{}{"known_addresses": len(baseline.Addresses)},
		))
	}

	hour := req.ObservedAt.UTC().Hour()
	if d := baseline.HourDistance(hour); d > e.opts.UnusualHourTolerance {
		events = append(events, threat.NewEvent(
			threat.KindAnomalousBehavior,
			threat.SeverityLow,
			"unusual_hour",
			req,
			map[string]interface{}{"hour": hour, "distance": d},
		))
	}

	if len(baseline.Agents) > 0 && req.UserAgent != "" && !baseline.KnowsAgent(req.UserAgent) {
		events = append(events, threat.NewEvent(
			threat.KindAnomalousBehavior,
			threat.SeverityLow,
			"unfamiliar_agent",
			req,
			map[string]interface{}{"user_agent": truncate(req.UserAgent, 120)},
		))
	}
	return events
}
