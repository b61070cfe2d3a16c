package threat

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/NeuralTrust/AuthShield/pkg/domain/loginevent"
	"github.com/NeuralTrust/AuthShield/pkg/domain/threat"
	"github.com/NeuralTrust/AuthShield/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

type Stats struct {
	Blocked          int                   `json:"blocked"`
	Suspicious       int                   `json:"suspicious"`
	LastUpdated      *time.Time            `json:"last_updated,omitempty"`
	EventsByKind     map[threat.Kind]int64 `json:"events_by_kind"`
	EventsBySeverity map[string]int64      `json:"events_by_severity"`
	TrackedCounters  int                   `json:"tracked_counters"`
	CachedBaselines  int                   `json:"cached_baselines"`
}

type CleanupReport struct {
	Counters  int `json:"counters"`
	Baselines int `json:"baselines"`
	Blocks    int `json:"blocks"`
}

//go:generate mockery --name=Engine --dir=. --output=../../../mocks --filename=threat_engine_mock.go --structname=ThreatEngine --case=underscore
type Engine interface {
	// Analyze runs every detector against req and responds to each event.
	// Requests from blocked addresses are not analyzed.
	Analyze(ctx context.Context, req *threat.Request) []threat.Event
	Respond(ctx context.Context, event threat.Event)
	IsBlocked(ctx context.Context, address string) bool
	IsSuspicious(ctx context.Context, address string) bool
	Unblock(ctx context.Context, address string) error
	ClearAllBlocks(ctx context.Context) error
	// Cleanup discards expired counters and stale baselines. It never lifts
	// a block or a suspicious mark that is still in force.
	Cleanup(ctx context.Context) CleanupReport
	Stats(ctx context.Context) (Stats, error)
	ListBlocked(ctx context.Context) ([]threat.BlockEntry, error)
	ListSuspicious(ctx context.Context) ([]string, error)
	// RecordLogin appends a successful login to the identity's history.
	RecordLogin(ctx context.Context, identityKey, address, agent string, at time.Time)
}

type engine struct {
	logger    *logrus.Logger
	store     threat.ReputationStore
	logins    loginevent.Repository
	opts      Options
	now       func() time.Time
	baselines *baselines

	reputation guardedStore
	history    guardedStore

	requests   *windowCounters // address+path -> requests
	identities *windowCounters // address -> distinct attempted identities
	tallies    *windowCounters // address -> events

	lastUpdated atomic.Int64
	totalsMu    sync.Mutex
	byKind      map[threat.Kind]int64
	bySeverity  map[threat.Severity]int64
}

func NewEngine(
	logger *logrus.Logger,
	store threat.ReputationStore,
	logins loginevent.Repository,
	opts Options,
) (Engine, error) {
	opts = opts.withDefaults()
	history := newGuardedStore(logger, historyBreakerName, opts)
	bl, err := newBaselines(logins, history, opts)
	if err != nil {
		return nil, err
	}
	return &engine{
		logger:     logger,
		store:      store,
		logins:     logins,
		opts:       opts,
		now:        opts.Clock,
		baselines:  bl,
		reputation: newGuardedStore(logger, reputationBreakerName, opts),
		history:    history,
		requests:   newWindowCounters(opts.BruteForceWindow),
		identities: newWindowCounters(opts.StuffingWindow),
		tallies:    newWindowCounters(opts.EventTallyWindow),
		byKind:     make(map[threat.Kind]int64),
		bySeverity: make(map[threat.Severity]int64),
	}, nil
}

func (e *engine) Analyze(ctx context.Context, req *threat.Request) []threat.Event {
	if req == nil {
		return nil
	}
	if req.ObservedAt.IsZero() {
		req.ObservedAt = e.now()
	}
	if req.SourceAddress != "" && e.IsBlocked(ctx, req.SourceAddress) {
		return nil
	}

	var events []threat.Event
	events = append(events, detectInjection(req, e.opts.MaxScanBytes)...)
	events = append(events, e.detectBruteForce(ctx, req)...)
	events = append(events, e.detectSuspiciousLogin(req)...)
	events = append(events, e.detectAnomalousBehavior(ctx, req)...)

	for _, ev := range events {
		e.Respond(ctx, ev)
	}
	return events
}

func (e *engine) Respond(ctx context.Context, ev threat.Event) {
	e.logEvent(ev)
	prometheus.ThreatEventsTotal.WithLabelValues(string(ev.Kind), ev.Severity.String()).Inc()
	e.totalsMu.Lock()
	e.byKind[ev.Kind]++
	e.bySeverity[ev.Severity]++
	e.totalsMu.Unlock()

	if ev.SourceAddress == "" {
		return
	}
	at := ev.ObservedAt
	if at.IsZero() {
		at = e.now()
	}
	tally := e.tallies.add(ev.SourceAddress, at)
	decision := e.opts.Policy.Decide(ev.Severity, tally)

	if decision.MarkSuspicious {
		e.markSuspicious(ctx, ev.SourceAddress)
	}
	if decision.Block {
		e.block(ctx, ev.SourceAddress, at, ev, tally)
	}
}

func (e *engine) IsBlocked(ctx context.Context, address string) bool {
	var blocked bool
	err := e.reputation.do(ctx, func(ctx context.Context) error {
		var err error
		blocked, err = e.store.IsBlocked(ctx, address, e.now())
		return err
	})
	if err != nil {
		e.failOpen(err, "is_blocked", address)
		return false
	}
	return blocked
}

func (e *engine) IsSuspicious(ctx context.Context, address string) bool {
	var suspicious bool
	err := e.reputation.do(ctx, func(ctx context.Context) error {
		var err error
		suspicious, err = e.store.IsSuspicious(ctx, address)
		return err
	})
	if err != nil {
		e.failOpen(err, "is_suspicious", address)
		return false
	}
	return suspicious
}

// Unblock also forgets the address's event tally, so a single new event
// does not immediately re-block it.
func (e *engine) Unblock(ctx context.Context, address string) error {
	if err := e.reputation.do(ctx, func(ctx context.Context) error {
		return e.store.Remove(ctx, address)
	}); err != nil {
		return fmt.Errorf("failed to unblock %s: %w", address, err)
	}
	e.tallies.forget(address)
	e.touch()
	e.logger.WithField("source_address", address).Info("address unblocked")
	return nil
}

func (e *engine) ClearAllBlocks(ctx context.Context) error {
	if err := e.reputation.do(ctx, e.store.Clear); err != nil {
		return fmt.Errorf("failed to clear reputation store: %w", err)
	}
	counters := e.requests.reset() + e.identities.reset() + e.tallies.reset()
	e.touch()
	prometheus.ReputationAddresses.WithLabelValues("blocked").Set(0)
	prometheus.ReputationAddresses.WithLabelValues("suspicious").Set(0)
	e.logger.WithField("counters", counters).Warn("all blocks cleared")
	return nil
}

func (e *engine) Cleanup(ctx context.Context) CleanupReport {
	now := e.now()
	report := CleanupReport{
		Counters:  e.requests.sweep(now) + e.identities.sweep(now) + e.tallies.sweep(now),
		Baselines: e.baselines.expire(now),
	}
	var pruned int
	err := e.reputation.do(ctx, func(ctx context.Context) error {
		var err error
		pruned, err = e.store.PruneExpired(ctx, now)
		return err
	})
	if err != nil {
		e.logger.WithError(err).Error("failed to prune expired blocks")
	} else {
		report.Blocks = pruned
	}

	prometheus.CleanupRemovedTotal.WithLabelValues("threat_counters").Add(float64(report.Counters))
	prometheus.CleanupRemovedTotal.WithLabelValues("threat_baselines").Add(float64(report.Baselines))
	prometheus.CleanupRemovedTotal.WithLabelValues("threat_blocks").Add(float64(report.Blocks))
	e.refreshGauges(ctx, now)

	e.logger.WithFields(logrus.Fields{
		"counters":  report.Counters,
		"baselines": report.Baselines,
		"blocks":    report.Blocks,
	}).Debug("threat cleanup finished")
	return report
}

func (e *engine) Stats(ctx context.Context) (Stats, error) {
	blocked, err := e.blockedEntries(ctx, e.now())
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list blocked addresses: %w", err)
	}
	suspicious, err := e.suspiciousAddresses(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list suspicious addresses: %w", err)
	}
	prometheus.ReputationAddresses.WithLabelValues("blocked").Set(float64(len(blocked)))
	prometheus.ReputationAddresses.WithLabelValues("suspicious").Set(float64(len(suspicious)))

	stats := Stats{
		Blocked:          len(blocked),
		Suspicious:       len(suspicious),
		EventsByKind:     make(map[threat.Kind]int64),
		EventsBySeverity: make(map[string]int64),
		TrackedCounters:  e.requests.len() + e.identities.len() + e.tallies.len(),
		CachedBaselines:  e.baselines.len(),
	}
	if ns := e.lastUpdated.Load(); ns != 0 {
		t := time.Unix(0, ns).UTC()
		stats.LastUpdated = &t
	}
	e.totalsMu.Lock()
	for k, n := range e.byKind {
		stats.EventsByKind[k] = n
	}
	for s, n := range e.bySeverity {
		stats.EventsBySeverity[s.String()] = n
	}
	e.totalsMu.Unlock()
	return stats, nil
}

func (e *engine) ListBlocked(ctx context.Context) ([]threat.BlockEntry, error) {
	entries, err := e.blockedEntries(ctx, e.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked addresses: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Address < entries[j].Address })
	return entries, nil
}

func (e *engine) ListSuspicious(ctx context.Context) ([]string, error) {
	addrs, err := e.suspiciousAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list suspicious addresses: %w", err)
	}
	sort.Strings(addrs)
	return addrs, nil
}

func (e *engine) RecordLogin(ctx context.Context, identityKey, address, agent string, at time.Time) {
	key := identity.NormalizeKey(identityKey)
	if key == "" {
		return
	}
	if at.IsZero() {
		at = e.now()
	}
	event := loginevent.New(key, address, agent, at)
	if err := e.history.do(ctx, func(ctx context.Context) error {
		return e.logins.Record(ctx, event)
	}); err != nil {
		prometheus.FailOpenTotal.WithLabelValues("threat", "record_login").Inc()
		e.logger.WithError(err).WithField("identity", key).Error("failed to record login")
		return
	}
	e.baselines.invalidate(key)
}

func (e *engine) markSuspicious(ctx context.Context, address string) {
	if err := e.reputation.do(ctx, func(ctx context.Context) error {
		return e.store.MarkSuspicious(ctx, address)
	}); err != nil {
		e.failOpen(err, "mark_suspicious", address)
		return
	}
	e.touch()
}

func (e *engine) block(ctx context.Context, address string, at time.Time, ev threat.Event, tally int) {
	var until time.Time
	if e.opts.BlockTTL > 0 {
		until = at.Add(e.opts.BlockTTL)
	}
	if err := e.reputation.do(ctx, func(ctx context.Context) error {
		return e.store.Block(ctx, address, until)
	}); err != nil {
		e.failOpen(err, "block", address)
		return
	}
	e.touch()
	fields := logrus.Fields{
		"source_address": address,
		"kind":           string(ev.Kind),
		"severity":       ev.Severity.String(),
		"rule":           ev.Rule,
		"tally":          tally,
	}
	if !until.IsZero() {
		fields["blocked_until"] = until.Format(time.RFC3339)
	}
	e.logger.WithFields(fields).Warn("address blocked")
}

func (e *engine) logEvent(ev threat.Event) {
	entry := e.logger.WithFields(logrus.Fields{
		"event_id":       ev.ID.String(),
		"kind":           string(ev.Kind),
		"severity":       ev.Severity.String(),
		"rule":           ev.Rule,
		"source_address": ev.SourceAddress,
		"identity":       ev.Identity,
		"details":        ev.Details,
	})
	if ev.Severity >= threat.SeverityHigh {
		entry.Warn("threat detected")
		return
	}
	entry.Info("threat detected")
}

// failOpen logs a reputation store error. The request proceeds as if the
// address had no standing.
func (e *engine) failOpen(err error, operation, address string) {
	prometheus.FailOpenTotal.WithLabelValues("threat", operation).Inc()
	e.logger.WithError(err).WithFields(logrus.Fields{
		"source_address": address,
		"operation":      operation,
	}).Error("reputation store unavailable, failing open")
}

func (e *engine) refreshGauges(ctx context.Context, now time.Time) {
	if blocked, err := e.blockedEntries(ctx, now); err == nil {
		prometheus.ReputationAddresses.WithLabelValues("blocked").Set(float64(len(blocked)))
	}
	if suspicious, err := e.suspiciousAddresses(ctx); err == nil {
		prometheus.ReputationAddresses.WithLabelValues("suspicious").Set(float64(len(suspicious)))
	}
}

func (e *engine) touch() {
	e.lastUpdated.Store(e.now().UnixNano())
}

func (e *engine) blockedEntries(ctx context.Context, now time.Time) ([]threat.BlockEntry, error) {
	var entries []threat.BlockEntry
	err := e.reputation.do(ctx, func(ctx context.Context) error {
		var err error
		entries, err = e.store.Blocked(ctx, now)
		return err
	})
	return entries, err
}

func (e *engine) suspiciousAddresses(ctx context.Context) ([]string, error) {
	var addrs []string
	err := e.reputation.do(ctx, func(ctx context.Context) error {
		var err error
		addrs, err = e.store.Suspicious(ctx)
		return err
	})
	return addrs, err
}
