package threat

import (
	"context"
	"path"
	"strings"

	"github.com/NeuralTrust/AuthShield/pkg/domain/threat"
)

type pathClass string

const (
	pathAuth    pathClass = "auth"
	pathAdmin   pathClass = "admin"
	pathDefault pathClass = "default"
)

// canonicalPath folds the variants the router treats as one route: case,
// duplicate or trailing slashes and dot segments.
func canonicalPath(p string) string {
	return strings.ToLower(path.Clean("/" + p))
}

func (e *engine) classifyPath(p string) pathClass {
	p = canonicalPath(p)
	if hasAnyPrefix(p, e.opts.AuthPathPrefixes) {
		return pathAuth
	}
	if hasAnyPrefix(p, e.opts.AdminPathPrefixes) {
		return pathAdmin
	}
	return pathDefault
}

func (e *engine) threshold(class pathClass) int {
	switch class {
	case pathAuth:
		return e.opts.AuthThreshold
	case pathAdmin:
		return e.opts.AdminThreshold
	default:
		return e.opts.DefaultThreshold
	}
}

// detectBruteForce counts requests per address and path. Every request
// above the path's threshold yields an event, and the address is marked
// suspicious right away.
func (e *engine) detectBruteForce(ctx context.Context, req *threat.Request) []threat.Event {
	if req.SourceAddress == "" {
		return nil
	}
	class := e.classifyPath(req.Path)
	limit := e.threshold(class)
	count := e.requests.add(req.SourceAddress+" "+canonicalPath(req.Path), req.ObservedAt)
	if count <= limit {
		return nil
	}

	severity := threat.SeverityHigh
	if count > 2*limit {
		severity = threat.SeverityCritical
	}
	e.markSuspicious(ctx, req.SourceAddress)

	return []threat.Event{threat.NewEvent(
		threat.KindBruteForce,
		severity,
		"request_rate:"+string(class),
		req,
		map[string]interface{}{
			"count":      count,
			"threshold":  limit,
			"path":       req.Path,
			"path_class": string(class),
			"window":     e.opts.BruteForceWindow.String(),
		},
	)}
}

func hasAnyPrefix(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(p, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}
