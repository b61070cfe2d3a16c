package threat

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/NeuralTrust/AuthShield/pkg/domain/threat"
	"github.com/valyala/fastjson"
)

type signature struct {
	name    string
	pattern *regexp.Regexp
}

// signatureClass is one family of injection patterns. Patterns are tried in
// order and the first hit ends the scan for the class.
type signatureClass struct {
	name     string
	severity threat.Severity
	patterns []signature
}

var signatureClasses = []signatureClass{
	{
		name:     "sql_injection",
		severity: threat.SeverityHigh,
		patterns: []signature{
			{"tautology", regexp.MustCompile(`(?i)['"]\s*(?:OR|AND)\s+['"]?\w+['"]?\s*=\s*['"]?\w+`)},
			{"union_select", regexp.MustCompile(`(?i)\bUNION\s+(?:ALL\s+)?SELECT\b`)},
			{"stacked_query", regexp.MustCompile(`(?i);\s*(?:DROP|DELETE|INSERT|UPDATE|ALTER|CREATE|TRUNCATE)\s+(?:TABLE|DATABASE|INTO|FROM|\w+\s+SET)\b`)},
			{"time_based", regexp.MustCompile(`(?i)\b(?:SLEEP|PG_SLEEP|BENCHMARK)\s*\(\s*\d+|\bWAITFOR\s+DELAY\b`)},
			{"comment_terminator", regexp.MustCompile(`['"]\s*(?:--|#|/\*)`)},
		},
	},
	{
		name:     "script_injection",
		severity: threat.SeverityHigh,
		patterns: []signature{
			{"script_tag", regexp.MustCompile(`(?i)<\s*script\b`)},
			{"javascript_uri", regexp.MustCompile(`(?i)\bjavascript\s*:`)},
			{"event_handler", regexp.MustCompile(`(?i)\bon(?:load|error|click|mouseover|focus|submit|toggle)\s*=`)},
			{"embedded_frame", regexp.MustCompile(`(?i)<\s*(?:iframe|object|embed|svg)\b`)},
			{"script_call", regexp.MustCompile(`(?i)\b(?:eval|alert)\s*\(|document\.cookie`)},
		},
	},
	{
		name:     "path_traversal",
		severity: threat.SeverityMedium,
		patterns: []signature{
			{"dot_dot_slash", regexp.MustCompile(`\.\.[/\\]`)},
			{"encoded_traversal", regexp.MustCompile(`(?i)(?:%2e%2e|\.\.)(?:%2f|%5c)|%2e%2e[/\\]|%c0%ae%c0%ae`)},
			{"sensitive_file", regexp.MustCompile(`(?i)/etc/(?:passwd|shadow|hosts)\b|\bboot\.ini\b|\bwin\.ini\b`)},
		},
	},
}

// detectInjection scans the request's inputs for each signature class and
// produces at most one event per class.
func detectInjection(req *threat.Request, maxScanBytes int) []threat.Event {
	input := scanInput(req, maxScanBytes)
	if input == "" {
		return nil
	}

	var events []threat.Event
	for _, class := range signatureClasses {
		for _, sig := range class.patterns {
			match := sig.pattern.FindString(input)
			if match == "" {
				continue
			}
			events = append(events, threat.NewEvent(
				threat.KindInjectionAttempt,
				class.severity,
				class.name+":"+sig.name,
				req,
				map[string]interface{}{
					"class":   class.name,
					"pattern": sig.name,
					"match":   truncate(match, 64),
					"path":    req.Path,
				},
			))
			break
		}
	}
	return events
}

// scanInput joins path, query, body and user agent into one string. The
// query is also scanned URL-decoded and JSON bodies contribute their keys
// and string values.
func scanInput(req *threat.Request, maxScanBytes int) string {
	var b strings.Builder
	write := func(s string) {
		if s == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(s)
	}

	write(req.Path)
	write(req.RawQuery)
	if decoded, err := url.QueryUnescape(req.RawQuery); err == nil && decoded != req.RawQuery {
		write(decoded)
	}
	write(bodyText(req.Body, maxScanBytes))
	write(req.UserAgent)
	return b.String()
}

func bodyText(body []byte, maxScanBytes int) string {
	if len(body) == 0 {
		return ""
	}
	if maxScanBytes > 0 && len(body) > maxScanBytes {
		body = body[:maxScanBytes]
	}

	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return string(body)
	}
	var parts []string
	flattenJSON(v, &parts)
	return strings.Join(parts, "\n")
}

func flattenJSON(v *fastjson.Value, out *[]string) {
	switch v.Type() {
	case fastjson.TypeObject:
		o, _ := v.Object()
		o.Visit(func(key []byte, child *fastjson.Value) {
			*out = append(*out, string(key))
			flattenJSON(child, out)
		})
	case fastjson.TypeArray:
		items, _ := v.Array()
		for _, item := range items {
			flattenJSON(item, out)
		}
	case fastjson.TypeString:
		*out = append(*out, string(v.GetStringBytes()))
	}
}

// AttemptedIdentity pulls the submitted identity out of a JSON login body.
// It looks at the common field names and returns "" when none is present.
func AttemptedIdentity(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	v, err := fastjson.ParseBytes(body)
	if err != nil {
		return ""
	}
	for _, field := range []string{"email", "username", "login", "identity"} {
		if s := v.GetStringBytes(field); len(s) > 0 {
			return strings.TrimSpace(string(s))
		}
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
