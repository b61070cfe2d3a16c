package common

type contextKey string

const (
	TraceIdKey          contextKey = "trace_id"
	PrincipalContextKey contextKey = "principal"
	LatencyContextKey   contextKey = "__execution_time"
)
