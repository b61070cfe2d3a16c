package common

const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	TraceIDHeader       = "X-Trace-Id"

	AdminHealthPath = "/__/health"
)
