package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type securityMiddleware struct {
	stsSeconds int
}

// NewSecurityMiddleware sets the fixed response headers of the JSON API.
// Strict-Transport-Security is only sent on TLS requests and only when
// stsSeconds is positive.
func NewSecurityMiddleware(stsSeconds int) Middleware {
	return &securityMiddleware{stsSeconds: stsSeconds}
}

func (m *securityMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "no-referrer")
		c.Set("Cache-Control", "no-store")
		if m.stsSeconds > 0 && c.Protocol() == "https" {
			c.Set("Strict-Transport-Security", "max-age="+strconv.Itoa(m.stsSeconds)+"; includeSubDomains")
		}
		return c.Next()
	}
}
