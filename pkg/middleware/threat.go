package middleware

import (
	"strings"

	appthreat "github.com/NeuralTrust/AuthShield/pkg/app/threat"
	"github.com/NeuralTrust/AuthShield/pkg/domain/threat"
	"github.com/NeuralTrust/AuthShield/pkg/handlers/http/request"
	"github.com/NeuralTrust/AuthShield/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	rejectBlocked          = "blocked"
	rejectBlockedByRequest = "blocked_after_analysis"
)

type threatMiddleware struct {
	logger *logrus.Logger
	engine appthreat.Engine
}

// NewThreatMiddleware refuses blocked addresses, runs detection on what
// remains and refuses the request if detection blocked its address.
func NewThreatMiddleware(logger *logrus.Logger, engine appthreat.Engine) Middleware {
	return &threatMiddleware{
		logger: logger,
		engine: engine,
	}
}

func (m *threatMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		address := c.IP()

		if m.engine.IsBlocked(ctx, address) {
			return m.reject(c, address, rejectBlocked)
		}

		req := m.toRequest(c, address)
		events := m.engine.Analyze(ctx, req)
		if len(events) > 0 && m.engine.IsBlocked(ctx, address) {
			return m.reject(c, address, rejectBlockedByRequest)
		}

		return c.Next()
	}
}

func (m *threatMiddleware) toRequest(c *fiber.Ctx, address string) *threat.Request {
	body := c.Body()
	req := &threat.Request{
		SourceAddress: address,
		Method:        c.Method(),
		Path:          c.Path(),
		RawQuery:      string(c.Request().URI().QueryString()),
		Body:          body,
		UserAgent:     c.Get(fiber.HeaderUserAgent),
		Principal:     PrincipalFrom(c),
	}
	if len(body) > 0 {
		req.AttemptedIdentity = attemptedIdentity(c, body)
	}
	return req
}

// attemptedIdentity reads the identity from any body the login handler
// accepts. JSON goes through the signature scanner, which knows more field
// names; form, multipart and XML bodies go through the same binder the
// handler uses.
func attemptedIdentity(c *fiber.Ctx, body []byte) string {
	if id := appthreat.AttemptedIdentity(body); id != "" {
		return id
	}
	var login request.LoginRequest
	if err := c.BodyParser(&login); err != nil {
		return ""
	}
	return strings.TrimSpace(login.Email)
}

func (m *threatMiddleware) reject(c *fiber.Ctx, address, reason string) error {
	prometheus.RejectedRequestsTotal.WithLabelValues(reason).Inc()
	m.logger.WithFields(logrus.Fields{
		"source_address": address,
		"path":           c.Path(),
		"reason":         reason,
	}).Info("request rejected")
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
}
