package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/common"
	"github.com/NeuralTrust/AuthShield/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

// NewMetricsMiddleware tags each request with a trace id and records its
// latency by method and status class.
func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{logger: logger}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()
		c.Locals(common.LatencyContextKey, startTime)

		traceID := c.Get(common.TraceIDHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}
		c.Locals(common.TraceIdKey, traceID)
		c.Set(common.TraceIDHeader, traceID)
		c.SetUserContext(context.WithValue(c.UserContext(), common.TraceIdKey, traceID))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		elapsed := time.Since(startTime)
		prometheus.RequestLatency.
			WithLabelValues(c.Method(), statusClass(status)).
			Observe(float64(elapsed.Microseconds()) / 1000)

		m.logger.WithFields(logrus.Fields{
			"trace_id":   traceID,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": elapsed.Milliseconds(),
		}).Debug("request served")
		return err
	}
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "5xx"
	}
	return fmt.Sprintf("%dxx", code/100)
}
