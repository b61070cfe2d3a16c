package middleware

import (
	"github.com/NeuralTrust/AuthShield/pkg/common"
	"github.com/NeuralTrust/AuthShield/pkg/domain/threat"
	"github.com/NeuralTrust/AuthShield/pkg/infra/auth/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type principalMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
}

// NewPrincipalMiddleware attaches the caller when a valid bearer token is
// present. It never rejects a request.
func NewPrincipalMiddleware(logger *logrus.Logger, jwtManager jwt.Manager) Middleware {
	return &principalMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}

func (m *principalMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenString, ok := bearerToken(ctx)
		if !ok {
			return ctx.Next()
		}
		claims, err := m.jwtManager.DecodeToken(tokenString)
		if err != nil {
			m.logger.WithError(err).Debug("ignoring undecodable bearer token")
			return ctx.Next()
		}
		ctx.Locals(common.PrincipalContextKey, &threat.Principal{
			Identity: claims.Subject,
			Role:     claims.IdentityRole(),
		})
		return ctx.Next()
	}
}
