package middleware

import (
	"strings"

	"github.com/NeuralTrust/AuthShield/pkg/common"
	"github.com/NeuralTrust/AuthShield/pkg/domain/threat"
	"github.com/NeuralTrust/AuthShield/pkg/infra/auth/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type adminAuthMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
}

// NewAdminAuthMiddleware admits only bearer tokens carrying an
// administrative role.
func NewAdminAuthMiddleware(
	logger *logrus.Logger,
	jwtManager jwt.Manager,
) Middleware {
	return &adminAuthMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}

func (m *adminAuthMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(common.AuthorizationHeader)
		if authHeader == "" {
			m.logger.Debug("no authorization header provided")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization required"})
		}
		if !strings.HasPrefix(authHeader, common.BearerPrefix) {
			m.logger.Debug("invalid authorization header format")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization format"})
		}

		tokenString, ok := bearerToken(ctx)
		if !ok {
			m.logger.Debug("empty token provided")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Empty token provided"})
		}

		claims, err := m.jwtManager.DecodeToken(tokenString)
		if err != nil {
			m.logger.WithError(err).Debug("invalid token")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		role := claims.IdentityRole()
		if !role.IsAdministrative() {
			m.logger.WithFields(logrus.Fields{
				"identity": claims.Subject,
				"role":     role,
				"path":     ctx.Path(),
			}).Warn("admin route rejected for non-administrative caller")
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient privileges"})
		}

		ctx.Locals(common.PrincipalContextKey, &threat.Principal{Identity: claims.Subject, Role: role})
		return ctx.Next()
	}
}
