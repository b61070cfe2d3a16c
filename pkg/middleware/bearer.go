package middleware

import (
	"strings"

	"github.com/NeuralTrust/AuthShield/pkg/common"
	"github.com/NeuralTrust/AuthShield/pkg/domain/threat"
	"github.com/gofiber/fiber/v2"
)

func bearerToken(ctx *fiber.Ctx) (string, bool) {
	authHeader := ctx.Get(common.AuthorizationHeader)
	if !strings.HasPrefix(authHeader, common.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, common.BearerPrefix))
	return token, token != ""
}

// PrincipalFrom returns the caller stored by the auth middlewares, if any.
func PrincipalFrom(ctx *fiber.Ctx) *threat.Principal {
	p, _ := ctx.Locals(common.PrincipalContextKey).(*threat.Principal)
	return p
}
