package http

import (
	"github.com/NeuralTrust/AuthShield/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

const unknownActor = "system"

func actorOf(c *fiber.Ctx) string {
	if p := middleware.PrincipalFrom(c); p != nil && p.Identity != "" {
		return p.Identity
	}
	return unknownActor
}
