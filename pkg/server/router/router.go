package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var ErrInvalidHandlerTransport = errors.New("invalid handler transport")

// ServerRouter mounts a group of routes on the app. Routers are built once,
// before Listen.
type ServerRouter interface {
	BuildRoutes(app *fiber.App) error
}
