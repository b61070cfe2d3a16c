package router

import (
	handlers "github.com/NeuralTrust/AuthShield/pkg/handlers/http"
	"github.com/NeuralTrust/AuthShield/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

type adminRouter struct {
	middlewareTransport *middleware.Transport
	adminAuth           middleware.Middleware
	handlerTransport    handlers.HandlerTransport
}

// NewAdminRouter mounts the API. Every /api route passes through the
// transport middlewares; /api/v1/admin additionally requires adminAuth.
func NewAdminRouter(
	middlewareTransport *middleware.Transport,
	adminAuth middleware.Middleware,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &adminRouter{
		middlewareTransport: middlewareTransport,
		adminAuth:           adminAuth,
		handlerTransport:    handlerTransport,
	}
}

func (r *adminRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	if h.LoginHandler == nil || r.adminAuth == nil {
		return ErrInvalidHandlerTransport
	}

	if h.GetVersionHandler != nil {
		router.Get("/version", h.GetVersionHandler.Handle)
	}

	api := router.Group("/api")
	if r.middlewareTransport != nil {
		if mws := r.middlewareTransport.GetMiddlewares(); len(mws) > 0 {
			api.Use(mws...)
		}
	}

	auth := api.Group("/auth")
	{
		auth.Post("/login", h.LoginHandler.Handle)
	}

	admin := api.Group("/v1/admin", r.adminAuth.Middleware())
	{
		lockouts := admin.Group("/lockouts")
		{
			lockouts.Get("/stats", h.GetLockoutStatsHandler.Handle)
			lockouts.Post("/sweep", h.SweepLockoutsHandler.Handle)
			lockouts.Get("", h.ListLockoutsHandler.Handle)
			lockouts.Get("/:identity", h.GetLockoutHandler.Handle)
			lockouts.Post("/:identity/lock", h.LockIdentityHandler.Handle)
			lockouts.Post("/:identity/unlock", h.UnlockIdentityHandler.Handle)
		}

		threats := admin.Group("/threats")
		{
			threats.Get("/stats", h.GetThreatStatsHandler.Handle)
			threats.Get("/blocked", h.ListBlockedHandler.Handle)
			threats.Get("/suspicious", h.ListSuspiciousHandler.Handle)
			threats.Delete("/blocked/:address", h.UnblockAddressHandler.Handle)
			threats.Delete("/blocked", h.ClearBlocksHandler.Handle)
			threats.Post("/cleanup", h.ThreatCleanupHandler.Handle)
		}
	}

	return nil
}
