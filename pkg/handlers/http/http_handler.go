package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Authentication
	LoginHandler Handler

	// Lockout administration
	GetLockoutStatsHandler Handler
	ListLockoutsHandler    Handler
	GetLockoutHandler      Handler
	LockIdentityHandler    Handler
	UnlockIdentityHandler  Handler
	SweepLockoutsHandler   Handler

	// Threat administration
	GetThreatStatsHandler Handler
	ListBlockedHandler    Handler
	ListSuspiciousHandler Handler
	UnblockAddressHandler Handler
	ClearBlocksHandler    Handler
	ThreatCleanupHandler  Handler

	GetVersionHandler Handler
}
